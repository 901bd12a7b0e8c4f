package search

import (
	"context"

	"newswave/internal/core"
)

// Result is one listing entry returned by a provider, before extraction.
type Result struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"content_url"`
	Publisher   string `json:"publisher"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"published_at"`
}

// TimeRange bounds a listing query. Values are ISO 8601 timestamps.
type TimeRange struct {
	From string
	To   string
}

// Provider lists articles for a category, ranked by the provider's own
// popularity ordering. Pages are 1-based; a page beyond the available
// results returns an empty slice and no error.
type Provider interface {
	ListArticles(ctx context.Context, category core.Category, timeRange TimeRange, page int) ([]Result, error)
}
