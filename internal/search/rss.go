package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"newswave/internal/core"
)

// RSSProvider lists articles from per-category RSS feeds. It exists for
// deployments without a listing-API subscription; feed order stands in for
// popularity rank. RSS has no pagination, so only page 1 yields results.
type RSSProvider struct {
	feeds  map[string]string // category key -> feed URL
	parser *gofeed.Parser
}

// NewRSSProvider creates a provider over the given category -> feed URL map.
func NewRSSProvider(feeds map[string]string) *RSSProvider {
	return &RSSProvider{
		feeds:  feeds,
		parser: gofeed.NewParser(),
	}
}

// ListArticles parses the category's feed and maps its items to Results.
func (p *RSSProvider) ListArticles(ctx context.Context, category core.Category, _ TimeRange, page int) ([]Result, error) {
	if page > 1 {
		return nil, nil
	}

	feedURL, ok := p.feeds[category.Key]
	if !ok {
		return nil, fmt.Errorf("no feed configured for category %q", category.Key)
	}

	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	results := make([]Result, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		id := item.GUID
		if id == "" {
			id = uuid.NewString()
		}
		results = append(results, Result{
			ID:          id,
			Title:       item.Title,
			URL:         item.Link,
			Publisher:   feed.Title,
			Summary:     item.Description,
			PublishedAt: item.Published,
		})
	}
	return results, nil
}
