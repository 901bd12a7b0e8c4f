package search

import (
	"context"

	"newswave/internal/core"
)

// MockProvider serves canned results per category. Used in tests and for
// local development without API credentials.
type MockProvider struct {
	Results map[string][]Result // category key -> all results, pre-ranked
	Err     error               // returned from every call when set
	Calls   int
}

// NewMockProvider creates an empty mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{Results: make(map[string][]Result)}
}

// ListArticles returns the canned results for the category, sliced into
// pages of 60.
func (m *MockProvider) ListArticles(_ context.Context, category core.Category, _ TimeRange, page int) ([]Result, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	const pageSize = 60
	all := m.Results[category.Key]
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}
