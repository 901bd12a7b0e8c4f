package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newswave/internal/core"
)

// DeepSearchProvider lists articles from a DeepSearch-style news listing API:
// GET {base}/articles/{category} (or /global-articles/{category} for the
// international section) with bearer authentication and popularity sort.
type DeepSearchProvider struct {
	baseURL  string
	apiKey   string
	pageSize int
	client   *http.Client
}

// NewDeepSearchProvider creates a provider for the given API endpoint.
func NewDeepSearchProvider(baseURL, apiKey string, pageSize int, timeout time.Duration) *DeepSearchProvider {
	if pageSize <= 0 {
		pageSize = 60
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DeepSearchProvider{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
	}
}

// listResponse mirrors the API envelope. Identifiers arrive as strings or
// numbers depending on the endpoint, so they are decoded as json.Number.
type listResponse struct {
	Data []struct {
		ID          json.Number `json:"id"`
		Title       string      `json:"title"`
		ContentURL  string      `json:"content_url"`
		Publisher   string      `json:"publisher"`
		Summary     string      `json:"summary"`
		PublishedAt string      `json:"published_at"`
	} `json:"data"`
}

// ListArticles fetches one page of popular articles for the category within
// the time range.
func (p *DeepSearchProvider) ListArticles(ctx context.Context, category core.Category, timeRange TimeRange, page int) ([]Result, error) {
	endpoint := p.baseURL + "/articles/" + url.PathEscape(category.Key)
	if category.Section == "international" {
		endpoint = p.baseURL + "/global-articles/" + url.PathEscape(category.Key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	query := req.URL.Query()
	query.Set("date_from", timeRange.From)
	query.Set("date_to", timeRange.To)
	query.Set("sort", "popular")
	query.Set("page_size", strconv.Itoa(p.pageSize))
	query.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = query.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing request returned status %d", resp.StatusCode)
	}

	var decoded listResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}

	results := make([]Result, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		results = append(results, Result{
			ID:          item.ID.String(),
			Title:       item.Title,
			URL:         item.ContentURL,
			Publisher:   item.Publisher,
			Summary:     item.Summary,
			PublishedAt: item.PublishedAt,
		})
	}
	return results, nil
}
