package pipeline

import (
	"context"
	"errors"
	"time"

	"newswave/internal/core"
	"newswave/internal/fetch"
	"newswave/internal/logger"
	"newswave/internal/search"
)

// CollectResult summarizes one category's collection run.
type CollectResult struct {
	Category   string
	Listed     int
	Saved      int // All articles written to the store, usable or not
	Duplicates int
	Extracted  int // Usable bodies; this is what the target count measures
}

// CollectAll collects articles for every category sequentially. Listing
// providers rate-limit aggressively enough that fanning out buys nothing
// here.
func (p *Pipeline) CollectAll(ctx context.Context, categories []core.Category, date string) []CollectResult {
	results := make([]CollectResult, 0, len(categories))
	for _, category := range categories {
		results = append(results, p.CollectCategory(ctx, category, date))
	}
	return results
}

// CollectCategory walks the provider's popularity-ranked listing for one
// category and saves new articles until the target count of usable bodies is
// reached or the page budget runs out. Only articles whose extraction
// succeeded count toward the target. Duplicates are detected by provider ID,
// then URL, then exact title, checked within the run first and the store
// second. Extraction failures do not discard the article: the entry is saved
// with an empty body so generation can retry it later.
func (p *Pipeline) CollectCategory(ctx context.Context, category core.Category, date string) CollectResult {
	result := CollectResult{Category: category.Key}
	timeRange := search.TimeRange{From: date, To: date}

	seenIDs := make(map[string]bool)
	seenURLs := make(map[string]bool)
	seenTitles := make(map[string]bool)
	rank := 0

	for page := 1; page <= p.config.MaxPages && result.Extracted < p.config.TargetCount; page++ {
		listings, err := p.lister.ListArticles(ctx, category, timeRange, page)
		if err != nil {
			logger.Error("article listing failed", err,
				"category", category.Key, "page", page)
			break
		}
		if len(listings) == 0 {
			break
		}
		result.Listed += len(listings)

		for _, listing := range listings {
			if result.Extracted >= p.config.TargetCount {
				break
			}
			if p.isDuplicate(listing, seenIDs, seenURLs, seenTitles) {
				result.Duplicates++
				continue
			}
			seenIDs[listing.ID] = true
			seenURLs[listing.URL] = true
			seenTitles[listing.Title] = true

			content := ""
			body, err := p.extractor.Extract(ctx, listing.URL)
			switch {
			case err == nil:
				content = body
				result.Extracted++
			case errors.Is(err, fetch.ErrQuality):
				logger.Debug("extracted content failed quality checks",
					"category", category.Key, "url", listing.URL, "error", err.Error())
			default:
				logger.Warn("content extraction failed",
					"category", category.Key, "url", listing.URL, "error", err.Error())
			}

			rank++
			article := core.Article{
				ID:          listing.ID,
				Category:    category.Key,
				Date:        date,
				Rank:        rank,
				Title:       listing.Title,
				URL:         listing.URL,
				Publisher:   listing.Publisher,
				Content:     content,
				PublishedAt: listing.PublishedAt,
				CollectedAt: time.Now(),
			}
			if err := p.store.SaveArticle(article); err != nil {
				logger.Error("failed to save article", err,
					"category", category.Key, "id", listing.ID)
				continue
			}
			result.Saved++
		}
	}

	logger.Info("category collected",
		"category", category.Key, "date", date,
		"listed", result.Listed, "saved", result.Saved,
		"duplicates", result.Duplicates, "extracted", result.Extracted)
	return result
}

// isDuplicate applies the three-key intake check: provider ID, URL, exact
// title. In-memory sets catch repeats within this run; store lookups catch
// articles from earlier runs.
func (p *Pipeline) isDuplicate(listing search.Result, seenIDs, seenURLs, seenTitles map[string]bool) bool {
	if seenIDs[listing.ID] || seenURLs[listing.URL] || seenTitles[listing.Title] {
		return true
	}
	if existing, err := p.store.GetArticleByID(listing.ID); err == nil && existing != nil {
		return true
	}
	if existing, err := p.store.GetArticleByURL(listing.URL); err == nil && existing != nil {
		return true
	}
	if existing, err := p.store.GetArticleByTitle(listing.Title); err == nil && existing != nil {
		return true
	}
	return false
}
