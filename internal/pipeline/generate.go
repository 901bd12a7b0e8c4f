package pipeline

import (
	"context"
	"fmt"
	"time"

	"newswave/internal/core"
	"newswave/internal/logger"
	"newswave/internal/tts"
)

// GenerateCategory produces and persists the narration script for one
// category and date. A script that already exists short-circuits the whole
// run; the existence check races with concurrent writers but both sides
// write equivalent content, so last-write-wins is harmless. Failures are
// reported in the result, never as an error.
func (p *Pipeline) GenerateCategory(ctx context.Context, category core.Category, date string) core.RunResult {
	result := core.RunResult{Category: category.Key}

	existing, err := p.store.GetScript(category.Key, date)
	if err != nil {
		logger.Error("script lookup failed", err, "category", category.Key, "date", date)
	}
	if existing != nil {
		logger.Info("script already exists, skipping",
			"category", category.Key, "date", date)
		result.Status = core.StatusSkipped
		return result
	}

	articles, err := p.store.ListArticles(category.Key, date)
	if err != nil {
		logger.Error("failed to load articles", err, "category", category.Key, "date", date)
	}

	bodies := p.usableBodies(ctx, articles, category)
	result.SavedCount = len(bodies)
	if len(bodies) < p.config.MinValidArticles {
		logger.Warn("not enough valid articles for generation",
			"category", category.Key, "date", date,
			"valid", len(bodies), "required", p.config.MinValidArticles)
		result.Status = core.StatusFailed
		result.Reason = core.ReasonInsufficientContent
		return result
	}

	groups := p.clusterer.Cluster(ctx, bodies, p.config.ArticleThreshold)
	logger.Info("articles clustered",
		"category", category.Key, "articles", len(bodies), "clusters", len(groups))

	summaries := make([]string, 0, len(groups))
	for _, group := range groups {
		if group.Size() == 0 {
			continue
		}
		summary := p.consolidator.Consolidate(ctx, group, category)
		if summary.Text != "" {
			summaries = append(summaries, summary.Text)
		}
	}

	script := p.synthesizer.Synthesize(ctx, summaries, category)
	result.ScriptLength = len([]rune(script))
	if result.ScriptLength < p.config.ScriptMinLength {
		logger.Warn("synthesized script too short",
			"category", category.Key, "length", result.ScriptLength,
			"required", p.config.ScriptMinLength)
		result.Status = core.StatusFailed
		result.Reason = core.ReasonSummaryTooShort
		return result
	}

	audioRef := ""
	if p.speech != nil {
		audio, err := p.speech.Synthesize(ctx, script)
		if err != nil {
			logger.Error("speech synthesis failed", err, "category", category.Key)
			result.Status = core.StatusFailed
			result.Reason = core.ReasonTTSFailed
			return result
		}
		audioRef, err = p.audio.Save(category, date, audio)
		if err != nil {
			logger.Error("failed to save audio", err, "category", category.Key)
			result.Status = core.StatusFailed
			result.Reason = core.ReasonTTSFailed
			return result
		}
	}

	record := core.CategoryScript{
		Category:  category.Key,
		Date:      date,
		Script:    script,
		AudioRef:  audioRef,
		CreatedAt: time.Now(),
	}
	if err := p.store.SaveScript(record); err != nil {
		logger.Error("failed to save script", err, "category", category.Key, "date", date)
		result.Status = core.StatusFailed
		result.Reason = core.ReasonSaveFailed
		return result
	}

	logger.Info("category script generated",
		"category", category.Key, "date", date,
		"length", result.ScriptLength, "audio", audioRef,
		"est_minutes", fmt.Sprintf("%.1f", tts.EstimateAudioLength(script)))
	result.Status = core.StatusSuccess
	return result
}

// usableBodies re-extracts articles whose stored body is below the validity
// floor, persists any recovered content, and returns the valid bodies capped
// for prompting. Order follows the stored popularity rank.
func (p *Pipeline) usableBodies(ctx context.Context, articles []core.Article, category core.Category) []string {
	bodies := make([]string, 0, len(articles))
	for _, article := range articles {
		if !article.HasContent(p.config.MinContentLength) {
			content, err := p.extractor.Extract(ctx, article.URL)
			if err != nil {
				logger.Debug("re-extraction failed",
					"category", category.Key, "id", article.ID, "error", err.Error())
				continue
			}
			if err := p.store.UpdateArticleContent(article.ID, content); err != nil {
				logger.Warn("failed to persist re-extracted content",
					"category", category.Key, "id", article.ID, "error", err.Error())
			}
			article.Content = content
		}
		if article.HasContent(p.config.MinContentLength) {
			bodies = append(bodies, capRunes(article.Content, p.config.BodyCap))
		}
	}
	return bodies
}

// capRunes truncates s to max runes so multi-byte Hangul never splits.
func capRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
