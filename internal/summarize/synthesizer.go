package summarize

import (
	"context"
	"fmt"

	"newswave/internal/core"
	"newswave/internal/llm"
	"newswave/internal/logger"
)

// Clusterer is the clustering surface the synthesizer uses for its second
// deduplication pass over consolidated summaries.
type Clusterer interface {
	Cluster(ctx context.Context, texts []string, threshold float64) []core.ClusterGroup
}

// SynthesizerOptions tunes script synthesis.
type SynthesizerOptions struct {
	SummaryCap         int     // Per-summary cap inside the narration prompt
	SecondPassMinCount int     // Re-cluster only above this many summaries
	SummaryThreshold   float64 // Loose threshold for the summary pass
	TargetMin          int     // Narration length window, characters
	TargetMax          int
	Temperature        float32
	MaxTokens          int32
}

// DefaultSynthesizerOptions returns the production defaults.
func DefaultSynthesizerOptions() SynthesizerOptions {
	return SynthesizerOptions{
		SummaryCap:         1000,
		SecondPassMinCount: 5,
		SummaryThreshold:   0.75,
		TargetMin:          1800,
		TargetMax:          2200,
		Temperature:        0.7,
		MaxTokens:          2000,
	}
}

// Synthesizer turns a set of consolidated summaries into one long-form
// narration script.
type Synthesizer struct {
	generator    TextGenerator
	clusterer    Clusterer
	consolidator *Consolidator
	styles       StyleProvider
	options      SynthesizerOptions
}

// NewSynthesizer creates a synthesizer. The clusterer and consolidator serve
// the second deduplication pass; styles parameterize the narration prompt.
func NewSynthesizer(generator TextGenerator, clusterer Clusterer, consolidator *Consolidator, styles StyleProvider, options SynthesizerOptions) *Synthesizer {
	if styles == nil {
		styles = DefaultStyles{}
	}
	return &Synthesizer{
		generator:    generator,
		clusterer:    clusterer,
		consolidator: consolidator,
		styles:       styles,
		options:      options,
	}
}

// Synthesize produces the narration script for a category from its
// consolidated summaries. When more than SecondPassMinCount summaries come
// in, a second clustering pass at the loose threshold catches semantic
// duplication the article pass missed; below that the extra API calls are
// not worth it and summaries are only length-capped. The final completion
// carries the length window in its instructions. Any API failure yields a
// short fixed fallback line so the category always gets some script.
func (s *Synthesizer) Synthesize(ctx context.Context, summaries []string, category core.Category) string {
	finalTexts := s.reduce(ctx, summaries, category)

	prompt := BuildNarrationPrompt(category, finalTexts, s.styles, s.options.TargetMin, s.options.TargetMax)
	script, err := s.generator.GenerateText(ctx, prompt, llm.TextGenerationOptions{
		Temperature: s.options.Temperature,
		MaxTokens:   s.options.MaxTokens,
	})
	if err != nil {
		switch {
		case llm.IsRateLimited(err):
			logger.Warn("rate limited during script synthesis", "category", category.Key, "error", err.Error())
		case llm.IsAuthError(err):
			logger.Warn("auth error during script synthesis", "category", category.Key, "error", err.Error())
		default:
			logger.Warn("script synthesis failed", "category", category.Key, "error", err.Error())
		}
		return fmt.Sprintf("오늘은 %s 분야의 중요한 뉴스를 전해드렸습니다.", category.NameKo)
	}

	logger.Info("script synthesized", "category", category.Key, "length", len([]rune(script)))
	return script
}

// reduce runs the optional second clustering pass and caps each surviving
// summary.
func (s *Synthesizer) reduce(ctx context.Context, summaries []string, category core.Category) []string {
	if len(summaries) <= s.options.SecondPassMinCount {
		capped := make([]string, len(summaries))
		for i, summary := range summaries {
			capped[i] = truncate(summary, s.options.SummaryCap)
		}
		logger.Debug("second clustering pass skipped", "category", category.Key, "summaries", len(summaries))
		return capped
	}

	groups := s.clusterer.Cluster(ctx, summaries, s.options.SummaryThreshold)
	reduced := make([]string, 0, len(groups))
	for _, group := range groups {
		if group.Size() == 0 {
			continue
		}
		consolidated := s.consolidator.Consolidate(ctx, group, category)
		reduced = append(reduced, truncate(consolidated.Text, s.options.SummaryCap))
	}

	logger.Info("second clustering pass complete",
		"category", category.Key, "summaries", len(summaries), "groups", len(reduced))
	return reduced
}
