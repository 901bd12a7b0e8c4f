package summarize

import (
	"context"

	"newswave/internal/core"
	"newswave/internal/llm"
	"newswave/internal/logger"
)

// TextGenerator is the completion-service surface the summarize package
// depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, options llm.TextGenerationOptions) (string, error)
}

// ConsolidatorOptions tunes consolidation behavior.
type ConsolidatorOptions struct {
	MemberCap    int     // Per-member cap inside the consolidation prompt
	SingletonCap int     // Cap applied to singleton pass-through
	MaxAttempts  int     // Completion attempts before falling back
	BaseTemp     float32 // Temperature of the first attempt
	TempStep     float32 // Added per retry to escape degenerate responses
	MaxTokens    int32
}

// DefaultConsolidatorOptions returns the production defaults.
func DefaultConsolidatorOptions() ConsolidatorOptions {
	return ConsolidatorOptions{
		MemberCap:    800,
		SingletonCap: 1000,
		MaxAttempts:  3,
		BaseTemp:     0.3,
		TempStep:     0.2,
		MaxTokens:    700,
	}
}

// Consolidator reduces a cluster of near-duplicate texts to a single
// representative text.
type Consolidator struct {
	generator TextGenerator
	styles    StyleProvider
	options   ConsolidatorOptions
}

// NewConsolidator creates a consolidator using the given completion service
// and prompt styles.
func NewConsolidator(generator TextGenerator, styles StyleProvider, options ConsolidatorOptions) *Consolidator {
	if styles == nil {
		styles = DefaultStyles{}
	}
	return &Consolidator{generator: generator, styles: styles, options: options}
}

// Consolidate produces the representative text for one cluster group.
// Singleton groups pass through, truncated to the singleton cap. Multi-member
// groups get a consolidation completion with bounded retries and escalating
// temperature; once retries are exhausted the first member's capped text is
// used instead. Consolidation never fails the pipeline.
func (c *Consolidator) Consolidate(ctx context.Context, group core.ClusterGroup, category core.Category) core.ConsolidatedSummary {
	summary := core.ConsolidatedSummary{
		Category:    category.Key,
		ClusterSize: group.Size(),
	}

	if group.Size() == 0 {
		return summary
	}
	if group.Size() == 1 {
		summary.Text = truncate(group.Members[0], c.options.SingletonCap)
		return summary
	}

	capped := make([]string, len(group.Members))
	for i, member := range group.Members {
		capped[i] = truncate(member, c.options.MemberCap)
	}
	prompt := BuildConsolidationPrompt(category, capped, c.styles)

	for attempt := 0; attempt < c.options.MaxAttempts; attempt++ {
		temperature := c.options.BaseTemp + float32(attempt)*c.options.TempStep
		text, err := c.generator.GenerateText(ctx, prompt, llm.TextGenerationOptions{
			Temperature: temperature,
			MaxTokens:   c.options.MaxTokens,
		})
		if err == nil {
			logger.Debug("cluster consolidated",
				"category", category.Key, "attempt", attempt+1,
				"temperature", temperature, "length", len(text))
			summary.Text = text
			return summary
		}

		switch {
		case llm.IsRateLimited(err):
			logger.Warn("rate limited during consolidation",
				"category", category.Key, "attempt", attempt+1, "error", err.Error())
		case llm.IsAuthError(err):
			logger.Warn("auth error during consolidation",
				"category", category.Key, "attempt", attempt+1, "error", err.Error())
		default:
			logger.Warn("consolidation attempt failed",
				"category", category.Key, "attempt", attempt+1, "error", err.Error())
		}
	}

	logger.Warn("all consolidation attempts failed, using first member",
		"category", category.Key, "cluster_size", group.Size())
	summary.Text = truncate(group.Members[0], c.options.MemberCap)
	return summary
}

// truncate caps s at max characters. Counting runes keeps multi-byte Hangul
// intact.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
