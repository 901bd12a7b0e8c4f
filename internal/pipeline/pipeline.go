package pipeline

import (
	"context"
	"sync"
	"time"

	"newswave/internal/core"
	"newswave/internal/logger"
	"newswave/internal/tts"
)

// Pipeline orchestrates the daily workflow for every category: collect,
// cluster, consolidate, synthesize, speak, persist.
type Pipeline struct {
	lister       ArticleLister
	extractor    ContentExtractor
	store        ArticleStore
	clusterer    TopicClusterer
	consolidator ClusterConsolidator
	synthesizer  ScriptSynthesizer
	speech       tts.Speech
	audio        tts.AudioStore

	config *Config
}

// Config holds pipeline configuration.
type Config struct {
	TargetCount      int     // Articles to collect per category
	MaxPages         int     // Listing pages to walk before giving up
	MinValidArticles int     // Floor of valid bodies below which generation aborts
	MinContentLength int     // Characters a body needs to count as valid
	BodyCap          int     // Per-body cap fed into clustering and prompts
	ArticleThreshold float64 // Similarity threshold for the article pass
	ScriptMinLength  int     // Scripts shorter than this fail generation
	MaxWorkers       int     // Concurrent category runs
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		TargetCount:      30,
		MaxPages:         3,
		MinValidArticles: 5,
		MinContentLength: 300,
		BodyCap:          1500,
		ArticleThreshold: 0.80,
		ScriptMinLength:  500,
		MaxWorkers:       6,
	}
}

// New creates a pipeline with all dependencies.
func New(
	lister ArticleLister,
	extractor ContentExtractor,
	store ArticleStore,
	clusterer TopicClusterer,
	consolidator ClusterConsolidator,
	synthesizer ScriptSynthesizer,
	speech tts.Speech,
	audio tts.AudioStore,
	config *Config,
) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pipeline{
		lister:       lister,
		extractor:    extractor,
		store:        store,
		clusterer:    clusterer,
		consolidator: consolidator,
		synthesizer:  synthesizer,
		speech:       speech,
		audio:        audio,
		config:       config,
	}
}

// RunAll generates scripts for every category concurrently, bounded by
// MaxWorkers. Each category run is independent: a failure is recorded in its
// result and never aborts the others. Results come back in category order.
func (p *Pipeline) RunAll(ctx context.Context, categories []core.Category, date string) []core.RunResult {
	results := make([]core.RunResult, len(categories))
	semaphore := make(chan struct{}, p.config.MaxWorkers)

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func(i int, category core.Category) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			start := time.Now()
			results[i] = p.GenerateCategory(ctx, category, date)
			results[i].Elapsed = time.Since(start)
		}(i, category)
	}
	wg.Wait()

	succeeded := 0
	for _, result := range results {
		if result.Status == core.StatusSuccess {
			succeeded++
		}
	}
	logger.Info("daily run complete", "date", date,
		"categories", len(categories), "succeeded", succeeded)
	return results
}
