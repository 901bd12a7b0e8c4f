package handlers

import (
	"fmt"
	"time"

	"newswave/internal/clustering"
	"newswave/internal/config"
	"newswave/internal/core"
	"newswave/internal/fetch"
	"newswave/internal/llm"
	"newswave/internal/pipeline"
	"newswave/internal/search"
	"newswave/internal/store"
	"newswave/internal/summarize"
	"newswave/internal/tts"
)

// buildPipeline wires a production pipeline from the loaded configuration.
// Collection never touches the LLM, so callers that only collect pass
// needsLLM=false and run without GEMINI_API_KEY. The returned cleanup closes
// the store and, when built, the LLM client.
func buildPipeline(needsLLM, withAudio bool) (*pipeline.Pipeline, func(), error) {
	cfg := config.Get()

	db, err := store.NewStore(cfg.Store.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	cleanup := func() { _ = db.Close() }

	lister, err := buildLister(cfg.Search)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	extractor := fetch.NewExtractor(parseDuration(cfg.Collect.FetchTimeout, 10*time.Second), cfg.Collect.MinContentLength)

	var clusterer pipeline.TopicClusterer
	var consolidator pipeline.ClusterConsolidator
	var synthesizer pipeline.ScriptSynthesizer
	if needsLLM {
		llmClient, err := llm.NewClient(cfg.AI.Gemini.Model)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize AI client: %w", err)
		}
		cleanup = func() {
			_ = db.Close()
			llmClient.Close()
		}

		greedy := clustering.NewGreedyClusterer(llmClient)
		cons := summarize.NewConsolidator(llmClient, nil, summarize.DefaultConsolidatorOptions())

		synthOptions := summarize.DefaultSynthesizerOptions()
		synthOptions.SummaryThreshold = cfg.Collect.SummaryThreshold
		synthOptions.SecondPassMinCount = cfg.Collect.SecondPassMinCount
		synthOptions.TargetMin = cfg.Collect.ScriptTargetMin
		synthOptions.TargetMax = cfg.Collect.ScriptTargetMax

		clusterer = greedy
		consolidator = cons
		synthesizer = summarize.NewSynthesizer(llmClient, greedy, cons, nil, synthOptions)
	}

	var speech tts.Speech
	var audio tts.AudioStore
	if withAudio {
		speech, err = tts.New(tts.Config{
			Provider: tts.Provider(cfg.TTS.Provider),
			APIKey:   cfg.TTS.APIKey,
			VoiceID:  cfg.TTS.VoiceID,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize speech synthesis: %w", err)
		}
		audio = tts.NewFileAudioStore(cfg.TTS.AudioDir)
	}

	pipelineConfig := &pipeline.Config{
		TargetCount:      cfg.Collect.TargetCount,
		MaxPages:         cfg.Search.MaxPages,
		MinValidArticles: cfg.Collect.MinValidArticles,
		MinContentLength: cfg.Collect.MinContentLength,
		BodyCap:          cfg.Collect.BodyCap,
		ArticleThreshold: cfg.Collect.ArticleThreshold,
		ScriptMinLength:  cfg.Collect.ScriptMinLength,
		MaxWorkers:       cfg.Collect.MaxWorkers,
	}

	pipe := pipeline.New(lister, extractor, db, clusterer, consolidator, synthesizer, speech, audio, pipelineConfig)
	return pipe, cleanup, nil
}

// buildLister picks the article listing provider.
func buildLister(cfg config.Search) (pipeline.ArticleLister, error) {
	switch cfg.Provider {
	case "deepsearch":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("deepsearch provider requires an API key (set DEEPSEARCH_API_KEY)")
		}
		return search.NewDeepSearchProvider(cfg.BaseURL, cfg.APIKey, cfg.PageSize, parseDuration(cfg.Timeout, 10*time.Second)), nil
	case "rss":
		return search.NewRSSProvider(cfg.Feeds), nil
	case "mock":
		return search.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}

// resolveCategories returns all categories, or the one matching key.
func resolveCategories(key string) ([]core.Category, error) {
	categories := core.DefaultCategories()
	if key == "" {
		return categories, nil
	}
	for _, category := range categories {
		if category.Key == key {
			return []core.Category{category}, nil
		}
	}
	return nil, fmt.Errorf("unknown category: %s", key)
}

// resolveDate returns the explicit date, or today in the configured timezone.
func resolveDate(date string) string {
	if date != "" {
		return date
	}
	location, err := time.LoadLocation(config.GetApp().Timezone)
	if err != nil {
		location = time.UTC
	}
	return time.Now().In(location).Format("2006-01-02")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}
