package pipeline

import (
	"context"

	"newswave/internal/core"
	"newswave/internal/search"
)

// ArticleLister provides ranked article listings for a category.
type ArticleLister interface {
	ListArticles(ctx context.Context, category core.Category, timeRange search.TimeRange, page int) ([]search.Result, error)
}

// ContentExtractor pulls clean article body text from a URL.
type ContentExtractor interface {
	Extract(ctx context.Context, rawURL string) (string, error)
}

// ArticleStore is the persistence surface the pipeline depends on.
type ArticleStore interface {
	SaveArticle(article core.Article) error
	GetArticleByID(id string) (*core.Article, error)
	GetArticleByURL(url string) (*core.Article, error)
	GetArticleByTitle(title string) (*core.Article, error)
	ListArticles(category, date string) ([]core.Article, error)
	UpdateArticleContent(id, content string) error
	GetScript(category, date string) (*core.CategoryScript, error)
	SaveScript(script core.CategoryScript) error
}

// TopicClusterer groups semantically similar texts.
type TopicClusterer interface {
	Cluster(ctx context.Context, texts []string, threshold float64) []core.ClusterGroup
}

// ClusterConsolidator reduces a cluster to one representative summary.
type ClusterConsolidator interface {
	Consolidate(ctx context.Context, group core.ClusterGroup, category core.Category) core.ConsolidatedSummary
}

// ScriptSynthesizer turns consolidated summaries into a narration script.
type ScriptSynthesizer interface {
	Synthesize(ctx context.Context, summaries []string, category core.Category) string
}
