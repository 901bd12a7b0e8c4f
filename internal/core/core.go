package core

import (
	"time"
	"unicode/utf8"
)

// Article represents one news article collected for a category on a given day.
type Article struct {
	ID          string    `json:"id"`           // Identifier from the listing API (or generated)
	Category    string    `json:"category"`     // Category key (e.g. "economy")
	Date        string    `json:"date"`         // Collection date, YYYY-MM-DD
	Rank        int       `json:"rank"`         // Rank order from the listing API
	Title       string    `json:"title"`        // Article title
	URL         string    `json:"url"`          // Canonical content URL
	Publisher   string    `json:"publisher"`    // Publisher name, if known
	Content     string    `json:"content"`      // Extracted article body (may be empty until extraction)
	PublishedAt string    `json:"published_at"` // Publication timestamp as reported by the source
	CollectedAt time.Time `json:"collected_at"` // When the article was collected
}

// HasContent reports whether the article body meets the given minimum
// length. Length counts runes, not bytes.
func (a Article) HasContent(minLength int) bool {
	return utf8.RuneCountInString(a.Content) >= minLength
}

// ClusterGroup is one similarity group produced by a clustering pass.
// Members keep their input order; the representative embedding is the
// embedding of the first member assigned to the group.
type ClusterGroup struct {
	Members        []string  `json:"members"`        // Member texts in input order
	Representative []float64 `json:"representative"` // Embedding of the first member
}

// Size returns the number of members in the group.
func (g ClusterGroup) Size() int {
	return len(g.Members)
}

// ConsolidatedSummary is the single representative text produced for a cluster.
type ConsolidatedSummary struct {
	Category    string `json:"category"`     // Category the cluster belongs to
	ClusterSize int    `json:"cluster_size"` // Number of members the summary stands for
	Text        string `json:"text"`         // Representative text
}

// CategoryScript is the terminal artifact: one narration script per
// category per day, written at most once per (category, date) key.
type CategoryScript struct {
	Category  string    `json:"category"`  // Category key
	Date      string    `json:"date"`      // YYYY-MM-DD
	Script    string    `json:"script"`    // Narration script text
	AudioRef  string    `json:"audio_ref"` // Reference to the synthesized audio, if any
	CreatedAt time.Time `json:"created_at"`
}

// RunStatus is the terminal state of one category run.
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusFailed  RunStatus = "failed"
	StatusSkipped RunStatus = "skipped"
)

// Failure reasons reported in RunResult for failed category runs.
const (
	ReasonInsufficientContent = "insufficient_content"
	ReasonSummaryTooShort     = "summary_too_short"
	ReasonTTSFailed           = "tts_failed"
	ReasonSaveFailed          = "save_failed"
)

// RunResult reports the outcome of one category run. It is returned to the
// caller only and never persisted.
type RunResult struct {
	Category     string        `json:"category"`
	Status       RunStatus     `json:"status"`
	Reason       string        `json:"reason,omitempty"`      // Set when Status is failed or skipped
	SavedCount   int           `json:"saved_count,omitempty"` // Articles saved (collect runs)
	ScriptLength int           `json:"script_length,omitempty"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Category describes one news category handled by the pipeline.
type Category struct {
	Key     string `json:"key"`     // API name used by the listing provider (e.g. "politics")
	NameKo  string `json:"name_ko"` // Korean display name
	Section string `json:"section"` // Listing API section ("domestic" or "international")
}

// DefaultCategories is the fixed set of categories processed each day.
// It can be overridden from configuration.
func DefaultCategories() []Category {
	return []Category{
		{Key: "politics", NameKo: "정치", Section: "domestic"},
		{Key: "economy", NameKo: "경제", Section: "domestic"},
		{Key: "society", NameKo: "사회", Section: "domestic"},
		{Key: "culture", NameKo: "문화", Section: "domestic"},
		{Key: "tech", NameKo: "IT", Section: "domestic"},
		{Key: "sports", NameKo: "스포츠", Section: "domestic"},
	}
}
