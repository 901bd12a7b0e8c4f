package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"newswave/internal/core"
)

// Store is the SQLite-backed durable store for collected articles and
// generated scripts. It is the only resource shared across category workers:
// read-mostly, last-write-wins, no multi-record transactions.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "newswave.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	articlesTable := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		rank INTEGER,
		title TEXT,
		url TEXT,
		publisher TEXT,
		content TEXT,
		published_at TEXT,
		collected_at DATETIME
	);`

	scriptsTable := `
	CREATE TABLE IF NOT EXISTS scripts (
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		script TEXT NOT NULL,
		audio_ref TEXT,
		created_at DATETIME,
		PRIMARY KEY (category, date)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_category_date ON articles(category, date);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title);`,
	}

	for _, stmt := range append([]string{articlesTable, scriptsTable}, indexes...) {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// SaveArticle inserts or replaces an article record.
func (s *Store) SaveArticle(article core.Article) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO articles
		(id, category, date, rank, title, url, publisher, content, published_at, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID, article.Category, article.Date, article.Rank, article.Title,
		article.URL, article.Publisher, article.Content, article.PublishedAt,
		article.CollectedAt)
	if err != nil {
		return fmt.Errorf("failed to save article %s: %w", article.ID, err)
	}
	return nil
}

// GetArticleByID returns the article with the given identifier, or nil when
// no record exists.
func (s *Store) GetArticleByID(id string) (*core.Article, error) {
	return s.getArticle(`SELECT id, category, date, rank, title, url, publisher,
		content, published_at, collected_at FROM articles WHERE id = ?`, id)
}

// GetArticleByURL returns the article with the given source URL, or nil.
func (s *Store) GetArticleByURL(url string) (*core.Article, error) {
	return s.getArticle(`SELECT id, category, date, rank, title, url, publisher,
		content, published_at, collected_at FROM articles WHERE url = ? LIMIT 1`, url)
}

// GetArticleByTitle returns an article with the exact given title, or nil.
func (s *Store) GetArticleByTitle(title string) (*core.Article, error) {
	return s.getArticle(`SELECT id, category, date, rank, title, url, publisher,
		content, published_at, collected_at FROM articles WHERE title = ? LIMIT 1`, title)
}

func (s *Store) getArticle(query string, arg any) (*core.Article, error) {
	var article core.Article
	var collectedAt sql.NullTime
	err := s.db.QueryRow(query, arg).Scan(
		&article.ID, &article.Category, &article.Date, &article.Rank,
		&article.Title, &article.URL, &article.Publisher, &article.Content,
		&article.PublishedAt, &collectedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query article: %w", err)
	}
	if collectedAt.Valid {
		article.CollectedAt = collectedAt.Time
	}
	return &article, nil
}

// ListArticles returns the articles collected for a category on a date, in
// rank order.
func (s *Store) ListArticles(category, date string) ([]core.Article, error) {
	rows, err := s.db.Query(`SELECT id, category, date, rank, title, url, publisher,
		content, published_at, collected_at FROM articles
		WHERE category = ? AND date = ? ORDER BY rank ASC`, category, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []core.Article
	for rows.Next() {
		var article core.Article
		var collectedAt sql.NullTime
		if err := rows.Scan(&article.ID, &article.Category, &article.Date,
			&article.Rank, &article.Title, &article.URL, &article.Publisher,
			&article.Content, &article.PublishedAt, &collectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		if collectedAt.Valid {
			article.CollectedAt = collectedAt.Time
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// UpdateArticleContent writes a refreshed body onto an existing article
// record (re-extraction of short or missing bodies).
func (s *Store) UpdateArticleContent(id, content string) error {
	_, err := s.db.Exec(`UPDATE articles SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return fmt.Errorf("failed to update article content for %s: %w", id, err)
	}
	return nil
}

// GetScript returns the script for (category, date), or nil when none has
// been generated yet. This is the idempotency check for generation runs.
func (s *Store) GetScript(category, date string) (*core.CategoryScript, error) {
	var script core.CategoryScript
	var createdAt sql.NullTime
	err := s.db.QueryRow(`SELECT category, date, script, audio_ref, created_at
		FROM scripts WHERE category = ? AND date = ?`, category, date).Scan(
		&script.Category, &script.Date, &script.Script, &script.AudioRef, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query script: %w", err)
	}
	if createdAt.Valid {
		script.CreatedAt = createdAt.Time
	}
	return &script, nil
}

// SaveScript persists the generated script for (category, date). The
// check-then-write sequence around this call has a benign race window under
// concurrent runs; last write wins.
func (s *Store) SaveScript(script core.CategoryScript) error {
	if script.CreatedAt.IsZero() {
		script.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO scripts
		(category, date, script, audio_ref, created_at) VALUES (?, ?, ?, ?, ?)`,
		script.Category, script.Date, script.Script, script.AudioRef, script.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save script for %s/%s: %w", script.Category, script.Date, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
