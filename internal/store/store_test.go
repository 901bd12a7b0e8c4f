package store

import (
	"testing"
	"time"

	"newswave/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleArticle(id string) core.Article {
	return core.Article{
		ID:          id,
		Category:    "economy",
		Date:        "2026-08-30",
		Rank:        1,
		Title:       "기사 제목 " + id,
		URL:         "https://news.example/" + id,
		Publisher:   "example",
		Content:     "본문 내용입니다.",
		CollectedAt: time.Now().UTC(),
	}
}

func TestSaveAndGetArticleByID(t *testing.T) {
	store := newTestStore(t)
	article := sampleArticle("a1")

	if err := store.SaveArticle(article); err != nil {
		t.Fatalf("SaveArticle failed: %v", err)
	}

	got, err := store.GetArticleByID("a1")
	if err != nil {
		t.Fatalf("GetArticleByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected article, got nil")
	}
	if got.Title != article.Title || got.URL != article.URL {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestGetArticleAbsentReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetArticleByID("missing")
	if err != nil {
		t.Fatalf("GetArticleByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent article, got %+v", got)
	}
}

func TestGetArticleByURLAndTitle(t *testing.T) {
	store := newTestStore(t)
	article := sampleArticle("a2")
	if err := store.SaveArticle(article); err != nil {
		t.Fatalf("SaveArticle failed: %v", err)
	}

	byURL, err := store.GetArticleByURL(article.URL)
	if err != nil || byURL == nil || byURL.ID != "a2" {
		t.Errorf("GetArticleByURL: got %+v, err %v", byURL, err)
	}

	byTitle, err := store.GetArticleByTitle(article.Title)
	if err != nil || byTitle == nil || byTitle.ID != "a2" {
		t.Errorf("GetArticleByTitle: got %+v, err %v", byTitle, err)
	}
}

func TestListArticlesPreservesRankOrder(t *testing.T) {
	store := newTestStore(t)
	for _, rank := range []int{3, 1, 2} {
		article := sampleArticle(string(rune('a' + rank)))
		article.Rank = rank
		if err := store.SaveArticle(article); err != nil {
			t.Fatalf("SaveArticle failed: %v", err)
		}
	}

	articles, err := store.ListArticles("economy", "2026-08-30")
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	for i, article := range articles {
		if article.Rank != i+1 {
			t.Errorf("position %d has rank %d, want %d", i, article.Rank, i+1)
		}
	}
}

func TestUpdateArticleContent(t *testing.T) {
	store := newTestStore(t)
	article := sampleArticle("a3")
	article.Content = ""
	if err := store.SaveArticle(article); err != nil {
		t.Fatalf("SaveArticle failed: %v", err)
	}

	if err := store.UpdateArticleContent("a3", "보완된 본문입니다."); err != nil {
		t.Fatalf("UpdateArticleContent failed: %v", err)
	}

	got, err := store.GetArticleByID("a3")
	if err != nil || got == nil {
		t.Fatalf("GetArticleByID: got %+v, err %v", got, err)
	}
	if got.Content != "보완된 본문입니다." {
		t.Errorf("content not updated: %q", got.Content)
	}
}

func TestScriptRoundTripAndAbsent(t *testing.T) {
	store := newTestStore(t)

	absent, err := store.GetScript("economy", "2026-08-30")
	if err != nil {
		t.Fatalf("GetScript failed: %v", err)
	}
	if absent != nil {
		t.Fatal("expected nil for absent script")
	}

	script := core.CategoryScript{
		Category: "economy",
		Date:     "2026-08-30",
		Script:   "오늘의 경제 뉴스입니다.",
		AudioRef: "audio/economy-2026-08-30.mp3",
	}
	if err := store.SaveScript(script); err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}

	got, err := store.GetScript("economy", "2026-08-30")
	if err != nil {
		t.Fatalf("GetScript failed: %v", err)
	}
	if got == nil || got.Script != script.Script || got.AudioRef != script.AudioRef {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be populated on save")
	}
}

func TestSaveScriptLastWriteWins(t *testing.T) {
	store := newTestStore(t)
	first := core.CategoryScript{Category: "tech", Date: "2026-08-30", Script: "첫 번째"}
	second := core.CategoryScript{Category: "tech", Date: "2026-08-30", Script: "두 번째"}

	if err := store.SaveScript(first); err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}
	if err := store.SaveScript(second); err != nil {
		t.Fatalf("SaveScript failed: %v", err)
	}

	got, err := store.GetScript("tech", "2026-08-30")
	if err != nil || got == nil {
		t.Fatalf("GetScript: got %+v, err %v", got, err)
	}
	if got.Script != "두 번째" {
		t.Errorf("expected last write to win, got %q", got.Script)
	}
}
