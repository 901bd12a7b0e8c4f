package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// koreanParagraph builds a valid Korean article body: long enough, enough
// sentences, almost no Latin characters.
func koreanParagraph() string {
	sentence := "정부는 오늘 새로운 경제 정책을 발표했으며 시장의 반응은 대체로 긍정적이었다."
	return strings.Repeat(sentence+" ", 12)
}

func TestCleanNoiseRemovesBoilerplate(t *testing.T) {
	input := strings.Join([]string{
		"이것은 실제 뉴스 기사 본문입니다.",
		"중요한 정보가 포함되어 있습니다.",
		"김기자 reporter@news.com",
		"홍길동 기자",
		"전화: 02-1234-5678",
		"Copyright 2024 News Corp. All rights reserved.",
		"무단전재 및 재배포 금지",
		"이 기사의 댓글 정책을 결정합니다",
		"앱 다운로드 링크",
		"네이버 AI 뉴스 알고리즘이 추천한 기사",
		"실제 뉴스 내용이 여기에 있습니다.",
	}, "\n")

	cleaned := CleanNoise(input)

	for _, want := range []string{"실제 뉴스 기사 본문입니다", "중요한 정보", "실제 뉴스 내용"} {
		if !strings.Contains(cleaned, want) {
			t.Errorf("cleaned text lost article prose %q", want)
		}
	}
	for _, unwanted := range []string{"@", "Copyright", "무단전재", "댓글 정책", "앱 다운", "02-1234"} {
		if strings.Contains(cleaned, unwanted) {
			t.Errorf("cleaned text still contains noise %q", unwanted)
		}
	}
}

func TestCleanNoiseIdempotent(t *testing.T) {
	input := "첫 번째 문단입니다.\n홍길동 기자\n두 번째 문단입니다.\nCopyright 2024"

	once := CleanNoise(input)
	twice := CleanNoise(once)

	if once != twice {
		t.Errorf("CleanNoise is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestIsKoreanText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"pure korean", "안녕하세요. 한국어 뉴스 기사입니다.", true},
		{"pure english", "Hello, this is English text.", false},
		{"mixed korean dominant", "안녕하세요 hello 반갑습니다 오늘도 좋은 하루", true},
		{"mixed english dominant", "Hello 안녕 world test wonderful day", false},
		{"digits only", "123456789", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKoreanText(tt.text, 0.7); got != tt.want {
				t.Errorf("IsKoreanText(%q) = %v, want %v (ratio %.2f)",
					tt.text, got, tt.want, KoreanRatio(tt.text))
			}
		})
	}
}

func TestCountSentenceMarks(t *testing.T) {
	if got := countSentenceMarks("하나. 둘! 셋? 넷. 다섯."); got != 5 {
		t.Errorf("countSentenceMarks = %d, want 5", got)
	}
	if got := countSentenceMarks("문장 부호 없음"); got != 0 {
		t.Errorf("countSentenceMarks = %d, want 0", got)
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.newsis.com/view/123", "newsis.com"},
		{"https://biz.heraldcorp.com/article/1", "biz.heraldcorp.com"},
		{"https://yna.co.kr/a/2", "yna.co.kr"},
		{"not a url at all://", ""},
	}
	for _, tt := range tests {
		if got := domainOf(tt.url); got != tt.want {
			t.Errorf("domainOf(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestExtractWithSelectorsMappedDomain(t *testing.T) {
	body := koreanParagraph()
	html := `<html><body>
		<div class="comment-box">댓글 정책 안내</div>
		<div class="view_text"><p>` + body + `</p></div>
		<div class="related-articles"><p>추천 기사 목록</p></div>
	</body></html>`

	text := extractWithSelectors(html, "newsis.com")

	if !strings.Contains(text, "경제 정책을 발표") {
		t.Error("selector extraction missed the article body")
	}
	if strings.Contains(text, "추천 기사") {
		t.Error("selector extraction leaked boilerplate from outside the article element")
	}
}

func TestExtractWithSelectorsUnknownDomainFallsBackToFullPage(t *testing.T) {
	body := koreanParagraph()
	html := `<html><body><article><p>` + body + `</p></article></body></html>`

	text := extractWithSelectors(html, "unknown-site.com")

	if !strings.Contains(text, "경제 정책을 발표") {
		t.Error("full-page fallback missed the article body")
	}
}

func TestExtractEndToEnd(t *testing.T) {
	body := koreanParagraph()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>뉴스</title></head><body>
			<script>var tracking = true;</script>
			<div id="articleBody"><p>` + body + `</p></div>
		</body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(5*time.Second, 300)
	text, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "경제 정책을 발표") {
		t.Error("extracted text missing article body")
	}
	if strings.Contains(text, "tracking") {
		t.Error("extracted text contains script content")
	}
}

func TestExtractHTTPErrorIsFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(5*time.Second, 300)
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestExtractShortContentIsQualityFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>짧은 본문.</p></body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(5*time.Second, 300)
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrQuality) {
		t.Errorf("expected ErrQuality, got %v", err)
	}
}

func TestExtractEnglishContentIsQualityFailure(t *testing.T) {
	sentence := "The committee announced a comprehensive new policy framework today. "
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>` + strings.Repeat(sentence, 10) + `</p></body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(5*time.Second, 300)
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrQuality) {
		t.Errorf("expected ErrQuality for non-Korean content, got %v", err)
	}
}
