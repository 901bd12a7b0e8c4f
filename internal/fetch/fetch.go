package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"newswave/internal/logger"
)

// defaultUserAgent mimics a desktop browser; several publishers serve an
// empty shell to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.0.0 Safari/537.36"

var (
	// ErrFetch marks network or HTTP-level failures. Callers treat it as
	// "skip this document"; it never propagates past the extraction boundary.
	ErrFetch = errors.New("fetch failed")
	// ErrQuality marks extracted content that failed validation (too short,
	// wrong language, too few sentences).
	ErrQuality = errors.New("content quality check failed")
)

// Extractor fetches article pages and extracts cleaned prose from them.
type Extractor struct {
	client           *http.Client
	userAgent        string
	minContentLength int
	minSentenceMarks int
	koreanThreshold  float64
}

// NewExtractor creates an extractor with the given per-fetch timeout and
// minimum acceptable content length.
func NewExtractor(timeout time.Duration, minContentLength int) *Extractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Extractor{
		client:           &http.Client{Timeout: timeout},
		userAgent:        defaultUserAgent,
		minContentLength: minContentLength,
		minSentenceMarks: 5,
		koreanThreshold:  0.7,
	}
}

// Extract returns cleaned article prose for the given URL.
// Strategy, short-circuiting on the first candidate that passes validation:
//  1. readability extraction over the fetched HTML
//  2. per-publisher selector lookup, falling back to whole-page text
//
// Every candidate goes through noise removal and validation. All failure
// modes come back as ErrFetch or ErrQuality; the caller skips the document.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	html, err := e.fetchHTML(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}

	if text := extractWithReadability(html); text != "" {
		cleaned := CleanNoise(text)
		if e.validate(cleaned) == nil {
			return cleaned, nil
		}
		logger.Debug("readability candidate rejected, trying selector extraction", "url", rawURL)
	}

	text := extractWithSelectors(html, domainOf(rawURL))
	cleaned := CleanNoise(text)
	if err := e.validate(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}

// fetchHTML retrieves the raw page body with a browser User-Agent.
func (e *Extractor) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// validate rejects content that is too short, has too few sentence-terminal
// marks, or is not predominantly Korean.
func (e *Extractor) validate(text string) error {
	if length := utf8.RuneCountInString(text); length < e.minContentLength {
		return fmt.Errorf("%w: length %d below %d", ErrQuality, length, e.minContentLength)
	}
	if marks := countSentenceMarks(text); marks < e.minSentenceMarks {
		return fmt.Errorf("%w: only %d sentence marks", ErrQuality, marks)
	}
	if !IsKoreanText(text, e.koreanThreshold) {
		return fmt.Errorf("%w: korean ratio below %.2f", ErrQuality, e.koreanThreshold)
	}
	return nil
}

// countSentenceMarks counts sentence-terminal punctuation.
func countSentenceMarks(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			count++
		}
	}
	return count
}

// domainOf returns the host of the URL stripped of a leading "www.".
func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
