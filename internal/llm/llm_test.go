package llm

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCapEmbeddingInputCountsRunes(t *testing.T) {
	long := strings.Repeat("가", EmbeddingInputCap+200)

	capped := capEmbeddingInput(long)

	if got := utf8.RuneCountInString(capped); got != EmbeddingInputCap {
		t.Errorf("capped length = %d runes, want %d", got, EmbeddingInputCap)
	}
	if !utf8.ValidString(capped) {
		t.Error("capped text is not valid UTF-8")
	}

	short := strings.Repeat("가", 10)
	if capEmbeddingInput(short) != short {
		t.Error("text under the cap must pass through unchanged")
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"http 429", errors.New("googleapi: Error 429: quota exceeded"), true},
		{"resource exhausted", errors.New("rpc error: code = RESOURCE_EXHAUSTED"), true},
		{"rate limit text", errors.New("rate limit reached, retry later"), true},
		{"unrelated", errors.New("connection reset by peer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimited(tt.err); got != tt.want {
				t.Errorf("IsRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"http 401", errors.New("googleapi: Error 401"), true},
		{"http 403", errors.New("googleapi: Error 403: forbidden"), true},
		{"invalid key", errors.New("API key not valid"), true},
		{"permission denied", errors.New("rpc error: code = PERMISSION_DENIED"), true},
		{"unrelated", errors.New("deadline exceeded"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}
