package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"newswave/internal/core"
	"newswave/internal/llm"
)

// fakeGenerator scripts completion outcomes per call.
type fakeGenerator struct {
	failures  int // Calls to fail before succeeding
	response  string
	calls     int
	prompts   []string
	options   []llm.TextGenerationOptions
	permanent error // When set, every call fails with it
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, options llm.TextGenerationOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, options)
	if f.permanent != nil {
		return "", f.permanent
	}
	if f.calls <= f.failures {
		return "", errors.New("429 rate limit exceeded")
	}
	return f.response, nil
}

func economyCategory() core.Category {
	return core.Category{Key: "economy", NameKo: "경제", Section: "domestic"}
}

func TestConsolidateSingletonTruncatesToCap(t *testing.T) {
	generator := &fakeGenerator{}
	options := DefaultConsolidatorOptions()
	options.SingletonCap = 10
	consolidator := NewConsolidator(generator, nil, options)

	long := strings.Repeat("가", 25)
	group := core.ClusterGroup{Members: []string{long}}

	summary := consolidator.Consolidate(context.Background(), group, economyCategory())

	if generator.calls != 0 {
		t.Errorf("singleton consolidation should not call the completion service, made %d calls", generator.calls)
	}
	if got := []rune(summary.Text); len(got) != 10 {
		t.Errorf("expected text capped at 10 runes, got %d", len(got))
	}
	if summary.ClusterSize != 1 {
		t.Errorf("expected cluster size 1, got %d", summary.ClusterSize)
	}
}

func TestConsolidateSingletonShortTextUnmodified(t *testing.T) {
	consolidator := NewConsolidator(&fakeGenerator{}, nil, DefaultConsolidatorOptions())

	group := core.ClusterGroup{Members: []string{"짧은 본문입니다."}}
	summary := consolidator.Consolidate(context.Background(), group, economyCategory())

	if summary.Text != "짧은 본문입니다." {
		t.Errorf("short singleton should pass through unchanged, got %q", summary.Text)
	}
}

func TestConsolidateSucceedsOnThirdAttempt(t *testing.T) {
	generator := &fakeGenerator{failures: 2, response: "통합 요약 결과"}
	consolidator := NewConsolidator(generator, nil, DefaultConsolidatorOptions())

	group := core.ClusterGroup{Members: []string{"기사 하나", "기사 둘"}}
	summary := consolidator.Consolidate(context.Background(), group, economyCategory())

	if generator.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", generator.calls)
	}
	if summary.Text != "통합 요약 결과" {
		t.Errorf("expected attempt-3 result, got %q", summary.Text)
	}
}

func TestConsolidateTemperatureEscalates(t *testing.T) {
	generator := &fakeGenerator{failures: 2, response: "ok"}
	consolidator := NewConsolidator(generator, nil, DefaultConsolidatorOptions())

	group := core.ClusterGroup{Members: []string{"하나", "둘"}}
	consolidator.Consolidate(context.Background(), group, economyCategory())

	want := []float32{0.3, 0.5, 0.7}
	if len(generator.options) != 3 {
		t.Fatalf("expected 3 recorded calls, got %d", len(generator.options))
	}
	for i, opts := range generator.options {
		if diff := opts.Temperature - want[i]; diff > 0.001 || diff < -0.001 {
			t.Errorf("attempt %d temperature = %f, want %f", i+1, opts.Temperature, want[i])
		}
	}
}

func TestConsolidateAllAttemptsFailFallsBackToFirstMember(t *testing.T) {
	generator := &fakeGenerator{permanent: errors.New("500 internal error")}
	options := DefaultConsolidatorOptions()
	options.MemberCap = 5
	consolidator := NewConsolidator(generator, nil, options)

	first := strings.Repeat("가", 8)
	group := core.ClusterGroup{Members: []string{first, "두 번째 기사"}}

	summary := consolidator.Consolidate(context.Background(), group, economyCategory())

	if generator.calls != 3 {
		t.Errorf("expected 3 attempts before fallback, got %d", generator.calls)
	}
	if summary.Text != strings.Repeat("가", 5) {
		t.Errorf("expected capped first member as fallback, got %q", summary.Text)
	}
}

func TestConsolidatePromptContainsMembersAndCategory(t *testing.T) {
	generator := &fakeGenerator{response: "ok"}
	consolidator := NewConsolidator(generator, nil, DefaultConsolidatorOptions())

	group := core.ClusterGroup{Members: []string{"삼성전자 실적 발표", "주가 상승 소식"}}
	consolidator.Consolidate(context.Background(), group, economyCategory())

	if len(generator.prompts) == 0 {
		t.Fatal("no prompt recorded")
	}
	prompt := generator.prompts[0]
	for _, want := range []string{"경제", "삼성전자 실적 발표", "주가 상승 소식", "[기사 1]", "[기사 2]"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestConsolidateEmptyGroup(t *testing.T) {
	consolidator := NewConsolidator(&fakeGenerator{}, nil, DefaultConsolidatorOptions())

	summary := consolidator.Consolidate(context.Background(), core.ClusterGroup{}, economyCategory())
	if summary.Text != "" || summary.ClusterSize != 0 {
		t.Errorf("expected empty summary for empty group, got %+v", summary)
	}
}
