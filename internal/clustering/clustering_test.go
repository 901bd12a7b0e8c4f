package clustering

import (
	"context"
	"fmt"
	"math"
	"testing"
)

// stubEmbedder returns canned vectors per text and counts calls.
type stubEmbedder struct {
	vectors map[string][]float64
	calls   int
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float64, error) {
	s.calls++
	vec, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no embedding for %q", text)
	}
	return vec, nil
}

func TestClusterEmptyInput(t *testing.T) {
	embedder := &stubEmbedder{}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), nil, 0.75)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Members) != 0 {
		t.Errorf("expected empty group, got %d members", len(groups[0].Members))
	}
	if embedder.calls != 0 {
		t.Errorf("expected no embedding calls, got %d", embedder.calls)
	}
}

func TestClusterSingleInput(t *testing.T) {
	embedder := &stubEmbedder{}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), []string{"only"}, 0.75)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Members) != 1 || groups[0].Members[0] != "only" {
		t.Errorf("expected single member passed through unchanged, got %v", groups[0].Members)
	}
	if embedder.calls > 1 {
		t.Errorf("expected at most one embedding call, got %d", embedder.calls)
	}
}

func TestClusterTwoSimilarOneDistinct(t *testing.T) {
	// A and B have cosine similarity 0.9; C has similarity 0.1 to A.
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"A": {1, 0},
		"B": {0.9, math.Sqrt(1 - 0.81)},
		"C": {0.1, -math.Sqrt(1 - 0.01)},
	}}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), []string{"A", "B", "C"}, 0.75)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Members) != 2 || groups[0].Members[0] != "A" || groups[0].Members[1] != "B" {
		t.Errorf("expected first group {A,B} in input order, got %v", groups[0].Members)
	}
	if len(groups[1].Members) != 1 || groups[1].Members[0] != "C" {
		t.Errorf("expected second group {C}, got %v", groups[1].Members)
	}
}

func TestClusterRepresentativeIsFirstMember(t *testing.T) {
	// B is similar to A; C is similar to B but not to A. Because the group
	// representative stays the first member's embedding, C must not join.
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"A": {1, 0},
		"B": {0.8, math.Sqrt(1 - 0.64)},
		"C": {0, 1},
	}}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), []string{"A", "B", "C"}, 0.75)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Representative[0] != 1 || groups[0].Representative[1] != 0 {
		t.Errorf("expected representative to remain A's embedding, got %v", groups[0].Representative)
	}
}

func TestClusterDropsFailedEmbeddings(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"A": {1, 0},
		// "broken" has no vector and fails
		"C": {0, 1},
	}}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), []string{"A", "broken", "C"}, 0.75)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for _, g := range groups {
		for _, m := range g.Members {
			if m == "broken" {
				t.Error("failed text should be dropped from clustering")
			}
		}
	}
}

func TestClusterSingleSurvivingEmbedding(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"A": {1, 0},
	}}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), []string{"A", "broken1", "broken2"}, 0.75)

	if len(groups) != 1 {
		t.Fatalf("expected 1 unclustered group, got %d", len(groups))
	}
	if len(groups[0].Members) != 1 || groups[0].Members[0] != "A" {
		t.Errorf("expected surviving texts returned as one group, got %v", groups[0].Members)
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
		{"empty a", nil, []float64{1, 0}, 0},
		{"zero norm", []float64{0, 0}, []float64{1, 0}, 0},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClusterZeroNormVectorStartsOwnGroup(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"A": {1, 0},
		"Z": {0, 0},
		"B": {1, 0},
	}}
	clusterer := NewGreedyClusterer(embedder)

	groups := clusterer.Cluster(context.Background(), []string{"A", "Z", "B"}, 0.75)

	// Z's similarity to anything is defined as 0, so it forms its own group.
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[1].Members) != 1 || groups[1].Members[0] != "Z" {
		t.Errorf("expected zero-norm text in its own group, got %v", groups[1].Members)
	}
}
