package clustering

import (
	"context"
	"math"

	"newswave/internal/core"
	"newswave/internal/logger"
)

// Embedder produces vector embeddings for text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// GreedyClusterer groups near-duplicate texts by greedy single-link
// assignment against a cosine-similarity threshold. Assignment is one-shot
// and order-sensitive: each text joins the first existing group whose
// representative (first-member) embedding is similar enough, otherwise it
// starts a new group. Groups are never re-split or merged within a pass.
// This trades clustering quality for speed and determinism; group sizes are
// small and a missed merge only means a near-duplicate survives on its own.
type GreedyClusterer struct {
	embedder Embedder
}

// NewGreedyClusterer creates a clusterer backed by the given embedder.
func NewGreedyClusterer(embedder Embedder) *GreedyClusterer {
	return &GreedyClusterer{embedder: embedder}
}

// Cluster partitions texts into similarity groups at the given threshold.
// Texts whose embedding fails are dropped; if fewer than two embeddings
// succeed the surviving texts are returned as a single unclustered group.
// Member order within a group follows input order.
func (g *GreedyClusterer) Cluster(ctx context.Context, texts []string, threshold float64) []core.ClusterGroup {
	if len(texts) <= 1 {
		return []core.ClusterGroup{{Members: texts}}
	}

	var embeddings [][]float64
	var validTexts []string
	for _, text := range texts {
		emb, err := g.embedder.GenerateEmbedding(ctx, text)
		if err != nil || len(emb) == 0 {
			logger.Warn("embedding failed, dropping text from clustering", "error", errString(err))
			continue
		}
		embeddings = append(embeddings, emb)
		validTexts = append(validTexts, text)
	}

	if len(embeddings) <= 1 {
		return []core.ClusterGroup{{Members: validTexts}}
	}

	var groups []core.ClusterGroup
	for i, emb := range embeddings {
		assigned := false
		for j := range groups {
			if cosineSimilarity(emb, groups[j].Representative) > threshold {
				groups[j].Members = append(groups[j].Members, validTexts[i])
				assigned = true
				break
			}
		}
		if !assigned {
			groups = append(groups, core.ClusterGroup{
				Members:        []string{validTexts[i]},
				Representative: emb,
			})
		}
	}

	logger.Debug("clustering complete", "texts", len(texts), "groups", len(groups))
	return groups
}

// cosineSimilarity returns the cosine similarity of two vectors, or 0 when
// either vector is empty, mismatched in length or zero-norm.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func errString(err error) string {
	if err == nil {
		return "empty embedding"
	}
	return err.Error()
}
