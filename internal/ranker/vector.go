package ranker

import (
	"context"
	"math"
	"strings"

	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/internal/embedding"
)

// ByVector ranks every other account by cosine similarity between document
// embeddings. An account's document is all of its post texts concatenated;
// an account with no text at all contributes a zero vector and scores 0
// against everything. When the embedder supports batching, all non-empty
// documents go out in one call.
func ByVector(ctx context.Context, table domain.LikeTable, referenceID string, embedder embedding.Embedder) ([]domain.SimilarityResult, error) {
	referenceDoc, found := accountDocument(table, referenceID)
	if !found {
		return nil, nil
	}

	var candidates []string
	docs := []string{referenceDoc}
	for _, profileID := range table.Accounts() {
		if profileID == referenceID {
			continue
		}
		doc, _ := accountDocument(table, profileID)
		candidates = append(candidates, profileID)
		docs = append(docs, doc)
	}

	vecs, err := embedDocuments(ctx, embedder, docs)
	if err != nil {
		return nil, err
	}

	referenceVec := vecs[0]
	var results []domain.SimilarityResult
	for i, profileID := range candidates {
		results = append(results, domain.SimilarityResult{
			ProfileID: profileID,
			Score:     Cosine(referenceVec, vecs[i+1]),
		})
	}

	sortDescending(results)
	return results, nil
}

func accountDocument(table domain.LikeTable, profileID string) (string, bool) {
	var parts []string
	found := false
	for _, row := range table.Rows {
		if row.ProfileID != profileID {
			continue
		}
		found = true
		if row.Text != "" {
			parts = append(parts, row.Text)
		}
	}
	return strings.Join(parts, " "), found
}

// embedDocuments vectorizes documents positionally. Empty documents become
// zero vectors without touching the embedder; the rest go through one
// EmbedAll round trip when the embedder supports it.
func embedDocuments(ctx context.Context, embedder embedding.Embedder, docs []string) ([][]float64, error) {
	vecs := make([][]float64, len(docs))
	var pending []string
	var pendingIdx []int
	for i, doc := range docs {
		if doc == "" {
			vecs[i] = make([]float64, embedder.Dimensions())
			continue
		}
		pending = append(pending, doc)
		pendingIdx = append(pendingIdx, i)
	}
	if len(pending) == 0 {
		return vecs, nil
	}

	if batcher, ok := embedder.(embedding.BatchEmbedder); ok {
		batch, err := batcher.EmbedAll(ctx, pending)
		if err != nil {
			return nil, err
		}
		for i, vec := range batch {
			vecs[pendingIdx[i]] = vec
		}
		return vecs, nil
	}

	for i, doc := range pending {
		vec, err := embedder.Embed(ctx, doc)
		if err != nil {
			return nil, err
		}
		vecs[pendingIdx[i]] = vec
	}
	return vecs, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either has
// zero norm or when the lengths disagree.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
