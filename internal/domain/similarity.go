package domain

// SimilarityResult pairs a candidate account with its similarity score
// against the reference account. Overlap scores live in [0,1], cosine
// scores in [-1,1]. Results are sorted descending by score; ties keep
// their original encounter order.
type SimilarityResult struct {
	ProfileID string
	Score     float64
}
