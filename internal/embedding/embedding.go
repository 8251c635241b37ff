package embedding

import "context"

// Embedder turns a document into a fixed-length numeric vector. The vector
// length must equal Dimensions for every input, including the empty string.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimensions() int
}

// BatchEmbedder is implemented by embedders that can vectorize many
// documents in one round trip. Callers with a document per account should
// prefer it when available.
type BatchEmbedder interface {
	EmbedAll(ctx context.Context, texts []string) ([][]float64, error)
}
