package hashimpl

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/compmotifs/likeminds/internal/embedding"
)

const defaultDimensions = 512

// HashImpl is a deterministic, offline embedder: a term-frequency vectorizer
// that feature-hashes tokens into a fixed number of buckets. It stands in
// for the TF-IDF variant when no embedding service is configured, and gives
// the empty document a zero vector.
type HashImpl struct {
	dimensions int
}

func New(dimensions int) *HashImpl {
	if dimensions <= 0 {
		dimensions = defaultDimensions
	}
	return &HashImpl{dimensions: dimensions}
}

var _ embedding.Embedder = (*HashImpl)(nil)

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

func (h *HashImpl) Dimensions() int {
	return h.dimensions
}

func (h *HashImpl) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, h.dimensions)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(token) < 2 {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		vec[bucket(token, h.dimensions)]++
	}
	return vec, nil
}

func bucket(token string, dimensions int) int {
	hasher := fnv.New32a()
	hasher.Write([]byte(token))
	return int(hasher.Sum32() % uint32(dimensions))
}
