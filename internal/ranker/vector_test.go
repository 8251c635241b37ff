package ranker

import (
	"context"
	"math"
	"testing"

	"github.com/compmotifs/likeminds/internal/domain"
)

// fakeEmbedder maps whole documents to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float64
	calls   []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls = append(f.calls, text)
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float64{0, 0}, nil
}

func (f *fakeEmbedder) Dimensions() int { return 2 }

// fakeBatchEmbedder also offers the one-round-trip path.
type fakeBatchEmbedder struct {
	fakeEmbedder
	batches [][]string
}

func (f *fakeBatchEmbedder) EmbedAll(_ context.Context, texts []string) ([][]float64, error) {
	f.batches = append(f.batches, texts)
	vecs := make([][]float64, len(texts))
	for i, text := range texts {
		if vec, ok := f.vectors[text]; ok {
			vecs[i] = vec
			continue
		}
		vecs[i] = []float64{0, 0}
	}
	return vecs, nil
}

func textTable(texts map[string][]string, order []string) domain.LikeTable {
	var table domain.LikeTable
	for _, profileID := range order {
		for _, text := range texts[profileID] {
			table.Append(domain.LikeRecord{ProfileID: profileID, URL: "u-" + text, Text: text})
		}
	}
	return table
}

func TestByVector(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"ref one ref two": {1, 0},
		"close":           {1, 0.2},
		"far":             {0, 1},
	}}

	table := textTable(map[string][]string{
		"did:plc:ref":   {"ref one", "ref two"},
		"did:plc:close": {"close"},
		"did:plc:far":   {"far"},
	}, []string{"did:plc:ref", "did:plc:close", "did:plc:far"})

	results, err := ByVector(context.Background(), table, "did:plc:ref", embedder)
	if err != nil {
		t.Fatalf("ByVector() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ProfileID != "did:plc:close" {
		t.Errorf("top result = %s, want did:plc:close", results[0].ProfileID)
	}
	if results[1].ProfileID != "did:plc:far" || results[1].Score != 0 {
		t.Errorf("orthogonal result = %+v, want did:plc:far at 0", results[1])
	}
}

func TestByVectorBatchesDocuments(t *testing.T) {
	embedder := &fakeBatchEmbedder{fakeEmbedder: fakeEmbedder{vectors: map[string][]float64{
		"ref one ref two": {1, 0},
		"close":           {1, 0.2},
		"far":             {0, 1},
	}}}

	table := textTable(map[string][]string{
		"did:plc:ref":    {"ref one", "ref two"},
		"did:plc:close":  {"close"},
		"did:plc:far":    {"far"},
		"did:plc:silent": {""},
	}, []string{"did:plc:ref", "did:plc:close", "did:plc:far", "did:plc:silent"})

	results, err := ByVector(context.Background(), table, "did:plc:ref", embedder)
	if err != nil {
		t.Fatalf("ByVector() error: %v", err)
	}
	if len(results) != 3 || results[0].ProfileID != "did:plc:close" {
		t.Fatalf("results = %+v, want did:plc:close first of 3", results)
	}

	if len(embedder.calls) != 0 {
		t.Errorf("Embed was called %d times, want the batch path only", len(embedder.calls))
	}
	if len(embedder.batches) != 1 {
		t.Fatalf("got %d EmbedAll calls, want 1", len(embedder.batches))
	}
	for _, text := range embedder.batches[0] {
		if text == "" {
			t.Error("batch contains an empty document")
		}
	}
}

func TestByVectorEmptyDocumentSkipsEmbedder(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"hello": {1, 0},
	}}

	var table domain.LikeTable
	table.Append(
		domain.LikeRecord{ProfileID: "did:plc:ref", URL: "u1", Text: "hello"},
		// An account whose likes carry no text at all.
		domain.LikeRecord{ProfileID: "did:plc:silent", URL: "u2"},
	)

	results, err := ByVector(context.Background(), table, "did:plc:ref", embedder)
	if err != nil {
		t.Fatalf("ByVector() error: %v", err)
	}
	if len(results) != 1 || results[0].Score != 0 {
		t.Fatalf("results = %+v, want single zero score", results)
	}

	for _, call := range embedder.calls {
		if call == "" {
			t.Error("embedder was called with an empty document")
		}
	}
}

func TestByVectorMissingReference(t *testing.T) {
	var table domain.LikeTable
	table.Append(domain.LikeRecord{ProfileID: "did:plc:x", URL: "u1", Text: "hello"})

	results, err := ByVector(context.Background(), table, "did:plc:ref", &fakeEmbedder{})
	if err != nil {
		t.Fatalf("ByVector() error: %v", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil when reference absent", results)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero left", []float64{0, 0}, []float64{1, 1}, 0},
		{"zero right", []float64{1, 1}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1, 0, 0}, []float64{1, 0}, 0},
		{"empty against empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
