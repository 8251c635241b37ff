package openaiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/compmotifs/likeminds/internal/embedding"
	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/logger"
	"github.com/compmotifs/likeminds/pkg/retry"
	"go.uber.org/fx"
)

const batchSize = 50

// OpenAIImpl embeds documents through an OpenAI-compatible embeddings
// endpoint. Requests are retried with backoff; the embedding service is
// outside the pipeline's fail-fast boundary.
type OpenAIImpl struct {
	apiURL     string
	apiKey     string
	model      string
	dimensions int
	httpClient *http.Client
	logger     logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *OpenAIImpl {
	return &OpenAIImpl{
		apiURL:     opts.Config.Embedding.APIURL,
		apiKey:     opts.Config.Embedding.APIKey,
		model:      opts.Config.Embedding.Model,
		dimensions: opts.Config.Embedding.Dimensions,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     opts.Logger.WithComponent("OpenAIEmbedder"),
	}
}

var _ embedding.Embedder = (*OpenAIImpl)(nil)

func (o *OpenAIImpl) Dimensions() int {
	return o.dimensions
}

func (o *OpenAIImpl) Embed(ctx context.Context, text string) ([]float64, error) {
	vecs, err := o.EmbedAll(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedAll embeds every document, chunking requests to keep payloads small.
func (o *OpenAIImpl) EmbedAll(ctx context.Context, texts []string) ([][]float64, error) {
	var vecs [][]float64
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		batch, err := o.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, batch...)
	}
	return vecs, nil
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (o *OpenAIImpl) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	payload, err := json.Marshal(embeddingRequest{
		Model:      o.model,
		Input:      texts,
		Dimensions: o.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var result embeddingResponse
	err = retry.Do(ctx, o.logger, "embed batch", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if o.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+o.apiKey)
		}

		resp, err := o.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return fmt.Errorf("embedding API returned %d: %s", resp.StatusCode, string(body))
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	}, retry.DefaultConfig())
	if err != nil {
		return nil, err
	}

	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embedding API returned %d vectors for %d inputs", len(result.Data), len(texts))
	}
	for _, d := range result.Data {
		if len(d.Embedding) != o.dimensions {
			return nil, fmt.Errorf("embedding API returned a %d-dimensional vector, want %d", len(d.Embedding), o.dimensions)
		}
	}

	sort.Slice(result.Data, func(i, j int) bool {
		return result.Data[i].Index < result.Data[j].Index
	})

	vecs := make([][]float64, len(result.Data))
	for i, d := range result.Data {
		vecs[i] = d.Embedding
	}
	return vecs, nil
}
