package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// Embedder produces embeddings through the OpenAI embeddings API. Every
// call carries a bounded timeout so a slow endpoint degrades a query to
// "no results" instead of blocking the interview flow.
type Embedder struct {
	client    *goopenai.Client
	model     goopenai.EmbeddingModel
	timeout   time.Duration
	dimension int
}

// Config configures the OpenAI embedder. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewEmbedder creates an embedder using the provided configuration.
func NewEmbedder(cfg Config) (*Embedder, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Embedder{
		client:  goopenai.NewClient(key),
		model:   modelByName(cfg.Model),
		timeout: timeout,
	}, nil
}

func modelByName(name string) goopenai.EmbeddingModel {
	switch name {
	case "text-embedding-ada-002", "":
		return goopenai.AdaEmbeddingV2
	case "text-search-ada-doc-001":
		return goopenai.AdaSearchDocument
	case "text-search-ada-query-001":
		return goopenai.AdaSearchQuery
	default:
		return goopenai.AdaEmbeddingV2
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "openai" }

// Prepare is a no-op: the remote model needs no corpus pass. The vector
// dimension is learned lazily from the first embed call.
func (e *Embedder) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns an embedding vector for the given text.
func (e *Embedder) Embed(text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	if e.dimension == 0 {
		e.dimension = len(vec)
	}
	return vec, nil
}
