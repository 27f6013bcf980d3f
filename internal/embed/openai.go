package embed

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dbisina/verdescore/internal/model"
	"github.com/dbisina/verdescore/internal/worker"
)

// OpenAIEmbedder vectorizes text via the OpenAI embeddings API. It is
// the optional real-embedding provider; callers must fall back to the
// lexical vectorizer on any error, so nothing here retries.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *worker.Limiter
}

// NewOpenAIEmbedder creates an embedder from configuration
func NewOpenAIEmbedder(cfg model.EmbeddingConfig, limiter *worker.Limiter) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for the openai embedding provider")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	embModel := cfg.Model
	if embModel == "" {
		embModel = string(openai.SmallEmbedding3)
	}

	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   embModel,
		timeout: timeout,
		limiter: limiter,
	}, nil
}

// Name returns the provider name
func (e *OpenAIEmbedder) Name() string {
	return "openai"
}

// Vectorize requests an embedding with a bounded timeout
func (e *OpenAIEmbedder) Vectorize(ctx context.Context, text string) ([]float64, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, "openai-embeddings"); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctxWithTimeout, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	return vec, nil
}
