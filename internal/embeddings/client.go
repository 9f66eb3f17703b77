package embeddings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

// Embedder produces one unit-L2 dense vector per text. Deterministic and
// idempotent; downstream code assumes the unit-norm invariant.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Client generates embeddings via the OpenAI API with retry
type Client struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewClient creates new OpenAI embedding client
func NewClient(apiKey string, model string) *Client {
	m := openai.EmbeddingModel(model)
	if m == "" {
		m = openai.AdaEmbeddingV2
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  m,
	}
}

// EmbedBatch creates embeddings for texts in one API call, normalized to
// unit L2 at this boundary.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := c.createWithRetry(ctx, texts, 3)
	if err != nil {
		return nil, fmt.Errorf("embedding API failed after retries: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response size mismatch: expected %d, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vectors[i] = Normalize(data.Embedding)
	}
	return vectors, nil
}

// createWithRetry calls the embeddings endpoint with exponential backoff
func (c *Client) createWithRetry(ctx context.Context, texts []string, maxRetries int) (openai.EmbeddingResponse, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			logger.Debug("retrying embedding request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return openai.EmbeddingResponse{}, fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: c.model,
			Input: texts,
		})
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return openai.EmbeddingResponse{}, err
		}
		logger.Warn("retryable embedding error", zap.Error(err), zap.Int("attempt", attempt+1))
	}

	return openai.EmbeddingResponse{}, fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}

	msg := err.Error()
	for _, marker := range []string{"timeout", "deadline exceeded", "connection refused", "connection reset", "429", "500", "502", "503"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Normalize rescales v to unit L2 norm. A zero vector is returned as-is.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
