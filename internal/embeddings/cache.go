package embeddings

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

const cacheTTL = 7 * 24 * time.Hour

// KV is the key-value store the cache memoizes vectors in
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

// Cache memoizes embeddings per normalized text. Store failures are
// non-fatal: the vector is still returned.
type Cache struct {
	kv       KV
	embedder Embedder
}

// NewCache wraps embedder with KV memoization. A nil kv disables caching.
func NewCache(kv KV, embedder Embedder) *Cache {
	return &Cache{kv: kv, embedder: embedder}
}

// CacheKey derives the KV key for a text
func CacheKey(text string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(text)))
	return "emb:" + hex.EncodeToString(sum[:])
}

// EmbedBatch returns one vector per text, consulting the cache per entry
// and generating only the misses.
func (c *Cache) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missIndices []int
	var missTexts []string

	for i, text := range texts {
		if c.kv == nil {
			missIndices = append(missIndices, i)
			missTexts = append(missTexts, text)
			continue
		}

		raw, found, err := c.kv.Get(ctx, CacheKey(text))
		if err != nil {
			logger.Warn("embedding cache read failed", zap.Error(err))
		}
		if found {
			var vec []float32
			if err := json.Unmarshal([]byte(raw), &vec); err == nil {
				vectors[i] = vec
				continue
			}
			logger.Warn("discarding corrupt cached embedding", zap.Error(err))
		}
		missIndices = append(missIndices, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	generated, err := c.embedder.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, vec := range generated {
		vectors[missIndices[j]] = vec

		if c.kv == nil {
			continue
		}
		payload, err := json.Marshal(vec)
		if err != nil {
			continue
		}
		if err := c.kv.SetEx(ctx, CacheKey(missTexts[j]), string(payload), cacheTTL); err != nil {
			logger.Warn("embedding cache store failed", zap.Error(err))
		}
	}

	logger.Debug("embeddings resolved",
		zap.Int("total", len(texts)),
		zap.Int("cached", len(texts)-len(missTexts)),
		zap.Int("generated", len(missTexts)),
	)

	return vectors, nil
}
