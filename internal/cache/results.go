// Package cache memoizes full pipeline output per normalized query.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

const resultTTL = 600 * time.Second

// KV is the key-value store results are memoized in
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

// Results is a short-TTL memoization of full analysis payloads. All errors
// are logged and swallowed; the cache is best-effort.
type Results struct {
	kv KV
}

// NewResults creates new result cache
func NewResults(kv KV) *Results {
	return &Results{kv: kv}
}

// Key derives the cache key from a lowercased, trimmed query
func Key(query string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "horaculo:analysis:" + hex.EncodeToString(sum[:])
}

// Get returns the cached analysis for query, if any
func (r *Results) Get(ctx context.Context, query string) (*models.Analysis, bool) {
	raw, found, err := r.kv.Get(ctx, Key(query))
	if err != nil {
		logger.Warn("result cache read failed", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		logger.Warn("discarding corrupt cached result", zap.Error(err))
		return nil, false
	}

	logger.Info("result cache hit", zap.String("query", query))
	return &analysis, true
}

// Set stores the analysis for query with the standard TTL
func (r *Results) Set(ctx context.Context, query string, analysis *models.Analysis) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		logger.Warn("failed to serialize result for cache", zap.Error(err))
		return
	}
	if err := r.kv.SetEx(ctx, Key(query), string(payload), resultTTL); err != nil {
		logger.Warn("result cache store failed", zap.Error(err))
	}
}
