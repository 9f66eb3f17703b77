package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mvasconcelos/horaculo/internal/adapters/feeds"
	"github.com/mvasconcelos/horaculo/internal/analysis"
	"github.com/mvasconcelos/horaculo/internal/arbiter"
	"github.com/mvasconcelos/horaculo/pkg/logger"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

// Public crypto feeds polled by the satellite.
var cryptoFeedURLs = []string{
	"https://cointelegraph.com/rss",
	"https://cryptoslate.com/feed/",
	"https://www.coindesk.com/arc/outboundfeeds/rss/",
	"https://en.bitcoinsistemi.com/feed/",
	"https://beincrypto.com/feed/",
}

const (
	cryptoFeedLimit  = 10
	cryptoMaxSignals = 8
)

// CryptoFetcher retrieves feed entries mentioning an asset
type CryptoFetcher interface {
	Name() string
	FetchMatching(ctx context.Context, asset string) ([]models.Signal, error)
}

// CryptoSatellite is the lightweight crypto variant of the pipeline: no
// dedup, no memory, no UI screens. It races the crypto feeds for mentions
// of an asset and emits a compact action-signal payload.
type CryptoSatellite struct {
	feeds    []CryptoFetcher
	embedder Embedder
	classify analysis.Classifier
	engine   *arbiter.Engine
}

// NewCryptoSatellite creates new crypto satellite. The looser copy
// threshold accounts for crypto-press jargon overlap. Without explicit
// fetchers the default public feeds are polled.
func NewCryptoSatellite(embedder Embedder, classify analysis.Classifier, fetchers ...CryptoFetcher) *CryptoSatellite {
	if len(fetchers) == 0 {
		for _, url := range cryptoFeedURLs {
			fetchers = append(fetchers, feeds.New(url, cryptoFeedLimit))
		}
	}

	return &CryptoSatellite{
		feeds:    fetchers,
		embedder: embedder,
		classify: classify,
		engine:   arbiter.NewEngine(arbiter.CryptoCopyThreshold),
	}
}

// RunAnalysis analyzes the narrative around a single crypto asset
func (c *CryptoSatellite) RunAnalysis(ctx context.Context, asset string) (*models.CryptoResult, error) {
	signals := c.fetchAll(ctx, asset)
	if len(signals) == 0 {
		return &models.CryptoResult{
			Status:       "no_data",
			Asset:        asset,
			ActionSignal: NoSignal(),
		}, nil
	}

	texts := make([]string, len(signals))
	sources := make([]string, len(signals))
	for i, s := range signals {
		texts[i] = s.Text
		sources[i] = s.Source
	}

	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	sentiments := analysis.SentimentScores(ctx, c.classify, texts)
	verdicts := c.engine.AnalyzeBatch(vectors, sources)

	var maxConflict float64
	for _, v := range verdicts {
		if v.Intensity > maxConflict {
			maxConflict = v.Intensity
		}
	}

	var avgSentiment float64
	for _, s := range sentiments {
		avgSentiment += s
	}
	avgSentiment /= float64(len(sentiments))

	isPanic := IsPanic(avgSentiment, maxConflict)

	if len(signals) > cryptoMaxSignals {
		signals = signals[:cryptoMaxSignals]
	}

	return &models.CryptoResult{
		Status: "success",
		Asset:  strings.ToUpper(asset),
		Metrics: models.CryptoMetrics{
			ConflictIntensity: maxConflict,
			SentimentGap:      avgSentiment,
			IsPanic:           isPanic,
		},
		ActionSignal: ClassifyAction(maxConflict, avgSentiment, isPanic),
		HardData:     ExtractHardData(texts),
		Signals:      signals,
	}, nil
}

// fetchAll polls every crypto feed concurrently; a failing feed only logs.
func (c *CryptoSatellite) fetchAll(ctx context.Context, asset string) []models.Signal {
	var mu sync.Mutex
	var signals []models.Signal

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range c.feeds {
		f := f
		g.Go(func() error {
			batch, err := f.FetchMatching(gctx, asset)
			if err != nil {
				logger.Warn("crypto feed failed", zap.String("feed", f.Name()), zap.Error(err))
				return nil
			}
			mu.Lock()
			signals = append(signals, batch...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return signals
}
