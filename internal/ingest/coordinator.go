package ingest

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

// Fetcher represents a single signal source
type Fetcher interface {
	// Name returns a stable identifier for logging
	Name() string

	// Fetch retrieves signals for query. Implementations carry their own
	// request timeout and must be safe to cancel.
	Fetch(ctx context.Context, query string) ([]models.Signal, error)
}

// Tier-1 and Tier-2 default feed URLs
const (
	ReutersFeedURL   = "https://www.reuters.com/rssFeed/businessNews"
	BloombergFeedURL = "https://feeds.bloomberg.com/markets/news.rss"
	YahooFeedURL     = "https://finance.yahoo.com/rss"
	InvestingFeedURL = "https://www.investing.com/rss/news.rss"
)

// Coordinator races Tier-1 fetchers under an admission deadline and
// escalates to Tier-2 unless Tier-1 confidence is sufficient.
type Coordinator struct {
	tier1             []Fetcher
	tier2             []Fetcher
	admissionDeadline time.Duration
	confidenceFloor   float64
}

// NewCoordinator creates new tiered ingest coordinator
func NewCoordinator(tier1, tier2 []Fetcher) *Coordinator {
	return &Coordinator{
		tier1:             tier1,
		tier2:             tier2,
		admissionDeadline: 2 * time.Second,
		confidenceFloor:   0.9,
	}
}

// Confidence is the fraction of signals originating from the two
// most-trusted wire services, clamped to [0,1].
func Confidence(signals []models.Signal) float64 {
	if len(signals) == 0 {
		return 0.0
	}

	hits := 0
	for _, s := range signals {
		src := strings.ToLower(s.Source)
		if strings.Contains(src, "reuters") || strings.Contains(src, "bloomberg") {
			hits++
		}
	}

	conf := float64(hits) / float64(len(signals))
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

// Fetch runs the tiered admission policy and returns the collected signals.
// Fetcher failures contribute nothing; the result may be empty.
func (c *Coordinator) Fetch(ctx context.Context, query string) []models.Signal {
	tier1Ctx, cancelTier1 := context.WithCancel(ctx)
	defer cancelTier1()

	tier1Results := make(chan []models.Signal, len(c.tier1))
	for _, f := range c.tier1 {
		go c.launch(tier1Ctx, f, query, tier1Results)
	}

	// Wait for the first Tier-1 completion or the admission deadline.
	collected := make([]models.Signal, 0)
	deadline := time.NewTimer(c.admissionDeadline)
	defer deadline.Stop()

	if len(c.tier1) > 0 {
		select {
		case batch := <-tier1Results:
			collected = append(collected, batch...)
		case <-deadline.C:
		case <-ctx.Done():
			return nil
		}
	}
	collected = append(collected, drain(tier1Results)...)

	confidence := Confidence(collected)

	if len(collected) > 0 && confidence >= c.confidenceFloor {
		// Fail-fast admission: Tier-1 alone is trustworthy enough.
		cancelTier1()
		logger.Info("tier-1 sufficient, skipping tier-2",
			zap.Int("signals", len(collected)),
			zap.Float64("confidence", confidence),
		)
		return collected
	}

	logger.Info("tier-1 insufficient, escalating to tier-2",
		zap.Int("tier1_signals", len(collected)),
		zap.Float64("confidence", confidence),
	)

	tier2Results := make(chan []models.Signal, len(c.tier2))
	for _, f := range c.tier2 {
		go c.launch(ctx, f, query, tier2Results)
	}
	for i := 0; i < len(c.tier2); i++ {
		select {
		case batch := <-tier2Results:
			collected = append(collected, batch...)
		case <-ctx.Done():
			return nil
		}
	}

	// Tier-1 stragglers that finished in the meantime still count.
	collected = append(collected, drain(tier1Results)...)

	return collected
}

// launch runs one fetcher, containing panics and swallowing failures.
func (c *Coordinator) launch(ctx context.Context, f Fetcher, query string, out chan<- []models.Signal) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("fetcher panicked",
				zap.String("fetcher", f.Name()),
				zap.Any("panic", r),
			)
			out <- nil
		}
	}()

	signals, err := f.Fetch(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("fetcher canceled", zap.String("fetcher", f.Name()))
		} else {
			logger.Warn("fetcher failed",
				zap.String("fetcher", f.Name()),
				zap.Error(err),
			)
		}
		out <- nil
		return
	}

	out <- signals
}

func drain(ch <-chan []models.Signal) []models.Signal {
	var all []models.Signal
	for {
		select {
		case batch := <-ch:
			all = append(all, batch...)
		default:
			return all
		}
	}
}
