package memory

import (
	"context"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

// Credibility scores a source in [0.1, 0.95]. A trusted weight wins
// outright; otherwise the profile's consensus ratio is used, pulled toward
// 0.5 by a Bayesian prior until five scans accumulate; an unknown source
// scores 0.5.
func Credibility(ctx context.Context, store Store, source string) float64 {
	if weight, ok, err := store.TrustedWeight(ctx, source); err == nil && ok {
		return weight
	} else if err != nil {
		logger.Warn("trusted weight lookup failed", zap.String("source", source), zap.Error(err))
	}

	profile, err := store.GetProfile(ctx, source)
	if err != nil {
		logger.Warn("profile lookup failed", zap.String("source", source), zap.Error(err))
		return 0.5
	}
	if profile == nil {
		return 0.5
	}

	hits := float64(profile.ConsensusHits)
	total := float64(profile.TotalScans)

	if total < 5 {
		return (0.5*5 + hits) / (5 + total)
	}

	ratio := hits / total
	if ratio < 0.1 {
		return 0.1
	}
	if ratio > 0.9 {
		return 0.9
	}
	return ratio
}
