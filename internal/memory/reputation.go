package memory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

// Updater applies the per-request reputation rule under per-source locks
type Updater struct {
	store  Store
	locker KeyLocker
}

// NewUpdater creates new reputation updater
func NewUpdater(store Store, locker KeyLocker) *Updater {
	return &Updater{store: store, locker: locker}
}

// Apply updates reputation once per distinct source in the bundle:
// total_scans always increments; consensus_hits increments iff the source
// is the winner or the winner's similarity to it exceeds 0.85. A failed
// write leaves the profile untouched, so counters never partially advance.
func (u *Updater) Apply(ctx context.Context, sources []string, winnerSource string, winnerScores map[string]float64) {
	seen := make(map[string]bool)

	for _, source := range sources {
		key := strings.ToLower(source)
		if seen[key] {
			continue
		}
		seen[key] = true

		release, err := u.locker.Acquire(ctx, "reputation:"+key)
		if err != nil {
			logger.Warn("reputation lock failed, skipping source",
				zap.String("source", source),
				zap.Error(err),
			)
			continue
		}

		u.updateOne(ctx, source, winnerSource, winnerScores)
		release()
	}
}

func (u *Updater) updateOne(ctx context.Context, source, winnerSource string, winnerScores map[string]float64) {
	profile, err := u.store.GetProfile(ctx, source)
	if err != nil {
		logger.Error("failed to load profile for update",
			zap.String("source", source),
			zap.Error(err),
		)
		return
	}
	if profile == nil {
		profile = &models.SourceProfile{Source: strings.ToLower(source)}
	}

	profile.TotalScans++
	if source == winnerSource || winnerScores[source] > 0.85 {
		profile.ConsensusHits++
	}

	if err := u.store.UpsertProfile(ctx, profile); err != nil {
		logger.Error("failed to persist profile",
			zap.String("source", source),
			zap.Error(err),
		)
	}
}
