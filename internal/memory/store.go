// Package memory persists per-source reputation, trusted-source weights,
// and the append-only event history.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mvasconcelos/horaculo/pkg/logger"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

// Store is the reputation memory contract consumed by the pipeline
type Store interface {
	// GetProfile returns the profile for source, or nil when absent
	GetProfile(ctx context.Context, source string) (*models.SourceProfile, error)

	// UpsertProfile replaces the profile by primary key, stamping updated_at
	UpsertProfile(ctx context.Context, profile *models.SourceProfile) error

	// TrustedWeight returns the weight of the first trusted-source row whose
	// key is a substring of sourceName (both lowercased)
	TrustedWeight(ctx context.Context, sourceName string) (float64, bool, error)

	// AddTrustedSource upserts a trusted-source row
	AddTrustedSource(ctx context.Context, source string, weight float64) error

	// StoreEvent appends one row to the analysis history
	StoreEvent(ctx context.Context, query, hardData, verdictSummary string) error

	// SimilarEvents returns the most recent rows whose query contains the
	// argument as a case-insensitive substring
	SimilarEvents(ctx context.Context, query string, limit int) ([]models.EventRecord, error)
}

// seedSources are the trusted wire services installed on first start
var seedSources = []models.TrustedSource{
	{Source: "reuters", Weight: 0.95},
	{Source: "bloomberg", Weight: 0.95},
	{Source: "ft", Weight: 0.95},
	{Source: "financial times", Weight: 0.95},
	{Source: "wsj", Weight: 0.95},
	{Source: "wall street journal", Weight: 0.95},
}

// SQLStore implements Store over sqlx (Postgres or SQLite)
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates new SQL-backed reputation store and seeds the
// trusted-sources table when empty.
func NewSQLStore(db *sqlx.DB) (*SQLStore, error) {
	s := &SQLStore{db: db}
	if err := s.seed(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed trusted sources: %w", err)
	}
	return s, nil
}

func (s *SQLStore) seed(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM trusted_sources"); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, ts := range seedSources {
		if err := s.AddTrustedSource(ctx, ts.Source, ts.Weight); err != nil {
			return err
		}
	}
	logger.Info("trusted sources seeded")
	return nil
}

// GetProfile returns the profile for source, or nil when absent
func (s *SQLStore) GetProfile(ctx context.Context, source string) (*models.SourceProfile, error) {
	query := s.db.Rebind(`
		SELECT source, total_scans, consensus_hits, updated_at
		FROM source_profile
		WHERE source = ?
	`)

	var profile models.SourceProfile
	err := s.db.GetContext(ctx, &profile, query, strings.ToLower(source))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// UpsertProfile replaces the profile by primary key. The single-statement
// upsert keeps counter updates atomic; a failed write advances nothing.
func (s *SQLStore) UpsertProfile(ctx context.Context, profile *models.SourceProfile) error {
	query := s.db.Rebind(`
		INSERT INTO source_profile (source, total_scans, consensus_hits, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (source) DO UPDATE SET
			total_scans = excluded.total_scans,
			consensus_hits = excluded.consensus_hits,
			updated_at = excluded.updated_at
	`)

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, query,
		strings.ToLower(profile.Source),
		profile.TotalScans,
		profile.ConsensusHits,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	profile.UpdatedAt = now
	return nil
}

// TrustedWeight searches trusted sources by substring containment
func (s *SQLStore) TrustedWeight(ctx context.Context, sourceName string) (float64, bool, error) {
	query := s.db.Rebind(`
		SELECT weight FROM trusted_sources
		WHERE ? LIKE '%' || source || '%'
		ORDER BY source
		LIMIT 1
	`)

	var weight float64
	err := s.db.GetContext(ctx, &weight, query, strings.ToLower(sourceName))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query trusted weight: %w", err)
	}
	return weight, true, nil
}

// AddTrustedSource upserts a trusted-source row
func (s *SQLStore) AddTrustedSource(ctx context.Context, source string, weight float64) error {
	query := s.db.Rebind(`
		INSERT INTO trusted_sources (source, weight)
		VALUES (?, ?)
		ON CONFLICT (source) DO UPDATE SET weight = excluded.weight
	`)

	if _, err := s.db.ExecContext(ctx, query, strings.ToLower(source), weight); err != nil {
		return fmt.Errorf("failed to add trusted source: %w", err)
	}
	return nil
}

// StoreEvent appends one row to the analysis history
func (s *SQLStore) StoreEvent(ctx context.Context, eventQuery, hardData, verdictSummary string) error {
	query := s.db.Rebind(`
		INSERT INTO event_history (query, hard_data, verdict_summary, timestamp)
		VALUES (?, ?, ?, ?)
	`)

	if _, err := s.db.ExecContext(ctx, query, eventQuery, hardData, verdictSummary, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

// SimilarEvents returns recent history rows matching query by substring
func (s *SQLStore) SimilarEvents(ctx context.Context, eventQuery string, limit int) ([]models.EventRecord, error) {
	query := s.db.Rebind(`
		SELECT query, hard_data, verdict_summary, timestamp
		FROM event_history
		WHERE lower(query) LIKE ?
		ORDER BY timestamp DESC
		LIMIT ?
	`)

	events := make([]models.EventRecord, 0, limit)
	pattern := "%" + strings.ToLower(eventQuery) + "%"
	if err := s.db.SelectContext(ctx, &events, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to query similar events: %w", err)
	}
	return events, nil
}
