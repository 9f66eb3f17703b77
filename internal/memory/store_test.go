package memory

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

const testSchema = `
CREATE TABLE source_profile (
	source TEXT PRIMARY KEY,
	total_scans INTEGER NOT NULL DEFAULT 0,
	consensus_hits INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE event_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	hard_data TEXT NOT NULL,
	verdict_summary TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE trusted_sources (
	source TEXT PRIMARY KEY,
	weight REAL NOT NULL
);
`

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	store, err := NewSQLStore(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewSQLStore_SeedsTrustedSources(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	weight, found, err := store.TrustedWeight(ctx, "Reuters Business News")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !found {
		t.Fatal("Expected seeded wire service to match")
	}
	if weight != 0.95 {
		t.Errorf("Expected weight 0.95, got %v", weight)
	}
}

func TestSQLStore_TrustedWeight(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unknown source not found", func(t *testing.T) {
		_, found, err := store.TrustedWeight(ctx, "random finance blog")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if found {
			t.Error("Expected no match for unknown source")
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		weight, found, err := store.TrustedWeight(ctx, "BLOOMBERG Markets")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !found || weight != 0.95 {
			t.Errorf("Expected 0.95/true, got %v/%v", weight, found)
		}
	})

	t.Run("ties resolve to first source in order", func(t *testing.T) {
		if err := store.AddTrustedSource(ctx, "news", 0.7); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := store.AddTrustedSource(ctx, "alpha", 0.6); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		// "alpha news" matches both rows; ordering by source picks alpha.
		weight, found, err := store.TrustedWeight(ctx, "alpha news")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !found {
			t.Fatal("Expected a match")
		}
		if weight != 0.6 {
			t.Errorf("Expected weight 0.6, got %v", weight)
		}
	})
}

func TestSQLStore_GetProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile, err := store.GetProfile(ctx, "unknown")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if profile != nil {
		t.Errorf("Expected nil profile for absent source, got %+v", profile)
	}
}

func TestSQLStore_UpsertProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := &models.SourceProfile{Source: "Reuters", TotalScans: 3, ConsensusHits: 2}
	if err := store.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.UpdatedAt == 0 {
		t.Error("Expected UpdatedAt to be stamped")
	}

	p.TotalScans = 4
	p.ConsensusHits = 3
	if err := store.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, err := store.GetProfile(ctx, "reuters")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected profile after upsert")
	}
	if got.TotalScans != 4 || got.ConsensusHits != 3 {
		t.Errorf("Expected 4 scans / 3 hits, got %d / %d", got.TotalScans, got.ConsensusHits)
	}
}

func TestSQLStore_SimilarEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events := []struct{ query, hard, verdict string }{
		{"fed rate decision", "{}", "hawkish hold"},
		{"FED rate outlook", "{}", "cuts priced out"},
		{"oil supply shock", "{}", "brent spikes"},
	}
	for _, e := range events {
		if err := store.StoreEvent(ctx, e.query, e.hard, e.verdict); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	got, err := store.SimilarEvents(ctx, "fed rate", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 matching events, got %d", len(got))
	}
	for _, ev := range got {
		if ev.Query == "oil supply shock" {
			t.Errorf("Unexpected event matched: %q", ev.Query)
		}
		if ev.Timestamp == 0 {
			t.Error("Expected timestamp to be set")
		}
	}

	limited, err := store.SimilarEvents(ctx, "fed rate", 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected limit to cap results at 1, got %d", len(limited))
	}
}
