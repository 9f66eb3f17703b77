package analysis

import (
	"testing"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

func sig(source string) models.Signal {
	return models.Signal{Source: source, Text: source + " text"}
}

func TestDedupe_DropsNearDuplicates(t *testing.T) {
	items := []models.Signal{sig("a"), sig("b"), sig("c")}
	vectors := [][]float32{
		{1, 0},
		{1, 0}, // exact copy of the first
		{0, 1},
	}

	kept, keptVecs := Dedupe(items, vectors, DefaultDedupeThreshold)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 survivors, got %d", len(kept))
	}
	if kept[0].Source != "a" || kept[1].Source != "c" {
		t.Errorf("Expected [a c] to survive, got [%s %s]", kept[0].Source, kept[1].Source)
	}
	if len(keptVecs) != len(kept) {
		t.Errorf("Vector list out of sync: %d vectors for %d items", len(keptVecs), len(kept))
	}
}

func TestDedupe_FirstItemAlwaysSurvives(t *testing.T) {
	items := []models.Signal{sig("only")}
	vectors := [][]float32{{0, 0}}

	kept, _ := Dedupe(items, vectors, DefaultDedupeThreshold)
	if len(kept) != 1 {
		t.Fatalf("Expected the single item to survive, got %d", len(kept))
	}
}

func TestDedupe_ThresholdIsExclusive(t *testing.T) {
	// Similarity exactly at the threshold must drop the item.
	items := []models.Signal{sig("a"), sig("b")}
	vectors := [][]float32{
		{1, 0},
		{1, 0},
	}

	kept, _ := Dedupe(items, vectors, 1.0)
	if len(kept) != 1 {
		t.Errorf("Expected similarity == threshold to drop the duplicate, kept %d", len(kept))
	}
}

func TestDedupe_ComparesAgainstSurvivorsOnly(t *testing.T) {
	// b duplicates a and is dropped; c duplicates b but not a, so c must
	// survive because b is no longer in the kept set.
	items := []models.Signal{sig("a"), sig("b"), sig("c")}
	vectors := [][]float32{
		{1, 0, 0},
		{1, 0, 0},
		{0.5, 0.87, 0},
	}

	kept, _ := Dedupe(items, vectors, 0.95)
	if len(kept) != 2 {
		t.Fatalf("Expected 2 survivors, got %d", len(kept))
	}
	if kept[1].Source != "c" {
		t.Errorf("Expected c to survive, got %s", kept[1].Source)
	}
}

func TestDedupe_Empty(t *testing.T) {
	kept, keptVecs := Dedupe(nil, nil, DefaultDedupeThreshold)
	if len(kept) != 0 || len(keptVecs) != 0 {
		t.Errorf("Expected empty output for empty input")
	}
}
