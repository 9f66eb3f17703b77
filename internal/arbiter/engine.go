// Package arbiter scores each item of a signal bundle by how much the rest
// of the corpus mirrors or contradicts it, over a source×source cosine
// similarity graph.
package arbiter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvasconcelos/horaculo/internal/analysis"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

// DefaultCopyThreshold flags cross-source near-duplicates. The crypto
// satellite lowers it to catch slang rephrasings.
const (
	DefaultCopyThreshold = 0.92
	CryptoCopyThreshold  = 0.82
)

// Engine computes per-item verdicts over pairwise similarities
type Engine struct {
	copyThreshold float64
}

// NewEngine creates new arbitration engine
func NewEngine(copyThreshold float64) *Engine {
	return &Engine{copyThreshold: copyThreshold}
}

// AnalyzeBatch produces one Verdict per item. source_scores records, per
// source name, the maximum similarity item i shows to any item of that
// source (self excluded), clamped to [0,1]. Intensity grows with the
// strongest cross-source near-duplicate and the count of such pairs.
func (e *Engine) AnalyzeBatch(vectors [][]float32, sources []string) []models.Verdict {
	n := len(vectors)
	verdicts := make([]models.Verdict, n)

	for i := 0; i < n; i++ {
		scores := make(map[string]float64)
		copyPairs := 0
		maxCopySim := 0.0

		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			sim := analysis.Cosine(vectors[i], vectors[j])
			if sim < 0 {
				sim = 0
			} else if sim > 1 {
				sim = 1
			}

			if sim > scores[sources[j]] {
				scores[sources[j]] = sim
			}

			if sim >= e.copyThreshold && sources[j] != sources[i] {
				copyPairs++
				if sim > maxCopySim {
					maxCopySim = sim
				}
			}
		}

		verdicts[i] = models.Verdict{
			IsConflict:   copyPairs > 0,
			Intensity:    intensity(maxCopySim, copyPairs),
			SourceScores: scores,
			Explanation:  explain(scores, e.copyThreshold, copyPairs),
		}
	}

	return verdicts
}

// intensity maps the strongest copy pair plus a small bonus per extra pair
// into [0,1]. Zero when nothing crosses the threshold.
func intensity(maxCopySim float64, copyPairs int) float64 {
	if copyPairs == 0 {
		return 0.0
	}
	v := maxCopySim + 0.02*float64(copyPairs-1)
	if v > 1.0 {
		v = 1.0
	}
	return v
}

// explain summarizes which sources mirror the item
func explain(scores map[string]float64, threshold float64, copyPairs int) string {
	if copyPairs == 0 {
		return "No significant semantic conflict detected."
	}

	mirrors := make([]string, 0, len(scores))
	for source, sim := range scores {
		if sim >= threshold {
			mirrors = append(mirrors, source)
		}
	}
	sort.Strings(mirrors)

	return fmt.Sprintf("Semantic overlap above %.2f with: %s.", threshold, strings.Join(mirrors, ", "))
}
