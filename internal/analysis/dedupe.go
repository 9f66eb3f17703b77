package analysis

import "github.com/mvasconcelos/horaculo/pkg/models"

// DefaultDedupeThreshold drops items at or above this cosine similarity
// against any already-kept item.
const DefaultDedupeThreshold = 0.92

// Dedupe greedily drops near-duplicates, preserving input order. An item
// survives iff its maximum cosine similarity against all previously kept
// vectors is strictly below threshold. O(n²); bundles are small.
func Dedupe(items []models.Signal, vectors [][]float32, threshold float64) ([]models.Signal, [][]float32) {
	kept := make([]models.Signal, 0, len(items))
	keptVecs := make([][]float32, 0, len(vectors))

	for i, vec := range vectors {
		maxSim := -1.0
		for _, kv := range keptVecs {
			if sim := Cosine(vec, kv); sim > maxSim {
				maxSim = sim
			}
		}
		if len(keptVecs) == 0 || maxSim < threshold {
			kept = append(kept, items[i])
			keptVecs = append(keptVecs, vec)
		}
	}

	return kept, keptVecs
}
