package analysis

import (
	"math"
	"math/rand"
)

const clusterSeed = 42

// ChooseK selects the cluster count from the item count:
// min(4, max(2, n/5)).
func ChooseK(n int) int {
	k := n / 5
	if k < 2 {
		k = 2
	}
	if k > 4 {
		k = 4
	}
	return k
}

// Cluster partitions vectors into k groups with seeded k-means and returns
// one label per vector, same order. When fewer than k+1 vectors exist, all
// items fall into cluster 0.
func Cluster(vectors [][]float32, k int) []int {
	n := len(vectors)
	labels := make([]int, n)
	if n < k+1 {
		return labels
	}

	rng := rand.New(rand.NewSource(clusterSeed))

	// Initialize centroids from k distinct vectors.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = toFloat64(vectors[idx])
	}

	for iter := 0; iter < 100; iter++ {
		changed := false

		for i, vec := range vectors {
			best := 0
			bestDist := math.MaxFloat64
			for c, centroid := range centroids {
				if d := sqDist(vec, centroid); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Recompute centroids; empty clusters keep their previous center.
		dim := len(vectors[0])
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, vec := range vectors {
			c := labels[i]
			counts[c]++
			for d, x := range vec {
				sums[c][d] += float64(x)
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for d := range centroids[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return labels
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func sqDist(v []float32, centroid []float64) float64 {
	var sum float64
	for i := range v {
		d := float64(v[i]) - centroid[i]
		sum += d * d
	}
	return sum
}
