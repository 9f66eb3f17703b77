package arbiter

import (
	"math"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

// SelectWinner picks the item with the highest credibility-weighted
// centrality: sum(source_scores) * (1 + credibility). First occurrence wins
// ties. Returns the winner index and the entropy of its source scores.
func SelectWinner(verdicts []models.Verdict, credibility []float64) (int, float64) {
	bestIdx := 0
	bestScore := -1.0

	for i, v := range verdicts {
		centrality := 0.0
		for _, sim := range v.SourceScores {
			centrality += sim
		}
		score := centrality * (1 + credibility[i])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	winnerScores := make([]float64, 0, len(verdicts[bestIdx].SourceScores))
	for _, sim := range verdicts[bestIdx].SourceScores {
		winnerScores = append(winnerScores, sim)
	}

	return bestIdx, Entropy(winnerScores)
}

// Entropy computes the Shannon entropy of scores normalized by their sum,
// natural log, with ε=1e-9 inside the log. Zero for an empty or all-zero
// input.
func Entropy(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	if len(scores) == 0 || sum == 0 {
		return 0.0
	}

	var h float64
	for _, s := range scores {
		p := s / sum
		h -= p * math.Log(p+1e-9)
	}
	return h
}
