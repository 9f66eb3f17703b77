package pipeline

import (
	"math"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

// AnalyzePsychology measures the health of the market narrative: mood from
// mean sentiment, crowded trade from consensus plus extreme emotion, trap
// from coordination plus extreme emotion.
func AnalyzePsychology(sentiments []float64, verdictIntensity, coordinationScore float64) models.Psychology {
	var avg float64
	if len(sentiments) > 0 {
		for _, s := range sentiments {
			avg += s
		}
		avg /= float64(len(sentiments))
	}

	isCrowded := verdictIntensity > 0.7 && math.Abs(avg) > 0.6
	isTrap := coordinationScore > 0.5 && math.Abs(avg) > 0.7

	mood := "Neutro"
	if avg > 0.2 {
		mood = "Euforia"
	} else if avg < -0.2 {
		mood = "Medo"
	}

	asymmetry := "BAIXA"
	if isTrap || !isCrowded {
		asymmetry = "ALTA"
	}

	return models.Psychology{
		Mood:           mood,
		SentimentScore: math.Round(avg*1000) / 1000,
		IsCrowded:      isCrowded,
		IsTrap:         isTrap,
		AsymmetryLevel: asymmetry,
	}
}
