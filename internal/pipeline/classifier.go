package pipeline

import "github.com/mvasconcelos/horaculo/pkg/models"

// ClassifyAction maps the (conflict, sentiment, panic) tuple into the
// discrete action code the UI paints from. Rules fire in order; panic
// dominates everything else.
func ClassifyAction(conflict, sentiment float64, isPanic bool) models.ActionSignal {
	if isPanic {
		return models.ActionSignal{Code: "ABORT / CRASH", Color: "#FF0000", Icon: "skull"}
	}
	if conflict > 0.70 && sentiment > 0.4 {
		return models.ActionSignal{Code: "TRAP / FAKE PUMP", Color: "#FACC15", Icon: "eye"}
	}
	if conflict < 0.4 && sentiment > 0.3 {
		return models.ActionSignal{Code: "STRONG BUY", Color: "#22C55E", Icon: "rocket"}
	}
	return models.ActionSignal{Code: "HODL / WAIT", Color: "#A855F7", Icon: "shield"}
}

// NoSignal is emitted when the fetch yields zero signals
func NoSignal() models.ActionSignal {
	return models.ActionSignal{Code: "NO SIGNAL", Color: "#64748B", Icon: "cloud-off"}
}

// IsPanic flags the abort condition: strongly negative mean sentiment
// combined with high narrative conflict.
func IsPanic(sentiment, conflict float64) bool {
	return sentiment < -0.35 && conflict > 0.65
}
