package analysis

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

const maxSentimentChars = 512

// Prediction is one classifier output
type Prediction struct {
	Label string
	Score float64
}

// Classifier is the sentiment capability: one prediction per text with
// labels in {positive, negative, neutral} and scores in [0,1].
type Classifier interface {
	ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error)
}

// SentimentScores maps classifier predictions to signed scores in [-1,1]:
// +score for positive, -score for negative, 0 for neutral. Inputs are
// truncated to 512 chars before classification. A classifier failure
// degrades to all-neutral, keeping list length intact.
func SentimentScores(ctx context.Context, classifier Classifier, texts []string) []float64 {
	scores := make([]float64, len(texts))
	if len(texts) == 0 {
		return scores
	}

	truncated := make([]string, len(texts))
	for i, t := range texts {
		if len(t) > maxSentimentChars {
			t = t[:maxSentimentChars]
		}
		truncated[i] = t
	}

	predictions, err := classifier.ClassifyBatch(ctx, truncated)
	if err != nil || len(predictions) != len(texts) {
		logger.Error("sentiment batch failed, falling back to neutral", zap.Error(err))
		return scores
	}

	for i, p := range predictions {
		switch p.Label {
		case "positive":
			scores[i] = p.Score
		case "negative":
			scores[i] = -p.Score
		}
	}
	return scores
}

// LexiconClassifier is a self-contained keyword-based classifier used when
// no external sentiment model is wired in.
type LexiconClassifier struct {
	positive map[string]float64
	negative map[string]float64
}

// NewLexiconClassifier creates new lexicon classifier
func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{
		positive: buildPositiveWords(),
		negative: buildNegativeWords(),
	}
}

// ClassifyBatch scores each text against the lexicon
func (c *LexiconClassifier) ClassifyBatch(_ context.Context, texts []string) ([]Prediction, error) {
	predictions := make([]Prediction, len(texts))
	for i, text := range texts {
		predictions[i] = c.classify(text)
	}
	return predictions, nil
}

func (c *LexiconClassifier) classify(text string) Prediction {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return Prediction{Label: "neutral"}
	}

	var score float64
	matches := 0
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:")
		if w, ok := c.positive[word]; ok {
			score += w
			matches++
		}
		if w, ok := c.negative[word]; ok {
			score -= w
			matches++
		}
	}

	if matches == 0 {
		return Prediction{Label: "neutral"}
	}

	normalized := score / float64(len(words))
	if normalized > 1.0 {
		normalized = 1.0
	} else if normalized < -1.0 {
		normalized = -1.0
	}

	switch {
	case normalized > 0:
		return Prediction{Label: "positive", Score: normalized}
	case normalized < 0:
		return Prediction{Label: "negative", Score: -normalized}
	default:
		return Prediction{Label: "neutral"}
	}
}

// buildPositiveWords returns positive market keywords
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		"bullish":      1.0,
		"bull":         0.9,
		"rally":        0.9,
		"surge":        0.8,
		"soar":         0.8,
		"record":       0.7,
		"beat":         0.7,
		"breakout":     0.7,
		"gain":         0.6,
		"profit":       0.6,
		"green":        0.6,
		"upgrade":      0.6,
		"adoption":     0.6,
		"approved":     0.6,
		"breakthrough": 0.6,
		"up":           0.5,
		"rise":         0.5,
		"grow":         0.5,
		"growth":       0.5,
		"increase":     0.5,
		"positive":     0.5,
		"optimistic":   0.5,
		"partnership":  0.5,
		"expansion":    0.5,
	}
}

// buildNegativeWords returns negative market keywords
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		"bearish":      1.0,
		"crash":        1.0,
		"fraud":        1.0,
		"scam":         1.0,
		"bear":         0.9,
		"dump":         0.9,
		"plunge":       0.8,
		"panic":        0.8,
		"ban":          0.8,
		"liquidation":  0.8,
		"capitulation": 0.8,
		"loss":         0.7,
		"selloff":      0.7,
		"lawsuit":      0.7,
		"crackdown":    0.7,
		"default":      0.7,
		"fall":         0.6,
		"drop":         0.6,
		"decline":      0.6,
		"fear":         0.6,
		"red":          0.6,
		"correction":   0.6,
		"bubble":       0.6,
		"overvalued":   0.6,
		"down":         0.5,
		"negative":     0.5,
		"pessimistic":  0.5,
		"sell":         0.5,
		"recession":    0.7,
	}
}
