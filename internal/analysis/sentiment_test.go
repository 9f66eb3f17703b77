package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type failingClassifier struct{}

func (failingClassifier) ClassifyBatch(context.Context, []string) ([]Prediction, error) {
	return nil, errors.New("model unavailable")
}

func TestLexiconClassifier_ClassifyBatch(t *testing.T) {
	classifier := NewLexiconClassifier()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "bullish text",
			text:     "Massive rally as markets surge on record gains",
			expected: "positive",
		},
		{
			name:     "bearish text",
			text:     "Crash and panic as the selloff deepens, fear everywhere",
			expected: "negative",
		},
		{
			name:     "neutral text",
			text:     "The committee met on Tuesday to discuss the agenda",
			expected: "neutral",
		},
		{
			name:     "empty text",
			text:     "",
			expected: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds, err := classifier.ClassifyBatch(context.Background(), []string{tt.text})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if preds[0].Label != tt.expected {
				t.Errorf("Expected %s, got %s (score %.3f)", tt.expected, preds[0].Label, preds[0].Score)
			}
			if preds[0].Score < 0 || preds[0].Score > 1 {
				t.Errorf("Score out of [0,1]: %.3f", preds[0].Score)
			}
		})
	}
}

func TestSentimentScores_SignMapping(t *testing.T) {
	classifier := NewLexiconClassifier()

	scores := SentimentScores(context.Background(), classifier, []string{
		"Record rally, massive surge",
		"Crash, panic, selloff",
		"The meeting is on Tuesday",
	})

	if scores[0] <= 0 {
		t.Errorf("Expected positive score, got %.3f", scores[0])
	}
	if scores[1] >= 0 {
		t.Errorf("Expected negative score, got %.3f", scores[1])
	}
	if scores[2] != 0 {
		t.Errorf("Expected neutral zero, got %.3f", scores[2])
	}

	for i, s := range scores {
		if s < -1 || s > 1 {
			t.Errorf("Score out of [-1,1] at %d: %.3f", i, s)
		}
	}
}

func TestSentimentScores_FailureDegradesToNeutral(t *testing.T) {
	scores := SentimentScores(context.Background(), failingClassifier{}, []string{"a", "b"})

	if len(scores) != 2 {
		t.Fatalf("Expected length preserved on failure, got %d", len(scores))
	}
	for i, s := range scores {
		if s != 0 {
			t.Errorf("Expected 0 at %d, got %.3f", i, s)
		}
	}
}

func TestSentimentScores_TruncatesLongTexts(t *testing.T) {
	classifier := NewLexiconClassifier()

	// The only charged word sits beyond the 512-char cutoff.
	long := strings.Repeat("x ", 300) + "crash"
	scores := SentimentScores(context.Background(), classifier, []string{long})

	if scores[0] != 0 {
		t.Errorf("Expected truncation to hide the keyword, got %.3f", scores[0])
	}
}
