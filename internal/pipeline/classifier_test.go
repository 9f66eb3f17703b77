package pipeline

import "testing"

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		name      string
		conflict  float64
		sentiment float64
		isPanic   bool
		expected  string
	}{
		{
			name:      "panic dominates everything",
			conflict:  0.9,
			sentiment: 0.9, // would otherwise be a trap
			isPanic:   true,
			expected:  "ABORT / CRASH",
		},
		{
			name:      "coordinated pump is a trap",
			conflict:  0.8,
			sentiment: 0.6,
			expected:  "TRAP / FAKE PUMP",
		},
		{
			name:      "organic consensus is a buy",
			conflict:  0.2,
			sentiment: 0.5,
			expected:  "STRONG BUY",
		},
		{
			name:      "moderate conflict holds",
			conflict:  0.5,
			sentiment: 0.5,
			expected:  "HODL / WAIT",
		},
		{
			name:      "neutral sentiment holds",
			conflict:  0.1,
			sentiment: 0.0,
			expected:  "HODL / WAIT",
		},
		{
			name:      "trap boundary is exclusive",
			conflict:  0.70,
			sentiment: 0.5,
			expected:  "HODL / WAIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAction(tt.conflict, tt.sentiment, tt.isPanic)
			if got.Code != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got.Code)
			}
			if got.Color == "" || got.Icon == "" {
				t.Errorf("Action signal must carry color and icon: %+v", got)
			}
		})
	}
}

func TestIsPanic(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		conflict  float64
		expected  bool
	}{
		{"deep fear high conflict", -0.5, 0.8, true},
		{"fear without conflict", -0.5, 0.3, false},
		{"conflict without fear", 0.1, 0.8, false},
		{"boundary sentiment", -0.35, 0.8, false},
		{"boundary conflict", -0.5, 0.65, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPanic(tt.sentiment, tt.conflict); got != tt.expected {
				t.Errorf("IsPanic(%.2f, %.2f) = %v, expected %v",
					tt.sentiment, tt.conflict, got, tt.expected)
			}
		})
	}
}

func TestNoSignal(t *testing.T) {
	got := NoSignal()
	if got.Code != "NO SIGNAL" {
		t.Errorf("Expected NO SIGNAL, got %q", got.Code)
	}
}
