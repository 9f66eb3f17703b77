package analysis

import (
	"reflect"
	"testing"
)

func TestChooseK(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{0, 2},
		{3, 2},
		{9, 2},
		{10, 2},
		{15, 3},
		{20, 4},
		{100, 4},
	}

	for _, tt := range tests {
		if got := ChooseK(tt.n); got != tt.expected {
			t.Errorf("ChooseK(%d) = %d, expected %d", tt.n, got, tt.expected)
		}
	}
}

func TestCluster_SmallInputFallsIntoClusterZero(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}}

	labels := Cluster(vectors, 2)
	if len(labels) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(labels))
	}
	for i, l := range labels {
		if l != 0 {
			t.Errorf("Expected label 0 at index %d with n < k+1, got %d", i, l)
		}
	}
}

func TestCluster_Deterministic(t *testing.T) {
	vectors := [][]float32{
		{1, 0}, {0.9, 0.1}, {0.95, 0.05},
		{0, 1}, {0.1, 0.9}, {0.05, 0.95},
	}

	first := Cluster(vectors, 2)
	second := Cluster(vectors, 2)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical labels across runs, got %v and %v", first, second)
	}
}

func TestCluster_SeparatesDistantGroups(t *testing.T) {
	vectors := [][]float32{
		{1, 0}, {0.99, 0.01}, {0.98, 0.02},
		{0, 1}, {0.01, 0.99}, {0.02, 0.98},
	}

	labels := Cluster(vectors, 2)

	if labels[0] != labels[1] || labels[1] != labels[2] {
		t.Errorf("Expected first group in one cluster, got %v", labels[:3])
	}
	if labels[3] != labels[4] || labels[4] != labels[5] {
		t.Errorf("Expected second group in one cluster, got %v", labels[3:])
	}
	if labels[0] == labels[3] {
		t.Errorf("Expected the two groups in distinct clusters, got %v", labels)
	}

	for i, l := range labels {
		if l < 0 || l >= 2 {
			t.Errorf("Label out of range at %d: %d", i, l)
		}
	}
}
