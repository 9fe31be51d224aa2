package similarity

import (
	"math"
	"testing"

	"github.com/ashmarin/covermatch/internal/vectorizer"
)

func TestCosine(t *testing.T) {
	t.Parallel()

	vocab, err := vectorizer.Fit([][]string{
		{"python", "react", "developer"},
		{"java", "backend", "engineer"},
	})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	a := vocab.Transform([]string{"python", "react", "developer"})
	b := vocab.Transform([]string{"java", "backend", "engineer"})

	if got := Cosine(a, a); math.Abs(got-1) > 1e-12 {
		t.Fatalf("self cosine should be 1.0, got %v", got)
	}
	if got := Cosine(a, b); got != 0 {
		t.Fatalf("disjoint documents should score 0, got %v", got)
	}
	if got := Cosine(a, vectorizer.Vector{}); got != 0 {
		t.Fatalf("zero vector should score 0, got %v", got)
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   []string
		expect float64
	}{
		{
			name:   "identical non-empty sets",
			a:      []string{"python", "react"},
			b:      []string{"react", "python"},
			expect: 1,
		},
		{
			name:   "both empty by convention",
			a:      nil,
			b:      nil,
			expect: 0,
		},
		{
			name:   "one empty",
			a:      []string{"python"},
			b:      nil,
			expect: 0,
		},
		{
			name:   "partial overlap",
			a:      []string{"python", "react", "docker"},
			b:      []string{"python", "java"},
			expect: 0.25,
		},
		{
			name:   "duplicates ignored",
			a:      []string{"python", "python"},
			b:      []string{"python"},
			expect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.expect) > 1e-12 {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestCombinedMonotonic(t *testing.T) {
	t.Parallel()

	base := Combined(0.4, 0.4, DefaultWeights)
	if higher := Combined(0.6, 0.4, DefaultWeights); higher <= base {
		t.Fatalf("raising cosine must not decrease combined score: %v -> %v", base, higher)
	}
	if higher := Combined(0.4, 0.6, DefaultWeights); higher <= base {
		t.Fatalf("raising jaccard must not decrease combined score: %v -> %v", base, higher)
	}
}

func TestCombinedWeights(t *testing.T) {
	t.Parallel()

	if got := Combined(1, 0, Weights{Cosine: 1, Jaccard: 0}); got != 1 {
		t.Fatalf("pure cosine weight: expected 1, got %v", got)
	}
	if got := Combined(0.8, 0.4, Weights{}); got != 0 {
		t.Fatalf("zero weights must yield 0, got %v", got)
	}
	// Non-normalized weights are scaled by their sum.
	if got := Combined(1, 1, Weights{Cosine: 2, Jaccard: 2}); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected 1 for maximal inputs, got %v", got)
	}
}
