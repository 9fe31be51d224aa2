// Package similarity holds the pure scoring functions of the matching core.
// Every function here is deterministic and side-effect free.
package similarity

import (
	"github.com/ashmarin/covermatch/internal/vectorizer"
)

// Weights controls how cosine and Jaccard similarity are blended by Combined.
type Weights struct {
	Cosine  float64 `mapstructure:"cosine" yaml:"cosine"`
	Jaccard float64 `mapstructure:"jaccard" yaml:"jaccard"`
}

// DefaultWeights is the default blend. Cosine over TF-IDF vectors carries
// most of the signal; Jaccard over raw token sets guards against term-weight
// artifacts on short documents.
var DefaultWeights = Weights{Cosine: 0.7, Jaccard: 0.3}

// Cosine returns the cosine similarity of two L2-normalized TF-IDF vectors,
// clamped to [0,1]. Either vector being zero (empty or fully
// out-of-vocabulary document) yields 0.
func Cosine(a, b vectorizer.Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return clamp01(a.Dot(b))
}

// Jaccard returns intersection-over-union of two token sequences treated as
// sets. Both sides empty yields 0 by convention, avoiding 0/0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := toSet(a)
	setB := toSet(b)

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Combined blends the two similarity scores as a weighted average. Weights
// that do not sum to 1 are normalized by their sum; a zero weight sum
// yields 0.
func Combined(cosine, jaccard float64, w Weights) float64 {
	sum := w.Cosine + w.Jaccard
	if sum <= 0 {
		return 0
	}
	return clamp01((cosine*w.Cosine + jaccard*w.Jaccard) / sum)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
