// Package vectorizer builds a TF-IDF vector space over a token corpus and
// projects documents into it. A fitted Vocabulary is immutable: refitting
// always produces a new instance with a new version, so cached vectors can be
// invalidated by version comparison.
package vectorizer

import (
	"errors"
	"math"
	"sort"
	"sync/atomic"
)

// ErrEmptyCorpus is returned by Fit when the corpus holds no documents or
// every document normalized to an empty token sequence.
var ErrEmptyCorpus = errors.New("corpus contains no usable documents")

// Vector is a sparse term-to-weight mapping for one document. Vectors
// produced by Transform are L2-normalized, so cosine similarity between them
// reduces to a dot product.
type Vector map[string]float64

// Norm returns the Euclidean magnitude of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product with another vector.
func (v Vector) Dot(o Vector) float64 {
	// Iterate over the smaller side.
	if len(o) < len(v) {
		v, o = o, v
	}
	var sum float64
	for term, w := range v {
		sum += w * o[term]
	}
	return sum
}

// Vocabulary holds corpus-wide document frequencies and smoothed IDF weights.
// Read-only after Fit.
type Vocabulary struct {
	idf     map[string]float64
	df      map[string]int
	docs    int
	version uint64
}

var fitCounter atomic.Uint64

// Fit computes document frequencies over the corpus and derives smoothed IDF
// weights: idf = log((1+N)/(1+df)) + 1, which is always positive and finite.
// Fitting the same corpus twice yields identical weights.
func Fit(docs [][]string) (*Vocabulary, error) {
	df := make(map[string]int)
	usable := 0
	for _, tokens := range docs {
		if len(tokens) == 0 {
			continue
		}
		usable++
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if usable == 0 {
		return nil, ErrEmptyCorpus
	}

	n := float64(usable)
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	return &Vocabulary{
		idf:     idf,
		df:      df,
		docs:    usable,
		version: fitCounter.Add(1),
	}, nil
}

// Version identifies this fit. Derived artifacts cached against a vocabulary
// should be keyed by it.
func (v *Vocabulary) Version() uint64 { return v.version }

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.idf) }

// Docs returns the number of non-empty documents the vocabulary was fit on.
func (v *Vocabulary) Docs() int { return v.docs }

// IDF returns the inverse-document-frequency weight for a term, or 0 for
// terms unseen at fit time. Out-of-vocabulary terms always weigh zero; this
// is the single OOV policy applied across fit and transform.
func (v *Vocabulary) IDF(term string) float64 { return v.idf[term] }

// Transform projects a token sequence into the fitted TF-IDF space. Term
// frequency is the raw in-vocabulary count divided by the in-vocabulary
// token total; the result is L2-normalized. A document whose tokens are all
// out of vocabulary (or empty) transforms to the zero vector, not an error.
func (v *Vocabulary) Transform(tokens []string) Vector {
	vec := make(Vector)
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[string]int)
	total := 0
	for _, tok := range tokens {
		if _, known := v.idf[tok]; !known {
			continue
		}
		counts[tok]++
		total++
	}
	if total == 0 {
		return vec
	}

	for term, c := range counts {
		vec[term] = float64(c) / float64(total) * v.idf[term]
	}

	norm := vec.Norm()
	if norm > 0 {
		for term := range vec {
			vec[term] /= norm
		}
	}
	return vec
}

// Keyword pairs a term with its TF-IDF weight in one document.
type Keyword struct {
	Term   string
	Weight float64
}

// TopKeywords returns the n highest-weighted terms of the document under this
// vocabulary, ordered by weight descending with ties broken alphabetically
// for stable output.
func (v *Vocabulary) TopKeywords(tokens []string, n int) []Keyword {
	vec := v.Transform(tokens)
	if len(vec) == 0 || n <= 0 {
		return nil
	}

	keywords := make([]Keyword, 0, len(vec))
	for term, w := range vec {
		keywords = append(keywords, Keyword{Term: term, Weight: w})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Weight != keywords[j].Weight {
			return keywords[i].Weight > keywords[j].Weight
		}
		return keywords[i].Term < keywords[j].Term
	})

	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}
