package textnorm

import "strings"

// Lemma reduces an inflected English word to an approximate base form using a
// small set of plural-stripping rules. This is deliberately conservative: it
// is far less precise than a dictionary-backed lemmatizer, but it needs no
// external data and is fully deterministic.
func Lemma(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	// The sis guard keeps greek-derived singulars (analysis, basis) intact
	// while plural acronyms like "apis" still lose their s.
	case len(w) > 3 && strings.HasSuffix(w, "s") &&
		!strings.HasSuffix(w, "ss") &&
		!strings.HasSuffix(w, "us") &&
		!strings.HasSuffix(w, "sis"):
		return w[:len(w)-1]
	}
	return w
}
