package textnorm

import (
	"regexp"
	"strings"
)

var (
	reURL    = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	reEmail  = regexp.MustCompile(`\S+@\S+`)
	rePhone  = regexp.MustCompile(`\+?\d[\d\s\-()]{7,}`)
	reLetter = regexp.MustCompile(`[^a-z\s]`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// minTokenLen drops very short tokens ("a", "to", "is") that carry almost no
// signal for bag-of-words comparison.
const minTokenLen = 3

// Normalize turns raw document text into the token sequence used for TF-IDF
// vectorization. The steps run in a fixed order so that scores stay
// reproducible: lowercase, strip URLs/emails/phone numbers, strip everything
// except letters, tokenize on whitespace, drop stopwords and short tokens,
// lemmatize. Empty input yields an empty (nil) sequence.
func Normalize(raw string) []string {
	cleaned := scrub(raw)
	if cleaned == "" {
		return nil
	}

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, Lemma(tok))
	}
	return tokens
}

func scrub(raw string) string {
	s := strings.ToLower(raw)
	s = reURL.ReplaceAllString(s, " ")
	s = reEmail.ReplaceAllString(s, " ")
	s = rePhone.ReplaceAllString(s, " ")
	s = reLetter.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
