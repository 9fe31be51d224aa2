package textnorm

// stopwords is a fixed English stopword set. It is intentionally small and
// frozen: changing it changes every similarity score in the system.
var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "its", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now", "has", "have", "had", "having", "does", "did",
		"doing", "would", "could", "not", "only", "other", "some", "all",
		"any", "each", "both", "more", "most", "them", "they", "their",
		"there", "here", "where", "when", "which", "who", "whom", "what",
		"you", "your", "yours", "our", "ours", "his", "her", "him", "she",
		"how", "why", "because", "while", "until",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
