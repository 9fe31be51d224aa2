// Package corpus holds document collections and the batch matching engine
// that compares every cover letter against every job description.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ashmarin/covermatch/internal/textnorm"
)

// Document is one text unit of a corpus. The raw text and its derived token
// forms are computed at construction and never change afterwards.
type Document struct {
	ID     int
	Name   string
	Raw    string
	tokens []string
}

// NewDocument normalizes the raw text eagerly so every later use works on
// the same token sequence.
func NewDocument(id int, name, raw string) *Document {
	return &Document{
		ID:     id,
		Name:   name,
		Raw:    raw,
		tokens: textnorm.Normalize(raw),
	}
}

// Tokens returns the normalized token sequence. Callers must not mutate it.
func (d *Document) Tokens() []string { return d.tokens }

// WordCount counts whitespace-separated words of the raw text.
func (d *Document) WordCount() int { return len(strings.Fields(d.Raw)) }

// Preview returns the first n runes of the raw text, with an ellipsis when
// truncated.
func (d *Document) Preview(n int) string {
	runes := []rune(strings.TrimSpace(d.Raw))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}

// Corpus is an ordered, append-only collection of documents of one kind.
// Insertion order is preserved so indices stay stable within a session.
type Corpus struct {
	docs []*Document
}

// Add appends a document, assigning the next index as its ID.
func (c *Corpus) Add(name, raw string) *Document {
	doc := NewDocument(len(c.docs), name, raw)
	c.docs = append(c.docs, doc)
	return doc
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Doc returns the document at index i.
func (c *Corpus) Doc(i int) *Document { return c.docs[i] }

// Docs returns the backing slice. Callers must not mutate it.
func (c *Corpus) Docs() []*Document { return c.docs }

// LoadDir builds a corpus from every .txt file in a directory. Files are
// walked in sorted name order so document indices are reproducible across
// runs.
func LoadDir(dir string) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	c := &Corpus{}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading document %q: %w", name, err)
		}
		c.Add(name, string(data))
	}
	return c, nil
}
