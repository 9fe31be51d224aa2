package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Skill is one recognized tag: a canonical name plus its taxonomy category.
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SkillSet is a deduplicated set of recognized skills.
type SkillSet map[Skill]struct{}

// Names returns the canonical skill names in sorted order.
func (s SkillSet) Names() []string {
	names := make([]string, 0, len(s))
	for skill := range s {
		names = append(names, skill.Name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a skill with the given canonical name is present,
// regardless of category.
func (s SkillSet) Has(name string) bool {
	for skill := range s {
		if skill.Name == name {
			return true
		}
	}
	return false
}

// Intersect returns the skills present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if _, ok := other[skill]; ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Diff returns the skills present in s but absent from other.
func (s SkillSet) Diff(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if _, ok := other[skill]; !ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reMultiWS = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases the text and replaces every non-alphanumeric run
// with a single space. This keeps digits ("k8s", "ec2") and keeps multi-word
// phrases as adjacent words, which is what phrase matching needs. It is a
// separate, lighter normalization than the TF-IDF token pipeline.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reMultiWS.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// aliases maps a normalized canonical phrase to additional spellings that
// should match it in text.
var aliases = map[string][]string{
	"go":               {"golang"},
	"javascript":       {"js"},
	"typescript":       {"ts"},
	"kubernetes":       {"k8s"},
	"postgresql":       {"postgres"},
	"node":             {"nodejs", "node js"},
	"ci cd":            {"cicd"},
	"machine learning": {"ml"},
}

type entry struct {
	skill    Skill
	variants []string
}

// Extractor matches taxonomy phrases against normalized text. Construct once
// and share freely: it is read-only after New.
type Extractor struct {
	entries []entry
}

// NewExtractor compiles a taxonomy into a phrase matcher. Phrases are
// normalized once up front; categories are walked in sorted order so the
// compiled entry list is deterministic.
func NewExtractor(t *Taxonomy) *Extractor {
	ex := &Extractor{}
	for _, category := range t.CategoryNames() {
		for _, phrase := range t.Categories[category] {
			canonical := NormalizeText(phrase)
			if canonical == "" {
				continue
			}
			variants := append([]string{canonical}, aliases[canonical]...)
			ex.entries = append(ex.entries, entry{
				skill:    Skill{Name: canonical, Category: category},
				variants: variants,
			})
		}
	}
	return ex
}

// Extract scans the text for taxonomy phrases and returns the deduplicated
// set of recognized skills. Matching is whole-word: "rest api" matches
// "... REST API ..." but not "... rest apis ...". Unmatched text yields an
// empty set, never an error.
func (e *Extractor) Extract(text string) SkillSet {
	found := make(SkillSet)
	normalized := NormalizeText(text)
	if normalized == "" {
		return found
	}

	// Pad with spaces so containment checks honor word boundaries.
	hay := " " + normalized + " "
	for _, ent := range e.entries {
		for _, variant := range ent.variants {
			if strings.Contains(hay, " "+variant+" ") {
				found[ent.skill] = struct{}{}
				break
			}
		}
	}
	return found
}
