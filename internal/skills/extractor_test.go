package skills

import (
	"reflect"
	"testing"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	taxonomy, err := DefaultTaxonomy()
	if err != nil {
		t.Fatalf("loading default taxonomy: %v", err)
	}
	return NewExtractor(taxonomy)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	ex := newTestExtractor(t)

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{
			name:   "single token skills",
			text:   "Experienced Python developer, also strong in Docker.",
			expect: []string{"docker", "python"},
		},
		{
			name:   "multi word phrase",
			text:   "Background in Machine Learning and natural-language processing.",
			expect: []string{"machine learning", "natural language processing"},
		},
		{
			name:   "alias resolves to canonical",
			text:   "Golang services on k8s with Postgres",
			expect: []string{"go", "kubernetes", "postgresql"},
		},
		{
			name:   "whole word boundary honored",
			text:   "I like pythonic code and javally things",
			expect: []string{},
		},
		{
			name:   "unmatched text yields empty set",
			text:   "Nothing relevant here at all.",
			expect: []string{},
		},
		{
			name:   "empty input",
			text:   "",
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ex.Extract(tt.text).Names()
			if len(got) == 0 && len(tt.expect) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	t.Parallel()

	ex := newTestExtractor(t)
	text := "Python and React developer with CI/CD experience"

	first := ex.Extract(text)
	second := ex.Extract(text)
	if !reflect.DeepEqual(first.Names(), second.Names()) {
		t.Fatalf("extraction not idempotent: %v vs %v", first.Names(), second.Names())
	}
	if !first.Has("ci cd") {
		t.Fatalf("expected ci cd to match the CI/CD spelling, got %v", first.Names())
	}
}

func TestExtractCategories(t *testing.T) {
	t.Parallel()

	ex := newTestExtractor(t)
	set := ex.Extract("python with react on aws")

	want := map[string]string{
		"python": "programming",
		"react":  "web",
		"aws":    "cloud",
	}
	for skill := range set {
		category, ok := want[skill.Name]
		if !ok {
			t.Fatalf("unexpected skill %v", skill)
		}
		if skill.Category != category {
			t.Fatalf("skill %q: expected category %q, got %q", skill.Name, category, skill.Category)
		}
	}
	if len(set) != len(want) {
		t.Fatalf("expected %d skills, got %d", len(want), len(set))
	}
}

func TestSkillSetOps(t *testing.T) {
	t.Parallel()

	a := SkillSet{
		{Name: "python", Category: "programming"}: {},
		{Name: "react", Category: "web"}:          {},
	}
	b := SkillSet{
		{Name: "python", Category: "programming"}: {},
		{Name: "docker", Category: "devops"}:      {},
	}

	if got := a.Intersect(b).Names(); !reflect.DeepEqual(got, []string{"python"}) {
		t.Fatalf("intersect: expected [python], got %v", got)
	}
	if got := b.Diff(a).Names(); !reflect.DeepEqual(got, []string{"docker"}) {
		t.Fatalf("diff: expected [docker], got %v", got)
	}
}

func TestLoadTaxonomyMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadTaxonomy("/definitely/not/here.yaml"); err == nil {
		t.Fatalf("expected error for missing taxonomy file")
	}
}
