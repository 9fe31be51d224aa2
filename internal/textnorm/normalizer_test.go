package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty input yields empty sequence",
			input:  "",
			expect: nil,
		},
		{
			name:   "whitespace only",
			input:  "   \n\t ",
			expect: nil,
		},
		{
			name:   "lowercases and drops stopwords",
			input:  "The Python Developer",
			expect: []string{"python", "developer"},
		},
		{
			name:   "strips emails and phone numbers",
			input:  "Contact me at john.doe@email.com or call +1-555-123-4567 about Python",
			expect: []string{"contact", "call", "python"},
		},
		{
			name:   "strips urls",
			input:  "see https://example.com/jobs and www.example.org for details",
			expect: []string{"see", "detail"},
		},
		{
			name:   "drops short tokens",
			input:  "go js developer",
			expect: []string{"developer"},
		},
		{
			name:   "lemmatizes plurals",
			input:  "technologies databases skills",
			expect: []string{"technology", "database", "skill"},
		},
		{
			name:   "lemmatizes plural acronyms",
			input:  "Machine Learning, and REST APIs!",
			expect: []string{"machine", "learning", "rest", "api"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()

	input := "Senior Python developer with 5 years of React and Kubernetes experience."
	first := Normalize(input)
	second := Normalize(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization is not deterministic: %v vs %v", first, second)
	}
}

func TestLemma(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{"technologies", "technology"},
		{"classes", "class"},
		{"developers", "developer"},
		{"analysis", "analysis"},
		{"basis", "basis"},
		{"apis", "api"},
		{"process", "process"},
		{"campus", "campus"},
		{"react", "react"},
	}

	for _, tt := range tests {
		if got := Lemma(tt.input); got != tt.expect {
			t.Fatalf("Lemma(%q): expected %q, got %q", tt.input, tt.expect, got)
		}
	}
}
