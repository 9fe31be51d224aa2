// Package skills extracts canonical skill tags from document text by matching
// a fixed taxonomy of phrases. The taxonomy is plain configuration: extending
// it means editing a YAML table, never code.
package skills

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// Taxonomy maps skill categories to their canonical phrases. Immutable after
// loading.
type Taxonomy struct {
	Categories map[string][]string `yaml:"categories"`
}

// DefaultTaxonomy parses the embedded taxonomy table.
func DefaultTaxonomy() (*Taxonomy, error) {
	return parseTaxonomy(defaultTaxonomyYAML)
}

// LoadTaxonomy reads a taxonomy table from a YAML file, replacing the
// embedded default.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file %q: %w", path, err)
	}
	t, err := parseTaxonomy(data)
	if err != nil {
		return nil, fmt.Errorf("parsing taxonomy file %q: %w", path, err)
	}
	return t, nil
}

func parseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal taxonomy: %w", err)
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy defines no categories")
	}
	return &t, nil
}

// CategoryNames returns the category names in sorted order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for name := range t.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
