// Package ai defines the optional review layer: an external model critiques
// an analyzed cover letter / job description pair. Everything statistical
// works without it.
package ai

import (
	"context"

	"github.com/ashmarin/covermatch/internal/analyzer"
)

// Review is a model's critique of one analyzed pair.
type Review struct {
	Verdict       string
	Score         float64
	Suggestions   []string
	ImprovedDraft string
	// Raw keeps the unparsed model output for debugging.
	Raw string
}

// Reviewer asks a model to critique a cover letter against a job description,
// given the statistical analysis of the pair.
type Reviewer interface {
	Review(ctx context.Context, letter, job string, result *analyzer.MatchResult) (*Review, error)
}
