package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/ai"
	"github.com/ashmarin/covermatch/internal/analyzer"
	"github.com/ashmarin/covermatch/internal/utils"
)

type contentGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Reviewer asks the model for a critique of one analyzed pair and parses the
// strict-JSON reply. Implements ai.Reviewer.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewReviewer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reviewer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Review builds the critique prompt from both texts plus the analysis and
// sends it to the model. The raw model output is kept on the returned Review.
func (r *Reviewer) Review(ctx context.Context, letter, job string, result *analyzer.MatchResult) (*ai.Review, error) {
	if strings.TrimSpace(letter) == "" {
		return nil, fmt.Errorf("cover letter is required")
	}
	if strings.TrimSpace(job) == "" {
		return nil, fmt.Errorf("job description is required")
	}
	if result == nil {
		return nil, fmt.Errorf("match result is required")
	}

	analysisJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	prompt := buildPrompt(letter, job, string(analysisJSON))

	r.logger.Debug("gemini review request",
		zap.String("model", r.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseReview(raw)
	if err != nil {
		return nil, err
	}

	review.Raw = raw
	return review, nil
}

func buildPrompt(letter, job, analysisJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Cover letter:\n{{COVER_LETTER}}\n\nJob:\n{{JOB_DESCRIPTION}}\n\nAnalysis:\n{{ANALYSIS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{COVER_LETTER}}", letter)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", job)
	prompt = strings.ReplaceAll(prompt, "{{ANALYSIS_JSON}}", analysisJSON)
	return prompt
}

// parseReview accepts both naked and fenced JSON; models wrap replies in
// markdown fences despite instructions often enough to handle it here.
func parseReview(raw string) (*ai.Review, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ai.Review{
		Verdict:       coerceString(data["verdict"]),
		Score:         score,
		Suggestions:   coerceStrings(data["suggestions"]),
		ImprovedDraft: coerceString(data["improved_draft"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return nil
	default:
		return nil
	}
}
