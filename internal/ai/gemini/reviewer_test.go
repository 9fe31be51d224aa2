package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/analyzer"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func testResult() *analyzer.MatchResult {
	return &analyzer.MatchResult{
		OverallScore:  0.42,
		MissingSkills: []string{"docker"},
	}
}

func TestReviewerParsesStrictJSON(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{"verdict": "promising", "score": 0.7, "suggestions": ["Mention docker"], "improved_draft": "Dear Hiring Manager, ..."}`}
	reviewer := NewReviewer(stub, zap.NewNop(), 0)

	review, err := reviewer.Review(context.Background(), "letter text", "job text", testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if review.Verdict != "promising" {
		t.Fatalf("unexpected verdict: %q", review.Verdict)
	}
	if review.Score != 0.7 {
		t.Fatalf("unexpected score: %v", review.Score)
	}
	if len(review.Suggestions) != 1 || review.Suggestions[0] != "Mention docker" {
		t.Fatalf("unexpected suggestions: %v", review.Suggestions)
	}
	if review.ImprovedDraft == "" {
		t.Fatalf("expected improved draft to be populated")
	}
	if review.Raw != stub.response {
		t.Fatalf("expected raw response to be kept")
	}

	for _, fragment := range []string{"letter text", "job text", "docker"} {
		if !strings.Contains(stub.lastPrompt, fragment) {
			t.Fatalf("prompt is missing %q:\n%s", fragment, stub.lastPrompt)
		}
	}
}

func TestReviewerStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "```json\n{\"verdict\": \"weak\", \"score\": \"0.3\", \"suggestions\": \"Rework the opening\"}\n```"}
	reviewer := NewReviewer(stub, zap.NewNop(), 0)

	review, err := reviewer.Review(context.Background(), "letter", "job", testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if review.Verdict != "weak" {
		t.Fatalf("unexpected verdict: %q", review.Verdict)
	}
	// String-typed score and single-string suggestions still parse.
	if review.Score != 0.3 {
		t.Fatalf("unexpected score: %v", review.Score)
	}
	if len(review.Suggestions) != 1 || review.Suggestions[0] != "Rework the opening" {
		t.Fatalf("unexpected suggestions: %v", review.Suggestions)
	}
}

func TestReviewerRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "this is not json"}
	reviewer := NewReviewer(stub, zap.NewNop(), 0)

	if _, err := reviewer.Review(context.Background(), "letter", "job", testResult()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReviewerPropagatesGeneratorError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("backend down")
	stub := &stubGenerator{err: wantErr}
	reviewer := NewReviewer(stub, zap.NewNop(), 0)

	if _, err := reviewer.Review(context.Background(), "letter", "job", testResult()); !errors.Is(err, wantErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestReviewerValidatesInputs(t *testing.T) {
	t.Parallel()

	reviewer := NewReviewer(&stubGenerator{response: "{}"}, zap.NewNop(), 0)

	if _, err := reviewer.Review(context.Background(), "", "job", testResult()); err == nil {
		t.Fatal("expected error for empty letter")
	}
	if _, err := reviewer.Review(context.Background(), "letter", "", testResult()); err == nil {
		t.Fatal("expected error for empty job")
	}
	if _, err := reviewer.Review(context.Background(), "letter", "job", nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}
