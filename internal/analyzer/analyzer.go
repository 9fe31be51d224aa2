// Package analyzer orchestrates the similarity core into a composite match
// quality score with named sub-metrics and textual recommendations.
package analyzer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/similarity"
	"github.com/ashmarin/covermatch/internal/skills"
	"github.com/ashmarin/covermatch/internal/textnorm"
	"github.com/ashmarin/covermatch/internal/vectorizer"
)

// Profile weighs the six sub-metrics into the overall score. Weights must be
// non-negative and sum to 1.
type Profile struct {
	Content    float64 `mapstructure:"content" yaml:"content"`
	Skills     float64 `mapstructure:"skills" yaml:"skills"`
	Keywords   float64 `mapstructure:"keywords" yaml:"keywords"`
	Tone       float64 `mapstructure:"tone" yaml:"tone"`
	Length     float64 `mapstructure:"length" yaml:"length"`
	Experience float64 `mapstructure:"experience" yaml:"experience"`
}

// DefaultProfile is the default sub-metric weighting.
var DefaultProfile = Profile{
	Content:    0.30,
	Skills:     0.25,
	Keywords:   0.20,
	Tone:       0.10,
	Length:     0.10,
	Experience: 0.05,
}

const weightSumTolerance = 1e-9

// Validate checks that the profile is usable as a weighting.
func (p Profile) Validate() error {
	for name, w := range map[string]float64{
		"content":    p.Content,
		"skills":     p.Skills,
		"keywords":   p.Keywords,
		"tone":       p.Tone,
		"length":     p.Length,
		"experience": p.Experience,
	} {
		if w < 0 {
			return fmt.Errorf("profile weight %q must not be negative", name)
		}
	}
	sum := p.Content + p.Skills + p.Keywords + p.Tone + p.Length + p.Experience
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("profile weights must sum to 1, got %v", sum)
	}
	return nil
}

func (p Profile) isZero() bool {
	return p == Profile{}
}

// Config assembles an Analyzer.
type Config struct {
	// Extractor is required; the analyzer never builds its own taxonomy.
	Extractor *skills.Extractor
	// Similarity blends cosine and Jaccard for the content sub-metric.
	// Zero value selects similarity.DefaultWeights.
	Similarity similarity.Weights
	// Profile weighs sub-metrics. Zero value selects DefaultProfile.
	Profile Profile
	// TopKeywords is how many job-side TF-IDF keywords feed the coverage
	// metric. Defaults to 10.
	TopKeywords int
	Logger      *zap.Logger
}

// Analyzer computes match quality between a cover letter and a job
// description. Stateless and safe for concurrent use.
type Analyzer struct {
	extractor   *skills.Extractor
	simWeights  similarity.Weights
	profile     Profile
	topKeywords int
	logger      *zap.Logger
}

// New builds an Analyzer, applying defaults for unset options.
func New(cfg Config) (*Analyzer, error) {
	if cfg.Extractor == nil {
		return nil, errors.New("skill extractor is required")
	}
	if cfg.Similarity == (similarity.Weights{}) {
		cfg.Similarity = similarity.DefaultWeights
	}
	if cfg.Profile.isZero() {
		cfg.Profile = DefaultProfile
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	if cfg.TopKeywords <= 0 {
		cfg.TopKeywords = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Analyzer{
		extractor:   cfg.Extractor,
		simWeights:  cfg.Similarity,
		profile:     cfg.Profile,
		topKeywords: cfg.TopKeywords,
		logger:      cfg.Logger,
	}, nil
}

// SubScores are the named sub-metrics of one comparison, each in [0,1].
type SubScores struct {
	ContentSimilarity     float64 `json:"content_similarity"`
	SkillAlignment        float64 `json:"skill_alignment"`
	ToneAppropriateness   float64 `json:"tone_appropriateness"`
	LengthAppropriateness float64 `json:"length_appropriateness"`
	KeywordCoverage       float64 `json:"keyword_coverage"`
	ExperienceLevelMatch  float64 `json:"experience_level_match"`
}

// MatchResult is the composite outcome of one comparison. Immutable after
// Analyze returns it.
type MatchResult struct {
	OverallScore    float64   `json:"overall_score"`
	Scores          SubScores `json:"scores"`
	LetterTier      string    `json:"letter_tier"`
	JobTier         string    `json:"job_tier"`
	MatchedSkills   []string  `json:"matched_skills"`
	MissingSkills   []string  `json:"missing_skills"`
	Recommendations []string  `json:"recommendations"`
}

const recommendationThreshold = 0.5

// Analyze scores the cover letter against the job description. It never
// fails: empty or degenerate inputs degrade scores toward 0 and the result
// always carries a full sub-score breakdown plus recommendations.
func (a *Analyzer) Analyze(letter, job string) *MatchResult {
	letterTokens := textnorm.Normalize(letter)
	jobTokens := textnorm.Normalize(job)

	letterSkills := a.extractor.Extract(letter)
	jobSkills := a.extractor.Extract(job)
	matched := letterSkills.Intersect(jobSkills)
	missing := jobSkills.Diff(letterSkills)

	var scores SubScores

	// Content similarity over a pair-local vector space.
	vocab, err := vectorizer.Fit([][]string{letterTokens, jobTokens})
	if err == nil {
		cos := similarity.Cosine(vocab.Transform(letterTokens), vocab.Transform(jobTokens))
		jac := similarity.Jaccard(letterTokens, jobTokens)
		scores.ContentSimilarity = similarity.Combined(cos, jac, a.simWeights)
	}

	if len(jobSkills) > 0 {
		scores.SkillAlignment = float64(len(matched)) / float64(len(jobSkills))
	} else {
		// A job that names no known skills demands nothing, so the letter
		// trivially satisfies it.
		scores.SkillAlignment = 1
	}

	scores.KeywordCoverage = a.keywordCoverage(vocab, letterTokens, jobTokens)
	scores.ToneAppropriateness = toneScore(letter)
	scores.LengthAppropriateness = lengthScore(letter)

	letterTier := DetectTier(letter)
	jobTier := DetectTier(job)
	scores.ExperienceLevelMatch = tierMatchScore(letterTier, jobTier)

	overall := a.overall(scores)

	// A missing side makes the comparison meaningless: the overall score
	// collapses to 0 while the per-document sub-scores remain reported.
	degenerate := len(letterTokens) == 0 || len(jobTokens) == 0
	if degenerate {
		overall = 0
	}

	result := &MatchResult{
		OverallScore:    overall,
		Scores:          scores,
		LetterTier:      letterTier.String(),
		JobTier:         jobTier.String(),
		MatchedSkills:   matched.Names(),
		MissingSkills:   missing.Names(),
		Recommendations: a.recommend(scores, missing, degenerate, len(letterTokens) == 0),
	}

	a.logger.Debug("match analysis",
		zap.Float64("overall_score", result.OverallScore),
		zap.Float64("content_similarity", scores.ContentSimilarity),
		zap.Float64("skill_alignment", scores.SkillAlignment),
		zap.Float64("keyword_coverage", scores.KeywordCoverage),
		zap.Int("matched_skills", len(result.MatchedSkills)),
		zap.Int("missing_skills", len(result.MissingSkills)),
	)

	return result
}

func (a *Analyzer) keywordCoverage(vocab *vectorizer.Vocabulary, letterTokens, jobTokens []string) float64 {
	if vocab == nil || len(jobTokens) == 0 || len(letterTokens) == 0 {
		return 0
	}

	keywords := vocab.TopKeywords(jobTokens, a.topKeywords)
	if len(keywords) == 0 {
		return 0
	}

	present := make(map[string]struct{}, len(letterTokens))
	for _, tok := range letterTokens {
		present[tok] = struct{}{}
	}

	covered := 0
	for _, kw := range keywords {
		if _, ok := present[kw.Term]; ok {
			covered++
		}
	}
	return float64(covered) / float64(len(keywords))
}

func (a *Analyzer) overall(s SubScores) float64 {
	return s.ContentSimilarity*a.profile.Content +
		s.SkillAlignment*a.profile.Skills +
		s.KeywordCoverage*a.profile.Keywords +
		s.ToneAppropriateness*a.profile.Tone +
		s.LengthAppropriateness*a.profile.Length +
		s.ExperienceLevelMatch*a.profile.Experience
}

func (a *Analyzer) recommend(s SubScores, missing skills.SkillSet, degenerate, letterEmpty bool) []string {
	var recs []string

	if degenerate {
		side := "job description"
		if letterEmpty {
			side = "cover letter"
		}
		recs = append(recs, fmt.Sprintf("The %s has too little usable text to analyze; provide more input.", side))
		return recs
	}

	if s.ContentSimilarity < recommendationThreshold {
		recs = append(recs, "Mirror more of the job description's language and responsibilities in your letter.")
	}
	if s.SkillAlignment < recommendationThreshold {
		if names := missing.Names(); len(names) > 0 {
			if len(names) > 5 {
				names = names[:5]
			}
			recs = append(recs, fmt.Sprintf("Address the required skills you do not mention yet: %s.", strings.Join(names, ", ")))
		} else {
			recs = append(recs, "Call out the skills the job asks for explicitly.")
		}
	}
	if s.KeywordCoverage < recommendationThreshold {
		recs = append(recs, "Add more relevant keywords from the job description.")
	}
	if s.ToneAppropriateness < recommendationThreshold {
		recs = append(recs, "Use a more formal, professional tone with complete sentences.")
	}
	if s.LengthAppropriateness < recommendationThreshold {
		recs = append(recs, "Aim for a letter between 200 and 400 words.")
	}
	if s.ExperienceLevelMatch < recommendationThreshold {
		recs = append(recs, "Speak to the experience level the job calls for.")
	}

	return recs
}

// displayPrecision is the number of decimal places kept when a result is
// flattened for export or display.
const displayPrecision = 4

// Flatten renders the result as a flat key/value record suitable for CSV
// rows or JSON-ish reporting. Scores are formatted with displayPrecision
// decimals; list values are joined with "; ".
func (r *MatchResult) Flatten() map[string]string {
	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', displayPrecision, 64)
	}
	return map[string]string{
		"overall_score":          f(r.OverallScore),
		"content_similarity":     f(r.Scores.ContentSimilarity),
		"skill_alignment":        f(r.Scores.SkillAlignment),
		"tone_appropriateness":   f(r.Scores.ToneAppropriateness),
		"length_appropriateness": f(r.Scores.LengthAppropriateness),
		"keyword_coverage":       f(r.Scores.KeywordCoverage),
		"experience_level_match": f(r.Scores.ExperienceLevelMatch),
		"letter_tier":            r.LetterTier,
		"job_tier":               r.JobTier,
		"matched_skills":         strings.Join(r.MatchedSkills, "; "),
		"missing_skills":         strings.Join(r.MissingSkills, "; "),
		"recommendations":        strings.Join(r.Recommendations, "; "),
	}
}
