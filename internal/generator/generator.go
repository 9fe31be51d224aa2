// Package generator produces templated cover letters from a job description
// and a short free-text background. Output quality is deliberately template
// grade; the value is a reproducible draft the analyzer can then score.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/analyzer"
	"github.com/ashmarin/covermatch/internal/skills"
)

const (
	defaultPosition = "Professional"
	defaultCompany  = "your company"
	defaultName     = "Candidate"
	defaultSkills   = "relevant technologies"
	defaultValues   = "innovation and excellence"
	maxListedSkills = 5
)

var (
	rePosition = regexp.MustCompile(`(?i)(?:position|role|job title)\s*[:\-]\s*([^\n.]+)`)
	reSeeking  = regexp.MustCompile(`(?i)(?:looking for|seeking|hiring)\s+(?:a|an)?\s*([^\n.,]*?(?:engineer|developer|manager|analyst|specialist|architect)[^\n.,]*)`)
	reCompany  = regexp.MustCompile(`(?i)(?:company|employer)\s*[:\-]\s*([^\n.,]+)`)
	reAtPlace  = regexp.MustCompile(`\b(?:at|join)\s+([A-Z][A-Za-z0-9&]*(?:\s+[A-Z][A-Za-z0-9&]*)*)`)
	reName     = regexp.MustCompile(`(?i:my name is|i am|i'm)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	reLeadName = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	reYears    = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)
)

// companyValues are the phrases probed for in the job text to personalize the
// interest paragraph.
var companyValues = []string{
	"innovation", "excellence", "collaboration", "growth",
	"integrity", "diversity", "customer focus",
}

// JobInfo is what the generator managed to read out of a job description.
type JobInfo struct {
	Position string
	Company  string
	Values   string
}

// CandidateInfo is what the generator managed to read out of the user's
// background text.
type CandidateInfo struct {
	Name   string
	Years  int // -1 when not stated
	Skills []string
	Tier   analyzer.Tier
}

// Letter is one generated draft plus the extraction context it was built from.
type Letter struct {
	Text      string
	Tier      analyzer.Tier
	Job       JobInfo
	Candidate CandidateInfo
}

// Generator builds cover letter drafts. Template and phrase selection draws
// from the supplied rand source, so a fixed seed reproduces the exact letter.
type Generator struct {
	extractor *skills.Extractor
	rng       *rand.Rand
	logger    *zap.Logger
}

// New wires a generator. The extractor and rand source are both required;
// callers own the seed so runs stay reproducible when they want them to be.
func New(extractor *skills.Extractor, rng *rand.Rand, logger *zap.Logger) (*Generator, error) {
	if extractor == nil {
		return nil, errors.New("skill extractor is required")
	}
	if rng == nil {
		return nil, errors.New("rand source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{extractor: extractor, rng: rng, logger: logger}, nil
}

// ExtractJobInfo pulls the position, company name, and value keywords out of
// a job description with naive patterns. Missing pieces fall back to neutral
// defaults rather than failing.
func (g *Generator) ExtractJobInfo(job string) JobInfo {
	info := JobInfo{Position: defaultPosition, Company: defaultCompany, Values: defaultValues}

	if m := rePosition.FindStringSubmatch(job); m != nil {
		info.Position = orDefault(cleanFragment(m[1]), defaultPosition)
	} else if m := reSeeking.FindStringSubmatch(job); m != nil {
		info.Position = orDefault(cleanFragment(m[1]), defaultPosition)
	}

	if m := reCompany.FindStringSubmatch(job); m != nil {
		info.Company = orDefault(cleanFragment(m[1]), defaultCompany)
	} else if m := reAtPlace.FindStringSubmatch(job); m != nil {
		info.Company = orDefault(cleanFragment(m[1]), defaultCompany)
	}

	lower := strings.ToLower(job)
	var found []string
	for _, v := range companyValues {
		if strings.Contains(lower, v) {
			found = append(found, v)
		}
	}
	if len(found) > 0 {
		if len(found) > 3 {
			found = found[:3]
		}
		info.Values = strings.Join(found, ", ")
	}
	return info
}

// ExtractCandidateInfo pulls the candidate's name, stated years of
// experience, and recognized skills out of the background text.
func (g *Generator) ExtractCandidateInfo(background string) CandidateInfo {
	info := CandidateInfo{Name: defaultName, Years: -1}

	if m := reName.FindStringSubmatch(background); m != nil {
		info.Name = m[1]
	} else if m := reLeadName.FindStringSubmatch(strings.TrimSpace(background)); m != nil {
		info.Name = m[1]
	}

	if m := reYears.FindStringSubmatch(strings.ToLower(background)); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			info.Years = years
		}
	}

	info.Skills = g.extractor.Extract(background).Names()

	if info.Years >= 0 {
		info.Tier = analyzer.TierFromYears(info.Years)
	} else {
		info.Tier = analyzer.DetectTier(background)
	}
	return info
}

// Generate builds a cover letter draft for the given job description and
// candidate background. An undetected tier falls back to mid-level, matching
// how the template pools are organized.
func (g *Generator) Generate(job, background string) (*Letter, error) {
	if strings.TrimSpace(job) == "" {
		return nil, errors.New("job description is empty")
	}

	jobInfo := g.ExtractJobInfo(job)
	candidate := g.ExtractCandidateInfo(background)

	tier := candidate.Tier
	if tier == analyzer.TierUnknown {
		tier = analyzer.TierMid
	}

	pool := tierTemplates[tier]
	template := pool[g.rng.Intn(len(pool))]

	keySkills := defaultSkills
	if len(candidate.Skills) > 0 {
		listed := candidate.Skills
		if len(listed) > maxListedSkills {
			listed = listed[:maxListedSkills]
		}
		keySkills = strings.Join(listed, ", ")
	}

	years := "several years"
	if candidate.Years >= 0 {
		years = fmt.Sprintf("%d years", candidate.Years)
	}

	replacer := strings.NewReplacer(
		"{hiring_manager}", "Hiring Manager",
		"{opening_phrase}", openingPhrases[g.rng.Intn(len(openingPhrases))],
		"{closing_phrase}", closingPhrases[g.rng.Intn(len(closingPhrases))],
		"{position}", jobInfo.Position,
		"{company}", jobInfo.Company,
		"{company_values}", jobInfo.Values,
		"{key_skills}", keySkills,
		"{years_experience}", years,
		"{candidate_name}", candidate.Name,
	)
	text := cleanLetter(replacer.Replace(template))

	g.logger.Debug("generated cover letter",
		zap.String("tier", tier.String()),
		zap.String("position", jobInfo.Position),
		zap.String("company", jobInfo.Company),
		zap.Int("skills", len(candidate.Skills)),
	)

	return &Letter{Text: text, Tier: tier, Job: jobInfo, Candidate: candidate}, nil
}

var reTrailingNoise = regexp.MustCompile(`(?i)\s+(?:with|for|who|that|to join|position|role|job)\b.*$`)

// cleanFragment trims a regex capture down to a presentable phrase.
func cleanFragment(s string) string {
	s = strings.TrimSpace(s)
	s = reTrailingNoise.ReplaceAllString(s, "")
	return strings.TrimRight(s, " .,!?")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var reSpaces = regexp.MustCompile(` +`)

// cleanLetter collapses duplicate spaces per line while keeping the paragraph
// structure intact.
func cleanLetter(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(reSpaces.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
