package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/similarity"
	"github.com/ashmarin/covermatch/internal/skills"
	"github.com/ashmarin/covermatch/internal/vectorizer"
)

const previewLen = 100

// Match pairs a cover letter with a job description and their combined
// similarity score.
type Match struct {
	LetterIndex int
	JobIndex    int
	Score       float64
}

type side uint8

const (
	sideLetter side = iota
	sideJob
)

type cacheKey struct {
	side    side
	docID   int
	version uint64
}

// Engine fits one vector space over both corpora and serves pairwise
// similarity queries. Derived vectors and skill sets are cached per document,
// keyed by the vocabulary version, so a refit invalidates them naturally.
type Engine struct {
	letters   *Corpus
	jobs      *Corpus
	extractor *skills.Extractor
	weights   similarity.Weights
	logger    *zap.Logger

	vocab     *vectorizer.Vocabulary
	vectors   map[cacheKey]vectorizer.Vector
	skillSets map[cacheKey]skills.SkillSet
}

// NewEngine wires the matching engine. The similarity weights default to
// similarity.DefaultWeights when zero.
func NewEngine(letters, jobs *Corpus, extractor *skills.Extractor, weights similarity.Weights, logger *zap.Logger) *Engine {
	if weights == (similarity.Weights{}) {
		weights = similarity.DefaultWeights
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		letters:   letters,
		jobs:      jobs,
		extractor: extractor,
		weights:   weights,
		logger:    logger,
		vectors:   make(map[cacheKey]vectorizer.Vector),
		skillSets: make(map[cacheKey]skills.SkillSet),
	}
}

// Fit builds the shared vocabulary over both corpora, mirroring the combined
// fit used for consistent vectorization. Returns
// vectorizer.ErrEmptyCorpus (wrapped) when nothing usable was loaded.
func (e *Engine) Fit() error {
	docs := make([][]string, 0, e.letters.Len()+e.jobs.Len())
	for _, d := range e.letters.Docs() {
		docs = append(docs, d.Tokens())
	}
	for _, d := range e.jobs.Docs() {
		docs = append(docs, d.Tokens())
	}

	vocab, err := vectorizer.Fit(docs)
	if err != nil {
		return fmt.Errorf("fitting vocabulary: %w", err)
	}
	e.vocab = vocab

	e.logger.Info("fitted vocabulary",
		zap.Int("cover_letters", e.letters.Len()),
		zap.Int("job_descriptions", e.jobs.Len()),
		zap.Int("vocabulary_size", vocab.Len()),
	)
	return nil
}

// Vocabulary exposes the fitted vocabulary, or nil before Fit.
func (e *Engine) Vocabulary() *vectorizer.Vocabulary { return e.vocab }

// Letters returns the cover letter corpus.
func (e *Engine) Letters() *Corpus { return e.letters }

// Jobs returns the job description corpus.
func (e *Engine) Jobs() *Corpus { return e.jobs }

func (e *Engine) vector(s side, d *Document) vectorizer.Vector {
	key := cacheKey{side: s, docID: d.ID, version: e.vocab.Version()}
	if vec, ok := e.vectors[key]; ok {
		return vec
	}
	vec := e.vocab.Transform(d.Tokens())
	e.vectors[key] = vec
	return vec
}

func (e *Engine) skillSet(s side, d *Document) skills.SkillSet {
	key := cacheKey{side: s, docID: d.ID, version: e.vocab.Version()}
	if set, ok := e.skillSets[key]; ok {
		return set
	}
	set := e.extractor.Extract(d.Raw)
	e.skillSets[key] = set
	return set
}

// Score computes the combined similarity of one letter/job pair.
func (e *Engine) Score(letterIdx, jobIdx int) (float64, error) {
	if e.vocab == nil {
		return 0, fmt.Errorf("engine is not fitted")
	}
	if letterIdx < 0 || letterIdx >= e.letters.Len() {
		return 0, fmt.Errorf("cover letter index %d out of range", letterIdx)
	}
	if jobIdx < 0 || jobIdx >= e.jobs.Len() {
		return 0, fmt.Errorf("job description index %d out of range", jobIdx)
	}

	letter := e.letters.Doc(letterIdx)
	job := e.jobs.Doc(jobIdx)

	cos := similarity.Cosine(e.vector(sideLetter, letter), e.vector(sideJob, job))
	jac := similarity.Jaccard(letter.Tokens(), job.Tokens())
	return similarity.Combined(cos, jac, e.weights), nil
}

// MatchedSkills returns the skills a letter shares with a job and the job's
// skills the letter lacks.
func (e *Engine) MatchedSkills(letterIdx, jobIdx int) (matched, missing []string, err error) {
	if e.vocab == nil {
		return nil, nil, fmt.Errorf("engine is not fitted")
	}
	if letterIdx < 0 || letterIdx >= e.letters.Len() {
		return nil, nil, fmt.Errorf("cover letter index %d out of range", letterIdx)
	}
	if jobIdx < 0 || jobIdx >= e.jobs.Len() {
		return nil, nil, fmt.Errorf("job description index %d out of range", jobIdx)
	}
	letterSet := e.skillSet(sideLetter, e.letters.Doc(letterIdx))
	jobSet := e.skillSet(sideJob, e.jobs.Doc(jobIdx))
	return letterSet.Intersect(jobSet).Names(), jobSet.Diff(letterSet).Names(), nil
}

// BestLetters ranks cover letters for one job description, best first.
func (e *Engine) BestLetters(jobIdx, topN int) ([]Match, error) {
	if jobIdx < 0 || jobIdx >= e.jobs.Len() {
		return nil, fmt.Errorf("job description index %d out of range", jobIdx)
	}

	matches := make([]Match, 0, e.letters.Len())
	for i := 0; i < e.letters.Len(); i++ {
		score, err := e.Score(i, jobIdx)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{LetterIndex: i, JobIndex: jobIdx, Score: score})
	}
	return topMatches(matches, topN), nil
}

// BestJobs ranks job descriptions for one cover letter, best first.
func (e *Engine) BestJobs(letterIdx, topN int) ([]Match, error) {
	if letterIdx < 0 || letterIdx >= e.letters.Len() {
		return nil, fmt.Errorf("cover letter index %d out of range", letterIdx)
	}

	matches := make([]Match, 0, e.jobs.Len())
	for j := 0; j < e.jobs.Len(); j++ {
		score, err := e.Score(letterIdx, j)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{LetterIndex: letterIdx, JobIndex: j, Score: score})
	}
	return topMatches(matches, topN), nil
}

// TopMatches ranks every letter/job pair across both corpora, best first.
func (e *Engine) TopMatches(topN int) ([]Match, error) {
	if e.vocab == nil {
		return nil, fmt.Errorf("engine is not fitted")
	}

	matches := make([]Match, 0, e.letters.Len()*e.jobs.Len())
	for i := 0; i < e.letters.Len(); i++ {
		for j := 0; j < e.jobs.Len(); j++ {
			score, err := e.Score(i, j)
			if err != nil {
				return nil, err
			}
			matches = append(matches, Match{LetterIndex: i, JobIndex: j, Score: score})
		}
	}
	return topMatches(matches, topN), nil
}

// topMatches sorts by score descending with index tie-breaks so equal scores
// always come out in the same order.
func topMatches(matches []Match, topN int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].LetterIndex != matches[j].LetterIndex {
			return matches[i].LetterIndex < matches[j].LetterIndex
		}
		return matches[i].JobIndex < matches[j].JobIndex
	})
	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// ExportCSV writes the top pairwise matches as CSV rows: indices, score with
// four decimals, and short raw-text previews.
func (e *Engine) ExportCSV(w io.Writer, topN int) error {
	matches, err := e.TopMatches(topN)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"letter_index", "job_index", "score", "letter_preview", "job_preview"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, m := range matches {
		row := []string{
			strconv.Itoa(m.LetterIndex),
			strconv.Itoa(m.JobIndex),
			strconv.FormatFloat(m.Score, 'f', 4, 64),
			e.letters.Doc(m.LetterIndex).Preview(previewLen),
			e.jobs.Doc(m.JobIndex).Preview(previewLen),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
