package corpus

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashmarin/covermatch/internal/similarity"
	"github.com/ashmarin/covermatch/internal/skills"
	"github.com/ashmarin/covermatch/internal/vectorizer"
)

func newTestEngine(t *testing.T, letterTexts, jobTexts []string) *Engine {
	t.Helper()

	letters := &Corpus{}
	for _, text := range letterTexts {
		letters.Add("letter", text)
	}
	jobs := &Corpus{}
	for _, text := range jobTexts {
		jobs.Add("job", text)
	}

	taxonomy, err := skills.DefaultTaxonomy()
	if err != nil {
		t.Fatalf("loading taxonomy: %v", err)
	}

	return NewEngine(letters, jobs, skills.NewExtractor(taxonomy), similarity.DefaultWeights, nil)
}

func TestEngineRanksRelevantLetterFirst(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t,
		[]string{
			"python developer with react experience",
			"java backend engineer",
		},
		[]string{"looking for python and react developer"},
	)

	if err := engine.Fit(); err != nil {
		t.Fatalf("fit: %v", err)
	}

	first, err := engine.Score(0, 0)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	second, err := engine.Score(1, 0)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if first <= second {
		t.Fatalf("python/react letter must outscore the java letter: %v vs %v", first, second)
	}

	ranked, err := engine.BestLetters(0, 2)
	if err != nil {
		t.Fatalf("best letters: %v", err)
	}
	if ranked[0].LetterIndex != 0 {
		t.Fatalf("expected letter 0 ranked first, got %+v", ranked)
	}

	matched, _, err := engine.MatchedSkills(0, 0)
	if err != nil {
		t.Fatalf("matched skills: %v", err)
	}
	joined := strings.Join(matched, " ")
	if !strings.Contains(joined, "python") || !strings.Contains(joined, "react") {
		t.Fatalf("expected python and react among matched skills, got %v", matched)
	}
}

func TestEngineBestJobs(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t,
		[]string{"python developer with react experience"},
		[]string{
			"java spring backend position",
			"looking for python and react developer",
		},
	)
	if err := engine.Fit(); err != nil {
		t.Fatalf("fit: %v", err)
	}

	ranked, err := engine.BestJobs(0, 0)
	if err != nil {
		t.Fatalf("best jobs: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected both jobs ranked, got %d", len(ranked))
	}
	if ranked[0].JobIndex != 1 {
		t.Fatalf("expected the python/react job ranked first, got %+v", ranked)
	}
	if ranked[0].Score < ranked[1].Score {
		t.Fatalf("ranking not sorted by score: %+v", ranked)
	}

	limited, err := engine.BestJobs(0, 1)
	if err != nil {
		t.Fatalf("best jobs: %v", err)
	}
	if len(limited) != 1 || limited[0].JobIndex != 1 {
		t.Fatalf("expected only the best job, got %+v", limited)
	}

	if _, err := engine.BestJobs(5, 0); err == nil {
		t.Fatalf("expected error for out-of-range letter index")
	}
}

func TestEngineMatchedSkillsBounds(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t,
		[]string{"python developer"},
		[]string{"looking for a python developer"},
	)
	if err := engine.Fit(); err != nil {
		t.Fatalf("fit: %v", err)
	}

	for _, pair := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if _, _, err := engine.MatchedSkills(pair[0], pair[1]); err == nil {
			t.Fatalf("expected error for indices %v", pair)
		}
	}
}

func TestEngineFitEmptyCorpus(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, []string{""}, []string{"   "})
	if err := engine.Fit(); !errors.Is(err, vectorizer.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestEngineScoreBeforeFit(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, []string{"python"}, []string{"python"})
	if _, err := engine.Score(0, 0); err == nil {
		t.Fatalf("expected error when scoring before fit")
	}
}

func TestEngineTopMatchesOrdering(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t,
		[]string{
			"python developer with react experience",
			"java backend engineer with spring",
		},
		[]string{
			"looking for python and react developer",
			"java spring backend position",
		},
	)
	if err := engine.Fit(); err != nil {
		t.Fatalf("fit: %v", err)
	}

	matches, err := engine.TopMatches(0)
	if err != nil {
		t.Fatalf("top matches: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("expected 4 pairs, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("matches not sorted by score: %+v", matches)
		}
	}

	limited, err := engine.TopMatches(2)
	if err != nil {
		t.Fatalf("top matches: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 limited matches, got %d", len(limited))
	}
}

func TestEngineExportCSV(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t,
		[]string{"python developer with react experience"},
		[]string{"looking for python and react developer"},
	)
	if err := engine.Fit(); err != nil {
		t.Fatalf("fit: %v", err)
	}

	var buf bytes.Buffer
	if err := engine.ExportCSV(&buf, 10); err != nil {
		t.Fatalf("export csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "letter_index,job_index,score") {
		t.Fatalf("unexpected csv header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "0,0,") {
		t.Fatalf("unexpected csv row: %q", lines[1])
	}
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"b_second.txt": "java backend engineer",
		"a_first.txt":  "python developer",
		"ignored.md":   "not a corpus file",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", c.Len())
	}
	// Sorted file order keeps indices stable.
	if c.Doc(0).Name != "a_first.txt" || c.Doc(1).Name != "b_second.txt" {
		t.Fatalf("unexpected document order: %q, %q", c.Doc(0).Name, c.Doc(1).Name)
	}
	if c.Doc(0).Tokens()[0] != "python" {
		t.Fatalf("expected normalized tokens, got %v", c.Doc(0).Tokens())
	}
	if c.Doc(0).WordCount() != 2 {
		t.Fatalf("expected 2 raw words, got %d", c.Doc(0).WordCount())
	}

	if _, err := LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
