package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/corpus"
	"github.com/ashmarin/covermatch/internal/logger"
	"github.com/ashmarin/covermatch/internal/skills"
)

const (
	PromptTopMatches  = "Show top matches"
	PromptBestLetters = "Rank letters for a job"
	PromptBestJobs    = "Rank jobs for a letter"
	PromptExportCSV   = "Export matches to CSV"
	PromptQuit        = "Quit"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptTopMatches, PromptBestLetters, PromptBestJobs, PromptExportCSV, PromptQuit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score every cover letter against every job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("letters-dir", "l", "", "directory with cover letter .txt files")
	matchCmd.Flags().StringP("jobs-dir", "w", "", "directory with job description .txt files")
	matchCmd.Flags().IntP("top", "t", 10, "how many matches to show or export")
	matchCmd.Flags().StringP("export", "e", "", "write top matches as CSV to this file and exit (no menu)")

	viper.BindPFlag("letters-dir", matchCmd.Flags().Lookup("letters-dir"))
	viper.BindPFlag("jobs-dir", matchCmd.Flags().Lookup("jobs-dir"))
}

// match is the batch corpus command.
func match(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	lettersDir := viper.GetString("letters-dir")
	jobsDir := viper.GetString("jobs-dir")
	if lettersDir == "" || jobsDir == "" {
		logger.Fatal("both corpus directories are required",
			zap.String("hint", "set --letters-dir and --jobs-dir flags or letters-dir/jobs-dir config keys"),
		)
	}

	engine, err := buildEngine(config, lettersDir, jobsDir, logger)
	if err != nil {
		logger.Fatal("building the matching engine", zap.Error(err))
	}

	topN, _ := cmd.Flags().GetInt("top")

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := exportCSV(engine, exportPath, topN); err != nil {
			logger.Fatal("exporting matches", zap.Error(err))
		}
		logger.Info("exported matches", zap.String("filename", exportPath), zap.Int("top", topN))
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, engine, topN, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func buildEngine(config *Config, lettersDir, jobsDir string, logger *zap.Logger) (*corpus.Engine, error) {
	letters, err := corpus.LoadDir(lettersDir)
	if err != nil {
		return nil, fmt.Errorf("loading cover letters: %w", err)
	}
	jobs, err := corpus.LoadDir(jobsDir)
	if err != nil {
		return nil, fmt.Errorf("loading job descriptions: %w", err)
	}

	taxonomy, err := config.taxonomy()
	if err != nil {
		return nil, err
	}
	weights, err := config.similarityWeights()
	if err != nil {
		return nil, err
	}

	engine := corpus.NewEngine(letters, jobs, skills.NewExtractor(taxonomy), weights, logger)
	if err := engine.Fit(); err != nil {
		return nil, err
	}
	return engine, nil
}

func handleMatchAction(action string, engine *corpus.Engine, topN int, logger *zap.Logger) error {
	switch action {
	case PromptTopMatches:
		matches, err := engine.TopMatches(topN)
		if err != nil {
			return err
		}
		printMatches(engine, matches)
		return nil
	case PromptBestLetters:
		return bestLettersInteractive(engine, topN)
	case PromptBestJobs:
		return bestJobsInteractive(engine, topN)
	case PromptExportCSV:
		filename := fmt.Sprintf("%s-matches.csv", app)
		if err := exportCSV(engine, filename, topN); err != nil {
			return err
		}
		logger.Info("exported matches", zap.String("filename", filename))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func bestLettersInteractive(engine *corpus.Engine, topN int) error {
	items := make([]string, 0, engine.Jobs().Len())
	for _, doc := range engine.Jobs().Docs() {
		items = append(items, fmt.Sprintf("%d %s / %s", doc.ID, doc.Name, doc.Preview(60)))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job description and press ENTER",
		Items: items,
	}

	idx, _, err := jobPrompt.Run()
	if err != nil {
		return err
	}

	matches, err := engine.BestLetters(idx, topN)
	if err != nil {
		return err
	}
	printMatches(engine, matches)
	return nil
}

func bestJobsInteractive(engine *corpus.Engine, topN int) error {
	items := make([]string, 0, engine.Letters().Len())
	for _, doc := range engine.Letters().Docs() {
		items = append(items, fmt.Sprintf("%d %s / %s", doc.ID, doc.Name, doc.Preview(60)))
	}

	letterPrompt := promptui.Select{
		Label: "Choose a cover letter and press ENTER",
		Items: items,
	}

	idx, _, err := letterPrompt.Run()
	if err != nil {
		return err
	}

	matches, err := engine.BestJobs(idx, topN)
	if err != nil {
		return err
	}
	printMatches(engine, matches)
	return nil
}

func printMatches(engine *corpus.Engine, matches []corpus.Match) {
	if len(matches) == 0 {
		fmt.Println("no matches")
		return
	}

	for rank, m := range matches {
		letter := engine.Letters().Doc(m.LetterIndex)
		job := engine.Jobs().Doc(m.JobIndex)

		line := []string{
			fmt.Sprintf("%2d.", rank+1),
			strconv.FormatFloat(m.Score, 'f', 4, 64),
			fmt.Sprintf("%s (%d words) -> %s", letter.Name, letter.WordCount(), job.Name),
		}
		fmt.Println(strings.Join(line, "  "))

		if matched, _, err := engine.MatchedSkills(m.LetterIndex, m.JobIndex); err == nil && len(matched) > 0 {
			fmt.Printf("      shared skills: %s\n", strings.Join(matched, ", "))
		}
	}
}

func exportCSV(engine *corpus.Engine, filename string, topN int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return engine.ExportCSV(f, topN)
}
