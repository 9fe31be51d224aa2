package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/ai"
	"github.com/ashmarin/covermatch/internal/ai/gemini"
	"github.com/ashmarin/covermatch/internal/analyzer"
	"github.com/ashmarin/covermatch/internal/logger"
	"github.com/ashmarin/covermatch/internal/secrets"
	"github.com/ashmarin/covermatch/internal/skills"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <cover-letter-file> <job-description-file>",
	Short: "Score one cover letter against one job description",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text or json")
	analyzeCmd.Flags().BoolP("review", "r", false, "ask the configured AI reviewer for a critique")
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	letter, err := readDocument(args[0])
	if err != nil {
		logger.Fatal("reading cover letter", zap.Error(err))
	}
	job, err := readDocument(args[1])
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	a, err := buildAnalyzer(config, logger)
	if err != nil {
		logger.Fatal("building the analyzer", zap.Error(err))
	}

	result := a.Analyze(letter, job)

	var review *ai.Review
	if wantReview, _ := cmd.Flags().GetBool("review"); wantReview {
		review, err = runReview(ctx, config, logger, letter, job, result)
		if err != nil {
			logger.Warn("skipping AI review", zap.Error(err))
		}
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		printJSON(result, review)
	case "text":
		printText(result, review)
	default:
		logger.Fatal("invalid output format", zap.String("format", format))
	}
}

func buildAnalyzer(config *Config, logger *zap.Logger) (*analyzer.Analyzer, error) {
	taxonomy, err := config.taxonomy()
	if err != nil {
		return nil, err
	}
	weights, err := config.similarityWeights()
	if err != nil {
		return nil, err
	}
	profile, err := config.analyzerProfile()
	if err != nil {
		return nil, err
	}

	return analyzer.New(analyzer.Config{
		Extractor:   skills.NewExtractor(taxonomy),
		Similarity:  weights,
		Profile:     profile,
		TopKeywords: config.TopKeywords,
		Logger:      logger,
	})
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("file %q is empty", path)
	}
	return string(data), nil
}

func runReview(ctx context.Context, config *Config, log *zap.Logger, letter, job string, result *analyzer.MatchResult) (*ai.Review, error) {
	reviewer, err := newReviewer(ctx, config.AI, log)
	if err != nil {
		return nil, err
	}
	return reviewer.Review(ctx, letter, job, result)
}

func newReviewer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Reviewer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai review is not enabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai review is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	aiLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	client, err := gemini.NewClient(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, aiLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(client, aiLogger, cfg.Gemini.MaxLogLength), nil
}

func printJSON(result *analyzer.MatchResult, review *ai.Review) {
	payload := map[string]any{"analysis": result}
	if review != nil {
		payload["review"] = map[string]any{
			"verdict":        review.Verdict,
			"score":          review.Score,
			"suggestions":    review.Suggestions,
			"improved_draft": review.ImprovedDraft,
		}
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("encoding result: %s", err)
	}
	fmt.Println(string(pretty))
}

func printText(result *analyzer.MatchResult, review *ai.Review) {
	flat := result.Flatten()

	fmt.Printf("overall score: %s\n\n", flat["overall_score"])

	keys := []string{
		"content_similarity", "skill_alignment", "keyword_coverage",
		"tone_appropriateness", "length_appropriateness", "experience_level_match",
	}
	for _, key := range keys {
		fmt.Printf("  %-24s %s\n", key, flat[key])
	}

	fmt.Printf("\nexperience: letter=%s job=%s\n", result.LetterTier, result.JobTier)

	if len(result.MatchedSkills) > 0 {
		fmt.Printf("matched skills: %s\n", strings.Join(result.MatchedSkills, ", "))
	}
	if len(result.MissingSkills) > 0 {
		missing := append([]string(nil), result.MissingSkills...)
		sort.Strings(missing)
		fmt.Printf("missing skills: %s\n", strings.Join(missing, ", "))
	}

	if len(result.Recommendations) > 0 {
		fmt.Println("\nrecommendations:")
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}

	if review != nil {
		fmt.Printf("\nAI review (%s, score %.2f):\n", review.Verdict, review.Score)
		for _, s := range review.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
		if review.ImprovedDraft != "" {
			fmt.Printf("\nimproved draft:\n%s\n", review.ImprovedDraft)
		}
	}
}
