package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ashmarin/covermatch/internal/generator"
	"github.com/ashmarin/covermatch/internal/logger"
	"github.com/ashmarin/covermatch/internal/skills"
)

var generateCmd = &cobra.Command{
	Use:   "generate <job-description-file> <background-file>",
	Short: "Draft a templated cover letter for a job description",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		generate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64P("seed", "s", 0, "random seed for reproducible drafts (0 means time-based)")
	generateCmd.Flags().BoolP("score", "a", false, "also score the draft against the job description")
}

func generate(cmd *cobra.Command, args []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	job, err := readDocument(args[0])
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}
	background, err := readDocument(args[1])
	if err != nil {
		logger.Fatal("reading candidate background", zap.Error(err))
	}

	taxonomy, err := config.taxonomy()
	if err != nil {
		logger.Fatal("loading skill taxonomy", zap.Error(err))
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen, err := generator.New(skills.NewExtractor(taxonomy), rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		logger.Fatal("building the generator", zap.Error(err))
	}

	letter, err := gen.Generate(job, background)
	if err != nil {
		logger.Fatal("generating the cover letter", zap.Error(err))
	}

	logger.Info("generated cover letter",
		zap.String("tier", letter.Tier.String()),
		zap.String("position", letter.Job.Position),
		zap.Int64("seed", seed),
	)

	fmt.Println(letter.Text)

	if score, _ := cmd.Flags().GetBool("score"); score {
		a, err := buildAnalyzer(config, logger)
		if err != nil {
			logger.Fatal("building the analyzer", zap.Error(err))
		}
		fmt.Println()
		printText(a.Analyze(letter.Text, job), nil)
	}
}
