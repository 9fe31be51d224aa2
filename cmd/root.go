package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashmarin/covermatch/internal/analyzer"
	"github.com/ashmarin/covermatch/internal/similarity"
	"github.com/ashmarin/covermatch/internal/skills"
)

const (
	app = "covermatch"
)

type Config struct {
	LettersDir   string         `mapstructure:"letters-dir"`
	JobsDir      string         `mapstructure:"jobs-dir"`
	TaxonomyFile string         `mapstructure:"taxonomy-file"`
	TopKeywords  int            `mapstructure:"top-keywords"`
	Similarity   map[string]any `mapstructure:"similarity"`
	Weights      map[string]any `mapstructure:"weights"`
	AI           *AIConfig      `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "covermatch scores cover letters against job descriptions and drafts new ones",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is covermatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional unless given explicitly: every setting has
	// a usable default or a flag.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	return config, nil
}

// similarityWeights overlays the configured similarity weight map on the
// defaults.
func (c *Config) similarityWeights() (similarity.Weights, error) {
	weights := similarity.DefaultWeights
	if len(c.Similarity) == 0 {
		return weights, nil
	}
	if err := mapstructure.Decode(c.Similarity, &weights); err != nil {
		return weights, fmt.Errorf("decoding similarity weights: %w", err)
	}
	return weights, nil
}

// analyzerProfile overlays the configured sub-metric weight map on the
// default profile and validates the result.
func (c *Config) analyzerProfile() (analyzer.Profile, error) {
	profile := analyzer.DefaultProfile
	if len(c.Weights) == 0 {
		return profile, nil
	}
	if err := mapstructure.Decode(c.Weights, &profile); err != nil {
		return profile, fmt.Errorf("decoding analyzer weights: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return profile, err
	}
	return profile, nil
}

func (c *Config) taxonomy() (*skills.Taxonomy, error) {
	if c.TaxonomyFile != "" {
		return skills.LoadTaxonomy(c.TaxonomyFile)
	}
	return skills.DefaultTaxonomy()
}
