package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/scoring"
	"github.com/heartbeam/matchsim/internal/scoring/gemini"
	"github.com/heartbeam/matchsim/internal/secrets"
)

const (
	app = "matchsim"

	defaultListen  = ":8080"
	defaultTimeout = 60 * time.Second
)

type Config struct {
	Listen  string         `mapstructure:"listen"`
	Scoring *ScoringConfig `mapstructure:"scoring"`
	AI      *AIConfig      `mapstructure:"ai"`
}

// ScoringConfig selects and configures the scoring backend.
type ScoringConfig struct {
	// Backend is "http" (forward to an external endpoint) or "gemini"
	// (run the date simulation locally).
	Backend        string `mapstructure:"backend"`
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchsim turns a dating profile into a simulated first date and a compatibility score",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchsim.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	if err := viper.BindEnv("scoring.endpoint", "MATCHSIM_SCORING_ENDPOINT"); err != nil {
		log.Fatalf("binding MATCHSIM_SCORING_ENDPOINT environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
}

func initConfig() {
	// Local development keeps the endpoint and API key in a .env file.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config is fine: env vars can carry everything.
		// An explicitly requested file that fails to parse is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); cfgFile != "" || !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Listen == "" {
		config.Listen = defaultListen
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}

	return config, nil
}

// buildScorer wires the configured scoring backend: the external HTTP gateway
// by default, or the local Gemini date simulator.
func buildScorer(ctx context.Context, config *Config, logger *zap.Logger) (scoring.Scorer, error) {
	backend := strings.ToLower(strings.TrimSpace(config.Scoring.Backend))
	if backend == "" {
		backend = "http"
	}

	switch backend {
	case "http":
		endpoint := strings.TrimSpace(config.Scoring.Endpoint)
		if endpoint == "" {
			return nil, fmt.Errorf("scoring.endpoint is required for the http backend (or set MATCHSIM_SCORING_ENDPOINT)")
		}

		timeout := defaultTimeout
		if config.Scoring.TimeoutSeconds > 0 {
			timeout = time.Duration(config.Scoring.TimeoutSeconds) * time.Second
		}

		return scoring.NewClient(endpoint, timeout, logger), nil

	case "gemini":
		geminiCfg := &GeminiConfig{}
		if config.AI != nil && config.AI.Gemini != nil {
			geminiCfg = config.AI.Gemini
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: geminiCfg.APIKey,
			File:  geminiCfg.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
		if err != nil {
			return nil, err
		}

		logger.Debug("using gemini scoring backend", zap.String("model", generator.Model()))

		return gemini.NewSimulator(generator, logger, geminiCfg.MaxLogLength), nil

	default:
		return nil, fmt.Errorf("unknown scoring backend %q: expected http or gemini", backend)
	}
}
