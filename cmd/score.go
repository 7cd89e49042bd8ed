package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/logger"
	"github.com/heartbeam/matchsim/internal/profile"
	"github.com/heartbeam/matchsim/internal/scoring"
	"github.com/heartbeam/matchsim/internal/session"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Submit a profile file for a one-shot date simulation",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("profile", "p", "", "path to a YAML or JSON file with the signup form fields")
	scoreCmd.Flags().StringP("transcript", "t", "", "voice transcript text")
	scoreCmd.Flags().String("transcript-file", "", "path to a file with the voice transcript")
	scoreCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before submitting")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	fields, err := loadProfileFile(cmd.Flag("profile").Value.String())
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	transcript, err := loadTranscript(cmd)
	if err != nil {
		logger.Fatal("loading the transcript", zap.Error(err))
	}

	description := profile.Describe(fields, transcript)
	if description == "" {
		logger.Fatal("nothing to submit: the profile file and transcript are both empty")
	}

	fmt.Printf("Profile description:\n\n%s\n\n", description)

	if auto, _ := cmd.Flags().GetBool("yes"); !auto {
		confirm := promptui.Prompt{Label: "Submit this profile", IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			logger.Info("submission cancelled")
			return
		}
	}

	scorer, err := buildScorer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building a scoring backend", zap.Error(err))
	}

	machine := session.New()
	if err := machine.Begin(); err != nil {
		logger.Fatal("starting a submission", zap.Error(err))
	}

	result, err := scorer.Submit(ctx, description)
	machine.Finish(err)
	if err != nil {
		kind, _ := scoring.KindOf(err)
		logger.Debug("submission failed", zap.String("kind", kind.String()), zap.Error(err))
		logger.Fatal("submission failed",
			zap.String("state", machine.State().String()),
			zap.String("message", scoring.UserMessage(err)),
		)
	}

	printResult(result)
}

func loadProfileFile(path string) (profile.Fields, error) {
	if strings.TrimSpace(path) == "" {
		return profile.Fields{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return profile.Fields{}, err
	}

	return profile.FromMap(v.AllSettings())
}

func loadTranscript(cmd *cobra.Command) (string, error) {
	if path := cmd.Flag("transcript-file").Value.String(); strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	return cmd.Flag("transcript").Value.String(), nil
}

func printResult(result *scoring.ScoreResult) {
	fmt.Printf("Compatibility score: %.0f\n\n%s\n", result.Score, result.Summary)

	if result.Meta == nil {
		return
	}

	if result.Meta.CandidateProfile != "" {
		fmt.Printf("\nCandidate profile:\n%s\n", result.Meta.CandidateProfile)
	}
	if len(result.Meta.CompatibilityFactors) > 0 {
		fmt.Println("\nCompatibility factors:")
		for factor, explanation := range result.Meta.CompatibilityFactors {
			fmt.Printf("  - %s: %s\n", factor, explanation)
		}
	}
	if result.Meta.PotentialConcerns != "" {
		fmt.Printf("\nPotential concerns: %s\n", result.Meta.PotentialConcerns)
	}
}
