package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/logger"
	"github.com/heartbeam/matchsim/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the submit-form proxy endpoint for the web front end",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default :8080)")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting matchsim", zap.String("version", version))

	scorer, err := buildScorer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building a scoring backend", zap.Error(err))
	}

	srv := server.New(scorer, logger)
	if err := srv.Run(config.Listen); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
