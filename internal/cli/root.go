// Package cli holds the portfolio-api commands.
package cli

import (
	"fmt"
	"os"

	"portfolio-api/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "portfolio-api",
	Short: "Portfolio site backend",
	Long: `Portfolio site backend: public pages backed by a freshness cache,
an admin API for profile, projects, skills, experience and messages,
and realtime cache invalidation over websockets.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().String("config", "", "optional config file (yaml, json or toml)")
}

// setup loads config and builds the logger shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
