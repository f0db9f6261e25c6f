package cli

import (
	"fmt"

	"portfolio-api/internal/app"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Opens and migrates the database, bootstraps the admin user from
ADMIN_EMAIL/ADMIN_PASSWORD when set, and serves the public and admin API
until SIGINT or SIGTERM.`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
