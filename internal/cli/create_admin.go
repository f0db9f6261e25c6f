package cli

import (
	"fmt"

	"portfolio-api/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin user or reset its password",
	Example: `  portfolio-api create-admin --email me@example.com --password 'long-secret'
  portfolio-api create-admin --email me@example.com --password 'long-secret' --name "Alex Smith"`,
	RunE: runCreateAdmin,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(createAdminCmd)
	createAdminCmd.Flags().String("email", "", "admin email (required)")
	createAdminCmd.Flags().String("password", "", "admin password, at least 8 characters (required)")
	createAdminCmd.Flags().String("name", "", "display name shown on the profile")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")

	core, err := app.OpenCore(cfg, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	u, created, err := core.Service.EnsureAdmin(cmd.Context(), email, password, name)
	if err != nil {
		return err
	}

	logger.Info("admin-saved", zap.String("email", u.Email), zap.Bool("created", created))
	verb := "updated"
	if created {
		verb = "created"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s %s\n", u.Email, verb)
	return nil
}
