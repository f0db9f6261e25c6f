package cli

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/client"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var fetchCmd = &cobra.Command{
	Use:       "fetch <profile|projects|skills|experience>",
	Short:     "Fetch a resource from a running server",
	Long:      `Fetches a resource through the API client and prints it as JSON. Failures print the same default the site falls back to.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{cache.KeyProfile, cache.KeyProjects, cache.KeySkills, cache.KeyExperience},
	RunE:      runFetch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().String("url", "http://localhost:8008", "base URL of the portfolio API")
	fetchCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
}

func runFetch(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	baseURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	c := client.NewClient(baseURL, client.WithLogger(logger))
	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	value, source, fetchErr := c.Fetch(ctx, args[0])
	if value == nil {
		return fetchErr
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", args[0], err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", source)
	return fetchErr
}
