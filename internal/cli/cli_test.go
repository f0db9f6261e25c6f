package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCreateAdmin(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "portfolio.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, _, err := runCommand(t, "create-admin", "--email", "Me@Example.com", "--password", "supersecret", "--name", "Me")
	require.NoError(t, err)
	require.Equal(t, "admin me@example.com created\n", out)

	out, _, err = runCommand(t, "create-admin", "--email", "me@example.com", "--password", "another-secret", "--name", "")
	require.NoError(t, err)
	require.Equal(t, "admin me@example.com updated\n", out)

	_, _, err = runCommand(t, "create-admin", "--email", "me@example.com", "--password", "short", "--name", "")
	require.Error(t, err)
}

func TestMigrate(t *testing.T) {
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "portfolio.db"))
	t.Setenv("LOG_LEVEL", "error")

	_, _, err := runCommand(t, "migrate")
	require.NoError(t, err)
}

func TestFetch(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","name":"Go","category":"Backend"}]`))
	}))
	defer srv.Close()

	out, errOut, err := runCommand(t, "fetch", "skills", "--url", srv.URL)
	require.NoError(t, err)
	require.Contains(t, out, `"name": "Go"`)
	require.Contains(t, errOut, "source: fresh")

	_, _, err = runCommand(t, "fetch", "settings", "--url", srv.URL)
	require.Error(t, err)
}
