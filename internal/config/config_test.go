package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "8008", cfg.HTTPPort)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "memory", cfg.CacheBackend)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.False(t, cfg.MailEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CACHE_BACKEND", "ristretto")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("NOTIFY_TO", "owner@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.HTTPPort)
	require.Equal(t, 90*time.Second, cfg.CacheTTL)
	require.Equal(t, "ristretto", cfg.CacheBackend)
	require.True(t, cfg.MailEnabled())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_dsn: /tmp/site.db\ncache_ttl: 2m\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/site.db", cfg.DBDSN)
	require.Equal(t, 2*time.Minute, cfg.CacheTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:             "8008",
			GinMode:              "debug",
			DBDriver:             "sqlite",
			DBDSN:                "portfolio.db",
			JWTSecret:            DefaultJWTSecret,
			JWTTTL:               time.Hour,
			CacheTTL:             time.Minute,
			CacheBackend:         "memory",
			ContactRatePerMinute: 5,
			ContactRateBurst:     3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.HTTPPort = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.CacheBackend = "redis" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.CacheTTL = 0 }, wantErr: true},
		{name: "default secret in release", mutate: func(c *Config) { c.GinMode = "release" }, wantErr: true},
		{name: "custom secret in release", mutate: func(c *Config) {
			c.GinMode = "release"
			c.JWTSecret = "s3cret"
		}},
		{name: "zero burst", mutate: func(c *Config) { c.ContactRateBurst = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger("loud")
	require.Error(t, err)
}
