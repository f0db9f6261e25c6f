package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside release mode.
const DefaultJWTSecret = "development-insecure-secret-change-me"

// Config holds all application configuration.
type Config struct {
	// Application
	HTTPPort   string
	GinMode    string
	LogLevel   string
	CORSOrigin string
	SiteURL    string

	// Database
	DBDriver string // "sqlite" or "postgres"
	DBDSN    string

	// Admin auth
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string

	// Freshness cache
	CacheTTL     time.Duration
	CacheBackend string // "memory", "ristretto", "ttlcache" or "db"

	// Contact form
	ContactRatePerMinute int
	ContactRateBurst     int

	// Notification email
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	NotifyTo     string
}

var (
	validDrivers  = map[string]bool{"sqlite": true, "postgres": true}
	validBackends = map[string]bool{"memory": true, "ristretto": true, "ttlcache": true, "db": true}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8008")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origin", "*")
	v.SetDefault("site_url", "http://localhost:8008")

	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "portfolio.db")

	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("jwt_issuer", "portfolio-api")
	v.SetDefault("jwt_audience", "portfolio-admin")
	v.SetDefault("jwt_ttl", 24*time.Hour)
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password", "")

	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("cache_backend", "memory")

	v.SetDefault("contact_rate_per_minute", 5)
	v.SetDefault("contact_rate_burst", 3)

	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("notify_to", "")
}

// Load reads configuration from an optional .env file, an optional config file
// and the environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		HTTPPort:   v.GetString("http_port"),
		GinMode:    v.GetString("gin_mode"),
		LogLevel:   v.GetString("log_level"),
		CORSOrigin: v.GetString("cors_origin"),
		SiteURL:    v.GetString("site_url"),

		DBDriver: v.GetString("db_driver"),
		DBDSN:    v.GetString("db_dsn"),

		JWTSecret:     v.GetString("jwt_secret"),
		JWTIssuer:     v.GetString("jwt_issuer"),
		JWTAudience:   v.GetString("jwt_audience"),
		JWTTTL:        v.GetDuration("jwt_ttl"),
		AdminEmail:    v.GetString("admin_email"),
		AdminPassword: v.GetString("admin_password"),

		CacheTTL:     v.GetDuration("cache_ttl"),
		CacheBackend: v.GetString("cache_backend"),

		ContactRatePerMinute: v.GetInt("contact_rate_per_minute"),
		ContactRateBurst:     v.GetInt("contact_rate_burst"),

		SMTPHost:     v.GetString("smtp_host"),
		SMTPPort:     v.GetInt("smtp_port"),
		SMTPUser:     v.GetString("smtp_user"),
		SMTPPassword: v.GetString("smtp_password"),
		NotifyTo:     v.GetString("notify_to"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if !validDrivers[c.DBDriver] {
		return fmt.Errorf("DB_DRIVER must be 'sqlite' or 'postgres', got %q", c.DBDriver)
	}

	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN cannot be empty")
	}

	if !validBackends[c.CacheBackend] {
		return fmt.Errorf("CACHE_BACKEND must be one of memory, ristretto, ttlcache, db; got %q", c.CacheBackend)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}

	if c.GinMode == "release" && c.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in release mode")
	}

	if c.ContactRatePerMinute <= 0 || c.ContactRateBurst <= 0 {
		return fmt.Errorf("contact rate limit values must be positive")
	}

	return nil
}

// MailEnabled reports whether contact notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.NotifyTo != ""
}
