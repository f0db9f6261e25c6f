// Package app wires configuration into a running portfolio server.
package app

import (
	"context"
	"fmt"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/portfolio"
	"portfolio-api/internal/realtime"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Core is the persistence half of the application, shared by the server
// and the admin commands so that both invalidate the same cache store.
type Core struct {
	DB      *gorm.DB
	Cache   *cache.Freshness
	Hub     *realtime.Hub
	Service *portfolio.Service

	closeStore func()
}

// OpenCore opens and migrates the database and builds the freshness cache
// and content service on top of it.
func OpenCore(cfg *config.Config, logger *zap.Logger) (*Core, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, database.LogLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	store, closeStore, err := cache.OpenStore(cfg.CacheBackend, db, logger)
	if err != nil {
		return nil, fmt.Errorf("open cache store: %w", err)
	}

	hub := realtime.NewHub()
	fc := cache.New(store, cfg.CacheTTL,
		cache.WithLogger(logger),
		cache.WithInvalidationHook(hub.NotifyInvalidation(logger)),
	)

	logger.Info("core-ready",
		zap.String("db-driver", cfg.DBDriver),
		zap.String("cache-backend", cfg.CacheBackend),
		zap.Duration("cache-ttl", cfg.CacheTTL),
	)

	return &Core{
		DB:         db,
		Cache:      fc,
		Hub:        hub,
		Service:    portfolio.NewService(db, fc, logger),
		closeStore: closeStore,
	}, nil
}

// BootstrapAdmin creates or resets the admin from ADMIN_EMAIL/ADMIN_PASSWORD when both are set.
func (c *Core) BootstrapAdmin(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	u, created, err := c.Service.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, "")
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Info("admin-bootstrapped", zap.String("email", u.Email), zap.Bool("created", created))
	return nil
}

// Close releases the cache store and the database pool.
func (c *Core) Close() {
	c.closeStore()
	if sqlDB, err := c.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
