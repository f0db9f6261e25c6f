package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/config"
	"portfolio-api/internal/handlers"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App is the HTTP server and everything it depends on.
type App struct {
	*Core

	cfg    *config.Config
	logger *zap.Logger
	server *http.Server
}

// New builds the application from cfg.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	core, err := OpenCore(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := core.BootstrapAdmin(context.Background(), cfg, logger); err != nil {
		core.Close()
		return nil, err
	}

	tokens := auth.NewTokens(auth.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	})
	mailer := notify.New(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		To:       cfg.NotifyTo,
	}, logger)

	h := handlers.New(handlers.Deps{
		Service: core.Service,
		Tokens:  tokens,
		Hub:     core.Hub,
		Mailer:  mailer,
		SiteURL: cfg.SiteURL,
		Logger:  logger,
	})

	gin.SetMode(cfg.GinMode)
	router := routes.SetupRoutes(routes.Options{
		Handler:        h,
		Tokens:         tokens,
		DB:             core.DB,
		Logger:         logger,
		CORSOrigin:     cfg.CORSOrigin,
		ContactLimiter: middleware.NewRateLimiter(cfg.ContactRatePerMinute, cfg.ContactRateBurst),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{Core: core, cfg: cfg, logger: logger, server: server}, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until SIGINT/SIGTERM or a listener error, then shuts down.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http-server-starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			a.Core.Close()
			return err
		}
	}
	return a.Shutdown()
}

// Shutdown stops the HTTP server and releases resources.
func (a *App) Shutdown() error {
	a.logger.Info("http-server-shutting-down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.Core.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("http-server-shutdown-complete")
	return nil
}
