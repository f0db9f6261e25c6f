// Package handlers holds the gin handlers for the public site and the admin API.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/portfolio"
	"portfolio-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheSourceHeader reports whether a cached resource was fresh, cached or a fallback.
const CacheSourceHeader = "X-Cache"

// Deps are the collaborators a Handler needs.
type Deps struct {
	Service *portfolio.Service
	Tokens  *auth.Tokens
	Hub     *realtime.Hub
	Mailer  notify.Mailer
	SiteURL string
	Logger  *zap.Logger
}

// Handler serves every HTTP endpoint.
type Handler struct {
	svc     *portfolio.Service
	tokens  *auth.Tokens
	hub     *realtime.Hub
	mailer  notify.Mailer
	siteURL string
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a Handler.
func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Mailer == nil {
		d.Mailer = notify.NopMailer{}
	}
	if d.Hub == nil {
		d.Hub = realtime.NewHub()
	}
	return &Handler{
		svc:     d.Service,
		tokens:  d.Tokens,
		hub:     d.Hub,
		mailer:  d.Mailer,
		siteURL: strings.TrimRight(d.SiteURL, "/"),
		logger:  d.Logger,
		now:     time.Now,
	}
}

// fail writes the error response for an operation on resource.
func (h *Handler) fail(c *gin.Context, resource, op string, err error) {
	switch {
	case errors.Is(err, portfolio.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": capitalize(resource) + " not found"})
	case errors.Is(err, portfolio.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, portfolio.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request-failed",
			zap.String("resource", resource),
			zap.String("op", op),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op + " " + resource})
	}
}

func setSource(c *gin.Context, src cache.Source) {
	c.Header(CacheSourceHeader, string(src))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
