// Package portfolio holds the site's content: cached public reads and the
// admin writes that keep those caches honest.
package portfolio

import (
	"errors"
	"time"

	"portfolio-api/internal/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput wraps validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Service reads and writes portfolio content. Reads of the profile,
// projects, skills and experience go through the freshness cache; every
// write invalidates the keys it changes.
type Service struct {
	db     *gorm.DB
	cache  *cache.Freshness
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service.
func NewService(db *gorm.DB, c *cache.Freshness, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// Cache exposes the freshness cache for administrative clearing.
func (s *Service) Cache() *cache.Freshness {
	return s.cache
}

// ClearCache drops every cached resource.
func (s *Service) ClearCache() {
	s.cache.InvalidateAll()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
