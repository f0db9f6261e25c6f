package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExperienceInput is the full set of editable experience fields. Dates accept
// RFC 3339 timestamps as well as plain dates such as 2024-01-31.
type ExperienceInput struct {
	Title       string   `json:"title" binding:"required"`
	Company     string   `json:"company" binding:"required"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate" binding:"required"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	SortOrder   int      `json:"sortOrder"`
}

func (in ExperienceInput) apply(e *models.Experience) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Company) == "" {
		return fmt.Errorf("%w: title and company are required", ErrInvalidInput)
	}
	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return err
	}
	var end *time.Time
	if !in.Current && strings.TrimSpace(in.EndDate) != "" {
		t, err := parseDate("endDate", in.EndDate)
		if err != nil {
			return err
		}
		if t.Before(start) {
			return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
		}
		end = &t
	}

	e.Title = strings.TrimSpace(in.Title)
	e.Company = strings.TrimSpace(in.Company)
	e.Location = in.Location
	e.StartDate = start
	e.EndDate = end
	e.Current = in.Current
	e.Description = in.Description
	e.Highlights = models.StringList(in.Highlights).Compact()
	e.SortOrder = in.SortOrder
	return nil
}

// Experience returns the work history, newest first, through the cache.
// Failures degrade to an empty list.
func (s *Service) Experience(ctx context.Context) cache.Result[[]models.Experience] {
	return cache.FetchOr(ctx, s.cache, cache.KeyExperience, s.loadExperience, []models.Experience{})
}

func (s *Service) loadExperience(ctx context.Context) ([]models.Experience, error) {
	var items []models.Experience
	if err := s.db.WithContext(ctx).Order("start_date DESC").Order("sort_order ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	return items, nil
}

// ExperienceByID returns one experience entry, uncached.
func (s *Service) ExperienceByID(ctx context.Context, id string) (*models.Experience, error) {
	var e models.Experience
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// CreateExperience stores a new experience entry.
func (s *Service) CreateExperience(ctx context.Context, in ExperienceInput) (*models.Experience, error) {
	var e models.Experience
	if err := in.apply(&e); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}

	s.cache.Invalidate(cache.KeyExperience)
	s.logger.Info("experience-created", zap.String("id", e.ID))
	return &e, nil
}

// UpdateExperience replaces the fields of the entry with id.
func (s *Service) UpdateExperience(ctx context.Context, id string, in ExperienceInput) (*models.Experience, error) {
	var e models.Experience
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := in.apply(&e); err != nil {
			return err
		}
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update experience %s: %w", id, err)
	}

	s.cache.Invalidate(cache.KeyExperience)
	s.logger.Info("experience-updated", zap.String("id", id))
	return &e, nil
}

// DeleteExperience removes the entry with id.
func (s *Service) DeleteExperience(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Experience{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete experience %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.cache.Invalidate(cache.KeyExperience)
	s.logger.Info("experience-deleted", zap.String("id", id))
	return nil
}
