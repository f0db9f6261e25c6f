package portfolio

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SkillInput is the full set of editable skill fields.
type SkillInput struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category" binding:"required"`
	Proficiency       int    `json:"proficiency" binding:"min=0,max=100"`
	YearsOfExperience int    `json:"yearsOfExperience" binding:"min=0"`
}

func (in SkillInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	}
	if in.Proficiency < 0 || in.Proficiency > 100 {
		return fmt.Errorf("%w: proficiency must be between 0 and 100", ErrInvalidInput)
	}
	if in.YearsOfExperience < 0 {
		return fmt.Errorf("%w: yearsOfExperience must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in SkillInput) apply(sk *models.Skill) {
	sk.Name = strings.TrimSpace(in.Name)
	sk.Category = strings.TrimSpace(in.Category)
	sk.Proficiency = in.Proficiency
	sk.YearsOfExperience = in.YearsOfExperience
}

// Skills returns every skill ordered by category then name, through the cache.
// Failures degrade to an empty list.
func (s *Service) Skills(ctx context.Context) cache.Result[[]models.Skill] {
	return cache.FetchOr(ctx, s.cache, cache.KeySkills, s.loadSkills, []models.Skill{})
}

func (s *Service) loadSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.db.WithContext(ctx).Order("category ASC").Order("name ASC").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	return skills, nil
}

// Skill returns one skill by ID, uncached.
func (s *Service) Skill(ctx context.Context, id string) (*models.Skill, error) {
	var sk models.Skill
	if err := s.db.WithContext(ctx).First(&sk, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sk, nil
}

// CreateSkill stores a new skill.
func (s *Service) CreateSkill(ctx context.Context, in SkillInput) (*models.Skill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var sk models.Skill
	in.apply(&sk)
	if err := s.db.WithContext(ctx).Create(&sk).Error; err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}

	s.cache.Invalidate(cache.KeySkills)
	s.logger.Info("skill-created", zap.String("id", sk.ID))
	return &sk, nil
}

// UpdateSkill replaces the fields of the skill with id.
func (s *Service) UpdateSkill(ctx context.Context, id string, in SkillInput) (*models.Skill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var sk models.Skill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sk, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		in.apply(&sk)
		return tx.Save(&sk).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update skill %s: %w", id, err)
	}

	s.cache.Invalidate(cache.KeySkills)
	s.logger.Info("skill-updated", zap.String("id", id))
	return &sk, nil
}

// DeleteSkill removes the skill with id.
func (s *Service) DeleteSkill(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Skill{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete skill %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.cache.Invalidate(cache.KeySkills)
	s.logger.Info("skill-deleted", zap.String("id", id))
	return nil
}
