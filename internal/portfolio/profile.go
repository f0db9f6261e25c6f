package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileInput carries a partial profile update; nil fields are left as is.
type ProfileInput struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Bio         *string `json:"bio"`
	Avatar      *string `json:"avatar"`
	HeroImage   *string `json:"heroImage"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	GithubURL   *string `json:"githubUrl"`
	LinkedinURL *string `json:"linkedinUrl"`
	TwitterURL  *string `json:"twitterUrl"`
	ResumeURL   *string `json:"resumeUrl"`
}

func (in ProfileInput) apply(u *models.User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&u.Name, in.Name)
	set(&u.Title, in.Title)
	set(&u.Bio, in.Bio)
	set(&u.Avatar, in.Avatar)
	set(&u.HeroImage, in.HeroImage)
	set(&u.Location, in.Location)
	set(&u.Phone, in.Phone)
	set(&u.GithubURL, in.GithubURL)
	set(&u.LinkedinURL, in.LinkedinURL)
	set(&u.TwitterURL, in.TwitterURL)
	set(&u.ResumeURL, in.ResumeURL)
}

// Profile returns the site owner's public profile. The default profile is
// served when no owner exists yet or when loading fails.
func (s *Service) Profile(ctx context.Context) cache.Result[models.Profile] {
	return cache.FetchOr(ctx, s.cache, cache.KeyProfile, s.loadProfile, models.DefaultProfile())
}

func (s *Service) loadProfile(ctx context.Context) (models.Profile, error) {
	owner, err := s.owner(s.db.WithContext(ctx))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultProfile(), nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return owner.Profile(), nil
}

func (s *Service) owner(db *gorm.DB) (*models.User, error) {
	var u models.User
	if err := db.Order("created_at ASC").First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies in to the site owner, creating the owner with email
// when none exists. The hero image shows on every page, so all cached
// resources are dropped.
func (s *Service) UpdateProfile(ctx context.Context, email string, in ProfileInput) (*models.User, error) {
	var out *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.owner(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = &models.User{Email: strings.ToLower(strings.TrimSpace(email))}
		} else if err != nil {
			return err
		}
		in.apply(u)
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.cache.InvalidateAll()
	s.logger.Info("profile-updated", zap.String("user-id", out.ID))
	return out, nil
}
