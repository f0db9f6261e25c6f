package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate returns the admin user matching email and password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := auth.CheckPassword(u.Password, password); err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin creates the admin user for email, or resets its password when
// it already exists. It reports whether a new user was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (*models.User, bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		u       models.User
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&u).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = models.User{Email: email, Password: hash, Name: strings.TrimSpace(name)}
			created = true
			return tx.Create(&u).Error
		case err != nil:
			return err
		}
		u.Password = hash
		if name = strings.TrimSpace(name); name != "" {
			u.Name = name
		}
		return tx.Save(&u).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("ensure admin: %w", err)
	}

	if created || name != "" {
		// The profile may now come from this user.
		s.cache.InvalidateAll()
	}
	s.logger.Info("admin-ensured", zap.String("email", email), zap.Bool("created", created))
	return &u, created, nil
}
