package portfolio

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageInput is a contact form submission.
type MessageInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// CreateMessage stores a contact form submission with status new.
func (s *Service) CreateMessage(ctx context.Context, in MessageInput) (*models.ContactMessage, error) {
	m := models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Status:  models.MessageNew,
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrInvalidInput)
	}
	if m.Subject == "" {
		m.Subject = models.DefaultSubject
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	s.logger.Info("message-received", zap.String("id", m.ID))
	return &m, nil
}

// Messages lists contact messages, newest first.
func (s *Service) Messages(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// SetMessageStatus moves a message to status.
func (s *Service) SetMessageStatus(ctx context.Context, id string, status models.MessageStatus) (*models.ContactMessage, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	var m models.ContactMessage
	db := s.db.WithContext(ctx)
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := db.Model(&m).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update message %s: %w", id, err)
	}
	return &m, nil
}

// DeleteMessage removes a message.
func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete message %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats summarises content for the admin dashboard.
type Stats struct {
	Projects          int64 `json:"projects"`
	PublishedProjects int64 `json:"publishedProjects"`
	Skills            int64 `json:"skills"`
	Experience        int64 `json:"experience"`
	Messages          int64 `json:"messages"`
	NewMessages       int64 `json:"newMessages"`
}

// Stats counts records for the dashboard, uncached.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var st Stats
	queries := []*gorm.DB{
		db.Model(&models.Project{}),
		db.Model(&models.Project{}).Where("published = ?", true),
		db.Model(&models.Skill{}),
		db.Model(&models.Experience{}),
		db.Model(&models.ContactMessage{}),
		db.Model(&models.ContactMessage{}).Where("status = ?", models.MessageNew),
	}
	dsts := []*int64{&st.Projects, &st.PublishedProjects, &st.Skills, &st.Experience, &st.Messages, &st.NewMessages}
	for i, q := range queries {
		if err := q.Count(dsts[i]).Error; err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	return &st, nil
}
