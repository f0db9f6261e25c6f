package models

import (
	"time"

	"gorm.io/gorm"
)

// MessageStatus represents the triage state of a contact message
type MessageStatus string

const (
	MessageNew     MessageStatus = "new"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

// Valid reports whether s is a known status.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageNew, MessageRead, MessageReplied:
		return true
	}
	return false
}

// DefaultSubject is used when the sender leaves the subject empty.
const DefaultSubject = "Contact Form Submission"

// ContactMessage represents a contact form submission
type ContactMessage struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message" gorm:"not null"`
	Status    MessageStatus `json:"status" gorm:"index;not null;default:'new'"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for ContactMessage Model
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// BeforeCreate assigns an ID when none is set.
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
