package models

import (
	"time"

	"gorm.io/gorm"
)

// Skill represents a skill shown on the about page
type Skill struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	Category          string    `json:"category" gorm:"index;not null"`
	Proficiency       int       `json:"proficiency"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Skill Model
func (Skill) TableName() string {
	return "skills"
}

// BeforeCreate assigns an ID when none is set.
func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	return nil
}
