package models

import (
	"time"

	"gorm.io/gorm"
)

// Experience represents a work history entry
type Experience struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Company     string     `json:"company" gorm:"not null"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"startDate" gorm:"index;not null"`
	EndDate     *time.Time `json:"endDate"`
	Current     bool       `json:"current" gorm:"default:false"`
	Description string     `json:"description"`
	Highlights  StringList `json:"highlights"`
	SortOrder   int        `json:"sortOrder" gorm:"default:0"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Experience Model
func (Experience) TableName() string {
	return "experiences"
}

// BeforeCreate assigns an ID when none is set.
func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = newID()
	}
	return nil
}
