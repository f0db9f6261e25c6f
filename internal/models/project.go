package models

import (
	"time"

	"gorm.io/gorm"
)

// Technology is a tag attached to projects.
type Technology struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// TableName specifies the table name for Technology Model
func (Technology) TableName() string {
	return "technologies"
}

// BeforeCreate assigns an ID when none is set.
func (t *Technology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}

// Project represents a portfolio project
type Project struct {
	ID               string       `json:"id" gorm:"primaryKey"`
	Title            string       `json:"title" gorm:"not null"`
	Slug             string       `json:"slug" gorm:"uniqueIndex;not null"`
	ShortDescription string       `json:"shortDescription"`
	Description      string       `json:"description"`
	Thumbnail        string       `json:"thumbnail"`
	HeroImage        string       `json:"heroImage"`
	Featured         bool         `json:"featured" gorm:"default:false"`
	Published        bool         `json:"published" gorm:"index;default:false"`
	Year             int          `json:"year"`
	GithubURL        string       `json:"githubUrl"`
	LiveURL          string       `json:"liveUrl"`
	KeyFeatures      StringList   `json:"keyFeatures"`
	SortOrder        int          `json:"sortOrder" gorm:"default:0"`
	Technologies     []Technology `json:"technologies" gorm:"many2many:project_technologies"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns an ID when none is set.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}
