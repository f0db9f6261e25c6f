package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the site owner. It carries both the admin credentials and the
// public profile shown on every page.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Bio         string    `json:"bio"`
	Avatar      string    `json:"avatar"`
	HeroImage   string    `json:"heroImage"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	GithubURL   string    `json:"githubUrl"`
	LinkedinURL string    `json:"linkedinUrl"`
	TwitterURL  string    `json:"twitterUrl"`
	ResumeURL   string    `json:"resumeUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an ID when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}

// Profile is the public view of the site owner.
type Profile struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Avatar    string `json:"avatar"`
	HeroImage string `json:"heroImage"`
	Bio       string `json:"bio"`
	Location  string `json:"location,omitempty"`
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Resume    string `json:"resume,omitempty"`
}

// DefaultProfile is served when no owner exists yet or the profile cannot be loaded.
func DefaultProfile() Profile {
	return Profile{
		Name:      "Alex Smith",
		Title:     "Freelancer",
		Avatar:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&h=400&fit=crop",
		HeroImage: "https://images.unsplash.com/photo-1618005198919-d3d4b5a92ead?w=1920&h=1080&fit=crop",
		Bio:       "Building scalable backend systems and APIs",
		Github:    "https://github.com",
		Linkedin:  "https://linkedin.com",
		Twitter:   "https://twitter.com",
	}
}

// Profile returns the public view of u.
func (u User) Profile() Profile {
	return Profile{
		Name:      u.Name,
		Title:     u.Title,
		Avatar:    u.Avatar,
		HeroImage: u.HeroImage,
		Bio:       u.Bio,
		Location:  u.Location,
		Github:    u.GithubURL,
		Linkedin:  u.LinkedinURL,
		Twitter:   u.TwitterURL,
		Resume:    u.ResumeURL,
	}
}
