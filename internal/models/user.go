package models

import (
	"strings"
	"time"
)

// UserProfile represents a customer account. Credentials are issued by the
// external identity service; only the resulting hash is stored here.
type UserProfile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON
	FirstName    string `gorm:"size:150" json:"first_name,omitempty"`
	LastName     string `gorm:"size:150" json:"last_name,omitempty"`
	// Address is free text, 10-500 chars when present.
	Address             string     `gorm:"size:500" json:"address,omitempty"`
	PhoneNumber         string     `gorm:"size:15" json:"phone_number,omitempty"`
	PreferredCategories string     `gorm:"size:255" json:"preferred_categories,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	ProfilePicture      string     `gorm:"size:255" json:"profile_picture,omitempty"`
	IsPremiumUser       bool       `gorm:"index;default:false" json:"is_premium_user"`
	IsStaff             bool       `gorm:"default:false" json:"is_staff"`
	// IsActive is the soft-delete flag; profiles are deactivated rather than
	// removed in normal operation.
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`

	// Owned associations, removed with the profile.
	Orders       []Order       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ChatSessions []ChatSession `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// FullName joins first and last name, skipping empty parts.
func (u UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CategoryList splits PreferredCategories on commas, trimming whitespace.
func (u UserProfile) CategoryList() []string {
	if u.PreferredCategories == "" {
		return nil
	}
	parts := strings.Split(u.PreferredCategories, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
