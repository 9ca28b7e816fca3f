// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Mosaic application. Login is by email;
// there is no separate username.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool           `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Profile     *Profile       `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Posts       []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Profile carries the per-user verification state and optional personal
// details. Exactly one profile exists per user; it is created in the same
// transaction as the user itself.
type Profile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	VerifiedEmail bool           `gorm:"not null;default:false" json:"verified_email"`
	VerifiedCode  string         `gorm:"size:8;not null" json:"-"`
	Birthday      *time.Time     `json:"birthday,omitempty"`
	Country       string         `gorm:"size:100" json:"country"`
	City          string         `gorm:"size:100" json:"city"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
