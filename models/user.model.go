package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Credentials
	Email    string `gorm:"unique;not null;size:200" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	Name       string `gorm:"size:200" json:"name"`
	AvatarPath string `json:"avatar_path"`
	Role       string `gorm:"default:'user';size:20" json:"role"` // user, seller, admin

	// Email verification / password reset
	EmailVerified     bool       `gorm:"default:false" json:"email_verified"`
	EmailVerifyToken  *string    `gorm:"index" json:"-"`
	ResetToken        *string    `gorm:"index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	// Professional profile (optional)
	Profession  string     `gorm:"size:100;index" json:"profession,omitempty"`
	Latitude    *float64   `gorm:"index:idx_location" json:"lat,omitempty"`
	Longitude   *float64   `gorm:"index:idx_location" json:"lng,omitempty"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
	RatingAvg   float64    `gorm:"default:0" json:"rating_avg"`
	RatingCount int        `gorm:"default:0" json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the identity exposed in API responses. The password hash and
// token columns never leave the model layer.
type PublicUser struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	AvatarPath    string    `json:"avatar_path"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		AvatarPath:    u.AvatarPath,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
