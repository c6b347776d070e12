package models

import (
	"time"
)

// UserBalance holds the internal-unit wallet balance for a user. A missing
// row reads as zero.
type UserBalance struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Balance   float64   `gorm:"default:0" json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}
