package models

import (
	"time"
)

// Report is a user complaint about a listing, a user, or a message,
// triaged through the admin endpoints.
type Report struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ReporterID   uint   `gorm:"index;not null" json:"reporter_id"`
	ReportedType string `gorm:"size:20;not null" json:"reported_type"` // user, product, message
	ReportedID   string `gorm:"size:50;not null" json:"reported_id"`
	Reason       string `gorm:"size:200;not null" json:"reason"`
	Description  string `gorm:"type:text" json:"description"`
	Status       string `gorm:"default:'pending';size:20" json:"status"` // pending, resolved, dismissed
	AssignedTo   *uint  `json:"assigned_to"`
	Resolution   string `gorm:"type:text" json:"resolution"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

// Ban blocks a user from all authenticated operations while active.
type Ban struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	BannedBy uint   `gorm:"not null" json:"banned_by"`
	Reason   string `gorm:"size:200;not null" json:"reason"`

	ExpiresAt *time.Time `json:"expires_at"`
	LiftedAt  *time.Time `json:"lifted_at"`
	LiftedBy  *uint      `json:"lifted_by"`

	CreatedAt time.Time `json:"created_at"`
}
