package models

import (
	"time"
)

// Conversation is a fixed two-user dialog, optionally bound to a product.
// At most one conversation exists per (user pair, product) combination,
// including the product = none case.
type Conversation struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	ProductID *uint `gorm:"index" json:"product_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // bumped on every new message

	// Relations
	Participants []ConversationParticipant `json:"participants,omitempty"`
	Messages     []Message                 `json:"messages,omitempty"`
}

type ConversationParticipant struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConversationID uint `gorm:"index;not null" json:"conversation_id"`
	UserID         uint `gorm:"index;not null" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
