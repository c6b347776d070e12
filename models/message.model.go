package models

import (
	"time"
)

type Message struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConversationID uint `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint `gorm:"index;not null" json:"sender_id"`

	Body string `gorm:"type:text;not null" json:"body"`

	// Set at most once, by the receiving participant.
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
