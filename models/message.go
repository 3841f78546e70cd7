package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// Message represents one message inside a chat. Messages are append-only;
// listing orders by created_at with id as the insertion-order tiebreak.
type Message struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ChatID     string    `gorm:"not null;index;type:varchar(36)" json:"chat_id"` // foreign key to chats table
	Chat       Chat      `gorm:"foreignKey:ChatID" json:"-"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"` // foreign key to users table
	SenderName string    `gorm:"not null" json:"sender_name"`     // denormalized for display
	Text       string    `gorm:"type:text;not null" json:"text"`
	Type       string    `gorm:"not null;default:'text'" json:"type"` // "text", "image" or "file"
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID primary key if none was provided
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
