package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat participant types
const (
	ParticipantTypeCustomer = "customer"
	ParticipantTypeTailor   = "tailor"
)

// Chat links a customer with a tailor. Unread counters are stored per side
// and surfaced as-is; how they are maintained is outside this model.
type Chat struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"` // foreign key to users table
	Customer       User           `gorm:"foreignKey:CustomerID" json:"-"`
	TailorUserID   uint           `gorm:"not null;index" json:"tailor_user_id"` // foreign key to users table
	TailorUser     User           `gorm:"foreignKey:TailorUserID" json:"-"`
	CustomerUnread int            `gorm:"not null;default:0;check:customer_unread >= 0" json:"customer_unread"`
	TailorUnread   int            `gorm:"not null;default:0;check:tailor_unread >= 0" json:"tailor_unread"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Chat model
func (Chat) TableName() string {
	return "chats"
}

// BeforeCreate assigns a UUID primary key if none was provided
func (ch *Chat) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	return nil
}

// ChatSummary is the per-viewer view of a chat: the counterpart's identity
// plus the latest message and the viewer's own unread counter.
type ChatSummary struct {
	ID              string     `json:"id"`
	ParticipantID   uint       `json:"participant_id"`
	ParticipantName string     `json:"participant_name"`
	ParticipantType string     `json:"participant_type"` // "customer" or "tailor"
	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	LastMessageAge  string     `json:"last_message_age,omitempty"` // display bucket, e.g. "5m ago"
	UnreadCount     int        `json:"unread_count"`
	IsOnline        bool       `json:"is_online"`
}
