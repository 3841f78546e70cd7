package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the contact and delivery details a user fills in after
// signup. One-to-one with User; only the owning user may read or write it.
type Profile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"` // foreign key to users table
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	FullName    string         `json:"full_name"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Pincode     string         `json:"pincode"`
	AvatarS3Key *string        `json:"avatar_s3_key"`                // nullable, S3 key for uploaded avatar
	AvatarURL   *string        `gorm:"-" json:"avatar_url,omitempty"` // computed field, presigned URL for avatar
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
