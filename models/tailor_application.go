package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tailor application statuses
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// Pricing range tiers a tailor can advertise
const (
	PricingRangeBudget   = "budget"
	PricingRangeMidRange = "mid-range"
	PricingRangePremium  = "premium"
	PricingRangeLuxury   = "luxury"
)

// TailorApplication represents a tailor's request to be listed on the
// platform. Created with status "pending" at signup; only an admin decision
// moves it to "approved" or "rejected". There is no path back to pending.
type TailorApplication struct {
	ID              string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          uint           `gorm:"uniqueIndex;not null" json:"user_id"` // foreign key to users table
	User            User           `gorm:"foreignKey:UserID" json:"-"`
	BusinessName    string         `gorm:"not null" json:"business_name"`
	ExperienceYears int            `gorm:"not null;check:experience_years >= 0" json:"experience_years"`
	Specializations datatypes.JSON `gorm:"not null" json:"specializations"` // JSON array of strings, non-empty at submission
	ShopAddress     string         `json:"shop_address"`
	City            string         `json:"city"`
	Pincode         string         `json:"pincode"`
	Phone           string         `json:"phone"`
	PricingRange    string         `gorm:"not null" json:"pricing_range"` // budget, mid-range, premium, luxury
	WorkingHours    string         `json:"working_hours"`
	Status          string         `gorm:"not null;default:'pending'" json:"status"`
	AdminNotes      *string        `json:"admin_notes"` // nullable, set by admin on decision
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the TailorApplication model
func (TailorApplication) TableName() string {
	return "tailors"
}

// BeforeCreate assigns a UUID primary key if none was provided
func (a *TailorApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SpecializationList decodes the stored JSON specializations column.
func (a *TailorApplication) SpecializationList() ([]string, error) {
	var specs []string
	if len(a.Specializations) == 0 {
		return specs, nil
	}
	if err := json.Unmarshal(a.Specializations, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// IsValidApplicationStatus reports whether s is a member of the application
// status enum.
func IsValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// NormalizeApplicationStatus lowercases and trims a status value from user
// input and reports whether the result is a valid application status.
func NormalizeApplicationStatus(s string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	return normalized, IsValidApplicationStatus(normalized)
}

// IsValidApplicationDecision reports whether s is a status an admin may set.
// "pending" is the initial state only, never a decision target.
func IsValidApplicationDecision(s string) bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// IsValidPricingRange reports whether s is a member of the pricing tier enum.
func IsValidPricingRange(s string) bool {
	switch s {
	case PricingRangeBudget, PricingRangeMidRange, PricingRangePremium, PricingRangeLuxury:
		return true
	}
	return false
}
