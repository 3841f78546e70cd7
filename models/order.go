package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. The set is closed: no other string is a valid status.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a single tailoring request placed by a customer
type Order struct {
	ID                  string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerID          uint           `gorm:"not null;index" json:"customer_id"` // foreign key to users table
	Customer            User           `gorm:"foreignKey:CustomerID" json:"-"`
	TailorID            string         `gorm:"not null;index;type:varchar(36)" json:"tailor_id"` // foreign key to tailors table
	TailorName          string         `gorm:"not null" json:"tailor_name"`                      // denormalized for display
	ItemType            string         `gorm:"not null" json:"item_type"`
	Description         string         `json:"description"`
	Status              string         `gorm:"not null;default:'pending'" json:"status"`
	PriceQuoted         int            `gorm:"not null;check:price_quoted > 0" json:"price_quoted"` // whole rupees, immutable after creation
	EstimatedCompletion *time.Time     `json:"estimated_completion"`
	ActualCompletion    *time.Time     `json:"actual_completion"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key if none was provided
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// IsValidOrderStatus reports whether s is a member of the order status enum.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminalOrderStatus reports whether s accepts no further transitions.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ValidOrderTransition reports whether an order may move from one status to
// another. The happy path is pending -> paid -> in_progress -> completed;
// cancelled is reachable from any non-terminal status.
func ValidOrderTransition(from, to string) bool {
	if !IsValidOrderStatus(from) || !IsValidOrderStatus(to) {
		return false
	}
	if IsTerminalOrderStatus(from) {
		return false
	}
	switch to {
	case OrderStatusPaid:
		return from == OrderStatusPending
	case OrderStatusInProgress:
		return from == OrderStatusPending || from == OrderStatusPaid
	case OrderStatusCompleted:
		return from == OrderStatusInProgress
	case OrderStatusCancelled:
		return true // from is already known to be non-terminal
	}
	return false
}

// NormalizeOrderStatus lower-cases a status filter value and reports whether
// it names a real status. Filtering is case-insensitive; an unrecognized
// value is not an error, it simply matches nothing.
func NormalizeOrderStatus(s string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	return normalized, IsValidOrderStatus(normalized)
}

// FormatStatusLabel derives a display label from a status value, e.g.
// "in_progress" becomes "In Progress". The stored value is never modified.
func FormatStatusLabel(status string) string {
	words := strings.Split(strings.ReplaceAll(status, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
