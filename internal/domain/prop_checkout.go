package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutStatus string

const (
	CheckoutOut      CheckoutStatus = "out"
	CheckoutReturned CheckoutStatus = "returned"
	// CheckoutOverdue is never stored; it is derived at read time when an
	// "out" checkout's due date has passed.
	CheckoutOverdue CheckoutStatus = "overdue"
)

// PropCheckout ties a prop to a shoot day with a due-return date. Returned is
// terminal.
type PropCheckout struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PropID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"prop_id"`
	ShootDayID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"shoot_day_id"`
	CheckedOutBy string         `gorm:"type:varchar(64)" json:"checked_out_by"`
	DueReturn    string         `gorm:"type:date;not null" json:"due_return"`
	Status       CheckoutStatus `gorm:"type:varchar(8);not null;default:out" json:"status"`
	ReturnedAt   *time.Time     `json:"returned_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (PropCheckout) TableName() string {
	return "prop_checkouts"
}

func (p *PropCheckout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectiveStatus computes the read-time status: a checkout still out past its
// due date reads as overdue, without rewriting the stored row.
func (p *PropCheckout) EffectiveStatus(today string) CheckoutStatus {
	if p.Status == CheckoutOut && p.DueReturn != "" && p.DueReturn < today {
		return CheckoutOverdue
	}
	return p.Status
}
