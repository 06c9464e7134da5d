package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseStatus string

const (
	ExpenseSubmitted ExpenseStatus = "submitted"
	ExpenseApproved  ExpenseStatus = "approved"
	ExpensePaid      ExpenseStatus = "paid"
	ExpenseCancelled ExpenseStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentUPI      PaymentMethod = "UPI"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
)

// Expense records money spent against a department (and optionally a budget
// line, vendor and shoot day). Expenses are never hard-deleted: cancellation
// keeps the audit trail while excluding the amount from every report.
type Expense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	DepartmentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"department_id"`
	BudgetLineID  *uuid.UUID      `gorm:"type:uuid;index" json:"budget_line_id"`
	VendorID      *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id"`
	ShootDayID    *uuid.UUID      `gorm:"type:uuid;index" json:"shoot_day_id"`
	Date          string          `gorm:"type:date;not null" json:"date"`
	Description   string          `gorm:"type:varchar(512)" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	TaxRate       float64         `gorm:"not null;default:0" json:"tax_rate"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(16);not null" json:"payment_method"`
	Status        ExpenseStatus   `gorm:"type:varchar(16);not null;default:submitted" json:"status"`
	Reimbursable  bool            `gorm:"not null;default:false" json:"reimbursable"`
	CreatedBy     string          `gorm:"type:varchar(64)" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CanTransitionTo enforces the forward-only status machine:
// submitted -> approved -> paid, with cancelled reachable from any
// non-cancelled state and terminal.
func (e *Expense) CanTransitionTo(next ExpenseStatus) bool {
	if e.Status == ExpenseCancelled {
		return false
	}
	if next == ExpenseCancelled {
		return true
	}
	rank := map[ExpenseStatus]int{
		ExpenseSubmitted: 0,
		ExpenseApproved:  1,
		ExpensePaid:      2,
	}
	cur, ok := rank[e.Status]
	nxt, ok2 := rank[next]
	return ok && ok2 && nxt >= cur
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

func ValidExpenseStatus(s ExpenseStatus) bool {
	switch s {
	case ExpenseSubmitted, ExpenseApproved, ExpensePaid, ExpenseCancelled:
		return true
	}
	return false
}
