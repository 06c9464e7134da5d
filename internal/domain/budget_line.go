package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetLine is a named sub-allocation of a Department's budget.
type BudgetLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	DepartmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"department_id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"budget_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (BudgetLine) TableName() string {
	return "budget_lines"
}

func (b *BudgetLine) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
