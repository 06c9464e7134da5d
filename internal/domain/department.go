package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Department is a budget bucket inside a Project. It cannot be deleted while
// budget lines or live expenses still reference it.
type Department struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"budget_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
