package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is the root scope for everything except Vendors.
// Currency is fixed at creation; update attempts that change it are rejected
// in the service layer.
type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Currency    string          `gorm:"type:varchar(8);not null" json:"currency"`
	TotalBudget decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_budget"`
	CreatedBy   string          `gorm:"type:varchar(64)" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
