package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prop is a project-scoped item, optionally owned by a vendor (rentals).
type Prop struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	OwnerVendorID *uuid.UUID `gorm:"type:uuid;index" json:"owner_vendor_id"`
	Description   string     `gorm:"type:varchar(512)" json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Prop) TableName() string {
	return "props"
}

func (p *Prop) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
