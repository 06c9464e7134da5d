package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CrewFeedback is a per-shoot-day rating with optional issue tags. CrewID and
// IsAnonymous are mutually exclusive: anonymous feedback carries no crew id.
type CrewFeedback struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShootDayID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"shoot_day_id"`
	CrewID      *uuid.UUID     `gorm:"type:uuid;index" json:"crew_id"`
	IsAnonymous bool           `gorm:"not null;default:false" json:"is_anonymous"`
	Rating      int            `gorm:"not null" json:"rating"`
	Comment     string         `gorm:"type:varchar(1024)" json:"comment"`
	Tags        datatypes.JSON `gorm:"type:json" json:"tags"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (CrewFeedback) TableName() string {
	return "crew_feedback"
}

func (f *CrewFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
