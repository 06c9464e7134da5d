package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	SchedulePlanned    ScheduleStatus = "planned"
	ScheduleInProgress ScheduleStatus = "in_progress"
	ScheduleDone       ScheduleStatus = "done"
	ScheduleDropped    ScheduleStatus = "dropped"
)

// ScheduleItem is one scene/shot planned for a shoot day. Assignees holds crew
// ids as a JSON array.
type ScheduleItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShootDayID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"shoot_day_id"`
	Scene       string         `gorm:"type:varchar(64);not null" json:"scene"`
	Shot        string         `gorm:"type:varchar(64);not null" json:"shot"`
	Description string         `gorm:"type:varchar(512)" json:"description"`
	Status      ScheduleStatus `gorm:"type:varchar(16);not null;default:planned" json:"status"`
	Assignees   datatypes.JSON `gorm:"type:json" json:"assignees"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (ScheduleItem) TableName() string {
	return "schedule_items"
}

func (s *ScheduleItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func ValidScheduleStatus(s ScheduleStatus) bool {
	switch s {
	case SchedulePlanned, ScheduleInProgress, ScheduleDone, ScheduleDropped:
		return true
	}
	return false
}
