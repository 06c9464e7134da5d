package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShootDayStatus string

const (
	ShootDayOpen   ShootDayStatus = "open"
	ShootDayLocked ShootDayStatus = "locked"
)

// ShootDay is one day of production, the scoping unit for schedule, expense,
// feedback and prop activity. The lock is a reopenable toggle; while locked,
// no row scoped to the day may be created, updated or deleted.
type ShootDay struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Date      string         `gorm:"type:date;not null" json:"date"`
	Status    ShootDayStatus `gorm:"type:varchar(8);not null;default:open" json:"status"`
	CallTime  string         `gorm:"type:varchar(8)" json:"call_time"`
	WrapTime  string         `gorm:"type:varchar(8)" json:"wrap_time"`
	Location  string         `gorm:"type:varchar(255)" json:"location"`
	Notes     string         `gorm:"type:varchar(1024)" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (ShootDay) TableName() string {
	return "shoot_days"
}

func (d *ShootDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
