package database

import (
	"strings"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB. A postgres:// DSN selects the Postgres driver
// (PreferSimpleProtocol avoids prepared-statement clashes behind poolers);
// anything else is treated as a sqlite path, the single-process default.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// AutoMigrate runs migrations for every entity the store owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Project{},
		&domain.Department{},
		&domain.BudgetLine{},
		&domain.Vendor{},
		&domain.Expense{},
		&domain.PettyCashFloat{},
		&domain.PettyCashTxn{},
		&domain.ShootDay{},
		&domain.ScheduleItem{},
		&domain.Crew{},
		&domain.CrewFeedback{},
		&domain.Prop{},
		&domain.PropCheckout{},
	)
}
