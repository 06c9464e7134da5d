package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TxnType string

const (
	TxnDebit  TxnType = "debit"
	TxnCredit TxnType = "credit"
)

// PettyCashFloat is a pool of cash issued to one person. Balance starts equal
// to IssuedAmount and evolves only by applying transactions; it never goes
// negative.
type PettyCashFloat struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	OwnerUserID  string          `gorm:"type:varchar(64);not null" json:"owner_user_id"`
	IssuedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"issued_amount"`
	Balance      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (PettyCashFloat) TableName() string {
	return "petty_cash_floats"
}

func (f *PettyCashFloat) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// PettyCashTxn is append-only; the float balance is adjusted in the same
// transaction that inserts the row.
type PettyCashTxn struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FloatID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"float_id"`
	Date      string          `gorm:"type:date;not null" json:"date"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Type      TxnType         `gorm:"type:varchar(8);not null" json:"type"`
	Note      string          `gorm:"type:varchar(512)" json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

func (PettyCashTxn) TableName() string {
	return "petty_cash_txns"
}

func (t *PettyCashTxn) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func ValidTxnType(t TxnType) bool {
	return t == TxnDebit || t == TxnCredit
}
