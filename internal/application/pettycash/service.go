package pettycash

import (
	"context"
	"errors"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateFloatInput struct {
	OwnerUserID  string          `json:"owner_user_id"`
	IssuedAmount decimal.Decimal `json:"issued_amount"`
}

func (s *Service) CreateFloat(ctx context.Context, projectID uuid.UUID, in CreateFloatInput) (*domain.PettyCashFloat, error) {
	if in.OwnerUserID == "" {
		return nil, apperr.Validation("owner_user_id is required")
	}
	if in.IssuedAmount.IsNegative() {
		return nil, apperr.Validation("issued_amount must not be negative")
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Project not found")
	}
	float := &domain.PettyCashFloat{
		ProjectID:    projectID,
		OwnerUserID:  in.OwnerUserID,
		IssuedAmount: in.IssuedAmount,
		Balance:      in.IssuedAmount,
	}
	if err := s.DB.WithContext(ctx).Create(float).Error; err != nil {
		return nil, err
	}
	return float, nil
}

func (s *Service) GetFloat(ctx context.Context, id uuid.UUID) (*domain.PettyCashFloat, error) {
	var float domain.PettyCashFloat
	if err := s.DB.WithContext(ctx).First(&float, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Petty cash float not found")
		}
		return nil, err
	}
	return &float, nil
}

func (s *Service) ListFloats(ctx context.Context, projectID uuid.UUID) ([]domain.PettyCashFloat, error) {
	var floats []domain.PettyCashFloat
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at, id").Find(&floats).Error; err != nil {
		return nil, err
	}
	return floats, nil
}

type ApplyTxnInput struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Type   domain.TxnType  `json:"type"`
	Note   string          `json:"note"`
}

// ApplyTxn appends a transaction and adjusts the float balance in one store
// transaction. A debit that would push the balance below zero is rejected
// before any row changes.
func (s *Service) ApplyTxn(ctx context.Context, floatID uuid.UUID, in ApplyTxnInput) (*domain.PettyCashTxn, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be positive")
	}
	if !domain.ValidTxnType(in.Type) {
		return nil, apperr.Validation("type must be debit or credit")
	}
	if !validation.IsValidDate(in.Date) {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}

	var txn *domain.PettyCashTxn
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var float domain.PettyCashFloat
		if err := tx.First(&float, "id = ?", floatID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Petty cash float not found")
			}
			return err
		}
		next := float.Balance
		switch in.Type {
		case domain.TxnDebit:
			next = next.Sub(in.Amount)
		case domain.TxnCredit:
			next = next.Add(in.Amount)
		}
		if next.IsNegative() {
			return apperr.InsufficientBalance("debit of %s exceeds balance %s", in.Amount, float.Balance)
		}
		txn = &domain.PettyCashTxn{
			FloatID: floatID,
			Date:    in.Date,
			Amount:  in.Amount,
			Type:    in.Type,
			Note:    in.Note,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		float.Balance = next
		return tx.Save(&float).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *Service) ListTxns(ctx context.Context, floatID uuid.UUID) ([]domain.PettyCashTxn, error) {
	var txns []domain.PettyCashTxn
	if err := s.DB.WithContext(ctx).Where("float_id = ?", floatID).Order("created_at, id").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
