package expenses

import (
	"context"
	"errors"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/shootdays"
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

type CreateExpenseInput struct {
	DepartmentID  uuid.UUID            `json:"department_id"`
	BudgetLineID  *uuid.UUID           `json:"budget_line_id"`
	VendorID      *uuid.UUID           `json:"vendor_id"`
	ShootDayID    *uuid.UUID           `json:"shoot_day_id"`
	Date          string               `json:"date"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount"`
	TaxRate       float64              `json:"tax_rate"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Reimbursable  bool                 `json:"reimbursable"`
	CreatedBy     string               `json:"-"`
}

// Create validates fields and every referenced parent before inserting; the
// record is committed whole or not at all.
func (s *Service) Create(ctx context.Context, projectID uuid.UUID, in CreateExpenseInput) (*domain.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be positive")
	}
	if !validation.IsValidTaxRate(in.TaxRate) {
		return nil, apperr.Validation("tax_rate must be between 0 and 100")
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, apperr.Validation("invalid payment_method %q", in.PaymentMethod)
	}
	if !validation.IsValidDate(in.Date) {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}

	db := s.DB.WithContext(ctx)
	var dept domain.Department
	if err := db.First(&dept, "id = ?", in.DepartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Department not found")
		}
		return nil, err
	}
	if dept.ProjectID != projectID {
		return nil, apperr.Validation("department belongs to a different project")
	}
	if in.BudgetLineID != nil {
		var line domain.BudgetLine
		if err := db.First(&line, "id = ?", *in.BudgetLineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Budget line not found")
			}
			return nil, err
		}
		if line.DepartmentID != in.DepartmentID {
			return nil, apperr.Validation("budget line belongs to a different department")
		}
	}
	if in.VendorID != nil {
		var count int64
		if err := db.Model(&domain.Vendor{}).Where("id = ?", *in.VendorID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Vendor not found")
		}
	}
	if in.ShootDayID != nil {
		if err := shootdays.EnsureOpen(db, *in.ShootDayID); err != nil {
			return nil, err
		}
	}

	expense := &domain.Expense{
		ProjectID:     projectID,
		DepartmentID:  in.DepartmentID,
		BudgetLineID:  in.BudgetLineID,
		VendorID:      in.VendorID,
		ShootDayID:    in.ShootDayID,
		Date:          in.Date,
		Description:   in.Description,
		Amount:        in.Amount,
		TaxRate:       in.TaxRate,
		PaymentMethod: in.PaymentMethod,
		Status:        domain.ExpenseSubmitted,
		Reimbursable:  in.Reimbursable,
		CreatedBy:     in.CreatedBy,
	}
	if err := db.Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	if err := s.DB.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Expense not found")
		}
		return nil, err
	}
	return &expense, nil
}

// ListFilter narrows List; zero values mean "no filter". Insertion order is
// preserved.
type ListFilter struct {
	DepartmentID *uuid.UUID
	BudgetLineID *uuid.UUID
	VendorID     *uuid.UUID
	ShootDayID   *uuid.UUID
	Status       *domain.ExpenseStatus
	DateFrom     string
	DateTo       string
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID, f ListFilter) ([]domain.Expense, error) {
	q := s.DB.WithContext(ctx).Where("project_id = ?", projectID)
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.BudgetLineID != nil {
		q = q.Where("budget_line_id = ?", *f.BudgetLineID)
	}
	if f.VendorID != nil {
		q = q.Where("vendor_id = ?", *f.VendorID)
	}
	if f.ShootDayID != nil {
		q = q.Where("shoot_day_id = ?", *f.ShootDayID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.DateFrom != "" {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("date <= ?", f.DateTo)
	}
	var out []domain.Expense
	if err := q.Order("created_at, id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateExpenseInput struct {
	Description   *string               `json:"description"`
	Amount        *decimal.Decimal      `json:"amount"`
	TaxRate       *float64              `json:"tax_rate"`
	PaymentMethod *domain.PaymentMethod `json:"payment_method"`
	Status        *domain.ExpenseStatus `json:"status"`
	Reimbursable  *bool                 `json:"reimbursable"`
	Date          *string               `json:"date"`
}

// Update merges the patch, re-validates the merged record and enforces the
// forward-only status machine. Expenses tied to a locked shoot day cannot be
// touched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.ShootDayID != nil {
		if err := shootdays.EnsureOpen(s.DB.WithContext(ctx), *expense.ShootDayID); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if !domain.ValidExpenseStatus(*in.Status) {
			return nil, apperr.Validation("invalid status %q", *in.Status)
		}
		if !expense.CanTransitionTo(*in.Status) {
			return nil, apperr.Validation("cannot transition expense from %s to %s", expense.Status, *in.Status)
		}
		expense.Status = *in.Status
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, apperr.Validation("amount must be positive")
		}
		expense.Amount = *in.Amount
	}
	if in.TaxRate != nil {
		if !validation.IsValidTaxRate(*in.TaxRate) {
			return nil, apperr.Validation("tax_rate must be between 0 and 100")
		}
		expense.TaxRate = *in.TaxRate
	}
	if in.PaymentMethod != nil {
		if !domain.ValidPaymentMethod(*in.PaymentMethod) {
			return nil, apperr.Validation("invalid payment_method %q", *in.PaymentMethod)
		}
		expense.PaymentMethod = *in.PaymentMethod
	}
	if in.Date != nil {
		if !validation.IsValidDate(*in.Date) {
			return nil, apperr.Validation("date must be YYYY-MM-DD")
		}
		expense.Date = *in.Date
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	if in.Reimbursable != nil {
		expense.Reimbursable = *in.Reimbursable
	}
	if err := s.DB.WithContext(ctx).Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// Cancel is the expense "delete": money movement is never hard-deleted, the
// status flips to cancelled and every report excludes the amount.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	status := domain.ExpenseCancelled
	return s.Update(ctx, id, UpdateExpenseInput{Status: &status})
}
