package budgets

import (
	"context"
	"errors"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateDepartmentInput struct {
	Name         string          `json:"name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
}

func (s *Service) CreateDepartment(ctx context.Context, projectID uuid.UUID, in CreateDepartmentInput) (*domain.Department, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if in.BudgetAmount.IsNegative() {
		return nil, apperr.Validation("budget_amount must not be negative")
	}
	if err := requireProject(s.DB.WithContext(ctx), projectID); err != nil {
		return nil, err
	}
	dept := &domain.Department{
		ProjectID:    projectID,
		Name:         in.Name,
		BudgetAmount: in.BudgetAmount,
	}
	if err := s.DB.WithContext(ctx).Create(dept).Error; err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	if err := s.DB.WithContext(ctx).First(&dept, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Department not found")
		}
		return nil, err
	}
	return &dept, nil
}

func (s *Service) ListDepartments(ctx context.Context, projectID uuid.UUID) ([]domain.Department, error) {
	var depts []domain.Department
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at, id").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

type UpdateDepartmentInput struct {
	Name         *string          `json:"name"`
	BudgetAmount *decimal.Decimal `json:"budget_amount"`
}

func (s *Service) UpdateDepartment(ctx context.Context, id uuid.UUID, in UpdateDepartmentInput) (*domain.Department, error) {
	dept, err := s.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name is required")
		}
		dept.Name = *in.Name
	}
	if in.BudgetAmount != nil {
		if in.BudgetAmount.IsNegative() {
			return nil, apperr.Validation("budget_amount must not be negative")
		}
		dept.BudgetAmount = *in.BudgetAmount
	}
	if err := s.DB.WithContext(ctx).Save(dept).Error; err != nil {
		return nil, err
	}
	return dept, nil
}

// DeleteDepartment is blocked while budget lines or live (non-cancelled)
// expenses still reference the department.
func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDepartment(ctx, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.BudgetLine{}).Where("department_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Department has budget lines; remove them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Expense{}).
		Where("department_id = ? AND status <> ?", id, domain.ExpenseCancelled).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Department has expenses; cancel them first")
	}
	return s.DB.WithContext(ctx).Delete(&domain.Department{}, "id = ?", id).Error
}

type CreateBudgetLineInput struct {
	DepartmentID uuid.UUID       `json:"department_id"`
	Name         string          `json:"name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
}

func (s *Service) CreateBudgetLine(ctx context.Context, projectID uuid.UUID, in CreateBudgetLineInput) (*domain.BudgetLine, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if in.BudgetAmount.IsNegative() {
		return nil, apperr.Validation("budget_amount must not be negative")
	}
	dept, err := s.GetDepartment(ctx, in.DepartmentID)
	if err != nil {
		return nil, err
	}
	if dept.ProjectID != projectID {
		return nil, apperr.Validation("department belongs to a different project")
	}
	line := &domain.BudgetLine{
		ProjectID:    projectID,
		DepartmentID: in.DepartmentID,
		Name:         in.Name,
		BudgetAmount: in.BudgetAmount,
	}
	if err := s.DB.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) GetBudgetLine(ctx context.Context, id uuid.UUID) (*domain.BudgetLine, error) {
	var line domain.BudgetLine
	if err := s.DB.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Budget line not found")
		}
		return nil, err
	}
	return &line, nil
}

func (s *Service) ListBudgetLines(ctx context.Context, projectID uuid.UUID, departmentID *uuid.UUID) ([]domain.BudgetLine, error) {
	q := s.DB.WithContext(ctx).Where("project_id = ?", projectID)
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	var lines []domain.BudgetLine
	if err := q.Order("created_at, id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

type UpdateBudgetLineInput struct {
	Name         *string          `json:"name"`
	BudgetAmount *decimal.Decimal `json:"budget_amount"`
}

func (s *Service) UpdateBudgetLine(ctx context.Context, id uuid.UUID, in UpdateBudgetLineInput) (*domain.BudgetLine, error) {
	line, err := s.GetBudgetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name is required")
		}
		line.Name = *in.Name
	}
	if in.BudgetAmount != nil {
		if in.BudgetAmount.IsNegative() {
			return nil, apperr.Validation("budget_amount must not be negative")
		}
		line.BudgetAmount = *in.BudgetAmount
	}
	if err := s.DB.WithContext(ctx).Save(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteBudgetLine is blocked while live expenses still reference the line.
func (s *Service) DeleteBudgetLine(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBudgetLine(ctx, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Expense{}).
		Where("budget_line_id = ? AND status <> ?", id, domain.ExpenseCancelled).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Budget line has expenses; cancel them first")
	}
	return s.DB.WithContext(ctx).Delete(&domain.BudgetLine{}, "id = ?", id).Error
}

func requireProject(db *gorm.DB, projectID uuid.UUID) error {
	var count int64
	if err := db.Model(&domain.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("Project not found")
	}
	return nil
}
