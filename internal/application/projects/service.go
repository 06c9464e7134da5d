package projects

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

type CreateProjectInput struct {
	Title       string          `json:"title"`
	Currency    string          `json:"currency"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	CreatedBy   string          `json:"-"`
}

func (s *Service) Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	if in.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.Currency == "" {
		return nil, apperr.Validation("currency is required")
	}
	if in.TotalBudget.IsNegative() {
		return nil, apperr.Validation("total_budget must not be negative")
	}
	project := &domain.Project{
		Title:       in.Title,
		Currency:    in.Currency,
		TotalBudget: in.TotalBudget,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.DB.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := s.DB.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := s.DB.WithContext(ctx).Order("created_at, id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

type UpdateProjectInput struct {
	Title       *string          `json:"title"`
	Currency    *string          `json:"currency"`
	TotalBudget *decimal.Decimal `json:"total_budget"`
}

// Update merges the patch and re-validates. Currency is fixed at creation:
// a patch naming a different currency is rejected.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Currency != nil && *in.Currency != project.Currency {
		return nil, apperr.Validation("currency cannot be changed after creation")
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.Validation("title is required")
		}
		project.Title = *in.Title
	}
	if in.TotalBudget != nil {
		if in.TotalBudget.IsNegative() {
			return nil, apperr.Validation("total_budget must not be negative")
		}
		project.TotalBudget = *in.TotalBudget
	}
	if err := s.DB.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project only when nothing else references it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Department{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Project has departments; remove them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.PettyCashFloat{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Project has petty cash floats; remove them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.ShootDay{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Project has shoot days; remove them first")
	}
	return s.DB.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}
