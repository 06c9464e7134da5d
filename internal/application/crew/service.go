package crew

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/shootdays"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateCrewInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

func (s *Service) Create(ctx context.Context, projectID uuid.UUID, in CreateCrewInput) (*domain.Crew, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Project not found")
	}
	member := &domain.Crew{
		ProjectID: projectID,
		Name:      in.Name,
		Role:      in.Role,
		Phone:     in.Phone,
	}
	if err := s.DB.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Crew, error) {
	var member domain.Crew
	if err := s.DB.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Crew member not found")
		}
		return nil, err
	}
	return &member, nil
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]domain.Crew, error) {
	var members []domain.Crew
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at, id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

type UpdateCrewInput struct {
	Name  *string `json:"name"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateCrewInput) (*domain.Crew, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name is required")
		}
		member.Name = *in.Name
	}
	if in.Role != nil {
		member.Role = *in.Role
	}
	if in.Phone != nil {
		member.Phone = *in.Phone
	}
	if err := s.DB.WithContext(ctx).Save(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// Delete is blocked while feedback still references the crew member.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.CrewFeedback{}).Where("crew_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Crew member has feedback on record")
	}
	return s.DB.WithContext(ctx).Delete(&domain.Crew{}, "id = ?", id).Error
}

type CreateFeedbackInput struct {
	CrewID      *uuid.UUID `json:"crew_id"`
	IsAnonymous bool       `json:"is_anonymous"`
	Rating      int        `json:"rating"`
	Comment     string     `json:"comment"`
	Tags        []string   `json:"tags"`
}

// CreateFeedback enforces the crew-or-anonymous exclusivity and the rating
// range, and honors the shoot day lock.
func (s *Service) CreateFeedback(ctx context.Context, shootDayID uuid.UUID, in CreateFeedbackInput) (*domain.CrewFeedback, error) {
	if in.IsAnonymous && in.CrewID != nil {
		return nil, apperr.Validation("anonymous feedback cannot name a crew member")
	}
	if !in.IsAnonymous && in.CrewID == nil {
		return nil, apperr.Validation("crew_id is required unless feedback is anonymous")
	}
	if !validation.IsValidRating(in.Rating) {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	db := s.DB.WithContext(ctx)
	if err := shootdays.EnsureOpen(db, shootDayID); err != nil {
		return nil, err
	}
	if in.CrewID != nil {
		var count int64
		if err := db.Model(&domain.Crew{}).Where("id = ?", *in.CrewID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Crew member not found")
		}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, apperr.Validation("invalid tags")
	}
	feedback := &domain.CrewFeedback{
		ShootDayID:  shootDayID,
		CrewID:      in.CrewID,
		IsAnonymous: in.IsAnonymous,
		Rating:      in.Rating,
		Comment:     in.Comment,
		Tags:        datatypes.JSON(raw),
	}
	if err := db.Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *Service) ListFeedback(ctx context.Context, shootDayID uuid.UUID) ([]domain.CrewFeedback, error) {
	var feedback []domain.CrewFeedback
	if err := s.DB.WithContext(ctx).Where("shoot_day_id = ?", shootDayID).Order("created_at, id").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}
