package shootdays

import (
	"context"
	"encoding/json"
	"errors"

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

// EnsureOpen rejects mutations against a locked shoot day. Every service that
// writes day-scoped rows calls this inside its command path, so the guard
// holds regardless of caller.
func EnsureOpen(db *gorm.DB, shootDayID uuid.UUID) error {
	var day domain.ShootDay
	if err := db.First(&day, "id = ?", shootDayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Shoot day not found")
		}
		return err
	}
	if day.Status == domain.ShootDayLocked {
		return apperr.Locked("Shoot day is locked")
	}
	return nil
}

type CreateShootDayInput struct {
	Date     string `json:"date"`
	CallTime string `json:"call_time"`
	WrapTime string `json:"wrap_time"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

func (s *Service) Create(ctx context.Context, projectID uuid.UUID, in CreateShootDayInput) (*domain.ShootDay, error) {
	if !validation.IsValidDate(in.Date) {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Project not found")
	}
	day := &domain.ShootDay{
		ProjectID: projectID,
		Date:      in.Date,
		Status:    domain.ShootDayOpen,
		CallTime:  in.CallTime,
		WrapTime:  in.WrapTime,
		Location:  in.Location,
		Notes:     in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(day).Error; err != nil {
		return nil, err
	}
	return day, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ShootDay, error) {
	var day domain.ShootDay
	if err := s.DB.WithContext(ctx).First(&day, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Shoot day not found")
		}
		return nil, err
	}
	return &day, nil
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]domain.ShootDay, error) {
	var days []domain.ShootDay
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at, id").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

type UpdateShootDayInput struct {
	Date     *string `json:"date"`
	CallTime *string `json:"call_time"`
	WrapTime *string `json:"wrap_time"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// Update patches day metadata. The day itself must be open; lock state is
// changed only through Lock/Unlock.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateShootDayInput) (*domain.ShootDay, error) {
	day, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if day.Status == domain.ShootDayLocked {
		return nil, apperr.Locked("Shoot day is locked")
	}
	if in.Date != nil {
		if !validation.IsValidDate(*in.Date) {
			return nil, apperr.Validation("date must be YYYY-MM-DD")
		}
		day.Date = *in.Date
	}
	if in.CallTime != nil {
		day.CallTime = *in.CallTime
	}
	if in.WrapTime != nil {
		day.WrapTime = *in.WrapTime
	}
	if in.Location != nil {
		day.Location = *in.Location
	}
	if in.Notes != nil {
		day.Notes = *in.Notes
	}
	if err := s.DB.WithContext(ctx).Save(day).Error; err != nil {
		return nil, err
	}
	return day, nil
}

func (s *Service) Lock(ctx context.Context, id uuid.UUID) (*domain.ShootDay, error) {
	return s.setStatus(ctx, id, domain.ShootDayLocked)
}

func (s *Service) Unlock(ctx context.Context, id uuid.UUID) (*domain.ShootDay, error) {
	return s.setStatus(ctx, id, domain.ShootDayOpen)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status domain.ShootDayStatus) (*domain.ShootDay, error) {
	day, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	day.Status = status
	if err := s.DB.WithContext(ctx).Save(day).Error; err != nil {
		return nil, err
	}
	return day, nil
}

// Delete removes an open day with no scoped rows left.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	day, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if day.Status == domain.ShootDayLocked {
		return apperr.Locked("Shoot day is locked")
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.ScheduleItem{}).Where("shoot_day_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Shoot day has schedule items; remove them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Expense{}).Where("shoot_day_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Shoot day has expenses; detach them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.PropCheckout{}).Where("shoot_day_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Shoot day has prop checkouts; remove them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.CrewFeedback{}).Where("shoot_day_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Shoot day has crew feedback")
	}
	return s.DB.WithContext(ctx).Delete(&domain.ShootDay{}, "id = ?", id).Error
}

type CreateScheduleItemInput struct {
	Scene       string   `json:"scene"`
	Shot        string   `json:"shot"`
	Description string   `json:"description"`
	Assignees   []string `json:"assignees"`
}

func (s *Service) CreateScheduleItem(ctx context.Context, shootDayID uuid.UUID, in CreateScheduleItemInput) (*domain.ScheduleItem, error) {
	if in.Scene == "" || in.Shot == "" {
		return nil, apperr.Validation("scene and shot are required")
	}
	if err := EnsureOpen(s.DB.WithContext(ctx), shootDayID); err != nil {
		return nil, err
	}
	assignees, err := marshalAssignees(in.Assignees)
	if err != nil {
		return nil, err
	}
	item := &domain.ScheduleItem{
		ShootDayID:  shootDayID,
		Scene:       in.Scene,
		Shot:        in.Shot,
		Description: in.Description,
		Status:      domain.SchedulePlanned,
		Assignees:   assignees,
	}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) GetScheduleItem(ctx context.Context, id uuid.UUID) (*domain.ScheduleItem, error) {
	var item domain.ScheduleItem
	if err := s.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Schedule item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) ListScheduleItems(ctx context.Context, shootDayID uuid.UUID) ([]domain.ScheduleItem, error) {
	var items []domain.ScheduleItem
	if err := s.DB.WithContext(ctx).Where("shoot_day_id = ?", shootDayID).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type UpdateScheduleItemInput struct {
	Scene       *string                `json:"scene"`
	Shot        *string                `json:"shot"`
	Description *string                `json:"description"`
	Status      *domain.ScheduleStatus `json:"status"`
	Assignees   *[]string              `json:"assignees"`
}

func (s *Service) UpdateScheduleItem(ctx context.Context, id uuid.UUID, in UpdateScheduleItemInput) (*domain.ScheduleItem, error) {
	item, err := s.GetScheduleItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureOpen(s.DB.WithContext(ctx), item.ShootDayID); err != nil {
		return nil, err
	}
	if in.Scene != nil {
		if *in.Scene == "" {
			return nil, apperr.Validation("scene is required")
		}
		item.Scene = *in.Scene
	}
	if in.Shot != nil {
		if *in.Shot == "" {
			return nil, apperr.Validation("shot is required")
		}
		item.Shot = *in.Shot
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Status != nil {
		if !domain.ValidScheduleStatus(*in.Status) {
			return nil, apperr.Validation("invalid schedule status %q", *in.Status)
		}
		item.Status = *in.Status
	}
	if in.Assignees != nil {
		assignees, err := marshalAssignees(*in.Assignees)
		if err != nil {
			return nil, err
		}
		item.Assignees = assignees
	}
	if err := s.DB.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteScheduleItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.GetScheduleItem(ctx, id)
	if err != nil {
		return err
	}
	if err := EnsureOpen(s.DB.WithContext(ctx), item.ShootDayID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&domain.ScheduleItem{}, "id = ?", id).Error
}

func marshalAssignees(assignees []string) (datatypes.JSON, error) {
	if assignees == nil {
		assignees = []string{}
	}
	raw, err := json.Marshal(assignees)
	if err != nil {
		return nil, apperr.Validation("invalid assignees")
	}
	return datatypes.JSON(raw), nil
}
