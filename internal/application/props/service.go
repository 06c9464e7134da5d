package props

import (
	"context"
	"errors"
	"time"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/shootdays"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreatePropInput struct {
	Name          string     `json:"name"`
	OwnerVendorID *uuid.UUID `json:"owner_vendor_id"`
	Description   string     `json:"description"`
}

func (s *Service) Create(ctx context.Context, projectID uuid.UUID, in CreatePropInput) (*domain.Prop, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&domain.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Project not found")
	}
	if in.OwnerVendorID != nil {
		if err := db.Model(&domain.Vendor{}).Where("id = ?", *in.OwnerVendorID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Vendor not found")
		}
	}
	prop := &domain.Prop{
		ProjectID:     projectID,
		Name:          in.Name,
		OwnerVendorID: in.OwnerVendorID,
		Description:   in.Description,
	}
	if err := db.Create(prop).Error; err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Prop, error) {
	var prop domain.Prop
	if err := s.DB.WithContext(ctx).First(&prop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Prop not found")
		}
		return nil, err
	}
	return &prop, nil
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]domain.Prop, error) {
	var out []domain.Prop
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at, id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type UpdatePropInput struct {
	Name          *string    `json:"name"`
	OwnerVendorID *uuid.UUID `json:"owner_vendor_id"`
	Description   *string    `json:"description"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdatePropInput) (*domain.Prop, error) {
	prop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name is required")
		}
		prop.Name = *in.Name
	}
	if in.OwnerVendorID != nil {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&domain.Vendor{}).Where("id = ?", *in.OwnerVendorID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.NotFound("Vendor not found")
		}
		prop.OwnerVendorID = in.OwnerVendorID
	}
	if in.Description != nil {
		prop.Description = *in.Description
	}
	if err := s.DB.WithContext(ctx).Save(prop).Error; err != nil {
		return nil, err
	}
	return prop, nil
}

// Delete is blocked while the prop is still checked out.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.PropCheckout{}).
		Where("prop_id = ? AND status = ?", id, domain.CheckoutOut).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Prop is checked out; return it first")
	}
	if err := s.DB.WithContext(ctx).Where("prop_id = ?", id).Delete(&domain.PropCheckout{}).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&domain.Prop{}, "id = ?", id).Error
}

type CheckoutInput struct {
	ShootDayID   uuid.UUID `json:"shoot_day_id"`
	CheckedOutBy string    `json:"checked_out_by"`
	DueReturn    string    `json:"due_return"`
}

// Checkout ties a prop to a shoot day. A prop can be out only once at a time.
func (s *Service) Checkout(ctx context.Context, propID uuid.UUID, in CheckoutInput) (*domain.PropCheckout, error) {
	if !validation.IsValidDate(in.DueReturn) {
		return nil, apperr.Validation("due_return must be YYYY-MM-DD")
	}
	db := s.DB.WithContext(ctx)
	if _, err := s.Get(ctx, propID); err != nil {
		return nil, err
	}
	if err := shootdays.EnsureOpen(db, in.ShootDayID); err != nil {
		return nil, err
	}
	var count int64
	if err := db.Model(&domain.PropCheckout{}).
		Where("prop_id = ? AND status = ?", propID, domain.CheckoutOut).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Prop is already checked out")
	}
	checkout := &domain.PropCheckout{
		PropID:       propID,
		ShootDayID:   in.ShootDayID,
		CheckedOutBy: in.CheckedOutBy,
		DueReturn:    in.DueReturn,
		Status:       domain.CheckoutOut,
	}
	if err := db.Create(checkout).Error; err != nil {
		return nil, err
	}
	return checkout, nil
}

func (s *Service) GetCheckout(ctx context.Context, id uuid.UUID) (*domain.PropCheckout, error) {
	var checkout domain.PropCheckout
	if err := s.DB.WithContext(ctx).First(&checkout, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Checkout not found")
		}
		return nil, err
	}
	return &checkout, nil
}

// Return marks a checkout returned. Returned is terminal; returning twice is
// a validation error. The shoot day lock applies here as well.
func (s *Service) Return(ctx context.Context, checkoutID uuid.UUID) (*domain.PropCheckout, error) {
	checkout, err := s.GetCheckout(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if err := shootdays.EnsureOpen(s.DB.WithContext(ctx), checkout.ShootDayID); err != nil {
		return nil, err
	}
	if checkout.Status == domain.CheckoutReturned {
		return nil, apperr.Validation("checkout is already returned")
	}
	now := time.Now()
	checkout.Status = domain.CheckoutReturned
	checkout.ReturnedAt = &now
	if err := s.DB.WithContext(ctx).Save(checkout).Error; err != nil {
		return nil, err
	}
	return checkout, nil
}

// CheckoutView is a checkout with its read-time status (overdue derived from
// due_return vs today, never stored).
type CheckoutView struct {
	domain.PropCheckout
	EffectiveStatus domain.CheckoutStatus `json:"effective_status"`
}

func (s *Service) ListCheckouts(ctx context.Context, shootDayID uuid.UUID) ([]CheckoutView, error) {
	var checkouts []domain.PropCheckout
	if err := s.DB.WithContext(ctx).Where("shoot_day_id = ?", shootDayID).Order("created_at, id").Find(&checkouts).Error; err != nil {
		return nil, err
	}
	today := validation.Today()
	views := make([]CheckoutView, 0, len(checkouts))
	for _, c := range checkouts {
		views = append(views, CheckoutView{PropCheckout: c, EffectiveStatus: c.EffectiveStatus(today)})
	}
	return views, nil
}
