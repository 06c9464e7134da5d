package vendors

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateVendorInput struct {
	Name     string                 `json:"name"`
	GSTIN    *string                `json:"gstin"`
	Contacts []domain.VendorContact `json:"contacts"`
}

func (s *Service) Create(ctx context.Context, in CreateVendorInput) (*domain.Vendor, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	contacts, err := marshalContacts(in.Contacts)
	if err != nil {
		return nil, err
	}
	vendor := &domain.Vendor{
		Name:     in.Name,
		GSTIN:    in.GSTIN,
		Contacts: contacts,
	}
	if err := s.DB.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := s.DB.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor not found")
		}
		return nil, err
	}
	return &vendor, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if err := s.DB.WithContext(ctx).Order("created_at, id").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

type UpdateVendorInput struct {
	Name     *string                 `json:"name"`
	GSTIN    *string                 `json:"gstin"`
	Contacts *[]domain.VendorContact `json:"contacts"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateVendorInput) (*domain.Vendor, error) {
	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name is required")
		}
		vendor.Name = *in.Name
	}
	if in.GSTIN != nil {
		vendor.GSTIN = in.GSTIN
	}
	if in.Contacts != nil {
		contacts, err := marshalContacts(*in.Contacts)
		if err != nil {
			return nil, err
		}
		vendor.Contacts = contacts
	}
	if err := s.DB.WithContext(ctx).Save(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

// Delete is blocked while expenses or props still reference the vendor.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Expense{}).Where("vendor_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Vendor has expenses; detach them first")
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Prop{}).Where("owner_vendor_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Vendor owns props; detach them first")
	}
	return s.DB.WithContext(ctx).Delete(&domain.Vendor{}, "id = ?", id).Error
}

func marshalContacts(contacts []domain.VendorContact) (datatypes.JSON, error) {
	if contacts == nil {
		contacts = []domain.VendorContact{}
	}
	raw, err := json.Marshal(contacts)
	if err != nil {
		return nil, apperr.Validation("invalid contacts")
	}
	return datatypes.JSON(raw), nil
}
