package vendors

import (
	vendorsvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/vendors"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *vendorsvc.Service
}

// Create POST /api/v1/vendors
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body vendorsvc.CreateVendorInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	vendor, err := h.Service.Create(c.Context(), body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Vendor created", vendor, nil)
}

// List GET /api/v1/vendors
func (h *Handlers) List(c *fiber.Ctx) error {
	vendors, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Vendors fetched", vendors, nil)
}

// Get GET /api/v1/vendors/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid vendor id", 400, nil)
	}
	vendor, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Vendor fetched", vendor, nil)
}

// Update PATCH /api/v1/vendors/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid vendor id", 400, nil)
	}
	var body vendorsvc.UpdateVendorInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	vendor, err := h.Service.Update(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Vendor updated", vendor, nil)
}

// Delete DELETE /api/v1/vendors/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid vendor id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Vendor deleted", nil, nil)
}
