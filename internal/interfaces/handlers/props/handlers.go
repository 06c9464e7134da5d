package props

import (
	propsvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/props"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/middleware"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *propsvc.Service
}

// Create POST /api/v1/projects/:projectID/props
func (h *Handlers) Create(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body propsvc.CreatePropInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	prop, err := h.Service.Create(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Prop created", prop, nil)
}

// List GET /api/v1/projects/:projectID/props
func (h *Handlers) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	list, err := h.Service.List(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Props fetched", list, nil)
}

// Update PATCH /api/v1/props/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid prop id", 400, nil)
	}
	var body propsvc.UpdatePropInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	prop, err := h.Service.Update(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Prop updated", prop, nil)
}

// Delete DELETE /api/v1/props/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid prop id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Prop deleted", nil, nil)
}

// Checkout POST /api/v1/props/:id/checkouts
func (h *Handlers) Checkout(c *fiber.Ctx) error {
	propID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid prop id", 400, nil)
	}
	var body propsvc.CheckoutInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.CheckedOutBy == "" {
		body.CheckedOutBy = middleware.GetActor(c)
	}
	checkout, err := h.Service.Checkout(c.Context(), propID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Prop checked out", checkout, nil)
}

// Return POST /api/v1/checkouts/:id/return
func (h *Handlers) Return(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid checkout id", 400, nil)
	}
	checkout, err := h.Service.Return(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Prop returned", checkout, nil)
}

// ListCheckouts GET /api/v1/shoot-days/:id/checkouts
func (h *Handlers) ListCheckouts(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	checkouts, err := h.Service.ListCheckouts(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Checkouts fetched", checkouts, nil)
}
