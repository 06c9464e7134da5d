package shootdays

import (
	daysvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/shootdays"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *daysvc.Service
}

// Create POST /api/v1/projects/:projectID/shoot-days
func (h *Handlers) Create(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body daysvc.CreateShootDayInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	day, err := h.Service.Create(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Shoot day created", day, nil)
}

// List GET /api/v1/projects/:projectID/shoot-days
func (h *Handlers) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	days, err := h.Service.List(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Shoot days fetched", days, nil)
}

// Get GET /api/v1/shoot-days/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	day, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Shoot day fetched", day, nil)
}

// Update PATCH /api/v1/shoot-days/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	var body daysvc.UpdateShootDayInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	day, err := h.Service.Update(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Shoot day updated", day, nil)
}

// Delete DELETE /api/v1/shoot-days/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Shoot day deleted", nil, nil)
}

// Lock POST /api/v1/shoot-days/:id/lock
func (h *Handlers) Lock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	day, err := h.Service.Lock(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Shoot day locked", day, nil)
}

// Unlock POST /api/v1/shoot-days/:id/unlock
func (h *Handlers) Unlock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	day, err := h.Service.Unlock(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Shoot day reopened", day, nil)
}

// CreateScheduleItem POST /api/v1/shoot-days/:id/schedule-items
func (h *Handlers) CreateScheduleItem(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	var body daysvc.CreateScheduleItemInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	item, err := h.Service.CreateScheduleItem(c.Context(), dayID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Schedule item created", item, nil)
}

// ListScheduleItems GET /api/v1/shoot-days/:id/schedule-items
func (h *Handlers) ListScheduleItems(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	items, err := h.Service.ListScheduleItems(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Schedule items fetched", items, nil)
}

// UpdateScheduleItem PATCH /api/v1/schedule-items/:id
func (h *Handlers) UpdateScheduleItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid schedule item id", 400, nil)
	}
	var body daysvc.UpdateScheduleItemInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	item, err := h.Service.UpdateScheduleItem(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Schedule item updated", item, nil)
}

// DeleteScheduleItem DELETE /api/v1/schedule-items/:id
func (h *Handlers) DeleteScheduleItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid schedule item id", 400, nil)
	}
	if err := h.Service.DeleteScheduleItem(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Schedule item deleted", nil, nil)
}
