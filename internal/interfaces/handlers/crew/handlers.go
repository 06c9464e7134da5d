package crew

import (
	crewsvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/crew"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *crewsvc.Service
}

// Create POST /api/v1/projects/:projectID/crew
func (h *Handlers) Create(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body crewsvc.CreateCrewInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	member, err := h.Service.Create(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Crew member created", member, nil)
}

// List GET /api/v1/projects/:projectID/crew
func (h *Handlers) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	members, err := h.Service.List(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Crew fetched", members, nil)
}

// Update PATCH /api/v1/crew/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid crew id", 400, nil)
	}
	var body crewsvc.UpdateCrewInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	member, err := h.Service.Update(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Crew member updated", member, nil)
}

// Delete DELETE /api/v1/crew/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid crew id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Crew member deleted", nil, nil)
}

// CreateFeedback POST /api/v1/shoot-days/:id/feedback
func (h *Handlers) CreateFeedback(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	var body crewsvc.CreateFeedbackInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	feedback, err := h.Service.CreateFeedback(c.Context(), dayID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Feedback recorded", feedback, nil)
}

// ListFeedback GET /api/v1/shoot-days/:id/feedback
func (h *Handlers) ListFeedback(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	feedback, err := h.Service.ListFeedback(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Feedback fetched", feedback, nil)
}
