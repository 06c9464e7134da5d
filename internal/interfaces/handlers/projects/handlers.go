package projects

import (
	projsvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/projects"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/middleware"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *projsvc.Service
}

// Create POST /api/v1/projects
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body projsvc.CreateProjectInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	body.CreatedBy = middleware.GetActor(c)
	project, err := h.Service.Create(c.Context(), body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Project created", project, nil)
}

// List GET /api/v1/projects
func (h *Handlers) List(c *fiber.Ctx) error {
	projects, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Projects fetched", projects, nil)
}

// Get GET /api/v1/projects/:projectID
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	project, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Project fetched", project, nil)
}

// Update PATCH /api/v1/projects/:projectID
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body projsvc.UpdateProjectInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	project, err := h.Service.Update(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Project updated", project, nil)
}

// Delete DELETE /api/v1/projects/:projectID
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Project deleted", nil, nil)
}
