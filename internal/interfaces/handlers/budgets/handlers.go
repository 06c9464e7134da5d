package budgets

import (
	budgetsvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/budgets"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *budgetsvc.Service
}

// CreateDepartment POST /api/v1/projects/:projectID/departments
func (h *Handlers) CreateDepartment(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body budgetsvc.CreateDepartmentInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	dept, err := h.Service.CreateDepartment(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Department created", dept, nil)
}

// ListDepartments GET /api/v1/projects/:projectID/departments
func (h *Handlers) ListDepartments(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	depts, err := h.Service.ListDepartments(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Departments fetched", depts, nil)
}

// UpdateDepartment PATCH /api/v1/departments/:id
func (h *Handlers) UpdateDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid department id", 400, nil)
	}
	var body budgetsvc.UpdateDepartmentInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	dept, err := h.Service.UpdateDepartment(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Department updated", dept, nil)
}

// DeleteDepartment DELETE /api/v1/departments/:id
func (h *Handlers) DeleteDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid department id", 400, nil)
	}
	if err := h.Service.DeleteDepartment(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Department deleted", nil, nil)
}

// CreateBudgetLine POST /api/v1/projects/:projectID/budget-lines
func (h *Handlers) CreateBudgetLine(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body budgetsvc.CreateBudgetLineInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	line, err := h.Service.CreateBudgetLine(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Budget line created", line, nil)
}

// ListBudgetLines GET /api/v1/projects/:projectID/budget-lines?department_id=
func (h *Handlers) ListBudgetLines(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.Error(c, "Invalid department_id", 400, nil)
		}
		departmentID = &id
	}
	lines, err := h.Service.ListBudgetLines(c.Context(), projectID, departmentID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Budget lines fetched", lines, nil)
}

// UpdateBudgetLine PATCH /api/v1/budget-lines/:id
func (h *Handlers) UpdateBudgetLine(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid budget line id", 400, nil)
	}
	var body budgetsvc.UpdateBudgetLineInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	line, err := h.Service.UpdateBudgetLine(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Budget line updated", line, nil)
}

// DeleteBudgetLine DELETE /api/v1/budget-lines/:id
func (h *Handlers) DeleteBudgetLine(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid budget line id", 400, nil)
	}
	if err := h.Service.DeleteBudgetLine(c.Context(), id); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Budget line deleted", nil, nil)
}
