package expenses

import (
	expensesvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/expenses"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/domain"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/middleware"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *expensesvc.Service
}

// Create POST /api/v1/projects/:projectID/expenses
func (h *Handlers) Create(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body expensesvc.CreateExpenseInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	body.CreatedBy = middleware.GetActor(c)
	expense, err := h.Service.Create(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Expense created", expense, nil)
}

// List GET /api/v1/projects/:projectID/expenses
// Filters: department_id, budget_line_id, vendor_id, shoot_day_id, status,
// date_from, date_to.
func (h *Handlers) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var filter expensesvc.ListFilter
	if filter.DepartmentID, err = queryUUID(c, "department_id"); err != nil {
		return response.Error(c, "Invalid department_id", 400, nil)
	}
	if filter.BudgetLineID, err = queryUUID(c, "budget_line_id"); err != nil {
		return response.Error(c, "Invalid budget_line_id", 400, nil)
	}
	if filter.VendorID, err = queryUUID(c, "vendor_id"); err != nil {
		return response.Error(c, "Invalid vendor_id", 400, nil)
	}
	if filter.ShootDayID, err = queryUUID(c, "shoot_day_id"); err != nil {
		return response.Error(c, "Invalid shoot_day_id", 400, nil)
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ExpenseStatus(raw)
		if !domain.ValidExpenseStatus(status) {
			return response.Error(c, "Invalid status", 400, nil)
		}
		filter.Status = &status
	}
	filter.DateFrom = c.Query("date_from")
	filter.DateTo = c.Query("date_to")

	list, err := h.Service.List(c.Context(), projectID, filter)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Expenses fetched", list, nil)
}

func queryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Get GET /api/v1/expenses/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid expense id", 400, nil)
	}
	expense, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Expense fetched", expense, nil)
}

// Update PATCH /api/v1/expenses/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid expense id", 400, nil)
	}
	var body expensesvc.UpdateExpenseInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	expense, err := h.Service.Update(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Expense updated", expense, nil)
}

// Cancel DELETE /api/v1/expenses/:id. Soft-cancel: the record stays for
// audit and drops out of every report.
func (h *Handlers) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid expense id", 400, nil)
	}
	expense, err := h.Service.Cancel(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Expense cancelled", expense, nil)
}
