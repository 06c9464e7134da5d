package importexport

import (
	"bytes"

	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/analytics"
	iesvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/importexport"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *iesvc.Service
	Reports  *analytics.Service
	Renderer iesvc.ReportRenderer
}

// ImportBudget POST /api/v1/projects/:projectID/import/budget
// Body is raw CSV text.
func (h *Handlers) ImportBudget(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	result, err := h.Service.ImportBudget(c.Context(), projectID, bytes.NewReader(c.Body()))
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Budget imported", result, nil)
}

// ImportExpenses POST /api/v1/projects/:projectID/import/expenses
// Body is raw CSV text.
func (h *Handlers) ImportExpenses(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	result, err := h.Service.ImportExpenses(c.Context(), projectID, bytes.NewReader(c.Body()))
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Expenses imported", result, nil)
}

// ExportExpenses GET /api/v1/projects/:projectID/export/expenses.csv
func (h *Handlers) ExportExpenses(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var buf bytes.Buffer
	if err := h.Service.ExportExpenses(c.Context(), projectID, &buf); err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="expenses.csv"`)
	return c.Send(buf.Bytes())
}

// ExportProjectSummary GET /api/v1/projects/:projectID/export/summary.csv
func (h *Handlers) ExportProjectSummary(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	summary, err := h.Reports.ProjectSummary(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	out, err := h.Renderer.RenderProjectSummary(summary)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="summary.csv"`)
	return c.Send(out)
}

// ExportDailyCost GET /api/v1/projects/:projectID/export/daily-cost.csv?date=YYYY-MM-DD
func (h *Handlers) ExportDailyCost(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	report, err := h.Reports.DailyCostReport(c.Context(), projectID, c.Query("date"))
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	out, err := h.Renderer.RenderDailyCostReport(report)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="daily-cost.csv"`)
	return c.Send(out)
}
