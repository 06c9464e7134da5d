package reports

import (
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/application/analytics"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *analytics.Service
}

// ProjectSummary GET /api/v1/projects/:projectID/reports/summary
func (h *Handlers) ProjectSummary(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	summary, err := h.Service.ProjectSummary(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Project summary", summary, nil)
}

// DailyCostReport GET /api/v1/projects/:projectID/reports/daily-cost?date=YYYY-MM-DD
func (h *Handlers) DailyCostReport(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	date := c.Query("date")
	if date == "" {
		return response.Error(c, "date query parameter is required", 400, nil)
	}
	report, err := h.Service.DailyCostReport(c.Context(), projectID, date)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Daily cost report", report, nil)
}

// ProductionDaySummary GET /api/v1/shoot-days/:id/reports/summary
func (h *Handlers) ProductionDaySummary(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	summary, err := h.Service.ProductionDaySummary(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Production day summary", summary, nil)
}

// ScheduleAdherence GET /api/v1/shoot-days/:id/reports/schedule
func (h *Handlers) ScheduleAdherence(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	report, err := h.Service.ScheduleAdherenceReport(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Schedule adherence report", report, nil)
}

// PropsCustody GET /api/v1/shoot-days/:id/reports/props
func (h *Handlers) PropsCustody(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	report, err := h.Service.PropsCustodyReport(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Props custody report", report, nil)
}

// CrewPerformance GET /api/v1/shoot-days/:id/reports/crew
func (h *Handlers) CrewPerformance(c *fiber.Ctx) error {
	dayID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid shoot day id", 400, nil)
	}
	report, err := h.Service.CrewPerformanceReport(c.Context(), dayID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Crew performance report", report, nil)
}
