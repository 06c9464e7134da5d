package pettycash

import (
	cashsvc "github.com/Vidyuzz/film-cost-flow-sub000/internal/application/pettycash"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/apperr"
	"github.com/Vidyuzz/film-cost-flow-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *cashsvc.Service
}

// CreateFloat POST /api/v1/projects/:projectID/floats
func (h *Handlers) CreateFloat(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	var body cashsvc.CreateFloatInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	float, err := h.Service.CreateFloat(c.Context(), projectID, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Float created", float, nil)
}

// ListFloats GET /api/v1/projects/:projectID/floats
func (h *Handlers) ListFloats(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectID"))
	if err != nil {
		return response.Error(c, "Invalid project id", 400, nil)
	}
	floats, err := h.Service.ListFloats(c.Context(), projectID)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Floats fetched", floats, nil)
}

// GetFloat GET /api/v1/floats/:id
func (h *Handlers) GetFloat(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid float id", 400, nil)
	}
	float, err := h.Service.GetFloat(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Float fetched", float, nil)
}

// ApplyTxn POST /api/v1/floats/:id/txns
func (h *Handlers) ApplyTxn(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid float id", 400, nil)
	}
	var body cashsvc.ApplyTxnInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	txn, err := h.Service.ApplyTxn(c.Context(), id, body)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.SuccessCreated(c, "Transaction applied", txn, nil)
}

// ListTxns GET /api/v1/floats/:id/txns
func (h *Handlers) ListTxns(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid float id", 400, nil)
	}
	txns, err := h.Service.ListTxns(c.Context(), id)
	if err != nil {
		return response.Error(c, err.Error(), apperr.Status(err), nil)
	}
	return response.Success(c, "Transactions fetched", txns, nil)
}
