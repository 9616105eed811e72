package handler

import (
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Create records a new transaction in PENDING. Totals in the body, if any,
// are ignored; the engine recomputes them from the lines.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req model.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.Create(c.Context(), req, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

// UpdateStatus drives the status state machine:
// PATCH /transactions/:id/status
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req model.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.UpdateStatus(c.Context(), id, req.Status, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction status updated", "data": tx})
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	params := service.TransactionListParams{
		Month: c.QueryInt("month", 0),
		Year:  c.QueryInt("year", 0),
		Page:  c.QueryInt("page", 1),
		Size:  c.QueryInt("size", 0),
	}

	list, err := h.service.List(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tx)
}
