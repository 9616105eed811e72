package handler

import (
	"time"

	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetRollup returns the per-day rollup for a month:
// GET /dashboard/rollup?month=&year= (defaults to the current month)
func (h *DashboardHandler) GetRollup(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	rollup, err := h.service.GetRollup(c.Context(), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"month": month,
		"year":  year,
		"data":  rollup,
	})
}

// GetStats returns overview statistics
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
