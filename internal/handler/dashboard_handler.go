package handler

import (
	"github.com/gofiber/fiber/v2"

	"portail-rh/internal/service/dashboard"
)

type DashboardHandler struct {
	dashService dashboard.Service
}

func NewDashboardHandler(dashService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashService: dashService}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashService.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
