package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portail-rh/internal/middleware"
	"portail-rh/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	result, err := h.auditService.GetRecentActivities(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AuditHandler) GetEntityHistory(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	if entityType == "" {
		return middleware.BadRequest("Entity type is required")
	}

	entityID, err := uuid.Parse(c.Params("entityId"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	result, err := h.auditService.GetEntityHistory(c.Context(), entityType, entityID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
