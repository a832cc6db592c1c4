package handler

import (
	"github.com/gofiber/fiber/v2"

	"portail-rh/internal/domain"
	"portail-rh/internal/middleware"
	"portail-rh/internal/service/appcontrol"
)

type AppControlHandler struct {
	controlService appcontrol.Service
}

func NewAppControlHandler(controlService appcontrol.Service) *AppControlHandler {
	return &AppControlHandler{controlService: controlService}
}

// Get is public: clients poll it before login to decide whether to render
// the lock screen.
func (h *AppControlHandler) Get(c *fiber.Ctx) error {
	control, err := h.controlService.Get(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(control)
}

func (h *AppControlHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateAppControlInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	control, err := h.controlService.Set(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(control)
}
