package middleware

import (
	"github.com/gofiber/fiber/v2"

	"portail-rh/internal/domain"
	"portail-rh/internal/service/appcontrol"
)

// AppLockGate rejects every authenticated call while the portal is locked,
// except calls from admins so they can flip the switch back. A Redis
// failure never locks anyone out.
func AppLockGate(controlService appcontrol.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		control, err := controlService.Get(c.Context())
		if err != nil || !control.Locked {
			return c.Next()
		}

		if user := GetCurrentUser(c); user != nil && user.HasRole(string(domain.RoleAdmin)) {
			return c.Next()
		}

		message := control.Message
		if message == "" {
			message = "Le portail est temporairement indisponible"
		}

		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"code":    "APP_LOCKED",
			"message": message,
		})
	}
}
