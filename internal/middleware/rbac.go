package middleware

import (
	"github.com/gofiber/fiber/v2"

	"portail-rh/internal/domain"
)

func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

// RequirePolicy gates a route on the role/action policy table rather than
// a raw role name.
func RequirePolicy(action domain.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !domain.Allowed(domain.UserRole(user.Role), action) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func GetCurrentUserRole(c *fiber.Ctx) string {
	user := GetCurrentUser(c)
	if user == nil {
		return ""
	}
	return user.Role
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetCurrentUserRole(c) == string(domain.RoleAdmin)
}

func IsChef(c *fiber.Ctx) bool {
	role := GetCurrentUserRole(c)
	return role == string(domain.RoleChef) || role == string(domain.RoleAdmin)
}
