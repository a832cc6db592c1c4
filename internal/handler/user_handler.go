package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portail-rh/internal/domain"
	"portail-rh/internal/middleware"
	"portail-rh/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	profile, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrEmailInUse):
			return middleware.Conflict("Email already in use")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// UpdateUser lets an admin edit any account. Same input shape as UpdateProfile.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrEmailInUse):
			return middleware.Conflict("Email already in use")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	found, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	if role := c.Query("role"); role != "" {
		users, err := h.userService.ListByRole(c.Context(), role)
		if err != nil {
			if errors.Is(err, user.ErrInvalidRole) {
				return middleware.BadRequest("Invalid role")
			}
			return err
		}
		return c.Status(fiber.StatusOK).JSON(users)
	}

	users, err := h.userService.GetAllUsers(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.AssignRole(c.Context(), currentUser, input); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrCannotModifySelf):
			return middleware.Forbidden("You cannot change your own role")
		case errors.Is(err, user.ErrInvalidRole):
			return middleware.BadRequest("Invalid role")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Role assigned successfully"})
}

func (h *UserHandler) AssignChef(c *fiber.Ctx) error {
	var input domain.AssignChefInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.AssignChef(c.Context(), input); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrInvalidChef):
			return middleware.BadRequest("Assigned chef must have the chef role")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Chef assigned successfully"})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), currentUser, userID); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, user.ErrCannotModifySelf):
			return middleware.Forbidden("You cannot delete your own account")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted successfully"})
}
