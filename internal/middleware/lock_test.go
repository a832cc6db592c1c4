package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portail-rh/internal/domain"
	"portail-rh/internal/middleware"
	"portail-rh/internal/mocks"
)

func newGatedApp(control *domain.AppControl, getErr error, user *domain.User) *fiber.App {
	controlSvc := new(mocks.AppControlService)
	controlSvc.On("Get", mock.Anything).Return(control, getErr)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(middleware.UserContextKey, user)
		}
		return c.Next()
	})
	app.Use(middleware.AppLockGate(controlSvc))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAppLockGate(t *testing.T) {
	employee := &domain.User{ID: uuid.New(), Role: string(domain.RoleUser)}
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	t.Run("locked portal rejects a non-admin with 503", func(t *testing.T) {
		app := newGatedApp(&domain.AppControl{Locked: true, Message: "Maintenance en cours"}, nil, employee)

		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var payload map[string]string
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "APP_LOCKED", payload["code"])
		assert.Equal(t, "Maintenance en cours", payload["message"])
	})

	t.Run("locked portal without a message falls back to the default", func(t *testing.T) {
		app := newGatedApp(&domain.AppControl{Locked: true}, nil, employee)

		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var payload map[string]string
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "Le portail est temporairement indisponible", payload["message"])
	})

	t.Run("admins pass through a locked portal", func(t *testing.T) {
		app := newGatedApp(&domain.AppControl{Locked: true}, nil, admin)

		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unlocked portal passes everyone", func(t *testing.T) {
		app := newGatedApp(&domain.AppControl{Locked: false}, nil, employee)

		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("control store failure never locks anyone out", func(t *testing.T) {
		app := newGatedApp(nil, errors.New("redis down"), employee)

		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
