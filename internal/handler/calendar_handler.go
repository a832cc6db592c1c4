package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"portail-rh/internal/middleware"
	"portail-rh/internal/service/calendar"
)

type CalendarHandler struct {
	calService calendar.Service
}

func NewCalendarHandler(calService calendar.Service) *CalendarHandler {
	return &CalendarHandler{calService: calService}
}

func (h *CalendarHandler) Month(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	entries, err := h.calService.Month(c.Context(), year, month)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidMonth) {
			return middleware.BadRequest("Invalid year or month")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"year":    year,
		"month":   month,
		"entries": entries,
	})
}
