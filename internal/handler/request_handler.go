package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portail-rh/internal/domain"
	"portail-rh/internal/middleware"
	"portail-rh/internal/service/request"
)

type RequestHandler struct {
	reqService request.Service
}

func NewRequestHandler(reqService request.Service) *RequestHandler {
	return &RequestHandler{reqService: reqService}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.reqService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrInvalidType):
			return middleware.BadRequest("Unknown request type")
		case errors.Is(err, domain.ErrInvalidDetails):
			return middleware.UnprocessableEntity("Invalid details for this request type")
		case errors.Is(err, request.ErrDatesRequired):
			return middleware.UnprocessableEntity("start_date and end_date are required for this type")
		case errors.Is(err, request.ErrInvalidDates):
			return middleware.UnprocessableEntity("Invalid date range")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.reqService.GetByID(c.Context(), requestID, user)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			return middleware.NotFound("Request not found")
		case errors.Is(err, request.ErrForbidden):
			return middleware.Forbidden("Not allowed to view this request")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) ListOwn(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	result, err := h.reqService.ListOwn(c.Context(), userID, getRequestFilter(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) ListTeam(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	result, err := h.reqService.ListForChef(c.Context(), user, getRequestFilter(c), getPaginationParams(c))
	if err != nil {
		if errors.Is(err, request.ErrForbidden) {
			return middleware.Forbidden("Insufficient permissions")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	result, err := h.reqService.ListAll(c.Context(), getRequestFilter(c), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	meta := &request.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	if err := h.reqService.UpdateStatus(c.Context(), requestID, user, input, meta); err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			return middleware.NotFound("Request not found")
		case errors.Is(err, request.ErrInvalidStatus):
			return middleware.BadRequest("Unknown request status")
		case errors.Is(err, request.ErrForbidden):
			return middleware.Forbidden("Not allowed to act on this request")
		case errors.Is(err, request.ErrInvalidTransition):
			return middleware.Conflict("Transition not allowed from current status")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Request status updated"})
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.reqService.Delete(c.Context(), requestID, userID); err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			return middleware.NotFound("Request not found")
		case errors.Is(err, request.ErrForbidden):
			return middleware.Forbidden("Only the owner can delete a request")
		case errors.Is(err, request.ErrNotDeletable):
			return middleware.Conflict("Only pending requests can be deleted")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Request deleted"})
}

func getRequestFilter(c *fiber.Ctx) domain.RequestFilter {
	var filter domain.RequestFilter

	if s := c.Query("status"); s != "" {
		status := domain.RequestStatus(s)
		filter.Status = &status
	}
	if t := c.Query("type"); t != "" {
		reqType := domain.RequestType(t)
		filter.Type = &reqType
	}

	return filter
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
