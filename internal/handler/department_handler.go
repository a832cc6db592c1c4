package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portail-rh/internal/domain"
	"portail-rh/internal/middleware"
	"portail-rh/internal/service/department"
)

type DepartmentHandler struct {
	deptService department.Service
}

func NewDepartmentHandler(deptService department.Service) *DepartmentHandler {
	return &DepartmentHandler{deptService: deptService}
}

func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" {
		return middleware.BadRequest("Department name is required")
	}

	dept, err := h.deptService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, department.ErrNameExists) {
			return middleware.Conflict("Department name already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dept)
}

func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	deptID, err := uuid.Parse(c.Params("departmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid department ID")
	}

	dept, err := h.deptService.GetByID(c.Context(), deptID)
	if err != nil {
		if errors.Is(err, department.ErrNotFound) {
			return middleware.NotFound("Department not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dept)
}

func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	depts, err := h.deptService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(depts)
}

func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	deptID, err := uuid.Parse(c.Params("departmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid department ID")
	}

	var input domain.UpdateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	dept, err := h.deptService.Update(c.Context(), deptID, input)
	if err != nil {
		switch {
		case errors.Is(err, department.ErrNotFound):
			return middleware.NotFound("Department not found")
		case errors.Is(err, department.ErrNameExists):
			return middleware.Conflict("Department name already exists")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dept)
}

func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	deptID, err := uuid.Parse(c.Params("departmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid department ID")
	}

	if err := h.deptService.Delete(c.Context(), deptID); err != nil {
		if errors.Is(err, department.ErrNotFound) {
			return middleware.NotFound("Department not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Department deleted successfully"})
}
