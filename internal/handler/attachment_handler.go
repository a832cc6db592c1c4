package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portail-rh/internal/middleware"
	"portail-rh/internal/service/attachment"
	"portail-rh/internal/service/request"
)

type AttachmentHandler struct {
	attService attachment.Service
}

func NewAttachmentHandler(attService attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{attService: attService}
}

func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read file")
	}
	defer file.Close()

	att, err := h.attService.Upload(c.Context(), requestID, user, attachment.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			return middleware.NotFound("Request not found")
		case errors.Is(err, request.ErrForbidden), errors.Is(err, attachment.ErrForbidden):
			return middleware.Forbidden("Not allowed to attach files to this request")
		case errors.Is(err, attachment.ErrFileTooLarge):
			return middleware.UnprocessableEntity("File exceeds the maximum allowed size")
		case errors.Is(err, attachment.ErrInvalidFileType):
			return middleware.UnprocessableEntity("File type not allowed")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(att)
}

func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	atts, err := h.attService.ListByRequest(c.Context(), requestID, user)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			return middleware.NotFound("Request not found")
		case errors.Is(err, request.ErrForbidden):
			return middleware.Forbidden("Not allowed to view this request")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(atts)
}

func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid attachment ID")
	}

	url, err := h.attService.GetDownloadURL(c.Context(), attachmentID, user)
	if err != nil {
		switch {
		case errors.Is(err, attachment.ErrNotFound), errors.Is(err, request.ErrNotFound):
			return middleware.NotFound("Attachment not found")
		case errors.Is(err, request.ErrForbidden):
			return middleware.Forbidden("Not allowed to download this attachment")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}

func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid attachment ID")
	}

	if err := h.attService.Delete(c.Context(), attachmentID, user); err != nil {
		switch {
		case errors.Is(err, attachment.ErrNotFound):
			return middleware.NotFound("Attachment not found")
		case errors.Is(err, attachment.ErrForbidden):
			return middleware.Forbidden("Not allowed to delete this attachment")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Attachment deleted"})
}
