package controllers

import (
	"io"

	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadInvoiceImageController attaches an uploaded photo to an invoice,
// replacing any previously stored one.
func (ic *InvoiceController) UploadInvoiceImageController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invoice ID",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "An image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		config.Logger.Error("Failed to open uploaded image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded image",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		config.Logger.Error("Failed to read uploaded image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded image",
		})
	}

	invoice, stored, err := ic.InvoiceService.AttachImage(id, fileHeader.Filename, content)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoice,
		"image": fiber.Map{
			"path": stored.Path,
			"url":  stored.URL,
		},
	})
}
