package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/invoices/requests"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateInvoiceController applies a partial update to an invoice
func (ic *InvoiceController) UpdateInvoiceController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invoice ID",
		})
	}

	var req requests.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	invoice, err := ic.InvoiceService.UpdateInvoice(id, &req)
	if err != nil {
		config.Logger.Error("Failed to update invoice", zap.Error(err),
			zap.String("invoiceID", id.String()))
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoice,
	})
}

// VoidInvoiceController cancels an invoice instead of deleting it
func (ic *InvoiceController) VoidInvoiceController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invoice ID",
		})
	}

	invoice, err := ic.InvoiceService.VoidInvoice(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoice,
	})
}
