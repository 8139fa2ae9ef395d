package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/invoices/requests"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendInvoiceEmailController delivers the invoice document to the client and
// the business copy address.
func (ic *InvoiceController) SendInvoiceEmailController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invoice ID",
		})
	}

	var req requests.SendInvoiceEmailRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	invoice, err := ic.InvoiceService.SendInvoiceEmail(c.Context(), id, &req)
	if err != nil {
		config.Logger.Error("Failed to send invoice email", zap.Error(err),
			zap.String("invoiceID", id.String()))
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoice,
	})
}
