package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/invoices/repositories"
	"invoicing-backend/invoices/requests"
	"invoicing-backend/invoices/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceController struct {
	InvoiceRepo    repositories.InvoiceRepository
	InvoiceService *services.InvoiceService
}

// CreateInvoiceController handles invoice creation
func (ic *InvoiceController) CreateInvoiceController(c *fiber.Ctx) error {
	var req requests.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	invoice, err := ic.InvoiceService.CreateInvoice(&req)
	if err != nil {
		config.Logger.Error("Failed to create invoice", zap.Error(err))
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": invoice,
	})
}

// GetInvoiceController returns a single invoice by ID
func (ic *InvoiceController) GetInvoiceController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invoice ID",
		})
	}

	invoice, err := ic.InvoiceRepo.GetInvoiceByID(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoice,
	})
}

// GetInvoiceByNumberController looks an invoice up by its invoice number
func (ic *InvoiceController) GetInvoiceByNumberController(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invoice number is required",
		})
	}

	invoice, err := ic.InvoiceRepo.GetInvoiceByNumber(number)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoice,
	})
}

// GetInvoiceSummaryController returns aggregate counts and totals per state
func (ic *InvoiceController) GetInvoiceSummaryController(c *fiber.Ctx) error {
	summary, err := ic.InvoiceRepo.GetInvoiceSummary()
	if err != nil {
		config.Logger.Error("Failed to compute invoice summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute invoice summary",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": summary,
	})
}
