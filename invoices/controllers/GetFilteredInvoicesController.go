package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredInvoicesController handles the fetching of filtered invoices
func (ic *InvoiceController) GetFilteredInvoicesController(c *fiber.Ctx) error {
	params := pagination.ParseParams(c)

	filters := map[string]string{
		"status":       c.Query("status"),
		"client_name":  c.Query("client_name"),
		"client_email": c.Query("client_email"),
		"color":        c.Query("color"),
		"date_from":    c.Query("date_from"),
		"date_to":      c.Query("date_to"),
		"area_min":     c.Query("area_min"),
		"area_max":     c.Query("area_max"),
	}

	invoices, total, err := ic.InvoiceRepo.GetFilteredInvoices(filters, params.Limit, params.Skip)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered invoices", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch invoices",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": invoices,
		"meta": fiber.Map{
			"skip":  params.Skip,
			"limit": params.Limit,
			"total": total,
		},
	})
}
