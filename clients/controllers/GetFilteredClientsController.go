package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredClientsController handles the fetching of filtered clients
func (cc *ClientController) GetFilteredClientsController(c *fiber.Ctx) error {
	params := pagination.ParseParams(c)

	filters := map[string]string{
		"active": c.Query("active"),
		"search": c.Query("search"),
	}

	clients, total, err := cc.ClientRepo.GetFilteredClients(filters, params.Limit, params.Skip)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered clients", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch clients",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": clients,
		"meta": fiber.Map{
			"skip":  params.Skip,
			"limit": params.Limit,
			"total": total,
		},
	})
}
