package controllers

import (
	"invoicing-backend/clients/requests"
	"invoicing-backend/clients/services"
	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateClientController applies a partial update; only supplied fields change
func (cc *ClientController) UpdateClientController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	var req requests.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := services.ValidateUpdateClientRequest(&req); err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	client, err := cc.ClientRepo.GetClientByID(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	req.Apply(client)

	if err := cc.ClientRepo.UpdateClient(client); err != nil {
		config.Logger.Error("Failed to update client", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update client",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": client,
	})
}

// DeactivateClientController soft-deletes a client by flipping its flag
func (cc *ClientController) DeactivateClientController(c *fiber.Ctx) error {
	return cc.setClientActive(c, false, "Client deactivated successfully")
}

// ActivateClientController restores a previously deactivated client
func (cc *ClientController) ActivateClientController(c *fiber.Ctx) error {
	return cc.setClientActive(c, true, "Client activated successfully")
}

func (cc *ClientController) setClientActive(c *fiber.Ctx, active bool, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	client, err := cc.ClientRepo.SetClientActive(id, active)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"data":    client,
	})
}
