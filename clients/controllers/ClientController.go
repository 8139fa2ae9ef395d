package controllers

import (
	"invoicing-backend/clients/repositories"
	"invoicing-backend/clients/requests"
	"invoicing-backend/clients/services"
	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientController struct {
	ClientRepo repositories.ClientRepository
	DB         *gorm.DB
}

// CreateClientController handles client registration
func (cc *ClientController) CreateClientController(c *fiber.Ctx) error {
	var req requests.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := services.ValidateCreateClientRequest(&req); err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	client := &models.Client{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Active:     true,
	}

	created, err := cc.ClientRepo.CreateClient(client)
	if err != nil {
		config.Logger.Error("Failed to create client", zap.Error(err))
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": created,
	})
}

// GetClientController returns a single client by ID
func (cc *ClientController) GetClientController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	client, err := cc.ClientRepo.GetClientByID(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": client,
	})
}
