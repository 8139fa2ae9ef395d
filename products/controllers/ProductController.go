package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/products/repositories"
	"invoicing-backend/products/requests"
	"invoicing-backend/products/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductController struct {
	ProductRepo repositories.ProductRepository
	DB          *gorm.DB
}

// CreateProductController handles catalog entry creation
func (pc *ProductController) CreateProductController(c *fiber.Ctx) error {
	var req requests.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := services.ValidateCreateProductRequest(&req); err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product := &models.Product{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		Category:    req.Category,
		Active:      true,
	}

	created, err := pc.ProductRepo.CreateProduct(product)
	if err != nil {
		config.Logger.Error("Failed to create product", zap.Error(err))
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": created,
	})
}

// GetProductController returns a single product by ID
func (pc *ProductController) GetProductController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	product, err := pc.ProductRepo.GetProductByID(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": product,
	})
}

// GetProductByCodeController returns a single product by its unique code
func (pc *ProductController) GetProductByCodeController(c *fiber.Ctx) error {
	product, err := pc.ProductRepo.GetProductByCode(c.Params("code"))
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": product,
	})
}
