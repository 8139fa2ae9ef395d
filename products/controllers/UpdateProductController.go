package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/products/requests"
	"invoicing-backend/products/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateProductController applies a partial update; only supplied fields change
func (pc *ProductController) UpdateProductController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	var req requests.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := services.ValidateUpdateProductRequest(&req); err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product, err := pc.ProductRepo.GetProductByID(id)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Re-check uniqueness when the code changes
	if req.Code != nil && *req.Code != product.Code {
		taken, err := pc.ProductRepo.CodeTaken(*req.Code, product.ID)
		if err != nil {
			config.Logger.Error("Failed to check product code", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check product code",
			})
		}
		if taken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A product with this code already exists",
			})
		}
	}

	req.Apply(product)

	if err := pc.ProductRepo.UpdateProduct(product); err != nil {
		config.Logger.Error("Failed to update product", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": product,
	})
}

// DeactivateProductController soft-deletes a product by flipping its flag
func (pc *ProductController) DeactivateProductController(c *fiber.Ctx) error {
	return pc.setProductActive(c, false, "Product deactivated successfully")
}

// ActivateProductController restores a previously deactivated product
func (pc *ProductController) ActivateProductController(c *fiber.Ctx) error {
	return pc.setProductActive(c, true, "Product activated successfully")
}

func (pc *ProductController) setProductActive(c *fiber.Ctx, active bool, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	product, err := pc.ProductRepo.SetProductActive(id, active)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"data":    product,
	})
}

// UpdateStockController sets the absolute stock level for a product
func (pc *ProductController) UpdateStockController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	var req requests.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product, err := pc.ProductRepo.SetProductStock(id, req.Stock)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Stock updated successfully",
		"data":    product,
	})
}
