package controllers

import (
	"invoicing-backend/config"
	"invoicing-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredProductsController handles the fetching of filtered products
func (pc *ProductController) GetFilteredProductsController(c *fiber.Ctx) error {
	params := pagination.ParseParams(c)

	filters := map[string]string{
		"active":   c.Query("active"),
		"category": c.Query("category"),
		"search":   c.Query("search"),
	}

	products, total, err := pc.ProductRepo.GetFilteredProducts(filters, params.Limit, params.Skip)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": products,
		"meta": fiber.Map{
			"skip":  params.Skip,
			"limit": params.Limit,
			"total": total,
		},
	})
}
