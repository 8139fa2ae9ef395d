package routes

import (
	controllers "invoicing-backend/products/controllers"
	"invoicing-backend/products/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ProductInitRoutes(
	app *fiber.App,
	productRepo repositories.ProductRepository,
	db *gorm.DB,
) {
	productController := &controllers.ProductController{
		ProductRepo: productRepo,
		DB:          db,
	}

	api := app.Group("/api/v1")

	api.Post("/products", productController.CreateProductController)
	api.Get("/products", productController.GetFilteredProductsController)
	api.Get("/products/code/:code", productController.GetProductByCodeController)
	api.Get("/products/:id", productController.GetProductController)
	api.Put("/products/:id", productController.UpdateProductController)
	api.Delete("/products/:id", productController.DeactivateProductController)
	api.Post("/products/:id/activate", productController.ActivateProductController)
	api.Put("/products/:id/stock", productController.UpdateStockController)
}
