package routes

import (
	controllers "invoicing-backend/dashboard/controllers"
	"invoicing-backend/dashboard/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func DashboardInitRoutes(
	app *fiber.App,
	dashboardRepo repositories.DashboardRepository,
	rdb *redis.Client,
) {
	dashboardController := &controllers.DashboardController{
		DashboardRepo: dashboardRepo,
		Redis:         rdb,
	}

	api := app.Group("/api/v1")

	api.Get("/dashboard/stats", dashboardController.GetStatsController)
	api.Get("/dashboard/monthly-sales", dashboardController.GetMonthlySalesController)
	api.Get("/dashboard/top-products", dashboardController.GetTopProductsController)
	api.Get("/dashboard/top-clients", dashboardController.GetTopClientsController)
}
