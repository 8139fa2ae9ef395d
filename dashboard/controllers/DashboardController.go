package controllers

import (
	"time"

	"invoicing-backend/config"
	"invoicing-backend/dashboard/repositories"
	"invoicing-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsCacheTTL = 5 * time.Minute

type DashboardController struct {
	DashboardRepo repositories.DashboardRepository
	Redis         *redis.Client
}

// respondCached serves the dashboard payload from Redis when present and
// recomputes it otherwise. Cache errors degrade to a direct query.
func (dc *DashboardController) respondCached(c *fiber.Ctx, key string, dest interface{}, load func() (interface{}, error)) error {
	if hit, err := utils.GetCachedJSON(c.Context(), dc.Redis, key, dest); err == nil && hit {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"data":   dest,
			"cached": true,
		})
	}

	data, err := load()
	if err != nil {
		config.Logger.Error("Failed to compute dashboard data",
			zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute dashboard data",
		})
	}

	if err := utils.CacheJSON(c.Context(), dc.Redis, key, data, statsCacheTTL); err != nil {
		config.Logger.Warn("Failed to cache dashboard data",
			zap.String("key", key), zap.Error(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": data,
	})
}

// GetStatsController returns the landing-page counters for the current month
func (dc *DashboardController) GetStatsController(c *fiber.Ctx) error {
	var cached repositories.DashboardStats
	return dc.respondCached(c, "dashboard:stats", &cached, func() (interface{}, error) {
		return dc.DashboardRepo.GetStats(time.Now())
	})
}

// GetMonthlySalesController returns the trailing twelve-month revenue series
func (dc *DashboardController) GetMonthlySalesController(c *fiber.Ctx) error {
	var cached []repositories.MonthlySales
	return dc.respondCached(c, "dashboard:monthly-sales", &cached, func() (interface{}, error) {
		return dc.DashboardRepo.GetMonthlySales(time.Now())
	})
}

// GetTopProductsController ranks products sold over the last 30 days
func (dc *DashboardController) GetTopProductsController(c *fiber.Ctx) error {
	var cached []repositories.TopProduct
	return dc.respondCached(c, "dashboard:top-products", &cached, func() (interface{}, error) {
		return dc.DashboardRepo.GetTopProducts(time.Now())
	})
}

// GetTopClientsController ranks clients billed over the last 90 days
func (dc *DashboardController) GetTopClientsController(c *fiber.Ctx) error {
	var cached []repositories.TopClient
	return dc.respondCached(c, "dashboard:top-clients", &cached, func() (interface{}, error) {
		return dc.DashboardRepo.GetTopClients(time.Now())
	})
}
