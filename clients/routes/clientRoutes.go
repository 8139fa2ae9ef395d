package routes

import (
	controllers "invoicing-backend/clients/controllers"
	"invoicing-backend/clients/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ClientInitRoutes(
	app *fiber.App,
	clientRepo repositories.ClientRepository,
	db *gorm.DB,
) {
	clientController := &controllers.ClientController{
		ClientRepo: clientRepo,
		DB:         db,
	}

	api := app.Group("/api/v1")

	api.Post("/clients", clientController.CreateClientController)
	api.Get("/clients", clientController.GetFilteredClientsController)
	api.Get("/clients/:id", clientController.GetClientController)
	api.Put("/clients/:id", clientController.UpdateClientController)
	api.Delete("/clients/:id", clientController.DeactivateClientController)
	api.Post("/clients/:id/activate", clientController.ActivateClientController)
}
