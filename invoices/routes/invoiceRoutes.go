package routes

import (
	controllers "invoicing-backend/invoices/controllers"
	"invoicing-backend/invoices/repositories"
	"invoicing-backend/invoices/services"

	"github.com/gofiber/fiber/v2"
)

func InvoiceInitRoutes(
	app *fiber.App,
	invoiceRepo repositories.InvoiceRepository,
	invoiceService *services.InvoiceService,
) {
	invoiceController := &controllers.InvoiceController{
		InvoiceRepo:    invoiceRepo,
		InvoiceService: invoiceService,
	}

	api := app.Group("/api/v1")

	api.Post("/invoices", invoiceController.CreateInvoiceController)
	api.Get("/invoices", invoiceController.GetFilteredInvoicesController)

	// Literal segments register before the :id parameter so they are not
	// swallowed by it.
	api.Get("/invoices/stats/summary", invoiceController.GetInvoiceSummaryController)
	api.Get("/invoices/number/:number", invoiceController.GetInvoiceByNumberController)

	api.Get("/invoices/:id", invoiceController.GetInvoiceController)
	api.Put("/invoices/:id", invoiceController.UpdateInvoiceController)
	api.Delete("/invoices/:id", invoiceController.VoidInvoiceController)
	api.Post("/invoices/:id/image", invoiceController.UploadInvoiceImageController)
	api.Post("/invoices/:id/send-email", invoiceController.SendInvoiceEmailController)
}
