package main

import (
	"context"

	config "invoicing-backend/config"
	"invoicing-backend/middleware"
	"invoicing-backend/utils"

	// Repositories
	clients_repositories "invoicing-backend/clients/repositories"
	dashboard_repositories "invoicing-backend/dashboard/repositories"
	invoices_repositories "invoicing-backend/invoices/repositories"
	products_repositories "invoicing-backend/products/repositories"

	// Services
	invoices_services "invoicing-backend/invoices/services"

	// Routes
	client_routes "invoicing-backend/clients/routes"
	dashboard_routes "invoicing-backend/dashboard/routes"
	invoice_routes "invoicing-backend/invoices/routes"
	product_routes "invoicing-backend/products/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables; a missing .env is fine in containerized
	// deployments where everything comes from the process environment.
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file loaded; relying on process environment", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 << 20,
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	ctx := context.Background()
	redisClient := config.InitRedisServer(ctx)

	port := config.GetEnvOr("PORT", "8000")
	uploadDir := config.GetEnvOr("UPLOAD_DIR", "./uploads")

	// Serve stored invoice images
	app.Static("/uploads", uploadDir)

	// Repositories
	clientRepo := clients_repositories.NewClientRepository(db)
	productRepo := products_repositories.NewProductRepository(db)
	invoiceRepo := invoices_repositories.NewInvoiceRepository(db)
	dashboardRepo := dashboard_repositories.NewDashboardRepository(db)

	// Services
	fileStorage := utils.NewLocalFileStorage(uploadDir)
	imageService := invoices_services.NewImageService(fileStorage)
	emailService := invoices_services.NewEmailServiceFromEnv(db)
	invoiceService := invoices_services.NewInvoiceService(
		invoiceRepo, clientRepo, productRepo, emailService, imageService, redisClient)

	// Routes
	client_routes.ClientInitRoutes(app, clientRepo, db)
	product_routes.ProductInitRoutes(app, productRepo, db)
	invoice_routes.InvoiceInitRoutes(app, invoiceRepo, invoiceService)
	dashboard_routes.DashboardInitRoutes(app, dashboardRepo, redisClient)

	// Background cleanup tasks
	go utils.RunScheduledCleanup(redisClient)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
