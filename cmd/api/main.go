package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/application/service"
	"github.com/minimart/pos-api/internal/billing"
	"github.com/minimart/pos-api/internal/config"
	"github.com/minimart/pos-api/internal/infrastructure/database"
	"github.com/minimart/pos-api/internal/infrastructure/repository"
	"github.com/minimart/pos-api/internal/presentation/http/handler"
	"github.com/minimart/pos-api/internal/presentation/http/routes"
	"github.com/minimart/pos-api/pkg/printer"
	"github.com/minimart/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Purge expired idempotency keys once an hour
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to purge idempotency keys: %v", err)
			} else if n > 0 {
				log.Printf("Purged %d expired idempotency keys", n)
			}
		}
	}()

	// Billing policy comes from configuration, falling back to the
	// standard GST regime when nothing is set
	policy := billing.Policy{
		TaxRate:   cfg.POS.TaxRate,
		BagCharge: cfg.POS.BagChargeCents(),
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.Device,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	customerService := service.NewCustomerService(customerRepo, saleRepo)
	cartService := service.NewCartService(productRepo, policy, time.Duration(cfg.POS.CartTTLMinutes)*time.Minute)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, sequenceRepo, settingsRepo, policy)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	printerService := service.NewPrinterService(thermalPrinter, settingsRepo, cfg.Printer.Type)
	receiptService := service.NewReceiptService(printerService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Customer:  handler.NewCustomerHandler(customerService),
		Cart:      handler.NewCartHandler(cartService),
		Sale:      handler.NewSaleHandler(saleService, cartService, printerService, receiptService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupRoutes(router, handlers, jwtManager, idempotencyRepo, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
