package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/minimart/pos-api/internal/config"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/internal/presentation/http/handler"
	"github.com/minimart/pos-api/internal/presentation/http/middleware"
	"github.com/minimart/pos-api/pkg/utils"
)

// Handlers bundles every HTTP handler wired into the router
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Customer  *handler.CustomerHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Printer   *handler.PrinterHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(
	router *gin.Engine,
	h *Handlers,
	jwtManager *utils.JWTManager,
	idempotencyRepo repository.IdempotencyRepository,
	cfg *config.Config,
) {
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	limiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
		limiterCfg.RequestsPerSecond = float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration)
		limiterCfg.BurstSize = cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewUserRateLimiter(limiterCfg)
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: idempotencyRepo})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// Authenticated routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	protected.Use(rateLimiter.Middleware())
	{
		protected.GET("/auth/me", h.Auth.Me)
		protected.POST("/auth/change-password", h.Auth.ChangePassword)

		// Catalog: reads for everyone at the till, writes for admins
		products := protected.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/low-stock", h.Product.LowStock)
			products.GET("/code/:code", h.Product.GetByCode)
			products.GET("/:id", h.Product.Get)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.GET("/:id", h.Category.Get)
		}

		// Open carts
		carts := protected.Group("/carts")
		{
			carts.POST("", h.Cart.Create)
			carts.GET("/:id", h.Cart.Get)
			carts.POST("/:id/items", h.Cart.AddItem)
			carts.PUT("/:id/items", h.Cart.SetQuantity)
			carts.DELETE("/:id/items/:code", h.Cart.RemoveItem)
			carts.PUT("/:id/bag-charge", h.Cart.SetBagCharge)
			carts.POST("/:id/clear", h.Cart.Clear)
			carts.POST("/:id/checkout", idempotency, h.Sale.CheckoutCart)
			carts.DELETE("/:id", h.Cart.Close)
		}

		// Sales: checkouts are guarded against double submission
		sales := protected.Group("/sales")
		{
			sales.POST("", idempotency, h.Sale.Record)
			sales.GET("", h.Sale.List)
			sales.GET("/next-numbers", h.Sale.NextNumbers)
			sales.GET("/:billNo", h.Sale.Get)
			sales.GET("/:billNo/receipt", h.Sale.Receipt)
			sales.POST("/:billNo/print", h.Sale.Print)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.GET("/no/:no", h.Customer.GetByNo)
			customers.GET("/no/:no/sales", h.Customer.Sales)
		}

		printer := protected.Group("/printer")
		{
			printer.GET("/status", h.Printer.Status)
			printer.POST("/test", h.Printer.Test)
		}

		// Admin-only routes
		admin := protected.Group("")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("/products", h.Product.Create)
			admin.PUT("/products/:id", h.Product.Update)
			admin.DELETE("/products/:id", h.Product.Delete)
			admin.POST("/products/:id/stock", h.Product.Restock)

			admin.POST("/categories", h.Category.Create)
			admin.PUT("/categories/:id", h.Category.Update)
			admin.DELETE("/categories/:id", h.Category.Delete)

			admin.PUT("/customers/:id", h.Customer.Update)

			admin.GET("/dashboard", h.Dashboard.GetStats)
			admin.GET("/dashboard/sales-by-category", h.Dashboard.SalesByCategory)
			admin.GET("/dashboard/top-products", h.Dashboard.TopProducts)

			admin.GET("/settings", h.Settings.Get)
			admin.PUT("/settings", h.Settings.Update)

			admin.POST("/users", h.User.Create)
			admin.GET("/users", h.User.List)
			admin.GET("/users/:id", h.User.Get)
			admin.PUT("/users/:id", h.User.Update)
			admin.DELETE("/users/:id", h.User.Delete)
		}
	}
}
