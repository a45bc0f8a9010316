package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/api/handlers"
	"github.com/acaizen/posapi/internal/cart"
	"github.com/acaizen/posapi/internal/checkout"
	"github.com/acaizen/posapi/internal/config"
	"github.com/acaizen/posapi/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	sessions := cart.NewSessions()
	finalizer := checkout.NewFinalizer(checkout.NewRepositoryStore(repos), logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Catalog
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(repos, logger))
		v1.POST("/products", handlers.HandleCreateProduct(repos, logger))
		v1.PUT("/products/:id", handlers.HandleUpdateProduct(repos, logger))
		v1.DELETE("/products/:id", handlers.HandleDeleteProduct(repos, logger))

		v1.GET("/categories", handlers.HandleListCategories(repos, logger))
		v1.POST("/categories", handlers.HandleCreateCategory(repos, logger))
		v1.PUT("/categories/:id", handlers.HandleUpdateCategory(repos, logger))
		v1.DELETE("/categories/:id", handlers.HandleDeleteCategory(repos, logger))

		v1.GET("/addons", handlers.HandleListAddons(repos, logger))
		v1.POST("/addons", handlers.HandleCreateAddon(repos, logger))
		v1.PUT("/addons/:id", handlers.HandleUpdateAddon(repos, logger))
		v1.DELETE("/addons/:id", handlers.HandleDeleteAddon(repos, logger))

		// Cart and checkout, one cart per terminal
		v1.GET("/cart/:terminal", handlers.HandleGetCart(sessions))
		v1.POST("/cart/:terminal/items", handlers.HandleAddItem(sessions, repos, logger))
		v1.PUT("/cart/:terminal/items/:index", handlers.HandleUpdateItem(sessions, repos, logger))
		v1.DELETE("/cart/:terminal/items/:index", handlers.HandleRemoveItem(sessions))
		v1.DELETE("/cart/:terminal", handlers.HandleClearCart(sessions))
		v1.POST("/cart/:terminal/checkout", handlers.HandleCheckout(sessions, finalizer, logger))

		// Sales (receipt view reads by ID)
		v1.GET("/sales", handlers.HandleListSales(repos, logger))
		v1.GET("/sales/:id", handlers.HandleGetSale(repos, logger))

		// Staff
		v1.GET("/employees", handlers.HandleListEmployees(repos, logger))
		v1.POST("/employees", handlers.HandleCreateEmployee(repos, logger))
		v1.PUT("/employees/:id", handlers.HandleUpdateEmployee(repos, logger))
		v1.DELETE("/employees/:id", handlers.HandleDeleteEmployee(repos, logger))

		// Reports
		v1.GET("/reports/summary", handlers.HandleReportSummary(repos, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
