package http

import (
	"github.com/gin-gonic/gin"

	"github.com/grocersmart/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		// Storefront proxy endpoints, always answered with data
		api.GET("/search", handler.SearchProxy)
		api.GET("/featured", handler.FeaturedProducts)
	}

	// API v1 routes
	v1 := api.Group("/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.GET("/products/search", handler.SearchProducts)
		v1.GET("/products/featured", handler.FeaturedCatalog)
		v1.GET("/stores", handler.ListStores)

		basket := v1.Group("/basket")
		{
			basket.GET("", handler.GetBasket)
			basket.DELETE("", handler.ClearBasket)
			basket.POST("/items", handler.AddBasketItem)
			basket.PATCH("/items/:id", handler.UpdateBasketItem)
			basket.DELETE("/items/:id", handler.RemoveBasketItem)
			basket.GET("/comparison", handler.CompareStores)
		}

		location := v1.Group("/location")
		{
			location.GET("", handler.GetLocation)
			location.PUT("", handler.SetLocation)
			location.PUT("/stores", handler.SelectStores)
			location.POST("/stores/:id/toggle", handler.ToggleStore)
		}

		v1.GET("/checkout/summary", handler.CheckoutSummary)
		v1.POST("/session/reset", handler.ResetSession)
	}

	return router
}
