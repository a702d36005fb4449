package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/buildco/catalog/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP)))
	{
		v1.GET("/catalog", handler.GetCatalog)
		v1.GET("/suggestions", handler.Suggest)

		brands := v1.Group("/brands")
		{
			brands.GET("", handler.ListBrands)
			brands.GET("/:brand/products", handler.ListProducts)
		}

		v1.POST("/contact", handler.SubmitContact)
	}

	return router
}
