package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/sharebite/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.Readiness)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		predict := v1.Group("/predict")
		{
			predict.POST("/expiration", handler.PredictExpiration)
			predict.POST("/waste-risk", handler.PredictWasteRisk)
			predict.POST("/donation", handler.PredictDonation)
			predict.POST("/priority", handler.PredictPriority)
			predict.POST("/all", handler.PredictAll)
		}
	}

	return router
}
