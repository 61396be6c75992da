// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zakvibe/zakvibe-backend/internal/config"
	"github.com/zakvibe/zakvibe-backend/internal/handlers"
	"github.com/zakvibe/zakvibe-backend/internal/middleware"
	"github.com/zakvibe/zakvibe-backend/internal/provider"
	"github.com/zakvibe/zakvibe-backend/internal/services"
)

// Initialize wires services, handlers and routes. db may be nil when
// persistence is disabled.
func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	dataProvider := provider.NewSerpClient(provider.SerpConfig{
		APIKey:         cfg.Provider.APIKey,
		BaseURL:        cfg.Provider.BaseURL,
		AmazonDomain:   cfg.Provider.AmazonDomain,
		RequestsPerSec: cfg.Provider.RequestsPerSec,
		MaxRetries:     cfg.Provider.MaxRetries,
	})
	activityService := services.NewActivityService(cfg.Engine.ActivitySize)
	marketService := services.NewMarketService(
		dataProvider,
		activityService,
		db,
		logrus.StandardLogger(),
		time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
	)

	// Initialize handlers
	marketHandler := handlers.NewMarketHandler(marketService, activityService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  "1.0.0",
			"provider": dataProvider.Available(),
			"database": db != nil,
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		market := v1.Group("/market")
		{
			market.POST("/analyze", middleware.AnalyzeRateLimit(), marketHandler.AnalyzeKeyword)
			market.POST("/xray", middleware.AnalyzeRateLimit(), marketHandler.AnalyzeListings)
			market.GET("/activity", marketHandler.GetActivity)
			market.GET("/stats", marketHandler.GetStats)
			market.POST("/sourcing", marketHandler.FindSourcing)
			market.POST("/profit", marketHandler.CalculateProfit)

			if db != nil {
				market.GET("/history", marketHandler.GetHistory)
			}
		}
	}

	return r
}
