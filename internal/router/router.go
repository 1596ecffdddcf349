package router

import (
	"net/http"
	"time"

	"smartshopper/internal/grocery"
	"smartshopper/internal/insights"
	"smartshopper/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts the grocery API. Empty origins allows any origin.
func NewRouter(handler *grocery.Handler, insightsHandler *insights.Handler, origins []string) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	r.Use(cors.New(corsConfig), middleware.RequestID())

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/stores", handler.Stores)

		groceries := api.Group("/groceries")
		groceries.GET("/search", handler.Search)
		groceries.GET("/suggestions", handler.Suggestions)
		groceries.GET("/compare", handler.Compare)

		api.POST("/lists/estimate", handler.EstimateList)

		market := api.Group("/insights")
		market.GET("/categories", insightsHandler.Categories)
		market.GET("/categories/:category", insightsHandler.Category)
		market.GET("/stores", insightsHandler.Stores)
	}

	return r
}
