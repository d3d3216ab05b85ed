package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/photoatlas/heatmap-backend-go/internal/config"
	"github.com/photoatlas/heatmap-backend-go/internal/handler"
	"github.com/photoatlas/heatmap-backend-go/internal/heatmap"
	"github.com/photoatlas/heatmap-backend-go/internal/middleware"
	"github.com/photoatlas/heatmap-backend-go/internal/repository"
	"github.com/photoatlas/heatmap-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	pointRepo := repository.NewPointRepository(db)
	pointService := service.NewPointService(pointRepo)
	heatmapService := service.NewHeatmapService(pointRepo, heatmap.NewWorker(cfg.Debounce))

	pointHandler := handler.NewPointHandler(pointService)
	heatmapHandler := handler.NewHeatmapHandler(heatmapService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Photo heatmap API is running",
		})
	})

	limiter := middleware.NewRateLimiter(120, time.Minute)

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	{
		points := api.Group("/points")
		{
			points.POST("", middleware.Auth(cfg.JWTSecret), pointHandler.CreatePoints)
			points.GET("", pointHandler.GetPoints)
			points.GET("/bounds", pointHandler.GetBounds)
		}

		hm := api.Group("/heatmap")
		{
			hm.GET("", heatmapHandler.GetHeatmap)
			hm.GET("/grid", heatmapHandler.GetGrid)
			hm.GET("/legend", heatmapHandler.GetLegend)
			hm.GET("/latest", heatmapHandler.GetLatest)
			hm.POST("/viewport", heatmapHandler.PostViewport)
		}
	}

	return r
}
