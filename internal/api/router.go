package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-backend-go/internal/config"
	"github.com/crimewatch/crimewatch-backend-go/internal/handler"
	"github.com/crimewatch/crimewatch-backend-go/internal/middleware"
)

// Handlers groups the HTTP handlers wired into the router
type Handlers struct {
	Auth     *handler.AuthHandler
	Incident *handler.IncidentHandler
	Analysis *handler.AnalysisHandler
}

// SetupRouter builds the gin engine with middleware and all routes
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS
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

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "CrimeWatch Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", h.Auth.Login)

		incidents := api.Group("/incidents")
		{
			incidents.GET("", h.Incident.ListIncidents)
			incidents.POST("", middleware.Auth(cfg.JWTSecret), h.Incident.CreateIncident)
		}

		analysis := api.Group("/analysis")
		{
			analysis.POST("/patterns", h.Analysis.AnalyzePatterns)
			analysis.POST("/runs", middleware.Auth(cfg.JWTSecret), h.Analysis.CreateRun)
			analysis.GET("/runs/:id", h.Analysis.GetRun)
		}
	}

	return r
}
