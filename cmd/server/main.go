package main

import (
	"log"

	"github.com/crimewatch/crimewatch-backend-go/internal/analysis"
	"github.com/crimewatch/crimewatch-backend-go/internal/api"
	"github.com/crimewatch/crimewatch-backend-go/internal/config"
	"github.com/crimewatch/crimewatch-backend-go/internal/database"
	"github.com/crimewatch/crimewatch-backend-go/internal/handler"
	"github.com/crimewatch/crimewatch-backend-go/internal/repository"
	"github.com/crimewatch/crimewatch-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	incidentRepo := repository.NewIncidentRepository(database.GetDB())
	runRepo := repository.NewAnalysisRunRepository(database.GetDB())

	engine := analysis.NewEngine(analysis.Options{
		Seed:             cfg.AnalysisSeed,
		DefaultCenterLat: cfg.DefaultCenterLat,
		DefaultCenterLng: cfg.DefaultCenterLng,
	})

	incidentService := service.NewIncidentService(incidentRepo)
	analysisService := service.NewAnalysisService(engine, incidentRepo, runRepo)

	router := api.SetupRouter(cfg, api.Handlers{
		Auth:     handler.NewAuthHandler(cfg),
		Incident: handler.NewIncidentHandler(incidentService),
		Analysis: handler.NewAnalysisHandler(analysisService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
