package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/crimewatch/crimewatch-backend-go/internal/analysis"
	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/repository"
)

// AnalysisService runs the pattern analysis engine over inline batches or
// the stored incident set and persists completed runs
type AnalysisService struct {
	engine       *analysis.Engine
	incidentRepo *repository.IncidentRepository
	runRepo      *repository.AnalysisRunRepository
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(engine *analysis.Engine, incidentRepo *repository.IncidentRepository, runRepo *repository.AnalysisRunRepository) *AnalysisService {
	return &AnalysisService{
		engine:       engine,
		incidentRepo: incidentRepo,
		runRepo:      runRepo,
	}
}

// AnalyzeBatch runs the engine over an inline batch without touching storage
func (s *AnalysisService) AnalyzeBatch(records []models.RawIncident) (*models.AnalysisReport, error) {
	report, err := s.engine.Analyze(records)
	if err != nil {
		return nil, fmt.Errorf("batch analysis failed: %w", err)
	}
	return report, nil
}

// RunStored analyzes every stored incident and persists the report as a run
func (s *AnalysisService) RunStored() (*models.AnalysisRun, *models.AnalysisReport, error) {
	stored, err := s.incidentRepo.ListAll()
	if err != nil {
		return nil, nil, err
	}

	records := make([]models.RawIncident, len(stored))
	for i := range stored {
		records[i] = stored[i].ToRaw()
	}

	report, err := s.engine.Analyze(records)
	if err != nil {
		return nil, nil, fmt.Errorf("stored analysis failed: %w", err)
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode report: %w", err)
	}

	run := &models.AnalysisRun{
		ID:             uuid.New().String(),
		GeneratedAt:    time.Now().UTC(),
		TotalIncidents: report.TotalIncidents,
		ReportJSON:     string(payload),
	}
	if err := s.runRepo.Insert(run); err != nil {
		return nil, nil, err
	}

	log.Printf("[AnalysisService] Persisted run %s (%d incidents)", run.ID, run.TotalIncidents)
	return run, report, nil
}

// GetRun fetches a persisted run with its decoded report
func (s *AnalysisService) GetRun(id string) (*models.AnalysisRun, *models.AnalysisReport, error) {
	run, err := s.runRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(run.ReportJSON), &report); err != nil {
		return nil, nil, fmt.Errorf("failed to decode stored report: %w", err)
	}

	return run, &report, nil
}
