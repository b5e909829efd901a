package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
)

// ErrRunNotFound is returned when an analysis run id does not exist
var ErrRunNotFound = errors.New("analysis run not found")

// AnalysisRunRepository persists completed analysis reports
type AnalysisRunRepository struct {
	db *sql.DB
}

// NewAnalysisRunRepository creates a new analysis run repository
func NewAnalysisRunRepository(db *sql.DB) *AnalysisRunRepository {
	return &AnalysisRunRepository{db: db}
}

// Insert stores one completed run
func (r *AnalysisRunRepository) Insert(run *models.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs (id, generated_at, total_incidents, report_json)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, run.GeneratedAt.Format(time.RFC3339), run.TotalIncidents, run.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return nil
}

// GetByID retrieves one run with its full report
func (r *AnalysisRunRepository) GetByID(id string) (*models.AnalysisRun, error) {
	query := `
		SELECT id, generated_at, total_incidents, report_json
		FROM analysis_runs
		WHERE id = ?
	`

	var run models.AnalysisRun
	var generatedAt string
	err := r.db.QueryRow(query, id).Scan(
		&run.ID, &generatedAt, &run.TotalIncidents, &run.ReportJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	if ts, parseErr := time.Parse(time.RFC3339, generatedAt); parseErr == nil {
		run.GeneratedAt = ts
	}

	return &run, nil
}
