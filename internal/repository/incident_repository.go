package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
)

// IncidentRepository handles database operations for reported incidents
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Insert stores one incident
func (r *IncidentRepository) Insert(incident *models.StoredIncident) error {
	query := `
		INSERT INTO incidents (id, crime_type, latitude, longitude, date, time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var lat, lng sql.NullFloat64
	if incident.Latitude != nil {
		lat = sql.NullFloat64{Float64: *incident.Latitude, Valid: true}
	}
	if incident.Longitude != nil {
		lng = sql.NullFloat64{Float64: *incident.Longitude, Valid: true}
	}

	_, err := r.db.Exec(query,
		incident.ID, incident.CrimeType, lat, lng,
		incident.Date, incident.Time, incident.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert incident: %w", err)
	}
	return nil
}

// List retrieves incidents ordered by creation time, newest first
func (r *IncidentRepository) List(limit int) ([]models.StoredIncident, error) {
	query := `
		SELECT id, crime_type, latitude, longitude, date, time, created_at
		FROM incidents
		ORDER BY created_at DESC, id
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []models.StoredIncident
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incidents: %w", err)
	}

	return incidents, nil
}

// ListAll retrieves every incident in insertion order for analysis
func (r *IncidentRepository) ListAll() ([]models.StoredIncident, error) {
	query := `
		SELECT id, crime_type, latitude, longitude, date, time, created_at
		FROM incidents
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []models.StoredIncident
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incidents: %w", err)
	}

	return incidents, nil
}

// Count returns the total number of stored incidents
func (r *IncidentRepository) Count() (int64, error) {
	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM incidents").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}
	return total, nil
}

func scanIncident(rows *sql.Rows) (models.StoredIncident, error) {
	var incident models.StoredIncident
	var lat, lng sql.NullFloat64
	var date, timeOfDay sql.NullString
	var createdAt string

	if err := rows.Scan(
		&incident.ID, &incident.CrimeType, &lat, &lng,
		&date, &timeOfDay, &createdAt,
	); err != nil {
		return incident, fmt.Errorf("failed to scan incident: %w", err)
	}

	if lat.Valid {
		incident.Latitude = &lat.Float64
	}
	if lng.Valid {
		incident.Longitude = &lng.Float64
	}
	if date.Valid {
		incident.Date = date.String
	}
	if timeOfDay.Valid {
		incident.Time = timeOfDay.String
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		incident.CreatedAt = ts
	}

	return incident, nil
}
