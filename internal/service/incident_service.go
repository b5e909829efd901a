package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/repository"
)

// IncidentService handles business logic for reported incidents
type IncidentService struct {
	repo *repository.IncidentRepository
}

// NewIncidentService creates a new incident service
func NewIncidentService(repo *repository.IncidentRepository) *IncidentService {
	return &IncidentService{repo: repo}
}

// Create validates and stores one reported incident. Missing location or
// time fields are allowed; the analysis pipeline fills them later.
func (s *IncidentService) Create(raw models.RawIncident) (*models.StoredIncident, error) {
	if strings.TrimSpace(raw.CrimeType) == "" {
		return nil, fmt.Errorf("crime_type is required")
	}
	if raw.Latitude != nil && (*raw.Latitude < -90 || *raw.Latitude > 90) {
		return nil, fmt.Errorf("latitude out of range: %v", *raw.Latitude)
	}
	if raw.Longitude != nil && (*raw.Longitude < -180 || *raw.Longitude > 180) {
		return nil, fmt.Errorf("longitude out of range: %v", *raw.Longitude)
	}

	incident := &models.StoredIncident{
		ID:        uuid.New().String(),
		CrimeType: strings.ToLower(strings.TrimSpace(raw.CrimeType)),
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		Date:      raw.Date,
		Time:      raw.Time,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(incident); err != nil {
		return nil, err
	}

	log.Printf("[IncidentService] Stored incident %s (%s)", incident.ID, incident.CrimeType)
	return incident, nil
}

// List returns recent incidents, newest first
func (s *IncidentService) List(limit int) ([]models.StoredIncident, error) {
	incidents, err := s.repo.List(limit)
	if err != nil {
		return nil, err
	}
	if incidents == nil {
		incidents = []models.StoredIncident{}
	}
	return incidents, nil
}

// Count returns the total number of stored incidents
func (s *IncidentService) Count() (int64, error) {
	return s.repo.Count()
}
