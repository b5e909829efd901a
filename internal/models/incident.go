package models

import "time"

// RawIncident is one reported crime as received from the API or decoded
// from storage. Every field besides crime_type may be absent; the analysis
// pipeline fills gaps instead of rejecting records.
type RawIncident struct {
	ID        string   `json:"id,omitempty"`
	CrimeType string   `json:"crime_type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
}

// StoredIncident is the persisted form of a reported crime.
type StoredIncident struct {
	ID        string    `json:"id" db:"id"`
	CrimeType string    `json:"crime_type" db:"crime_type"`
	Latitude  *float64  `json:"latitude" db:"latitude"`
	Longitude *float64  `json:"longitude" db:"longitude"`
	Date      string    `json:"date" db:"date"`
	Time      string    `json:"time" db:"time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ToRaw converts a stored incident back into the batch input shape.
func (s *StoredIncident) ToRaw() RawIncident {
	return RawIncident{
		ID:        s.ID,
		CrimeType: s.CrimeType,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Date:      s.Date,
		Time:      s.Time,
	}
}

// AnalysisRun is a persisted analysis report over the stored incident set.
type AnalysisRun struct {
	ID             string    `json:"id" db:"id"`
	GeneratedAt    time.Time `json:"generated_at" db:"generated_at"`
	TotalIncidents int       `json:"total_incidents" db:"total_incidents"`
	ReportJSON     string    `json:"report_json,omitempty" db:"report_json"`
}
