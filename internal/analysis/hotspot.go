package analysis

import (
	"sort"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/spatial"
)

const (
	hotspotMinRecords     = 20
	hotspotMinWeekRecords = 3
)

// weeklyHotspot is the single-centroid summary of one ISO week.
type weeklyHotspot struct {
	lat       float64
	lng       float64
	intensity int
}

// analyzeHotspotEvolution partitions timestamped incidents into ISO
// calendar weeks and measures centroid drift between consecutive weeks in
// the observed week list. A week needs hotspotMinWeekRecords records to
// produce a centroid; a pair involving a sparser week yields no change.
func (e *Engine) analyzeHotspotEvolution(incidents []Incident) models.HotspotResult {
	result := models.HotspotResult{HotspotChanges: []models.HotspotChange{}}
	if len(incidents) < hotspotMinRecords {
		return result
	}

	byWeek := make(map[int][]Incident)
	for _, inc := range incidents {
		if !inc.HasTimestamp() {
			continue
		}
		_, week := inc.Timestamp.ISOWeek()
		byWeek[week] = append(byWeek[week], inc)
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	var totalShift float64
	for i := 0; i+1 < len(weeks); i++ {
		current := weekHotspot(byWeek[weeks[i]])
		next := weekHotspot(byWeek[weeks[i+1]])
		if current == nil || next == nil {
			continue
		}

		shift := round2(spatial.HaversineKm(current.lat, current.lng, next.lat, next.lng))
		totalShift += shift
		result.HotspotChanges = append(result.HotspotChanges, models.HotspotChange{
			WeekFrom:             weeks[i],
			WeekTo:               weeks[i+1],
			HotspotShiftDistance: shift,
			IntensityChange:      next.intensity - current.intensity,
		})
	}

	result.EvolutionDetected = len(result.HotspotChanges) > 0
	if result.EvolutionDetected {
		result.AverageShiftDistance = round2(totalShift / float64(len(result.HotspotChanges)))
	}
	return result
}

// weekHotspot reduces one week to a mean-location centroid with the record
// count as intensity, or nil when the week is too sparse to call a hotspot.
func weekHotspot(weekIncidents []Incident) *weeklyHotspot {
	if len(weekIncidents) < hotspotMinWeekRecords {
		return nil
	}

	lats := make([]float64, len(weekIncidents))
	lons := make([]float64, len(weekIncidents))
	for i, inc := range weekIncidents {
		lats[i] = inc.Latitude
		lons[i] = inc.Longitude
	}

	lat, lng := spatial.Centroid(lats, lons)
	return &weeklyHotspot{lat: lat, lng: lng, intensity: len(weekIncidents)}
}
