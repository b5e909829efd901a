package analysis

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
)

// defaultTime fills records submitted without a time of day.
const defaultTime = "12:00"

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"02-01-2006 15:04",
}

// normalize turns raw records into the uniform table every stage consumes.
// It never rejects input: missing coordinates are synthesized around the
// configured center with small jitter, a missing time becomes 12:00, a
// missing crime type becomes "unknown", and an unparsable date/time yields
// a nil timestamp rather than an error.
func (e *Engine) normalize(records []models.RawIncident, rng *rand.Rand) []Incident {
	incidents := make([]Incident, 0, len(records))

	for i, rec := range records {
		inc := Incident{
			ID:        rec.ID,
			CrimeType: rec.CrimeType,
		}
		if inc.ID == "" {
			inc.ID = fmt.Sprintf("incident_%d", i)
		}
		if inc.CrimeType == "" {
			inc.CrimeType = "unknown"
		}

		if rec.Latitude != nil {
			inc.Latitude = *rec.Latitude
		} else {
			inc.Latitude = e.opts.DefaultCenterLat + rng.NormFloat64()*0.1
		}
		if rec.Longitude != nil {
			inc.Longitude = *rec.Longitude
		} else {
			inc.Longitude = e.opts.DefaultCenterLng + rng.NormFloat64()*0.1
		}

		timeOfDay := rec.Time
		if timeOfDay == "" {
			timeOfDay = defaultTime
		}

		if ts := parseTimestamp(rec.Date, timeOfDay); ts != nil {
			inc.Timestamp = ts
			inc.Hour = ts.Hour()
			inc.DayOfWeek = (int(ts.Weekday()) + 6) % 7 // Monday=0
			inc.Month = int(ts.Month())
			inc.TimePeriod = ClassifyTimePeriod(inc.Hour)
		} else {
			inc.Hour = -1
			inc.DayOfWeek = -1
			inc.Month = 0
			inc.TimePeriod = PeriodUnknown
		}

		inc.Severity = SeverityFor(inc.CrimeType)
		incidents = append(incidents, inc)
	}

	return incidents
}

// parseTimestamp combines date and time strings, trying the supported
// layouts in order. Returns nil on failure; unparsable timestamps are a
// data-quality signal, not an error.
func parseTimestamp(date, timeOfDay string) *time.Time {
	if date == "" {
		return nil
	}

	combined := date + " " + timeOfDay
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, combined); err == nil {
			return &ts
		}
	}
	return nil
}
