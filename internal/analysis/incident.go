package analysis

import (
	"strings"
	"time"
)

// Time period buckets for hour-of-day classification.
const (
	PeriodMorning   = "morning"   // 6-12
	PeriodAfternoon = "afternoon" // 12-18
	PeriodEvening   = "evening"   // 18-22
	PeriodNight     = "night"     // 22-6
	PeriodUnknown   = "unknown"
)

// DefaultSeverity applies to crime types missing from the severity table.
const DefaultSeverity = 5

// crimeSeverity maps crime types to a 1-10 severity proxy.
var crimeSeverity = map[string]int{
	"murder":     10,
	"rape":       9,
	"robbery":    7,
	"assault":    6,
	"burglary":   5,
	"drug":       5,
	"theft":      4,
	"fraud":      4,
	"vandalism":  3,
	"cybercrime": 3,
}

// Incident is one normalized record. Derived fields are computed once by
// the normalizer and never mutated by any stage. When the timestamp could
// not be parsed, Timestamp is nil, Hour and DayOfWeek are -1, Month is 0
// and TimePeriod is "unknown"; such records stay in spatial aggregates but
// are excluded from every time-bucketed one.
type Incident struct {
	ID         string
	CrimeType  string
	Latitude   float64
	Longitude  float64
	Timestamp  *time.Time
	Hour       int // 0-23, -1 when Timestamp is nil
	DayOfWeek  int // 0=Monday .. 6=Sunday, -1 when Timestamp is nil
	Month      int // 1-12, 0 when Timestamp is nil
	Severity   int
	TimePeriod string
}

// HasTimestamp reports whether the record's date and time were parseable.
func (in *Incident) HasTimestamp() bool {
	return in.Timestamp != nil
}

// SeverityFor looks up the severity for a crime type, falling back to
// DefaultSeverity for unknown types.
func SeverityFor(crimeType string) int {
	if s, ok := crimeSeverity[strings.ToLower(crimeType)]; ok {
		return s
	}
	return DefaultSeverity
}

// ClassifyTimePeriod buckets an hour of day, handling the night wraparound
// (22-6) explicitly.
func ClassifyTimePeriod(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18 && hour < 22:
		return PeriodEvening
	case hour >= 22 || (hour >= 0 && hour < 6):
		return PeriodNight
	default:
		return PeriodUnknown
	}
}
