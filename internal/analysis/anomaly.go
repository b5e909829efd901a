package analysis

import (
	"strings"
	"time"

	"github.com/crimewatch/crimewatch-backend-go/internal/analysis/isoforest"
	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/spatial"
	"github.com/crimewatch/crimewatch-backend-go/internal/stats"
)

const (
	anomalyMinRecords    = 10
	anomalyContamination = 0.1
	unusualLocationKm    = 5.0
	unusualTimeStdDevs   = 2.0
	highSeverityQuantile = 0.9
)

// ReasonCode explains why an incident was flagged. Codes serialize in a
// fixed order: location, time, severity, then the catch-all.
type ReasonCode string

const (
	ReasonUnusualLocation    ReasonCode = "unusual_location"
	ReasonUnusualTime        ReasonCode = "unusual_time"
	ReasonHighSeverity       ReasonCode = "high_severity"
	ReasonStatisticalOutlier ReasonCode = "statistical_outlier"
)

// joinReasons renders a reason set for the report.
func joinReasons(codes []ReasonCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// detectAnomalies scores incidents with an isolation forest over
// standardized spatial/temporal/severity features and attaches rule-based
// reasons to each flag. Only records with a timestamp carry the full
// feature vector, so scoring runs over that subset, and the
// anomalyMinRecords guard applies to it: a batch whose timestamped rows
// number fewer than the minimum produces no flags even when the full batch
// is larger.
func (e *Engine) detectAnomalies(incidents []Incident) models.AnomalyResult {
	result := models.AnomalyResult{AnomalyDetails: []models.AnomalyDetail{}}

	timed := make([]Incident, 0, len(incidents))
	for _, inc := range incidents {
		if inc.HasTimestamp() {
			timed = append(timed, inc)
		}
	}
	if len(timed) < anomalyMinRecords {
		return result
	}

	features := make([][]float64, len(timed))
	for i, inc := range timed {
		features[i] = []float64{
			inc.Latitude,
			inc.Longitude,
			float64(inc.Hour),
			float64(inc.DayOfWeek),
			float64(inc.Severity),
		}
	}
	standardize(features)

	forest := isoforest.Fit(features, isoforest.Options{
		Contamination: anomalyContamination,
		Seed:          e.opts.Seed,
	})
	decisions := forest.DecisionFunction(features)

	severities := make([]float64, len(incidents))
	for i, inc := range incidents {
		severities[i] = float64(inc.Severity)
	}
	severityCutoff := stats.Quantile(severities, highSeverityQuantile)

	for i, inc := range timed {
		if decisions[i] >= 0 {
			continue
		}

		datetime := ""
		if inc.Timestamp != nil {
			datetime = inc.Timestamp.Format(time.RFC3339)
		}

		result.AnomalyDetails = append(result.AnomalyDetails, models.AnomalyDetail{
			ID:           inc.ID,
			CrimeType:    inc.CrimeType,
			Location:     models.LatLng{Lat: inc.Latitude, Lng: inc.Longitude},
			Datetime:     datetime,
			Severity:     inc.Severity,
			AnomalyScore: decisions[i],
			Reason:       joinReasons(anomalyReasons(inc, incidents, severityCutoff)),
		})
	}

	result.AnomaliesDetected = len(result.AnomalyDetails)
	result.AnomalyRate = round3(float64(result.AnomaliesDetected) / float64(len(incidents)))
	return result
}

// standardize scales each feature column to zero mean and unit variance in
// place. Constant columns are left centered only.
func standardize(features [][]float64) {
	if len(features) == 0 {
		return
	}

	for col := 0; col < len(features[0]); col++ {
		column := make([]float64, len(features))
		for row := range features {
			column[row] = features[row][col]
		}

		mean := stats.Mean(column)
		std := stats.PopStdDev(column)
		if std == 0 {
			std = 1
		}

		for row := range features {
			features[row][col] = (features[row][col] - mean) / std
		}
	}
}

// anomalyReasons applies the rule set independently of the forest score:
// far from the same-type mean location, hour far outside the same-type
// norm, or severity above the batch's 90th percentile. When no rule fires
// the flag is attributed to the detector alone.
func anomalyReasons(inc Incident, incidents []Incident, severityCutoff float64) []ReasonCode {
	var codes []ReasonCode

	var sameLats, sameLons, sameHours []float64
	for _, other := range incidents {
		if other.CrimeType != inc.CrimeType {
			continue
		}
		sameLats = append(sameLats, other.Latitude)
		sameLons = append(sameLons, other.Longitude)
		if other.HasTimestamp() {
			sameHours = append(sameHours, float64(other.Hour))
		}
	}

	if len(sameLats) > 1 {
		meanLat, meanLng := spatial.Centroid(sameLats, sameLons)
		if spatial.HaversineKm(inc.Latitude, inc.Longitude, meanLat, meanLng) > unusualLocationKm {
			codes = append(codes, ReasonUnusualLocation)
		}
	}

	if len(sameHours) > 1 {
		meanHour := stats.Mean(sameHours)
		stdHour := stats.PopStdDev(sameHours)
		if diff := float64(inc.Hour) - meanHour; diff > unusualTimeStdDevs*stdHour || -diff > unusualTimeStdDevs*stdHour {
			codes = append(codes, ReasonUnusualTime)
		}
	}

	if float64(inc.Severity) > severityCutoff {
		codes = append(codes, ReasonHighSeverity)
	}

	if len(codes) == 0 {
		codes = append(codes, ReasonStatisticalOutlier)
	}
	return codes
}
