package analysis

import (
	"fmt"
	"sort"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/stats"
)

const trendMinRecords = 10

// assessRisk computes the overall batch risk score and its drivers.
func (e *Engine) assessRisk(incidents []Incident) models.RiskAssessment {
	n := len(incidents)

	totalSeverity := 0
	severities := make([]float64, n)
	types := make(map[string]bool)
	hourCounts := make(map[int]int)
	var firstTS, lastTS *Incident

	for i, inc := range incidents {
		totalSeverity += inc.Severity
		severities[i] = float64(inc.Severity)
		types[inc.CrimeType] = true
		if inc.HasTimestamp() {
			hourCounts[inc.Hour]++
			if firstTS == nil || inc.Timestamp.Before(*firstTS.Timestamp) {
				tmp := inc
				firstTS = &tmp
			}
			if lastTS == nil || inc.Timestamp.After(*lastTS.Timestamp) {
				tmp := inc
				lastTS = &tmp
			}
		}
	}

	maxHourly := 0
	for _, c := range hourCounts {
		if c > maxHourly {
			maxHourly = c
		}
	}

	daysSpanned := 0
	if firstTS != nil && lastTS != nil {
		daysSpanned = int(lastTS.Timestamp.Sub(*firstTS.Timestamp).Hours() / 24)
	}
	if daysSpanned < 1 {
		daysSpanned = 1
	}

	return models.RiskAssessment{
		OverallRiskScore: round2(float64(totalSeverity) / float64(n)),
		HighRiskAreas:    []string{},
		HighRiskTimes:    highRiskTimePeriods(incidents),
		RiskFactors: models.RiskFactors{
			CrimeDiversity:        len(types),
			TemporalConcentration: float64(maxHourly) / float64(n),
			SeverityVariance:      stats.Variance(severities),
			IncidentFrequency:     float64(n) / float64(daysSpanned),
		},
	}
}

// highRiskTimePeriods ranks time periods by count x mean severity (which
// reduces to the period's severity sum) and returns the top two.
func highRiskTimePeriods(incidents []Incident) []string {
	severitySums := make(map[string]int)
	for _, inc := range incidents {
		severitySums[inc.TimePeriod] += inc.Severity
	}

	periods := make([]string, 0, len(severitySums))
	for p := range severitySums {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	sort.SliceStable(periods, func(i, j int) bool {
		ri := float64(severitySums[periods[i]])
		rj := float64(severitySums[periods[j]])
		return ri > rj
	})

	if len(periods) > 2 {
		periods = periods[:2]
	}
	return periods
}

// generateInsights fits a linear trend to weekly incident counts and fills
// the deterministic prediction/recommendation templates from the batch's
// dominant crime type and peak hour.
func (e *Engine) generateInsights(incidents []Incident) models.PredictiveInsights {
	insights := models.PredictiveInsights{
		Predictions:     []string{},
		Recommendations: []string{},
	}

	if len(incidents) > trendMinRecords {
		if trend, ok := weeklyTrend(incidents); ok {
			insights.TrendAnalysis = trend
		}
	}

	mostCommon := dominantCrimeType(incidents)
	peakHour := peakHourOf(incidents)

	riskLevel := "Moderate"
	if insights.TrendAnalysis.WeeklyTrend == "increasing" {
		riskLevel = "High"
	}

	insights.Predictions = []string{
		fmt.Sprintf("High probability of %s incidents during hour %d", mostCommon, peakHour),
		fmt.Sprintf("Expected %d incidents per week based on current trends", len(incidents)/7),
		fmt.Sprintf("Risk level: %s", riskLevel),
	}

	insights.Recommendations = []string{
		fmt.Sprintf("Increase patrol presence during %d:00-%d:00", peakHour, (peakHour+1)%24),
		fmt.Sprintf("Focus prevention efforts on %s incidents", mostCommon),
		"Implement community awareness programs in high-risk areas",
		"Consider installing additional surveillance in identified hotspots",
	}

	return insights
}

// weeklyTrend fits incident counts per ISO week against the week index.
func weeklyTrend(incidents []Incident) (models.TrendAnalysis, bool) {
	weekCounts := make(map[int]int)
	for _, inc := range incidents {
		if !inc.HasTimestamp() {
			continue
		}
		_, week := inc.Timestamp.ISOWeek()
		weekCounts[week]++
	}
	if len(weekCounts) < 2 {
		return models.TrendAnalysis{}, false
	}

	weeks := make([]int, 0, len(weekCounts))
	for w := range weekCounts {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	x := make([]float64, len(weeks))
	y := make([]float64, len(weeks))
	for i, w := range weeks {
		x[i] = float64(i)
		y[i] = float64(weekCounts[w])
	}

	slope, _ := stats.LinearRegression(x, y)
	trend := models.TrendAnalysis{WeeklyTrend: "decreasing", TrendStrength: slope}
	if slope > 0 {
		trend.WeeklyTrend = "increasing"
	} else {
		trend.TrendStrength = -slope
	}
	return trend, true
}

// summarizePatterns classifies overall pattern strength from crime-type
// and hour concentration ratios and scores confidence from data size and
// type diversity.
func (e *Engine) summarizePatterns(incidents []Incident) models.PatternSummary {
	n := len(incidents)

	typeCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	totalSeverity := 0
	for _, inc := range incidents {
		typeCounts[inc.CrimeType]++
		totalSeverity += inc.Severity
		if inc.HasTimestamp() {
			hourCounts[inc.Hour]++
		}
	}

	maxType := 0
	for _, c := range typeCounts {
		if c > maxType {
			maxType = c
		}
	}
	maxHour := 0
	for _, c := range hourCounts {
		if c > maxHour {
			maxHour = c
		}
	}

	crimeConcentration := float64(maxType) / float64(n)
	timeConcentration := float64(maxHour) / float64(n)

	strength := "weak"
	switch {
	case crimeConcentration > 0.5 || timeConcentration > 0.3:
		strength = "strong"
	case crimeConcentration > 0.3 || timeConcentration > 0.2:
		strength = "moderate"
	}

	dataSizeFactor := float64(n) / 100
	if dataSizeFactor > 1 {
		dataSizeFactor = 1
	}
	consistencyFactor := 1 - float64(len(typeCounts))/float64(n)

	return models.PatternSummary{
		KeyFindings: []string{
			fmt.Sprintf("Most frequent crime type: %s", dominantCrimeType(incidents)),
			fmt.Sprintf("Peak activity hour: %d:00", peakHourOf(incidents)),
			fmt.Sprintf("Average severity level: %.1f/10", float64(totalSeverity)/float64(n)),
			fmt.Sprintf("Total incidents analyzed: %d", n),
		},
		PatternStrength: strength,
		ConfidenceScore: round2((dataSizeFactor + consistencyFactor) / 2),
		DataQuality:     "good",
	}
}

// dominantCrimeType is the modal crime type; ties resolve alphabetically.
func dominantCrimeType(incidents []Incident) string {
	types := make([]string, len(incidents))
	for i, inc := range incidents {
		types[i] = inc.CrimeType
	}
	if t, ok := modalString(types); ok {
		return t
	}
	return "theft"
}

// peakHourOf is the modal hour among timestamped records, noon when no
// record carries a timestamp.
func peakHourOf(incidents []Incident) int {
	var hours []int
	for _, inc := range incidents {
		if inc.HasTimestamp() {
			hours = append(hours, inc.Hour)
		}
	}
	if h, ok := modalInt(hours); ok {
		return h
	}
	return 12
}
