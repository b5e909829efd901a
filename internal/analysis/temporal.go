package analysis

import (
	"sort"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
)

// analyzeTemporalPatterns aggregates incidents into hourly, daily, monthly
// and time-period histograms and extracts per-crime-type peak timing.
func (e *Engine) analyzeTemporalPatterns(incidents []Incident) models.TemporalResult {
	result := models.TemporalResult{
		HourlyDistribution:     make(map[int]int),
		DailyDistribution:      make(map[int]int),
		MonthlyDistribution:    make(map[int]int),
		TimePeriodDistribution: make(map[string]int),
		CrimeTypePatterns:      make(map[string]models.CrimeTypePattern),
	}

	for _, inc := range incidents {
		if !inc.HasTimestamp() {
			continue
		}
		result.HourlyDistribution[inc.Hour]++
		result.DailyDistribution[inc.DayOfWeek]++
		result.MonthlyDistribution[inc.Month]++
		result.TimePeriodDistribution[inc.TimePeriod]++
	}

	result.PeakHours = topBuckets(result.HourlyDistribution, 3)

	peakDayIdx := topBuckets(result.DailyDistribution, 3)
	result.PeakDays = make([]string, 0, len(peakDayIdx))
	for _, d := range peakDayIdx {
		result.PeakDays = append(result.PeakDays, dayNames[d])
	}

	for crimeType, subset := range groupByType(incidents) {
		result.CrimeTypePatterns[crimeType] = typePattern(subset)
	}

	return result
}

// topBuckets returns up to limit bucket keys ranked by count descending.
// Keys are pre-sorted ascending so ties resolve to the smaller bucket,
// matching the stable sort of the counting step.
func topBuckets(hist map[int]int, limit int) []int {
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return hist[keys[i]] > hist[keys[j]]
	})

	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

func groupByType(incidents []Incident) map[string][]Incident {
	groups := make(map[string][]Incident)
	for _, inc := range incidents {
		groups[inc.CrimeType] = append(groups[inc.CrimeType], inc)
	}
	return groups
}

// typePattern computes the modal hour, weekday and time period of one crime
// type's records. Types whose records all lack timestamps fall back to noon
// on Monday afternoons.
func typePattern(subset []Incident) models.CrimeTypePattern {
	hours := make([]int, 0, len(subset))
	days := make([]int, 0, len(subset))
	periods := make([]string, 0, len(subset))

	for _, inc := range subset {
		if inc.HasTimestamp() {
			hours = append(hours, inc.Hour)
			days = append(days, inc.DayOfWeek)
		}
		periods = append(periods, inc.TimePeriod)
	}

	pattern := models.CrimeTypePattern{
		PeakHour:             12,
		PeakDay:              "Monday",
		TimePeriodPreference: PeriodAfternoon,
	}

	if hour, ok := modalInt(hours); ok {
		pattern.PeakHour = hour
	}
	if day, ok := modalInt(days); ok {
		pattern.PeakDay = dayNames[day]
	}
	if period, ok := modalString(periods); ok {
		pattern.TimePeriodPreference = period
	}

	return pattern
}
