package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/spatial"
	"github.com/crimewatch/crimewatch-backend-go/internal/stats"
)

const (
	cooccurrenceRadiusM = 1000.0
	cooccurrenceWindowH = 24.0
)

// analyzeCorrelations measures pairwise crime-type co-occurrence (within
// 1 km and 24 h) and the Pearson correlation between crime-type incident
// counts over the hour axis. Records without timestamps cannot satisfy the
// time window and are skipped.
//
// Co-occurrence is a pairwise cross count keyed "{crime1}-{crime2}": each
// qualifying incident pair contributes to both directed keys. That double
// counting is kept deliberately for compatibility with the established
// report shape. A geohash grid index replaces the full cross product; the
// counts are identical to the naive definition.
func (e *Engine) analyzeCorrelations(incidents []Incident) models.CorrelationResult {
	result := models.CorrelationResult{
		CrimeTypeCooccurrence: make(map[string]int),
		SpatialCorrelations:   make(map[string]float64),
	}

	timed := make([]Incident, 0, len(incidents))
	for _, inc := range incidents {
		if inc.HasTimestamp() {
			timed = append(timed, inc)
		}
	}
	if len(timed) == 0 {
		return result
	}

	lats := make([]float64, len(timed))
	lons := make([]float64, len(timed))
	for i, inc := range timed {
		lats[i] = inc.Latitude
		lons[i] = inc.Longitude
	}

	index := spatial.NewGridIndex(lats, lons, cooccurrenceRadiusM)
	for i, inc := range timed {
		for _, j := range index.Within(i) {
			other := timed[j]
			if other.CrimeType == inc.CrimeType {
				continue
			}
			hoursApart := math.Abs(inc.Timestamp.Sub(*other.Timestamp).Hours())
			if hoursApart <= cooccurrenceWindowH {
				key := fmt.Sprintf("%s-%s", inc.CrimeType, other.CrimeType)
				result.CrimeTypeCooccurrence[key]++
			}
		}
	}

	result.TemporalCorrelations = hourCrimeCorrelation(timed)
	return result
}

// hourCrimeCorrelation pivots incidents into an hour x crime-type count
// matrix and correlates crime-type columns across the hours present.
func hourCrimeCorrelation(timed []Incident) models.TemporalCorrelations {
	hourSet := make(map[int]bool)
	counts := make(map[string]map[int]int)
	for _, inc := range timed {
		hourSet[inc.Hour] = true
		if counts[inc.CrimeType] == nil {
			counts[inc.CrimeType] = make(map[int]int)
		}
		counts[inc.CrimeType][inc.Hour]++
	}

	hours := make([]int, 0, len(hourSet))
	for h := range hourSet {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	columns := make(map[string][]float64, len(types))
	for _, t := range types {
		col := make([]float64, len(hours))
		for i, h := range hours {
			col[i] = float64(counts[t][h])
		}
		columns[t] = col
	}

	matrix := make(map[string]map[string]float64, len(types))
	for _, t1 := range types {
		row := make(map[string]float64, len(types))
		for _, t2 := range types {
			row[t2] = round2(stats.PearsonCorrelation(columns[t1], columns[t2]))
		}
		matrix[t1] = row
	}

	return models.TemporalCorrelations{HourCrimeCorrelation: matrix}
}
