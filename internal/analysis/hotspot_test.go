package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch-backend-go/internal/spatial"
)

func TestHotspotEvolutionSmallBatchGuard(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	incidents := make([]Incident, 0, 19)
	for i := 0; i < 19; i++ {
		incidents = append(incidents, placedIncident("theft", 13.0, 80.0, base.AddDate(0, 0, i)))
	}

	result := engine.analyzeHotspotEvolution(incidents)
	assert.False(t, result.EvolutionDetected)
	assert.Empty(t, result.HotspotChanges)
	assert.Equal(t, 0.0, result.AverageShiftDistance)
}

func TestHotspotEvolutionTracksWeeklyShift(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	// ISO week 3 centered at (13.0, 80.0), week 4 at (13.1, 80.0)
	week3 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	week4 := time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC)

	incidents := make([]Incident, 0, 20)
	for i := 0; i < 10; i++ {
		incidents = append(incidents, placedIncident("theft", 13.0, 80.0, week3.Add(time.Duration(i)*time.Hour)))
	}
	for i := 0; i < 10; i++ {
		incidents = append(incidents, placedIncident("theft", 13.1, 80.0, week4.Add(time.Duration(i)*time.Hour)))
	}

	result := engine.analyzeHotspotEvolution(incidents)

	assert.True(t, result.EvolutionDetected)
	require.Len(t, result.HotspotChanges, 1)

	change := result.HotspotChanges[0]
	assert.Equal(t, 3, change.WeekFrom)
	assert.Equal(t, 4, change.WeekTo)
	assert.Equal(t, 0, change.IntensityChange)

	wantShift := round2(spatial.HaversineKm(13.0, 80.0, 13.1, 80.0))
	assert.Equal(t, wantShift, change.HotspotShiftDistance)
	assert.Equal(t, wantShift, result.AverageShiftDistance)
}

func TestHotspotEvolutionSkipsSparseWeeks(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	week3 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	week4 := time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC)
	week5 := time.Date(2024, 1, 29, 10, 0, 0, 0, time.UTC)

	incidents := make([]Incident, 0, 21)
	for i := 0; i < 9; i++ {
		incidents = append(incidents, placedIncident("theft", 13.0, 80.0, week3.Add(time.Duration(i)*time.Hour)))
	}
	// Week 4 has only two records, below the per-week minimum
	for i := 0; i < 2; i++ {
		incidents = append(incidents, placedIncident("theft", 13.5, 80.5, week4.Add(time.Duration(i)*time.Hour)))
	}
	for i := 0; i < 10; i++ {
		incidents = append(incidents, placedIncident("theft", 13.1, 80.0, week5.Add(time.Duration(i)*time.Hour)))
	}

	result := engine.analyzeHotspotEvolution(incidents)

	// Week 4 cannot anchor a hotspot, so no change pairs with it
	for _, change := range result.HotspotChanges {
		assert.NotEqual(t, 4, change.WeekFrom)
		assert.NotEqual(t, 4, change.WeekTo)
	}
}
