package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatialClustersSmallBatchAllNoise(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	incidents := []Incident{
		placedIncident("theft", 13.0, 80.0, base),
		placedIncident("theft", 13.0, 80.0, base),
		placedIncident("theft", 13.0, 80.0, base),
		placedIncident("theft", 13.0, 80.0, base),
	}

	result := engine.analyzeSpatialClusters(incidents)
	assert.Equal(t, 0, result.TotalClusters)
	assert.Equal(t, 4, result.NoisePoints)
	assert.Empty(t, result.ClusterDetails)
}

func TestSpatialClustersFindsDenseGroup(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	// Five points within ~50 m of each other plus one far away
	incidents := []Incident{
		placedIncident("robbery", 13.00000, 80.00000, base),
		placedIncident("robbery", 13.00020, 80.00000, base),
		placedIncident("robbery", 13.00040, 80.00000, base),
		placedIncident("theft", 13.00020, 80.00020, base),
		placedIncident("robbery", 13.00000, 80.00020, base),
		placedIncident("theft", 14.00000, 81.00000, base),
	}

	result := engine.analyzeSpatialClusters(incidents)

	require.Equal(t, 1, result.TotalClusters)
	assert.Equal(t, 1, result.NoisePoints)
	require.Len(t, result.ClusterDetails, 1)

	detail := result.ClusterDetails[0]
	assert.Equal(t, 5, detail.IncidentCount)
	assert.Equal(t, "robbery", detail.DominantCrimeType)

	// 4 robberies (7) and 1 theft (4): mean 6.4, risk 6.4*5/10
	assert.Equal(t, 6.4, detail.AverageSeverity)
	assert.Equal(t, 3.2, detail.RiskScore)
	assert.Equal(t, 5, detail.TimeDistribution[PeriodMorning])

	assert.InDelta(t, 13.00016, detail.Center.Lat, 0.0001)
	assert.InDelta(t, 80.00008, detail.Center.Lng, 0.0001)

	assert.Equal(t, round2(5.0/6.0), result.ClusteringEfficiency)
}

func TestDescribeClusterDominantTieFirstSeen(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	incidents := []Incident{
		placedIncident("vandalism", 13.0, 80.0, base),
		placedIncident("assault", 13.0, 80.0, base),
		placedIncident("vandalism", 13.0, 80.0, base),
		placedIncident("assault", 13.0, 80.0, base),
	}

	detail := engine.describeCluster(0, []int{0, 1, 2, 3}, incidents)
	assert.Equal(t, "vandalism", detail.DominantCrimeType)
	assert.Equal(t, 4, detail.IncidentCount)
}
