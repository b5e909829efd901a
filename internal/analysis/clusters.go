package analysis

import (
	"sort"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/spatial"
)

const (
	clusterEpsMeters  = 500.0
	clusterMinPoints  = 3
	clusterMinRecords = 5
)

// analyzeSpatialClusters groups incidents by geographic proximity using
// density-based clustering with a haversine metric and ranks clusters by
// risk score. Batches below clusterMinRecords are all treated as noise
// rather than clustered, which keeps the cluster/noise partition invariant
// intact on tiny inputs.
func (e *Engine) analyzeSpatialClusters(incidents []Incident) models.SpatialClusterResult {
	n := len(incidents)
	if n < clusterMinRecords {
		return models.SpatialClusterResult{
			TotalClusters:  0,
			NoisePoints:    n,
			ClusterDetails: []models.ClusterDetail{},
		}
	}

	lats := make([]float64, n)
	lons := make([]float64, n)
	for i, inc := range incidents {
		lats[i] = inc.Latitude
		lons[i] = inc.Longitude
	}

	labels := spatial.DBSCAN(lats, lons, clusterEpsMeters, clusterMinPoints)

	members := make(map[int][]int)
	noise := 0
	for i, label := range labels {
		if label == spatial.LabelNoise {
			noise++
			continue
		}
		members[label] = append(members[label], i)
	}

	clusterIDs := make([]int, 0, len(members))
	for id := range members {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Ints(clusterIDs)

	details := make([]models.ClusterDetail, 0, len(clusterIDs))
	for _, id := range clusterIDs {
		details = append(details, e.describeCluster(id, members[id], incidents))
	}

	// Primary output ordering contract: highest risk first
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].RiskScore > details[j].RiskScore
	})

	return models.SpatialClusterResult{
		TotalClusters:        len(clusterIDs),
		NoisePoints:          noise,
		ClusterDetails:       details,
		ClusteringEfficiency: round2(float64(n-noise) / float64(n)),
	}
}

func (e *Engine) describeCluster(id int, member []int, incidents []Incident) models.ClusterDetail {
	lats := make([]float64, len(member))
	lons := make([]float64, len(member))
	severities := 0
	timeDist := make(map[string]int)

	typeCounts := make(map[string]int)
	typeOrder := make([]string, 0)

	for i, idx := range member {
		inc := incidents[idx]
		lats[i] = inc.Latitude
		lons[i] = inc.Longitude
		severities += inc.Severity
		timeDist[inc.TimePeriod]++

		if typeCounts[inc.CrimeType] == 0 {
			typeOrder = append(typeOrder, inc.CrimeType)
		}
		typeCounts[inc.CrimeType]++
	}

	// Mode of crime types, first-seen order breaking ties
	dominant := "unknown"
	dominantCount := 0
	for _, t := range typeOrder {
		if typeCounts[t] > dominantCount {
			dominant = t
			dominantCount = typeCounts[t]
		}
	}

	centerLat, centerLng := spatial.Centroid(lats, lons)
	avgSeverity := float64(severities) / float64(len(member))
	riskScore := avgSeverity * float64(len(member)) / 10

	return models.ClusterDetail{
		ClusterID:         id,
		Center:            models.LatLng{Lat: centerLat, Lng: centerLng},
		IncidentCount:     len(member),
		DominantCrimeType: dominant,
		AverageSeverity:   round2(avgSeverity),
		RiskScore:         round2(riskScore),
		TimeDistribution:  timeDist,
	}
}
