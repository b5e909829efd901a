package spatial

// Cluster label sentinels.
const (
	LabelNoise     = -1
	labelUnvisited = -2
)

// DBSCAN runs density-based clustering over points on the sphere using
// great-circle distance. epsMeters is the neighborhood radius and minPoints
// the number of points (including the point itself) needed to seed a
// cluster. Returns one label per input point: a non-negative cluster id or
// LabelNoise. Labels are stable for a given input order but carry no
// meaning across runs.
func DBSCAN(lats, lons []float64, epsMeters float64, minPoints int) []int {
	n := len(lats)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = labelUnvisited
	}

	index := NewGridIndex(lats, lons, epsMeters)
	clusterID := 0

	for i := 0; i < n; i++ {
		if labels[i] != labelUnvisited {
			continue
		}

		neighbors := index.Within(i)
		if len(neighbors) < minPoints {
			labels[i] = LabelNoise
			continue
		}

		labels[i] = clusterID
		queue := make([]int, 0, len(neighbors))
		for _, j := range neighbors {
			if j != i {
				queue = append(queue, j)
			}
		}

		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == LabelNoise {
				// Border point previously marked noise joins the cluster
				labels[j] = clusterID
			}
			if labels[j] != labelUnvisited {
				continue
			}
			labels[j] = clusterID

			reachable := index.Within(j)
			if len(reachable) >= minPoints {
				queue = append(queue, reachable...)
			}
		}

		clusterID++
	}

	return labels
}
