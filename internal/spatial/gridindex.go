package spatial

import (
	"math"
	"sort"
)

// GridIndex buckets points into geohash cells so that radius queries only
// scan a cell and its 8 neighbors instead of the whole point set. The cell
// precision is chosen against the batch's maximum absolute latitude, where
// cell width in meters is narrowest, so the 3x3 block always covers the
// query radius; candidates are still verified with an exact haversine
// check, so results match a naive full scan exactly.
type GridIndex struct {
	lats      []float64
	lons      []float64
	radius    float64
	precision int
	cells     map[string][]int
}

// NewGridIndex builds an index over the given coordinates for queries at
// the given radius in meters.
func NewGridIndex(lats, lons []float64, radiusMeters float64) *GridIndex {
	maxAbsLat := 0.0
	for _, lat := range lats {
		if a := math.Abs(lat); a > maxAbsLat {
			maxAbsLat = a
		}
	}

	g := &GridIndex{
		lats:      lats,
		lons:      lons,
		radius:    radiusMeters,
		precision: GeohashPrecisionForRadiusAt(radiusMeters, maxAbsLat),
		cells:     make(map[string][]int),
	}

	for i := range lats {
		key := EncodeGeohash(lats[i], lons[i], g.precision)
		g.cells[key] = append(g.cells[key], i)
	}

	return g
}

// Within returns the indices of all points within the query radius of
// point i, including i itself, in ascending index order.
func (g *GridIndex) Within(i int) []int {
	return g.WithinPoint(g.lats[i], g.lons[i])
}

// WithinPoint returns the indices of all points within the query radius of
// an arbitrary location, in ascending index order. Coverage is guaranteed
// for locations inside the indexed latitude span.
func (g *GridIndex) WithinPoint(lat, lon float64) []int {
	center := EncodeGeohash(lat, lon, g.precision)
	keys := append([]string{center}, GeohashNeighbors(center)...)

	seen := make(map[string]bool, len(keys))
	var result []int
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		for _, idx := range g.cells[key] {
			if HaversineDistance(lat, lon, g.lats[idx], g.lons[idx]) <= g.radius {
				result = append(result, idx)
			}
		}
	}

	sort.Ints(result)
	return result
}
