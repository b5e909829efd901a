package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points
// in meters using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// HaversineKm calculates the great-circle distance between two points in
// kilometers
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineDistance(lat1, lon1, lat2, lon2) / 1000.0
}

// Centroid returns the arithmetic mean of the given coordinates.
// Not a true geodesic centroid, but an acceptable approximation at city
// scale.
func Centroid(lats, lons []float64) (float64, float64) {
	if len(lats) == 0 || len(lats) != len(lons) {
		return 0, 0
	}

	var sumLat, sumLon float64
	for i := range lats {
		sumLat += lats[i]
		sumLon += lons[i]
	}

	n := float64(len(lats))
	return sumLat / n, sumLon / n
}
