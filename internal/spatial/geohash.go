package spatial

import "math"

// Base32 encoding for geohash
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// EncodeGeohash encodes latitude and longitude into a geohash string
// precision: number of characters in the geohash (1-12)
func EncodeGeohash(lat, lon float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}

	latRange := []float64{-90.0, 90.0}
	lonRange := []float64{-180.0, 180.0}

	geohash := make([]byte, 0, precision)
	bits := 0
	bit := 0
	ch := 0

	for len(geohash) < precision {
		if bit%2 == 0 {
			// Longitude
			mid := (lonRange[0] + lonRange[1]) / 2
			if lon > mid {
				ch |= (1 << (4 - bits))
				lonRange[0] = mid
			} else {
				lonRange[1] = mid
			}
		} else {
			// Latitude
			mid := (latRange[0] + latRange[1]) / 2
			if lat > mid {
				ch |= (1 << (4 - bits))
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}

		bits++
		if bits == 5 {
			geohash = append(geohash, base32[ch])
			bits = 0
			ch = 0
		}
		bit++
	}

	return string(geohash)
}

// decodeRanges walks a geohash and returns the final lat/lon ranges.
func decodeRanges(geohash string) (latRange, lonRange [2]float64) {
	latRange = [2]float64{-90.0, 90.0}
	lonRange = [2]float64{-180.0, 180.0}

	isLon := true
	for i := 0; i < len(geohash); i++ {
		idx := indexOfBase32(geohash[i])
		if idx == -1 {
			continue
		}

		for mask := 16; mask > 0; mask >>= 1 {
			if isLon {
				mid := (lonRange[0] + lonRange[1]) / 2
				if idx&mask != 0 {
					lonRange[0] = mid
				} else {
					lonRange[1] = mid
				}
			} else {
				mid := (latRange[0] + latRange[1]) / 2
				if idx&mask != 0 {
					latRange[0] = mid
				} else {
					latRange[1] = mid
				}
			}
			isLon = !isLon
		}
	}

	return latRange, lonRange
}

// DecodeGeohash decodes a geohash string into latitude and longitude
// Returns center point of the geohash cell
func DecodeGeohash(geohash string) (lat, lon float64) {
	latRange, lonRange := decodeRanges(geohash)
	return (latRange[0] + latRange[1]) / 2, (lonRange[0] + lonRange[1]) / 2
}

// GeohashBounds returns the bounding box of a geohash cell
// Returns (minLat, minLon, maxLat, maxLon)
func GeohashBounds(geohash string) (float64, float64, float64, float64) {
	latRange, lonRange := decodeRanges(geohash)
	return latRange[0], lonRange[0], latRange[1], lonRange[1]
}

// GeohashNeighbors returns the 8 neighboring geohash cells
func GeohashNeighbors(geohash string) []string {
	lat, lon := DecodeGeohash(geohash)
	precision := len(geohash)

	// Calculate cell size
	minLat, minLon, maxLat, maxLon := GeohashBounds(geohash)
	latDelta := maxLat - minLat
	lonDelta := maxLon - minLon

	neighbors := make([]string, 0, 8)
	for dLat := -1; dLat <= 1; dLat++ {
		for dLon := -1; dLon <= 1; dLon++ {
			if dLat == 0 && dLon == 0 {
				continue
			}
			newLat := lat + float64(dLat)*latDelta
			newLon := lon + float64(dLon)*lonDelta

			// Handle wrapping
			if newLat > 90 {
				newLat = 90
			}
			if newLat < -90 {
				newLat = -90
			}
			if newLon > 180 {
				newLon -= 360
			}
			if newLon < -180 {
				newLon += 360
			}

			neighbors = append(neighbors, EncodeGeohash(newLat, newLon, precision))
		}
	}

	return neighbors
}

// GeohashCellSize returns the minimum cell dimension in meters for a given
// precision, measured at the equator
func GeohashCellSize(precision int) float64 {
	sizes := map[int]float64{
		1:  4992600,
		2:  624100,
		3:  156000,
		4:  19500,
		5:  4890,
		6:  610,
		7:  153,
		8:  19.1,
		9:  4.77,
		10: 0.596,
		11: 0.149,
		12: 0.0186,
	}

	if size, ok := sizes[precision]; ok {
		return size
	}
	return 0
}

// GeohashPrecisionForRadius returns the finest geohash precision whose cell
// dimension still covers the given search radius at the equator, so that a
// cell plus its 8 neighbors is guaranteed to contain every point within the
// radius
func GeohashPrecisionForRadius(radiusMeters float64) int {
	precision := 1
	for p := 1; p <= 12; p++ {
		if GeohashCellSize(p) >= radiusMeters {
			precision = p
		}
	}
	return precision
}

// GeohashPrecisionForRadiusAt compensates for longitude compression away
// from the equator: cell width in meters shrinks by cos(latitude), so the
// covering precision must be chosen against the correspondingly widened
// radius. latDegrees is the largest absolute latitude the index has to
// serve.
func GeohashPrecisionForRadiusAt(radiusMeters, latDegrees float64) int {
	cosLat := math.Cos(math.Abs(latDegrees) * math.Pi / 180)
	if cosLat <= 0.01 {
		// Within fractions of a degree of a pole every cell ring collapses;
		// the coarsest cells cover any city-scale radius there
		return 1
	}
	return GeohashPrecisionForRadius(radiusMeters / cosLat)
}

// indexOfBase32 finds the index of a character in the base32 alphabet
func indexOfBase32(ch byte) int {
	for i := 0; i < len(base32); i++ {
		if base32[i] == ch {
			return i
		}
	}
	return -1
}
