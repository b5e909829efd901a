package analysis

import "math"

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// modalInt returns the most frequent value; ties go to the smallest value.
func modalInt(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}

	freq := make(map[int]int, len(values))
	for _, v := range values {
		freq[v]++
	}

	best := values[0]
	bestCount := 0
	for v, c := range freq {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best, true
}

// modalString returns the most frequent value; ties go to the
// lexicographically smallest value.
func modalString(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}

	freq := make(map[string]int, len(values))
	for _, v := range values {
		freq[v]++
	}

	best := values[0]
	bestCount := 0
	for v, c := range freq {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best, true
}
