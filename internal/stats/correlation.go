package stats

import "math"

// PearsonCorrelation calculates the Pearson correlation coefficient between
// two variables. Returns value between -1 and 1, or 0 when either variable
// has no variance.
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumX2, sumY2 float64
	for i := 0; i < len(x); i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	if sumX2 == 0 || sumY2 == 0 {
		return 0
	}

	return sumXY / math.Sqrt(sumX2*sumY2)
}

// LinearRegression performs simple linear regression (y = a + bx)
// Returns slope (b) and intercept (a)
func LinearRegression(x, y []float64) (slope, intercept float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumX2 float64
	for i := 0; i < len(x); i++ {
		dx := x[i] - meanX
		sumXY += dx * (y[i] - meanY)
		sumX2 += dx * dx
	}

	if sumX2 == 0 {
		return 0, meanY
	}

	slope = sumXY / sumX2
	intercept = meanY - slope*meanX

	return slope, intercept
}
