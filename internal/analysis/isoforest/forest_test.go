package isoforest

import (
	"math/rand"
	"testing"
)

func trainingData(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		data = append(data, []float64{rng.NormFloat64(), rng.NormFloat64()})
	}
	return data
}

func TestFitIsDeterministic(t *testing.T) {
	data := trainingData(100, 1)
	opts := Options{Contamination: 0.1, Seed: 42}

	first := Fit(data, opts).DecisionFunction(data)
	second := Fit(data, opts).DecisionFunction(data)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Score %d differs between fits: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestScoreSamplesRange(t *testing.T) {
	data := trainingData(80, 2)
	forest := Fit(data, Options{Contamination: 0.1, Seed: 42})

	for i, s := range forest.ScoreSamples(data) {
		if s > 0 || s <= -1 {
			t.Errorf("Score %d out of (-1, 0]: %f", i, s)
		}
	}
}

func TestPlantedOutlierScoresLowest(t *testing.T) {
	data := trainingData(100, 3)
	data = append(data, []float64{12, -12})

	forest := Fit(data, Options{Contamination: 0.1, Seed: 42})
	scores := forest.ScoreSamples(data)

	outlierIdx := len(data) - 1
	for i, s := range scores {
		if i != outlierIdx && s < scores[outlierIdx] {
			t.Fatalf("Inlier %d scored %f, below the planted outlier's %f", i, s, scores[outlierIdx])
		}
	}

	decisions := forest.DecisionFunction(data)
	if decisions[outlierIdx] >= 0 {
		t.Errorf("Planted outlier should have a negative decision, got %f", decisions[outlierIdx])
	}
}

func TestContaminationSetsFlagFraction(t *testing.T) {
	data := trainingData(200, 4)
	forest := Fit(data, Options{Contamination: 0.1, Seed: 42})

	flagged := 0
	for _, d := range forest.DecisionFunction(data) {
		if d < 0 {
			flagged++
		}
	}

	// The offset sits at the contamination quantile of training scores,
	// so roughly 10% of the training set lands below it
	if flagged < 10 || flagged > 30 {
		t.Errorf("Expected roughly 20 of 200 flagged, got %d", flagged)
	}
}

func TestAvgPathLength(t *testing.T) {
	if avgPathLength(0) != 0 || avgPathLength(1) != 0 {
		t.Error("Degenerate sizes should have zero path length")
	}
	if avgPathLength(2) != 1 {
		t.Errorf("Expected 1 for n=2, got %f", avgPathLength(2))
	}
	if avgPathLength(256) <= avgPathLength(16) {
		t.Error("Path length should grow with n")
	}
}
