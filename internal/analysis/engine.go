// Package analysis implements the crime pattern analysis pipeline: a
// normalizer followed by five independent stages (spatial clustering,
// temporal patterns, correlations, anomaly detection, hotspot evolution
// with risk and insight summaries) merged into one report.
package analysis

import (
	"log"
	"math/rand"
	"time"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
)

// Options is the immutable configuration of an Engine. DefaultCenter
// coordinates anchor synthesized locations for records missing them; Seed
// drives all randomness (coordinate jitter, forest subsampling) so a batch
// always produces the same report.
type Options struct {
	Seed             int64
	DefaultCenterLat float64
	DefaultCenterLng float64
}

// DefaultOptions returns the configuration used in production: the Chennai
// city center and a fixed seed.
func DefaultOptions() Options {
	return Options{
		Seed:             42,
		DefaultCenterLat: 13.0827,
		DefaultCenterLng: 80.2707,
	}
}

// Engine runs the analysis pipeline. It holds configuration only; every
// Analyze call builds its own transient state (RNG, scaler, forest), so one
// Engine is safe to share across concurrent requests.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Analyze runs the full pipeline over one batch and returns the merged
// report. Dirty or sparse input is never an error: malformed fields are
// defaulted by the normalizer and each stage has an explicit small-batch
// fallback, so callers always get a structurally complete report. The error
// return is reserved for unexpected internal failures, which propagate to
// the caller instead of being masked by empty sections.
func (e *Engine) Analyze(records []models.RawIncident) (*models.AnalysisReport, error) {
	log.Printf("[AnalysisEngine] Starting pattern analysis (%d records)", len(records))

	if len(records) == 0 {
		return emptyReport(), nil
	}

	rng := rand.New(rand.NewSource(e.opts.Seed))
	incidents := e.normalize(records, rng)

	report := &models.AnalysisReport{
		Timestamp:          time.Now().Format(time.RFC3339),
		TotalIncidents:     len(incidents),
		SpatialClusters:    e.analyzeSpatialClusters(incidents),
		TemporalPatterns:   e.analyzeTemporalPatterns(incidents),
		CrimeCorrelations:  e.analyzeCorrelations(incidents),
		AnomalyDetection:   e.detectAnomalies(incidents),
		HotspotEvolution:   e.analyzeHotspotEvolution(incidents),
		RiskAssessment:     e.assessRisk(incidents),
		PredictiveInsights: e.generateInsights(incidents),
		PatternSummary:     e.summarizePatterns(incidents),
	}

	log.Printf("[AnalysisEngine] Pattern analysis completed (%d incidents)", len(incidents))
	return report, nil
}

// emptyReport is the zero-batch short circuit: every section present and
// well-formed with zero or empty values.
func emptyReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		Timestamp:      time.Now().Format(time.RFC3339),
		TotalIncidents: 0,
		SpatialClusters: models.SpatialClusterResult{
			ClusterDetails: []models.ClusterDetail{},
		},
		TemporalPatterns: models.TemporalResult{
			HourlyDistribution:     map[int]int{},
			DailyDistribution:      map[int]int{},
			MonthlyDistribution:    map[int]int{},
			TimePeriodDistribution: map[string]int{},
			PeakHours:              []int{},
			PeakDays:               []string{},
			CrimeTypePatterns:      map[string]models.CrimeTypePattern{},
		},
		CrimeCorrelations: models.CorrelationResult{
			CrimeTypeCooccurrence: map[string]int{},
			SpatialCorrelations:   map[string]float64{},
		},
		AnomalyDetection: models.AnomalyResult{
			AnomalyDetails: []models.AnomalyDetail{},
		},
		HotspotEvolution: models.HotspotResult{
			HotspotChanges: []models.HotspotChange{},
		},
		RiskAssessment: models.RiskAssessment{
			HighRiskAreas: []string{},
			HighRiskTimes: []string{},
		},
		PredictiveInsights: models.PredictiveInsights{
			Predictions:     []string{},
			Recommendations: []string{},
		},
		PatternSummary: models.PatternSummary{
			KeyFindings:     []string{"No data available for analysis"},
			PatternStrength: "none",
			ConfidenceScore: 0,
			DataQuality:     "good",
		},
	}
}
