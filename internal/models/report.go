package models

// LatLng is a point in floating-point degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AnalysisReport is the full result of one pattern analysis over a batch.
// It is a pure function of the input batch given a fixed seed; no section
// references another and nothing in it is mutated after assembly.
type AnalysisReport struct {
	Timestamp          string               `json:"timestamp"`
	TotalIncidents     int                  `json:"total_incidents"`
	SpatialClusters    SpatialClusterResult `json:"spatial_clusters"`
	TemporalPatterns   TemporalResult       `json:"temporal_patterns"`
	CrimeCorrelations  CorrelationResult    `json:"crime_correlations"`
	AnomalyDetection   AnomalyResult        `json:"anomaly_detection"`
	HotspotEvolution   HotspotResult        `json:"hotspot_evolution"`
	RiskAssessment     RiskAssessment       `json:"risk_assessment"`
	PredictiveInsights PredictiveInsights   `json:"predictive_insights"`
	PatternSummary     PatternSummary       `json:"pattern_summary"`
}

// SpatialClusterResult describes density-based clusters found in a batch.
type SpatialClusterResult struct {
	TotalClusters        int             `json:"total_clusters"`
	NoisePoints          int             `json:"noise_points"`
	ClusterDetails       []ClusterDetail `json:"cluster_details"`
	ClusteringEfficiency float64         `json:"clustering_efficiency"`
}

// ClusterDetail summarizes one spatial cluster, ordered by risk score.
type ClusterDetail struct {
	ClusterID         int            `json:"cluster_id"`
	Center            LatLng         `json:"center"`
	IncidentCount     int            `json:"incident_count"`
	DominantCrimeType string         `json:"dominant_crime_type"`
	AverageSeverity   float64        `json:"average_severity"`
	RiskScore         float64        `json:"risk_score"`
	TimeDistribution  map[string]int `json:"time_distribution"`
}

// TemporalResult holds time-bucketed histograms and peak timing.
// Records without a parseable timestamp are excluded from every bucket.
type TemporalResult struct {
	HourlyDistribution     map[int]int                 `json:"hourly_distribution"`
	DailyDistribution      map[int]int                 `json:"daily_distribution"`
	MonthlyDistribution    map[int]int                 `json:"monthly_distribution"`
	TimePeriodDistribution map[string]int              `json:"time_period_distribution"`
	PeakHours              []int                       `json:"peak_hours"`
	PeakDays               []string                    `json:"peak_days"`
	CrimeTypePatterns      map[string]CrimeTypePattern `json:"crime_type_patterns"`
}

// CrimeTypePattern is the modal timing of a single crime type.
type CrimeTypePattern struct {
	PeakHour             int    `json:"peak_hour"`
	PeakDay              string `json:"peak_day"`
	TimePeriodPreference string `json:"time_period_preference"`
}

// CorrelationResult holds pairwise crime-type relationships.
type CorrelationResult struct {
	CrimeTypeCooccurrence map[string]int       `json:"crime_type_cooccurrence"`
	SpatialCorrelations   map[string]float64   `json:"spatial_correlations"`
	TemporalCorrelations  TemporalCorrelations `json:"temporal_correlations"`
}

// TemporalCorrelations is the Pearson correlation matrix between
// crime-type incident counts over the hour axis.
type TemporalCorrelations struct {
	HourCrimeCorrelation map[string]map[string]float64 `json:"hour_crime_correlation,omitempty"`
}

// AnomalyResult lists statistically unusual incidents.
type AnomalyResult struct {
	AnomaliesDetected int             `json:"anomalies_detected"`
	AnomalyRate       float64         `json:"anomaly_rate"`
	AnomalyDetails    []AnomalyDetail `json:"anomaly_details"`
}

// AnomalyDetail flags one incident. AnomalyScore is the detector's raw
// decision-function value; more negative means more anomalous. Reason is
// the comma-joined reason code set in stable order.
type AnomalyDetail struct {
	ID           string  `json:"id"`
	CrimeType    string  `json:"crime_type"`
	Location     LatLng  `json:"location"`
	Datetime     string  `json:"datetime,omitempty"`
	Severity     int     `json:"severity"`
	AnomalyScore float64 `json:"anomaly_score"`
	Reason       string  `json:"reason"`
}

// HotspotResult tracks weekly hotspot centroid drift.
type HotspotResult struct {
	EvolutionDetected    bool            `json:"evolution_detected"`
	HotspotChanges       []HotspotChange `json:"hotspot_changes"`
	AverageShiftDistance float64         `json:"average_shift_distance"`
}

// HotspotChange is the drift between two consecutive usable ISO weeks.
type HotspotChange struct {
	WeekFrom             int     `json:"week_from"`
	WeekTo               int     `json:"week_to"`
	HotspotShiftDistance float64 `json:"hotspot_shift_distance"`
	IntensityChange      int     `json:"intensity_change"`
}

// RiskAssessment summarizes batch-level risk.
type RiskAssessment struct {
	OverallRiskScore float64     `json:"overall_risk_score"`
	HighRiskAreas    []string    `json:"high_risk_areas"`
	HighRiskTimes    []string    `json:"high_risk_times"`
	RiskFactors      RiskFactors `json:"risk_factors"`
}

// RiskFactors are the scalar drivers behind the overall risk score.
type RiskFactors struct {
	CrimeDiversity        int     `json:"crime_diversity"`
	TemporalConcentration float64 `json:"temporal_concentration"`
	SeverityVariance      float64 `json:"severity_variance"`
	IncidentFrequency     float64 `json:"incident_frequency"`
}

// PredictiveInsights carries template-generated predictions and the
// weekly trend classification.
type PredictiveInsights struct {
	Predictions     []string      `json:"predictions"`
	Recommendations []string      `json:"recommendations"`
	TrendAnalysis   TrendAnalysis `json:"trend_analysis"`
}

// TrendAnalysis classifies the weekly incident-count trend.
type TrendAnalysis struct {
	WeeklyTrend   string  `json:"weekly_trend,omitempty"`
	TrendStrength float64 `json:"trend_strength,omitempty"`
}

// PatternSummary is the human-readable wrap-up of the whole report.
type PatternSummary struct {
	KeyFindings     []string `json:"key_findings"`
	PatternStrength string   `json:"pattern_strength"`
	ConfidenceScore float64  `json:"confidence_score"`
	DataQuality     string   `json:"data_quality"`
}
