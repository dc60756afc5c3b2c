package schema

// DimensionScore is the three-layer decomposition of one dimension's risk
// contribution. Each sub-score is independently clamped to its share of the
// dimension budget; Total is their sum and never exceeds the budget.
type DimensionScore struct {
	TrendScore      float64 `json:"trend_score"`
	RecentScore     float64 `json:"recent_score"`
	VolatilityScore float64 `json:"volatility_score"`
	Total           float64 `json:"total"`

	// Diagnostic values for explain output.
	Slope        float64 `json:"slope"`
	RecentChange float64 `json:"recent_change"`
	Volatility   float64 `json:"volatility"`
	UsableMonths int     `json:"usable_months"`
}

// DimensionFactor pairs a dimension's latest observed value with its score
// and budget for the summary output.
type DimensionFactor struct {
	Value  float64        `json:"value"`
	Score  DimensionScore `json:"score"`
	Weight float64        `json:"weight"` // dimension budget (max score)
}

// CompositeScore aggregates all dimension scores of a project at a point in
// time. Total follows the configured convention: a risk score sums the
// dimension totals, a health score reports 100 minus that sum.
type CompositeScore struct {
	Dimensions map[string]DimensionScore `json:"dimensions"`
	Total      float64                   `json:"total"`
	RiskTotal  float64                   `json:"risk_total"`
	Level      RiskLevel                 `json:"risk_level"`
	Convention ScoreConvention           `json:"convention"`
}

// Alert is one discrete regression event detected between adjacent months.
type Alert struct {
	Type     AlertType `json:"type"`
	Project  string    `json:"project"`
	Month    Month     `json:"month"`
	Severity Severity  `json:"severity"`
	Detail   string    `json:"detail"`

	// Magnitude is the computed trigger value: a relative change for drop
	// alerts, a loss ratio for core-member alerts.
	Magnitude float64 `json:"magnitude"`
}

// MonthlyRecord is one month's observed dimension values plus the alerts
// raised at that month.
type MonthlyRecord struct {
	Month      Month              `json:"month"`
	Dimensions map[string]float64 `json:"dimensions"`
	CoreSize   int                `json:"core_size"`
	Alerts     []Alert            `json:"alerts,omitempty"`
}

// ProjectReport is the full longitudinal output for one project: the ordered
// monthly records plus the final composite summary. Its JSON shape is stable
// across runs given identical input.
type ProjectReport struct {
	Project        string                     `json:"project"`
	Preset         AnalyzerPreset             `json:"preset"`
	MonthsAnalyzed int                        `json:"months_analyzed"`
	Period         string                     `json:"period"`
	Records        []MonthlyRecord            `json:"records"`
	Alerts         []Alert                    `json:"alerts"`
	Factors        map[string]DimensionFactor `json:"factors"`
	Composite      CompositeScore             `json:"composite"`
}

// SummaryRow is one project's line in the cross-project summary, sorted by
// risk descending.
type SummaryRow struct {
	Project        string    `json:"project"`
	Score          float64   `json:"score"`
	Level          RiskLevel `json:"risk_level"`
	MonthsAnalyzed int       `json:"months_analyzed"`
	AlertCount     int       `json:"alert_count"`
	HighAlerts     int       `json:"high_alerts"`
}
