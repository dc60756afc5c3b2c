package schema

// Custom string types for type safety.
type (
	// Direction marks which way a metric deteriorates.
	Direction string

	// AlertType identifies a month-over-month regression signal.
	AlertType string

	// Severity is the urgency of an alert.
	Severity string

	// RiskLevel is the discrete classification of a composite score.
	RiskLevel string

	// ScoreConvention selects risk (higher is worse) or health (higher is better).
	ScoreConvention string

	// AnalyzerPreset names a bundled scoring configuration.
	AnalyzerPreset string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// Bad directions for metric series.
const (
	DecreaseIsBad Direction = "decrease" // volume/health metrics
	IncreaseIsBad Direction = "increase" // distance/cost metrics
)

// All alert types emitted by the detector.
const (
	AlertActivityDrop         AlertType = "ACTIVITY_DROP"
	AlertCoreMemberLoss       AlertType = "CORE_MEMBER_LOSS"
	AlertCollaborationDecline AlertType = "COLLABORATION_DECLINE"
	AlertContributorDrop      AlertType = "CONTRIBUTOR_DROP"
	AlertSustainedDecline     AlertType = "SUSTAINED_DECLINE"
)

// All severities supported.
const (
	MediumSeverity Severity = "medium"
	HighSeverity   Severity = "high"
)

// All risk levels supported.
const (
	HighRisk    RiskLevel = "high"
	MediumRisk  RiskLevel = "medium"
	LowRisk     RiskLevel = "low"
	MinimalRisk RiskLevel = "minimal"
)

// All score conventions supported.
const (
	RiskConvention   ScoreConvention = "risk"   // default
	HealthConvention ScoreConvention = "health" // 100 - risk, inverted levels
)

// All analyzer presets supported.
const (
	BurnoutPreset  AnalyzerPreset = "burnout" // default
	NewcomerPreset AnalyzerPreset = "newcomer"
	QualityPreset  AnalyzerPreset = "quality"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Dimension names tracked by the built-in presets.
const (
	DimActivity      = "activity"
	DimContributors  = "contributors"
	DimCoreStability = "core_stability"
	DimCollaboration = "collaboration"
	DimCoreDistance  = "core_distance"
)

// AllAnalyzerPresets returns a list of all supported presets.
var AllAnalyzerPresets = []AnalyzerPreset{BurnoutPreset, NewcomerPreset, QualityPreset}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidAnalyzerPresets lists all valid analyzer presets.
var ValidAnalyzerPresets = map[AnalyzerPreset]struct{}{
	BurnoutPreset:  {},
	NewcomerPreset: {},
	QualityPreset:  {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidConventions lists all valid score conventions.
var ValidConventions = map[ScoreConvention]struct{}{
	RiskConvention:   {},
	HealthConvention: {},
}

// severityRank orders severities for sorting, highest urgency first.
var severityRank = map[Severity]int{
	HighSeverity:   0,
	MediumSeverity: 1,
}

// SeverityRank returns the sort rank of a severity (lower sorts first).
func SeverityRank(s Severity) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}
