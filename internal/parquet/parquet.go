// Package parquet provides data structures and functions for exporting health
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/oss-pulse/pulse/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single health analysis run with metadata.
// This struct maps to the pulse_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalProjectsAnalyzed is the number of projects analyzed in this run
	TotalProjectsAnalyzed int32 `parquet:"total_projects_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ProjectScore represents the composite score for a single project in an analysis.
// This struct maps to the pulse_project_scores database table.
type ProjectScore struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// Project is the project identifier, typically owner/name
	Project string `parquet:"project,snappy"`

	// Preset is the scoring preset used for this project
	Preset string `parquet:"preset,snappy"`

	// AnalysisTime is when this project was analyzed (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// MonthsAnalyzed is the number of monthly snapshots covered by the analysis
	MonthsAnalyzed int32 `parquet:"months_analyzed,snappy"`

	// Score is the composite score under the configured convention
	Score float64 `parquet:"score,snappy"`

	// RiskLevel is the classified level for the composite score
	RiskLevel string `parquet:"risk_level,snappy"`

	// AlertCount is the total number of alerts raised for this project
	AlertCount int32 `parquet:"alert_count,snappy"`

	// HighAlerts is the number of high severity alerts raised for this project
	HighAlerts int32 `parquet:"high_alerts,snappy"`
}

// SummaryRow represents one project's line in a cross-project summary export.
type SummaryRow struct {
	// Project is the project identifier, typically owner/name
	Project string `parquet:"project,snappy"`

	// Score is the composite score under the configured convention
	Score float64 `parquet:"score,snappy"`

	// RiskLevel is the classified level for the composite score
	RiskLevel string `parquet:"risk_level,snappy"`

	// MonthsAnalyzed is the number of monthly snapshots covered by the analysis
	MonthsAnalyzed int32 `parquet:"months_analyzed,snappy"`

	// AlertCount is the total number of alerts raised for this project
	AlertCount int32 `parquet:"alert_count,snappy"`

	// HighAlerts is the number of high severity alerts raised for this project
	HighAlerts int32 `parquet:"high_alerts,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteProjectScoresParquet writes a slice of ProjectScore structs to a Parquet file.
func WriteProjectScoresParquet(data []ProjectScore, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ProjectScore struct tags
	writer := parquet.NewGenericWriter[ProjectScore](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSummaryParquet writes a slice of SummaryRow structs to a Parquet file.
func WriteSummaryParquet(data []SummaryRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[SummaryRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertSummaryRows converts schema.SummaryRow to SummaryRow for Parquet export.
func ConvertSummaryRows(rows []schema.SummaryRow) []SummaryRow {
	result := make([]SummaryRow, len(rows))
	for i, row := range rows {
		result[i] = SummaryRow{
			Project:        row.Project,
			Score:          row.Score,
			RiskLevel:      string(row.Level),
			MonthsAnalyzed: int32(row.MonthsAnalyzed),
			AlertCount:     int32(row.AlertCount),
			HighAlerts:     int32(row.HighAlerts),
		}
	}
	return result
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:            record.AnalysisID,
			StartTime:             record.StartTime,
			EndTime:               record.EndTime,
			RunDurationMs:         record.RunDurationMs,
			TotalProjectsAnalyzed: record.TotalProjectsAnalyzed,
			ConfigParams:          record.ConfigParams,
		}
	}
	return result
}

// ConvertProjectScoreRecords converts schema.ProjectScoreRecord to ProjectScore for Parquet export.
func ConvertProjectScoreRecords(records []schema.ProjectScoreRecord) []ProjectScore {
	result := make([]ProjectScore, len(records))
	for i, record := range records {
		result[i] = ProjectScore{
			AnalysisID:     record.AnalysisID,
			Project:        record.Project,
			Preset:         record.Preset,
			AnalysisTime:   record.AnalysisTime,
			MonthsAnalyzed: record.MonthsAnalyzed,
			Score:          record.Score,
			RiskLevel:      record.RiskLevel,
			AlertCount:     record.AlertCount,
			HighAlerts:     record.HighAlerts,
		}
	}
	return result
}
