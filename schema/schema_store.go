package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend               string           `json:"backend"`
	Connected             bool             `json:"connected"`
	TotalRuns             int              `json:"total_runs"`
	LastRunID             int64            `json:"last_run_id"`
	LastRunTime           time.Time        `json:"last_run_time"`
	OldestRunTime         time.Time        `json:"oldest_run_time"`
	TotalProjectsAnalyzed int              `json:"total_projects_analyzed"`
	TableSizes            map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the pulse_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID            int64
	StartTime             time.Time
	EndTime               *time.Time
	RunDurationMs         *int32
	TotalProjectsAnalyzed int32
	ConfigParams          *string
}

// ProjectScoreRecord represents a row from the pulse_project_scores table.
type ProjectScoreRecord struct {
	AnalysisID     int64
	Project        string
	Preset         string
	AnalysisTime   time.Time
	MonthsAnalyzed int32
	Score          float64
	RiskLevel      string
	AlertCount     int32
	HighAlerts     int32
}
