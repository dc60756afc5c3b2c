// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/oss-pulse/pulse/schema"
)

// GraphSource supplies monthly collaboration-graph snapshots, keyed by
// (project, month). Graph construction from raw event logs is an external
// concern; this interface is the seam. Implementations report and skip
// malformed graphs themselves. A month they cannot serve is simply absent
// from Months, and the scoring core treats absence as a gap, never a zero.
type GraphSource interface {
	// Projects lists every project the source can serve.
	Projects(ctx context.Context) ([]string, error)

	// Months lists the months with a loadable snapshot for a project, in
	// chronological order.
	Months(ctx context.Context, project string) ([]schema.Month, error)

	// Load returns the snapshot for one project-month. Months listed by
	// Months must load; an error here is unexpected corruption.
	Load(ctx context.Context, project string, month schema.Month) (*schema.Snapshot, error)
}

// SentimentScorer scores free-text comment batches via an external
// language-model API. Sentiment is outside the scoring core; the interface
// exists so atmosphere-style analyzers can be wired in without coupling the
// engine to any provider.
type SentimentScorer interface {
	ScoreComments(ctx context.Context, comments []string) ([]float64, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and storing
// per-project composite scores.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalProjects int) error

	// RecordProjectScore stores the composite outcome for one project
	RecordProjectScore(analysisID int64, record schema.ProjectScoreRecord) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns retrieves every recorded run, oldest first
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllProjectScores retrieves every recorded project score
	GetAllProjectScores() ([]schema.ProjectScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
