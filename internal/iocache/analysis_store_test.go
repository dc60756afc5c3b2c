package iocache

import (
	"testing"
	"time"

	"github.com/oss-pulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScoreRecord(analysisID int64, project string) schema.ProjectScoreRecord {
	return schema.ProjectScoreRecord{
		AnalysisID:     analysisID,
		Project:        project,
		Preset:         "burnout",
		AnalysisTime:   time.Now(),
		MonthsAnalyzed: 12,
		Score:          63.4,
		RiskLevel:      "high",
		AlertCount:     4,
		HighAlerts:     2,
	}
}

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginAnalysis should return 0 for NoneBackend
	analysisID, err := store.BeginAnalysis(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), analysisID)

	// Other operations should not error
	err = store.EndAnalysis(1, time.Now(), 10)
	assert.NoError(t, err)

	err = store.RecordProjectScore(1, testScoreRecord(1, "acme/widgets"))
	assert.NoError(t, err)

	err = store.Close()
	assert.NoError(t, err)
}

func TestAnalysisStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginAnalysis
	startTime := time.Now()
	configParams := map[string]any{
		"preset":     "burnout",
		"start":      "2024-01",
		"end":        "2024-12",
		"graphs_dir": "/test/graphs",
	}
	analysisID, err := store.BeginAnalysis(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	// Test RecordProjectScore
	err = store.RecordProjectScore(analysisID, testScoreRecord(analysisID, "acme/widgets"))
	assert.NoError(t, err)

	// Test EndAnalysis
	endTime := time.Now()
	err = store.EndAnalysis(analysisID, endTime, 1)
	assert.NoError(t, err)
}

func TestAnalysisStore_MultipleProjects(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	analysisID, err := store.BeginAnalysis(time.Now(), map[string]any{"test": "multi-project"})
	require.NoError(t, err)

	projects := []string{"acme/widgets", "acme/gears", "acme/sprockets"}
	for _, project := range projects {
		err = store.RecordProjectScore(analysisID, testScoreRecord(analysisID, project))
		assert.NoError(t, err)
	}

	err = store.EndAnalysis(analysisID, time.Now(), len(projects))
	assert.NoError(t, err)

	scores, err := store.GetAllProjectScores()
	assert.NoError(t, err)
	assert.Len(t, scores, len(projects))
}

func TestAnalysisStore_MultipleRuns(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	var analysisIDs []int64
	for i := range 3 {
		id, err := store.BeginAnalysis(time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		analysisIDs = append(analysisIDs, id)

		err = store.RecordProjectScore(id, testScoreRecord(id, "acme/widgets"))
		assert.NoError(t, err)

		err = store.EndAnalysis(id, time.Now(), 1)
		assert.NoError(t, err)
	}

	// Verify all IDs are unique
	assert.Equal(t, 3, len(analysisIDs))
	assert.NotEqual(t, analysisIDs[0], analysisIDs[1])
	assert.NotEqual(t, analysisIDs[1], analysisIDs[2])
}

func TestAnalysisStore_RuntimeCapture(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	t.Run("runtime calculation", func(t *testing.T) {
		startTime := time.Now().Add(-100 * time.Millisecond) // Start 100ms ago
		analysisID, err := store.BeginAnalysis(startTime, map[string]any{"test": "runtime"})
		require.NoError(t, err)

		time.Sleep(50 * time.Millisecond)

		endTime := time.Now()
		err = store.EndAnalysis(analysisID, endTime, 1)
		assert.NoError(t, err)

		// Query the database to verify runtime was captured
		db := store.(*AnalysisStoreImpl).db
		var storedStartTime, storedEndTime string
		var storedDurationMs int64

		row := db.QueryRow("SELECT start_time, end_time, run_duration_ms FROM pulse_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedStartTime, &storedEndTime, &storedDurationMs)
		assert.NoError(t, err)

		storedStart, err := time.Parse(time.RFC3339Nano, storedStartTime)
		assert.NoError(t, err)
		storedEnd, err := time.Parse(time.RFC3339Nano, storedEndTime)
		assert.NoError(t, err)

		// Verify duration calculation: should be approximately end - start
		expectedDurationMs := storedEnd.Sub(storedStart).Milliseconds()
		assert.Equal(t, expectedDurationMs, storedDurationMs)

		assert.GreaterOrEqual(t, storedDurationMs, int64(100)) // At least 100ms (our initial offset)
		assert.LessOrEqual(t, storedDurationMs, int64(300))    // At most 300ms (allowing for test overhead)
	})

	t.Run("zero duration edge case", func(t *testing.T) {
		startTime := time.Now()
		analysisID, err := store.BeginAnalysis(startTime, map[string]any{"test": "zero_duration"})
		require.NoError(t, err)

		err = store.EndAnalysis(analysisID, startTime, 1)
		assert.NoError(t, err)

		db := store.(*AnalysisStoreImpl).db
		var storedDurationMs int64
		row := db.QueryRow("SELECT run_duration_ms FROM pulse_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedDurationMs)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), storedDurationMs)
	})

	t.Run("large duration", func(t *testing.T) {
		startTime := time.Now().Add(-5 * time.Second)
		analysisID, err := store.BeginAnalysis(startTime, map[string]any{"test": "large_duration"})
		require.NoError(t, err)

		endTime := time.Now()
		err = store.EndAnalysis(analysisID, endTime, 1)
		assert.NoError(t, err)

		db := store.(*AnalysisStoreImpl).db
		var storedDurationMs int64
		row := db.QueryRow("SELECT run_duration_ms FROM pulse_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedDurationMs)
		assert.NoError(t, err)

		// Should be around 5000ms ± tolerance
		assert.GreaterOrEqual(t, storedDurationMs, int64(4900))
		assert.LessOrEqual(t, storedDurationMs, int64(5100))
	})
}

func TestAnalysisStore_GetAllAnalysisRuns(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	// Add some analysis runs
	startTime := time.Now()
	configs := []map[string]any{
		{"preset": "burnout", "start": "2024-01"},
		{"preset": "newcomer", "start": "2023-01"},
	}

	var analysisIDs []int64
	for _, config := range configs {
		id, err := store.BeginAnalysis(startTime, config)
		require.NoError(t, err)
		analysisIDs = append(analysisIDs, id)

		err = store.EndAnalysis(id, startTime.Add(time.Minute), 1)
		assert.NoError(t, err)
	}

	// Get all runs
	runs, err = store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Len(t, runs, 2)

	for i, run := range runs {
		assert.Equal(t, analysisIDs[i], run.AnalysisID)
		// ConfigParams is stored as JSON string, so we can't directly compare
		assert.Equal(t, int32(1), run.TotalProjectsAnalyzed)
		assert.NotNil(t, run.RunDurationMs)
		assert.Greater(t, *run.RunDurationMs, int32(0))
	}
}

func TestAnalysisStore_GetAllProjectScores(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	scores, err := store.GetAllProjectScores()
	assert.NoError(t, err)
	assert.Empty(t, scores)

	// Add analysis run and project score
	analysisID, err := store.BeginAnalysis(time.Now(), map[string]any{"test": "scores"})
	require.NoError(t, err)

	want := testScoreRecord(analysisID, "acme/widgets")
	err = store.RecordProjectScore(analysisID, want)
	assert.NoError(t, err)

	err = store.EndAnalysis(analysisID, time.Now(), 1)
	assert.NoError(t, err)

	// Get all scores
	scores, err = store.GetAllProjectScores()
	assert.NoError(t, err)
	assert.Len(t, scores, 1)

	record := scores[0]
	assert.Equal(t, analysisID, record.AnalysisID)
	assert.Equal(t, want.Project, record.Project)
	assert.Equal(t, want.Preset, record.Preset)
	assert.Equal(t, want.MonthsAnalyzed, record.MonthsAnalyzed)
	assert.Equal(t, want.Score, record.Score)
	assert.Equal(t, want.RiskLevel, record.RiskLevel)
	assert.Equal(t, want.AlertCount, record.AlertCount)
	assert.Equal(t, want.HighAlerts, record.HighAlerts)
}

func TestAnalysisStore_BeginEndAnalysis(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginAnalysis
	startTime := time.Now()
	configParams := map[string]any{"preset": "quality", "workers": 4}
	analysisID, err := store.BeginAnalysis(startTime, configParams)
	assert.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	// Test EndAnalysis
	endTime := time.Now()
	totalProjects := 42
	err = store.EndAnalysis(analysisID, endTime, totalProjects)
	assert.NoError(t, err)

	// Verify the data was stored correctly
	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, analysisID, run.AnalysisID)
	assert.Equal(t, int32(totalProjects), run.TotalProjectsAnalyzed)
	assert.NotNil(t, run.RunDurationMs)
}

func TestAnalysisStore_GetStatus(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Empty store reports zero runs
	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	analysisID, err := store.BeginAnalysis(time.Now(), map[string]any{"test": "status"})
	require.NoError(t, err)

	err = store.RecordProjectScore(analysisID, testScoreRecord(analysisID, "acme/widgets"))
	assert.NoError(t, err)

	err = store.EndAnalysis(analysisID, time.Now(), 1)
	assert.NoError(t, err)

	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, analysisID, status.LastRunID)
	assert.Equal(t, 1, status.TotalProjectsAnalyzed)
}
