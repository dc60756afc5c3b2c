//go:build basic

// Package integration contains integration tests for pulse.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPulseAnalyzeVerification runs the analyze command end to end and checks
// the JSON summary shape and determinism.
func TestPulseAnalyzeVerification(t *testing.T) {
	graphsDir := t.TempDir()
	writeGraphFixtures(t, graphsDir)

	args := []string{"analyze", graphsDir, "--output", "json", "--cache-backend", "none"}

	first, err := runPulseCommand(t, args...)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(first, &rows))
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Contains(t, row, "project")
		assert.Contains(t, row, "score")
		assert.Contains(t, row, "rank")
		assert.Contains(t, row, "months_analyzed")
		assert.Equal(t, float64(3), row["months_analyzed"])
	}

	// Identical input and configuration must reproduce identical output.
	second, err := runPulseCommand(t, args...)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

// TestPulseReportVerification checks the per-project report output.
func TestPulseReportVerification(t *testing.T) {
	graphsDir := t.TempDir()
	writeGraphFixtures(t, graphsDir)

	output, err := runPulseCommand(t, "report", "widgets", graphsDir, "--output", "json", "--cache-backend", "none")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(output, &report))
	assert.Equal(t, "widgets", report["project"])
	assert.Equal(t, float64(3), report["months_analyzed"])

	records, ok := report["records"].([]any)
	require.True(t, ok)
	require.Len(t, records, 3)
}

// TestPulseAlertsVerification checks that the alerts listing parses and the
// flat fixture activity produces no regression alerts.
func TestPulseAlertsVerification(t *testing.T) {
	graphsDir := t.TempDir()
	writeGraphFixtures(t, graphsDir)

	output, err := runPulseCommand(t, "alerts", graphsDir, "--output", "json", "--cache-backend", "none")
	require.NoError(t, err)

	var listing map[string]any
	require.NoError(t, json.Unmarshal(output, &listing))
	assert.Equal(t, float64(0), listing["count"])
}

// TestPulseMetricsVerification checks the informational metrics command.
func TestPulseMetricsVerification(t *testing.T) {
	output, err := runPulseCommand(t, "metrics", "--output", "json", "--cache-backend", "none")
	require.NoError(t, err)

	var model map[string]any
	require.NoError(t, json.Unmarshal(output, &model))

	presets, ok := model["presets"].([]any)
	require.True(t, ok)
	assert.Len(t, presets, 3)
}
