package contract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-pulse/pulse/schema"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, HighValue, GetPlainLabel(schema.HighRisk))
	assert.Equal(t, MediumValue, GetPlainLabel(schema.MediumRisk))
	assert.Equal(t, LowValue, GetPlainLabel(schema.LowRisk))
	assert.Equal(t, MinimalValue, GetPlainLabel(schema.MinimalRisk))
}

func TestGetColorLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	assert.Contains(t, GetColorLabel(schema.HighRisk), HighValue)
	assert.Contains(t, GetColorLabel(schema.MinimalRisk), MinimalValue)
}

func TestGetSeverityLabel(t *testing.T) {
	assert.Contains(t, GetSeverityLabel(schema.HighSeverity), "high")
	assert.Contains(t, GetSeverityLabel(schema.MediumSeverity), "medium")
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, "/dev/stdout", f.Name())

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, path, f.Name())
}

func TestGetDBFilePaths(t *testing.T) {
	assert.Contains(t, GetDBFilePath(), ".pulse_cache.db")
	assert.Contains(t, GetAnalysisDBFilePath(), ".pulse_analysis.db")
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short name untouched", "acme/widgets", 20, "acme/widgets"},
		{"exact width untouched", "acme/widgets", 12, "acme/widgets"},
		{"long name keeps suffix", "organization/very-long-project-name", 15, "...project-name"},
		{"width too small to truncate", "acme/widgets", 3, "acme/widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestSplitProjects(t *testing.T) {
	assert.Nil(t, SplitProjects(""))
	assert.Equal(t, []string{"acme/widgets"}, SplitProjects("acme/widgets"))
	assert.Equal(t, []string{"acme/widgets", "acme/gears"}, SplitProjects(" acme/widgets , acme/gears ,"))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
