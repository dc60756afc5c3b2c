package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-pulse/pulse/schema"
)

// TestComposeRiskConvention checks the default convention: the composite is
// the raw sum of dimension totals.
func TestComposeRiskConvention(t *testing.T) {
	cfg, err := schema.PresetConfig(schema.BurnoutPreset)
	require.NoError(t, err)

	composite := Compose(map[string]schema.DimensionScore{
		schema.DimActivity:      {Total: 20},
		schema.DimContributors:  {Total: 25},
		schema.DimCoreStability: {Total: 20},
	}, &cfg)

	assert.InDelta(t, 65.0, composite.Total, 1e-9)
	assert.InDelta(t, 65.0, composite.RiskTotal, 1e-9)
	assert.Equal(t, schema.HighRisk, composite.Level)
	assert.Equal(t, schema.RiskConvention, composite.Convention)
}

// TestComposeHealthConvention checks the inverted reporting: the total reads
// as 100 minus risk while the level still tracks the underlying risk.
func TestComposeHealthConvention(t *testing.T) {
	cfg, err := schema.PresetConfig(schema.QualityPreset)
	require.NoError(t, err)
	require.Equal(t, schema.HealthConvention, cfg.Convention)

	composite := Compose(map[string]schema.DimensionScore{
		schema.DimActivity: {Total: 30},
	}, &cfg)

	assert.InDelta(t, 70.0, composite.Total, 1e-9)
	assert.InDelta(t, 30.0, composite.RiskTotal, 1e-9)
	assert.Equal(t, schema.LowRisk, composite.Level)
}

// TestComposeEmpty checks that zero dimensions classify as minimal risk.
func TestComposeEmpty(t *testing.T) {
	cfg, err := schema.PresetConfig(schema.BurnoutPreset)
	require.NoError(t, err)

	composite := Compose(map[string]schema.DimensionScore{}, &cfg)

	assert.Zero(t, composite.RiskTotal)
	assert.Equal(t, schema.MinimalRisk, composite.Level)
}

// TestClassifyRiskBoundaries pins the cut points, boundaries inclusive.
func TestClassifyRiskBoundaries(t *testing.T) {
	cuts := schema.RiskCutpoints{High: 60, Medium: 40, Low: 20}

	tests := []struct {
		total float64
		level schema.RiskLevel
	}{
		{75, schema.HighRisk},
		{60, schema.HighRisk},
		{59.9, schema.MediumRisk},
		{40, schema.MediumRisk},
		{20, schema.LowRisk},
		{19.9, schema.MinimalRisk},
		{0, schema.MinimalRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, classifyRisk(tt.total, cuts), "total %v", tt.total)
	}
}
