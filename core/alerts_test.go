package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-pulse/pulse/schema"
)

func defaultThresholds() schema.AlertThresholds {
	cfg, _ := schema.PresetConfig(schema.BurnoutPreset)
	return cfg.Alerts
}

func coreSetOf(ids ...int64) *schema.CoreMemberSet {
	set := &schema.CoreMemberSet{Members: make(map[int64]bool, len(ids))}
	for _, id := range ids {
		set.Members[id] = true
		set.MemberIDs = append(set.MemberIDs, id)
	}
	return set
}

// TestDetectSustainedDecline checks the consecutive-decline rule: four
// months sliding 1000 -> 400 is a 60% cumulative drop, which fires a single
// high-severity alert at the last month. None of the individual
// month-over-month drops is steep enough for an ActivityDrop.
func TestDetectSustainedDecline(t *testing.T) {
	activity := seriesOf(schema.DecreaseIsBad, 1000, 800, 600, 400)
	series := map[string]*schema.MetricSeries{schema.DimActivity: activity}

	alerts := DetectAlerts("demo", nil, series, defaultThresholds())

	require.Len(t, alerts, 1)
	assert.Equal(t, schema.AlertSustainedDecline, alerts[0].Type)
	assert.Equal(t, schema.HighSeverity, alerts[0].Severity)
	assert.Equal(t, schema.Month("2024-04"), alerts[0].Month)
	assert.InDelta(t, -0.6, alerts[0].Magnitude, 1e-9)
}

// TestDetectSustainedDeclineNeedsFullWindow checks that a gap inside the
// window, or a window ending on a flat month, suppresses the alert.
func TestDetectSustainedDeclineNeedsFullWindow(t *testing.T) {
	th := defaultThresholds()

	gapped := seriesOf(schema.DecreaseIsBad, 1000, 800, 600, 400)
	gapped.Samples[2].Valid = false
	alerts := detectSustainedDecline("demo", gapped, th)
	assert.Empty(t, alerts)

	flattened := seriesOf(schema.DecreaseIsBad, 1000, 800, 600, 600)
	alerts = detectSustainedDecline("demo", flattened, th)
	assert.Empty(t, alerts)
}

// TestDetectCoreMemberLoss checks the two severity bands: losing 4 of 10
// members is a 40% ratio (medium band) but the absolute count of 4 crosses
// the high band, and the higher severity wins.
func TestDetectCoreMemberLoss(t *testing.T) {
	months := []MonthInput{
		{Month: "2024-01", Core: coreSetOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)},
		{Month: "2024-02", Core: coreSetOf(1, 2, 3, 4, 5, 6)},
	}

	alerts := detectCoreMemberLoss("demo", months, defaultThresholds())

	require.Len(t, alerts, 1)
	assert.Equal(t, schema.AlertCoreMemberLoss, alerts[0].Type)
	assert.Equal(t, schema.HighSeverity, alerts[0].Severity)
	assert.InDelta(t, 0.4, alerts[0].Magnitude, 1e-9)
}

// TestDetectCoreMemberLossMediumBand checks a loss that stays inside the
// medium band on both sub-rules.
func TestDetectCoreMemberLossMediumBand(t *testing.T) {
	months := []MonthInput{
		{Month: "2024-01", Core: coreSetOf(1, 2, 3, 4, 5, 6)},
		{Month: "2024-02", Core: coreSetOf(1, 2, 3, 4)},
	}

	alerts := detectCoreMemberLoss("demo", months, defaultThresholds())

	require.Len(t, alerts, 1)
	assert.Equal(t, schema.MediumSeverity, alerts[0].Severity)
}

// TestDetectCoreMemberLossQuiet checks that small churn raises nothing.
func TestDetectCoreMemberLossQuiet(t *testing.T) {
	months := []MonthInput{
		{Month: "2024-01", Core: coreSetOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)},
		{Month: "2024-02", Core: coreSetOf(1, 2, 3, 4, 5, 6, 7, 8, 9)},
	}

	alerts := detectCoreMemberLoss("demo", months, defaultThresholds())
	assert.Empty(t, alerts)
}

// TestDetectActivityDrop checks the severity bands of the single-month
// activity drop: -60% is medium, -75% is high.
func TestDetectActivityDrop(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		severity schema.Severity
	}{
		{"medium band", []float64{1000, 400}, schema.MediumSeverity},
		{"high band", []float64{1000, 250}, schema.HighSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := map[string]*schema.MetricSeries{
				schema.DimActivity: seriesOf(schema.DecreaseIsBad, tt.values...),
			}
			alerts := DetectAlerts("demo", nil, series, defaultThresholds())

			require.Len(t, alerts, 1)
			assert.Equal(t, schema.AlertActivityDrop, alerts[0].Type)
			assert.Equal(t, tt.severity, alerts[0].Severity)
		})
	}
}

// TestDetectDropsSkipsGapsAndZeroBase checks that a gap month never produces
// a phantom drop against the month before the gap, and that a zero baseline
// never divides.
func TestDetectDropsSkipsGapsAndZeroBase(t *testing.T) {
	rule := dropRule{alertType: schema.AlertActivityDrop, threshold: -0.5, noun: "activity"}

	gapped := seriesOf(schema.DecreaseIsBad, 1000, 900, 100)
	gapped.Samples[1].Valid = false
	assert.Empty(t, detectDrops("demo", gapped, rule))

	zeroBase := seriesOf(schema.DecreaseIsBad, 0, 0, 5)
	assert.Empty(t, detectDrops("demo", zeroBase, rule))
}

// TestDetectCollaborationAndContributorDrops checks the medium-only alert
// types fire at their own thresholds.
func TestDetectCollaborationAndContributorDrops(t *testing.T) {
	density := seriesOf(schema.DecreaseIsBad, 0.10, 0.06)
	density.Dimension = schema.DimCollaboration
	contributors := seriesOf(schema.DecreaseIsBad, 50, 25)
	contributors.Dimension = schema.DimContributors

	series := map[string]*schema.MetricSeries{
		schema.DimCollaboration: density,
		schema.DimContributors:  contributors,
	}
	alerts := DetectAlerts("demo", nil, series, defaultThresholds())

	require.Len(t, alerts, 2)
	types := []schema.AlertType{alerts[0].Type, alerts[1].Type}
	assert.Contains(t, types, schema.AlertCollaborationDecline)
	assert.Contains(t, types, schema.AlertContributorDrop)
	for _, a := range alerts {
		assert.Equal(t, schema.MediumSeverity, a.Severity)
	}
}

// TestDetectAlertsSorted checks the output ordering contract: severity
// first, then month, then type.
func TestDetectAlertsSorted(t *testing.T) {
	activity := seriesOf(schema.DecreaseIsBad, 1000, 200, 1000, 400)
	series := map[string]*schema.MetricSeries{schema.DimActivity: activity}

	alerts := DetectAlerts("demo", nil, series, defaultThresholds())

	require.Len(t, alerts, 2)
	assert.Equal(t, schema.HighSeverity, alerts[0].Severity)
	assert.Equal(t, schema.MediumSeverity, alerts[1].Severity)
}
