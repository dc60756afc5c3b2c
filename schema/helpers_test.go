package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseMonth validates month parsing.
func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    Month
		wantErr bool
	}{
		{"2023-01", "2023-01", false},
		{"1999-12", "1999-12", false},
		{"2023-13", "", true},
		{"2023-1", "", true},
		{"2023/01", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestMonthOf converts instants to their containing month in UTC.
func TestMonthOf(t *testing.T) {
	ts := time.Date(2023, 6, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Month("2023-06"), MonthOf(ts))
}

// TestSortMonths sorts lexicographically, which is chronological for YYYY-MM.
func TestSortMonths(t *testing.T) {
	months := []Month{"2023-10", "2023-02", "2022-12"}
	SortMonths(months)
	assert.Equal(t, []Month{"2022-12", "2023-02", "2023-10"}, months)
}

// TestSortAlerts orders by severity, then month, then type.
func TestSortAlerts(t *testing.T) {
	alerts := []Alert{
		{Type: AlertContributorDrop, Month: "2023-03", Severity: MediumSeverity},
		{Type: AlertActivityDrop, Month: "2023-05", Severity: HighSeverity},
		{Type: AlertActivityDrop, Month: "2023-01", Severity: HighSeverity},
		{Type: AlertCollaborationDecline, Month: "2023-03", Severity: MediumSeverity},
	}
	SortAlerts(alerts)

	assert.Equal(t, Month("2023-01"), alerts[0].Month)
	assert.Equal(t, Month("2023-05"), alerts[1].Month)
	assert.Equal(t, AlertCollaborationDecline, alerts[2].Type)
	assert.Equal(t, AlertContributorDrop, alerts[3].Type)
}

// TestSortSummary surfaces worst projects first under both conventions.
func TestSortSummary(t *testing.T) {
	t.Run("risk sorts descending", func(t *testing.T) {
		rows := []SummaryRow{
			{Project: "a", Score: 10},
			{Project: "b", Score: 70},
			{Project: "c", Score: 40},
		}
		SortSummary(rows, RiskConvention)
		assert.Equal(t, "b", rows[0].Project)
		assert.Equal(t, "a", rows[2].Project)
	})

	t.Run("health sorts ascending", func(t *testing.T) {
		rows := []SummaryRow{
			{Project: "a", Score: 90},
			{Project: "b", Score: 30},
		}
		SortSummary(rows, HealthConvention)
		assert.Equal(t, "b", rows[0].Project)
	})
}

// TestSnapshotDensity checks directed density and small-graph handling.
func TestSnapshotDensity(t *testing.T) {
	empty := &Snapshot{}
	assert.Zero(t, empty.Density())

	single := &Snapshot{Actors: []Actor{{ID: 1}}}
	assert.Zero(t, single.Density())

	s := &Snapshot{
		Actors: []Actor{{ID: 1}, {ID: 2}, {ID: 3}},
		Edges:  []Edge{{Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1}},
	}
	assert.InDelta(t, 0.5, s.Density(), 1e-9)
}

// TestCoreMemberSetLost counts departures against a later set.
func TestCoreMemberSetLost(t *testing.T) {
	prev := &CoreMemberSet{Members: map[int64]bool{1: true, 2: true, 3: true}}
	curr := &CoreMemberSet{Members: map[int64]bool{2: true, 4: true}}

	assert.Equal(t, 2, prev.Lost(curr))
	assert.Equal(t, 1, prev.Retained(curr))
	assert.Equal(t, 3, prev.Lost(nil))
}
