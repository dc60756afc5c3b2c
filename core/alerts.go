package core

import (
	"fmt"

	"github.com/oss-pulse/pulse/schema"
)

// DetectAlerts scans the raw monthly metric series (not the scores) and the
// core-set history for discrete regressions. Every check needs its full
// window of observed months; a gap simply skips that alert type for that
// month. Prior-month values arrive through the inputs, never hidden state,
// so detection is re-runnable in isolation.
func DetectAlerts(project string, months []MonthInput, series map[string]*schema.MetricSeries, th schema.AlertThresholds) []schema.Alert {
	var alerts []schema.Alert

	if activity := series[schema.DimActivity]; activity != nil {
		alerts = append(alerts, detectDrops(project, activity, dropRule{
			alertType:     schema.AlertActivityDrop,
			threshold:     th.ActivityDrop,
			highThreshold: th.ActivityDropHigh,
			noun:          "activity",
		})...)
		alerts = append(alerts, detectSustainedDecline(project, activity, th)...)
	}
	if density := series[schema.DimCollaboration]; density != nil {
		alerts = append(alerts, detectDrops(project, density, dropRule{
			alertType: schema.AlertCollaborationDecline,
			threshold: th.DensityDrop,
			noun:      "collaboration density",
		})...)
	}
	if contributors := series[schema.DimContributors]; contributors != nil {
		alerts = append(alerts, detectDrops(project, contributors, dropRule{
			alertType: schema.AlertContributorDrop,
			threshold: th.ContributorDrop,
			noun:      "active contributors",
		})...)
	}
	alerts = append(alerts, detectCoreMemberLoss(project, months, th)...)

	schema.SortAlerts(alerts)
	return alerts
}

// dropRule configures one month-over-month relative-drop check. A zero
// highThreshold means the alert type only ever reports medium severity.
type dropRule struct {
	alertType     schema.AlertType
	threshold     float64
	highThreshold float64
	noun          string
}

func detectDrops(project string, s *schema.MetricSeries, rule dropRule) []schema.Alert {
	var alerts []schema.Alert
	for i := 1; i < len(s.Samples); i++ {
		prev, curr := s.Samples[i-1], s.Samples[i]
		if !prev.Valid || !curr.Valid || prev.Value <= 0 {
			continue
		}
		change := (curr.Value - prev.Value) / prev.Value
		if change >= rule.threshold {
			continue
		}
		severity := schema.MediumSeverity
		if rule.highThreshold != 0 && change < rule.highThreshold {
			severity = schema.HighSeverity
		}
		alerts = append(alerts, schema.Alert{
			Type:      rule.alertType,
			Project:   project,
			Month:     curr.Month,
			Severity:  severity,
			Magnitude: change,
			Detail:    fmt.Sprintf("%s fell %.1f%% month-over-month (%.4g to %.4g)", rule.noun, -change*100, prev.Value, curr.Value),
		})
	}
	return alerts
}

// detectSustainedDecline fires when the activity metric posts N consecutive
// month-over-month declines and the cumulative drop from the window base
// crosses the threshold. The window is N+1 observed months.
func detectSustainedDecline(project string, s *schema.MetricSeries, th schema.AlertThresholds) []schema.Alert {
	var alerts []schema.Alert
	window := th.SustainedDeclineLen
	for i := window; i < len(s.Samples); i++ {
		valid := true
		for j := i - window; j <= i; j++ {
			if !s.Samples[j].Valid {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		declining := true
		for j := i - window; j < i; j++ {
			if s.Samples[j].Value <= s.Samples[j+1].Value {
				declining = false
				break
			}
		}
		base := s.Samples[i-window].Value
		if !declining || base <= 0 {
			continue
		}
		drop := (s.Samples[i].Value - base) / base
		if drop >= th.SustainedDrop {
			continue
		}
		alerts = append(alerts, schema.Alert{
			Type:      schema.AlertSustainedDecline,
			Project:   project,
			Month:     s.Samples[i].Month,
			Severity:  schema.HighSeverity,
			Magnitude: drop,
			Detail:    fmt.Sprintf("activity declined %d months in a row, down %.1f%% cumulatively", window, -drop*100),
		})
	}
	return alerts
}

// detectCoreMemberLoss compares adjacent months' core sets. Medium fires on
// the loss ratio or absolute-loss floor; high fires on the steeper ratio or
// the higher absolute count, whichever band is crossed.
func detectCoreMemberLoss(project string, months []MonthInput, th schema.AlertThresholds) []schema.Alert {
	var alerts []schema.Alert
	for i := 1; i < len(months); i++ {
		prev, curr := months[i-1].Core, months[i].Core
		if prev == nil || curr == nil || prev.Size() == 0 {
			continue
		}
		lost := prev.Lost(curr)
		ratio := float64(lost) / float64(prev.Size())
		if ratio < th.CoreLossRatio && lost < th.CoreLossCount {
			continue
		}
		severity := schema.MediumSeverity
		if ratio >= th.CoreLossRatioHigh || lost >= th.CoreLossCountHigh {
			severity = schema.HighSeverity
		}
		alerts = append(alerts, schema.Alert{
			Type:      schema.AlertCoreMemberLoss,
			Project:   project,
			Month:     months[i].Month,
			Severity:  severity,
			Magnitude: ratio,
			Detail:    fmt.Sprintf("lost %d of %d core members (%.0f%%)", lost, prev.Size(), ratio*100),
		})
	}
	return alerts
}
