package schema

import (
	"fmt"
	"sort"
	"time"
)

// monthLayout is the canonical month format used throughout pulse.
const monthLayout = "2006-01"

// ParseMonth validates a "YYYY-MM" month string.
func ParseMonth(s string) (Month, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", fmt.Errorf("invalid month %q. Must be YYYY-MM: %w", s, err)
	}
	return Month(s), nil
}

// Time returns the first instant of the month in UTC.
func (m Month) Time() (time.Time, error) {
	return time.Parse(monthLayout, string(m))
}

// MonthOf converts a time to its containing month.
func MonthOf(t time.Time) Month {
	return Month(t.UTC().Format(monthLayout))
}

// Next returns the following calendar month. Invalid months return
// themselves unchanged.
func (m Month) Next() Month {
	t, err := m.Time()
	if err != nil {
		return m
	}
	return MonthOf(t.AddDate(0, 1, 0))
}

// MonthRange expands [first, last] into every calendar month inclusive.
// An inverted range yields nil.
func MonthRange(first, last Month) []Month {
	if first > last {
		return nil
	}
	var out []Month
	for m := first; m <= last; m = m.Next() {
		out = append(out, m)
		if m == m.Next() { // invalid month, avoid spinning
			break
		}
	}
	return out
}

// SortMonths orders months chronologically in place.
func SortMonths(months []Month) {
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
}

// levelRank orders risk levels for sorting, highest risk first.
var levelRank = map[RiskLevel]int{
	HighRisk:    0,
	MediumRisk:  1,
	LowRisk:     2,
	MinimalRisk: 3,
}

// LevelRank returns the sort rank of a risk level (lower sorts first).
func LevelRank(l RiskLevel) int {
	if r, ok := levelRank[l]; ok {
		return r
	}
	return len(levelRank)
}

// SortAlerts orders alerts by severity (high first), then by month, then by
// type for a deterministic listing.
func SortAlerts(alerts []Alert) {
	sort.Slice(alerts, func(i, j int) bool {
		if a, b := SeverityRank(alerts[i].Severity), SeverityRank(alerts[j].Severity); a != b {
			return a < b
		}
		if alerts[i].Month != alerts[j].Month {
			return alerts[i].Month < alerts[j].Month
		}
		return alerts[i].Type < alerts[j].Type
	})
}

// SortSummary orders summary rows by score descending under the risk
// convention; ties break by project name. Health-convention rows sort
// ascending so the least healthy projects still surface first.
func SortSummary(rows []SummaryRow, convention ScoreConvention) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			if convention == HealthConvention {
				return rows[i].Score < rows[j].Score
			}
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Project < rows[j].Project
	})
}
