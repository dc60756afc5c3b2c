package core

import (
	"github.com/oss-pulse/pulse/schema"
)

// MonthInput bundles one month's snapshot with its core member set. A nil
// Snapshot marks a month the loader could not supply; it produces gaps, not
// zeros, in every series.
type MonthInput struct {
	Month    schema.Month
	Snapshot *schema.Snapshot
	Core     *schema.CoreMemberSet
}

// ExtractSeries derives one metric series per configured dimension from an
// ordered list of monthly inputs. Core retention is measured against the
// first observed month's core set, so the series tracks cumulative drift
// from the baseline rather than month-over-month turnover.
func ExtractSeries(months []MonthInput, cfg *schema.ScoringConfig) map[string]*schema.MetricSeries {
	out := make(map[string]*schema.MetricSeries, len(cfg.Dimensions))
	for _, d := range cfg.Dimensions {
		out[d.Name] = &schema.MetricSeries{Dimension: d.Name, BadDirection: d.Direction}
	}

	var reference *schema.CoreMemberSet
	firstSeen := make(map[int64]bool)
	for _, m := range months {
		if m.Snapshot == nil {
			for _, s := range out {
				s.AppendGap(m.Month)
			}
			continue
		}
		if reference == nil && m.Core != nil && m.Core.Size() > 0 {
			reference = m.Core
		}
		newcomers := make(map[int64]bool)
		for _, a := range m.Snapshot.Actors {
			if !firstSeen[a.ID] {
				firstSeen[a.ID] = true
				newcomers[a.ID] = true
			}
		}
		for _, d := range cfg.Dimensions {
			value, ok := dimensionValue(d.Name, m, reference, newcomers)
			if ok {
				out[d.Name].Append(m.Month, value)
			} else {
				out[d.Name].AppendGap(m.Month)
			}
		}
	}
	return out
}

// dimensionValue computes a single dimension's value for one month. The
// boolean is false when the month carries no observation for the dimension.
func dimensionValue(name string, m MonthInput, reference *schema.CoreMemberSet, newcomers map[int64]bool) (float64, bool) {
	switch name {
	case schema.DimActivity:
		return float64(m.Snapshot.EdgeCount()), true
	case schema.DimContributors:
		return float64(activeContributors(m.Snapshot)), true
	case schema.DimCoreStability:
		if reference == nil || reference.Size() == 0 {
			return 0, false
		}
		return float64(reference.Retained(m.Core)) / float64(reference.Size()), true
	case schema.DimCollaboration:
		return m.Snapshot.Density(), true
	case schema.DimCoreDistance:
		return coreDistance(m.Snapshot, m.Core, newcomers)
	default:
		return 0, false
	}
}

// activeContributors counts distinct actors with at least one incident edge.
func activeContributors(s *schema.Snapshot) int {
	seen := make(map[int64]bool, s.ActorCount())
	for _, e := range s.Edges {
		seen[e.Source] = true
		seen[e.Target] = true
	}
	return len(seen)
}

// coreDistance is the mean shortest undirected path from each actor first
// seen this month to the nearest core member. Established actors never feed
// the series again after their joining month. Months with no core, no
// newcomers, or where no newcomer can reach the core, carry no observation.
func coreDistance(s *schema.Snapshot, core *schema.CoreMemberSet, newcomers map[int64]bool) (float64, bool) {
	if core == nil || core.Size() == 0 || len(newcomers) == 0 {
		return 0, false
	}
	adj := undirectedAdjacency(s)
	dist := distancesToSet(adj, core.Members)

	var sum float64
	var count int
	for _, a := range s.Actors {
		if !newcomers[a.ID] || core.Contains(a.ID) {
			continue
		}
		if d, ok := dist[a.ID]; ok {
			sum += float64(d)
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
