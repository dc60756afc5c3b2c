package core

import (
	"sort"

	"github.com/oss-pulse/pulse/schema"
)

// IdentifyCoreMembers selects the actors considered core for one month by
// fusing two structural signals: weighted degree (how much an actor
// contributes) and k-core number (how central the actor sits). Selection
// walks the fused ranking and stops at the first of three OR-combined rules,
// so sparse graphs can legitimately produce very small cores.
//
// The result is deterministic: ties in fused score break by actor id.
func IdentifyCoreMembers(s *schema.Snapshot, cfg *schema.ScoringConfig) *schema.CoreMemberSet {
	set := &schema.CoreMemberSet{
		Month:   s.Month,
		Members: make(map[int64]bool),
	}
	if s.ActorCount() == 0 || s.EdgeCount() == 0 {
		return set
	}

	degrees := weightedDegrees(s, cfg)
	adj := undirectedAdjacency(s)
	kcores := coreNumbers(adj)

	logins := make(map[int64]string, len(s.Actors))
	for _, a := range s.Actors {
		logins[a.ID] = a.Login
	}

	var maxDegree, totalDegree float64
	for _, d := range degrees {
		totalDegree += d
		if d > maxDegree {
			maxDegree = d
		}
	}
	maxK := 0
	for _, k := range kcores {
		if k > maxK {
			maxK = k
		}
	}

	// Fuse the normalized signals. A zero maximum means that signal carries
	// no information this month and contributes 0 to every actor.
	scored := make([]schema.ContributorScore, 0, len(degrees))
	var fusedSum float64
	for id, d := range degrees {
		var nd, nk float64
		if maxDegree > 0 {
			nd = d / maxDegree
		}
		if maxK > 0 {
			nk = float64(kcores[id]) / float64(maxK)
		}
		fused := cfg.Fusion.Degree*nd + cfg.Fusion.KCore*nk
		fusedSum += fused
		scored = append(scored, schema.ContributorScore{
			ActorID:        id,
			Login:          logins[id],
			WeightedDegree: d,
			KCoreNumber:    kcores[id],
			FusedScore:     fused,
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].FusedScore != scored[j].FusedScore {
			return scored[i].FusedScore > scored[j].FusedScore
		}
		return scored[i].ActorID < scored[j].ActorID
	})

	totalActors := float64(len(scored))
	meanFused := fusedSum / totalActors
	weightThreshold := totalDegree * cfg.Selection.WeightShare

	// Walk the ranking. The stop rules are examined before each admission,
	// so the candidate that crosses the cumulative-weight line is included
	// while a below-mean candidate is not.
	var cumWeight float64
	for _, cand := range scored {
		selected := len(set.MemberIDs)
		if selected > 0 {
			if cumWeight >= weightThreshold {
				break
			}
			if float64(selected)/totalActors >= cfg.Selection.CountShare {
				break
			}
			if cand.FusedScore < meanFused && selected >= cfg.Selection.MinBeforeMean {
				break
			}
		}
		set.Members[cand.ActorID] = true
		set.MemberIDs = append(set.MemberIDs, cand.ActorID)
		set.Ranked = append(set.Ranked, cand)
		cumWeight += cand.WeightedDegree
	}

	set.TotalInteractionWeight = cumWeight
	sort.Slice(set.MemberIDs, func(i, j int) bool { return set.MemberIDs[i] < set.MemberIDs[j] })
	return set
}
