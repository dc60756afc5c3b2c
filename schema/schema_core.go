package schema

// ContributorScore holds the per-actor signals fused during core selection.
// It is derived per month and never persisted beyond it.
type ContributorScore struct {
	ActorID        int64   `json:"actor_id"`
	Login          string  `json:"login"`
	WeightedDegree float64 `json:"weighted_degree"`
	KCoreNumber    int     `json:"k_core_number"`
	FusedScore     float64 `json:"fused_score"`
}

// CoreMemberSet is the set of actors considered core for one month.
// Members is always a subset of the snapshot's actors; any snapshot with at
// least one edge yields a non-empty set.
type CoreMemberSet struct {
	Month                  Month              `json:"month"`
	Members                map[int64]bool     `json:"-"`
	MemberIDs              []int64            `json:"members"` // sorted, for stable JSON
	TotalInteractionWeight float64            `json:"total_interaction_weight"`
	Ranked                 []ContributorScore `json:"ranked,omitempty"` // selected members in fused-score order
}

// Size returns the number of core members.
func (c *CoreMemberSet) Size() int { return len(c.Members) }

// Contains reports whether the actor is in the core set.
func (c *CoreMemberSet) Contains(actorID int64) bool { return c.Members[actorID] }

// Lost returns how many members of c are absent from other.
func (c *CoreMemberSet) Lost(other *CoreMemberSet) int {
	lost := 0
	for id := range c.Members {
		if other == nil || !other.Members[id] {
			lost++
		}
	}
	return lost
}

// Retained returns how many members of c are still present in other.
func (c *CoreMemberSet) Retained(other *CoreMemberSet) int {
	return len(c.Members) - c.Lost(other)
}
