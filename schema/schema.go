// Package schema has configs, models and constants for all parts of pulse.
package schema

// Month is a calendar month in "YYYY-MM" form. Months sort chronologically
// with plain string comparison, which the engine relies on.
type Month string

// EdgeType is the semantic type of a collaboration edge (e.g. PR_MERGE).
type EdgeType string

// Well-known edge types emitted by the graph-construction pipeline.
const (
	EdgePRMerge            EdgeType = "PR_MERGE"
	EdgePRReview           EdgeType = "PR_REVIEW"
	EdgeIssueInteraction   EdgeType = "ISSUE_INTERACTION"
	EdgeIssueCoParticipant EdgeType = "ISSUE_CO_PARTICIPANT"
)

// Actor is one node of a monthly collaboration graph.
type Actor struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Edge is one directed interaction between two actors. A pair of actors may
// be connected by many edges in the same month (one per interaction).
type Edge struct {
	Source    int64    `json:"source"`
	Target    int64    `json:"target"`
	Type      EdgeType `json:"type"`
	Timestamp int64    `json:"timestamp"` // Unix seconds
}

// Snapshot is one project-month collaboration graph. It is immutable once
// produced by the external graph builder.
type Snapshot struct {
	Project     string  `json:"project"`
	Month       Month   `json:"month"`
	Actors      []Actor `json:"actors"`
	Edges       []Edge  `json:"edges"`
	TotalEvents int     `json:"total_events,omitempty"` // raw event count, informational only
}

// ActorCount returns the number of actors present in the snapshot.
func (s *Snapshot) ActorCount() int { return len(s.Actors) }

// EdgeCount returns the number of edges present in the snapshot.
func (s *Snapshot) EdgeCount() int { return len(s.Edges) }

// Density returns the directed graph density, edges / (n * (n-1)).
// Snapshots with fewer than two actors have zero density.
func (s *Snapshot) Density() float64 {
	n := len(s.Actors)
	if n < 2 {
		return 0
	}
	return float64(len(s.Edges)) / float64(n*(n-1))
}
