package core

import (
	"sort"

	"github.com/oss-pulse/pulse/schema"
)

// undirectedAdjacency builds the simple undirected projection of a snapshot:
// direction is ignored and parallel edges collapse to one. Self-loops are
// dropped since they carry no collaboration signal.
func undirectedAdjacency(s *schema.Snapshot) map[int64]map[int64]bool {
	adj := make(map[int64]map[int64]bool, len(s.Actors))
	for _, a := range s.Actors {
		adj[a.ID] = make(map[int64]bool)
	}
	for _, e := range s.Edges {
		if e.Source == e.Target {
			continue
		}
		if adj[e.Source] == nil {
			adj[e.Source] = make(map[int64]bool)
		}
		if adj[e.Target] == nil {
			adj[e.Target] = make(map[int64]bool)
		}
		adj[e.Source][e.Target] = true
		adj[e.Target][e.Source] = true
	}
	return adj
}

// weightedDegrees sums the edge-type weight of every incident edge per
// actor. Both endpoints of an edge accrue its weight.
func weightedDegrees(s *schema.Snapshot, cfg *schema.ScoringConfig) map[int64]float64 {
	degrees := make(map[int64]float64, len(s.Actors))
	for _, a := range s.Actors {
		degrees[a.ID] = 0
	}
	for _, e := range s.Edges {
		w := cfg.EdgeWeight(e.Type)
		degrees[e.Source] += w
		degrees[e.Target] += w
	}
	return degrees
}

// coreNumbers runs the standard k-core decomposition on an undirected
// adjacency: a node's core number is the largest k such that it survives
// iterative removal of all nodes with degree < k.
func coreNumbers(adj map[int64]map[int64]bool) map[int64]int {
	degree := make(map[int64]int, len(adj))
	maxDegree := 0
	for id, nb := range adj {
		degree[id] = len(nb)
		if len(nb) > maxDegree {
			maxDegree = len(nb)
		}
	}

	// Bucket nodes by current degree and peel from the lowest bucket up
	// (Batagelj-Zaversnik). Iteration order inside a bucket does not affect
	// the resulting core numbers.
	buckets := make([][]int64, maxDegree+1)
	for id, d := range degree {
		buckets[d] = append(buckets[d], id)
	}
	for _, b := range buckets {
		sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	}

	core := make(map[int64]int, len(adj))
	removed := make(map[int64]bool, len(adj))

	for d := 0; d <= maxDegree; d++ {
		for i := 0; i < len(buckets[d]); i++ {
			id := buckets[d][i]
			if removed[id] || degree[id] != d {
				continue
			}
			core[id] = d
			removed[id] = true
			for nb := range adj[id] {
				if removed[nb] {
					continue
				}
				if degree[nb] > d {
					degree[nb]--
					if degree[nb] <= d {
						buckets[d] = append(buckets[d], nb)
					} else {
						buckets[degree[nb]] = append(buckets[degree[nb]], nb)
					}
				}
			}
		}
	}
	return core
}

// distancesToSet returns, per node, the length of the shortest undirected
// path to any node in the target set. Unreachable nodes are absent from the
// result. Implemented as a multi-source BFS seeded with the target set.
func distancesToSet(adj map[int64]map[int64]bool, targets map[int64]bool) map[int64]int {
	dist := make(map[int64]int, len(adj))
	queue := make([]int64, 0, len(targets))

	// Seed deterministically; BFS levels are order-independent anyway.
	seeds := make([]int64, 0, len(targets))
	for id := range targets {
		if _, ok := adj[id]; ok {
			seeds = append(seeds, id)
		}
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	for _, id := range seeds {
		dist[id] = 0
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for nb := range adj[id] {
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = dist[id] + 1
			queue = append(queue, nb)
		}
	}
	return dist
}
