package libmotif_test

import (
	"math/rand"
	"sort"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
)

// randomHyperedges returns numEdges hyperedges over node IDs 1..numNodes, each with 2..maxSize distinct nodes.
func randomHyperedges(rng *rand.Rand, numNodes, numEdges, maxSize int) []gomotif.Hyperedge {
	edges := make([]gomotif.Hyperedge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		size := 2 + rng.Intn(maxSize-1)
		perm := rng.Perm(numNodes)[:size]
		e := make(gomotif.Hyperedge, size)
		for j, v := range perm {
			e[j] = gomotif.NodeID(v + 1)
		}
		edges = append(edges, e)
	}
	return edges
}

// shuffled returns a copy of edges with both the edge order and the node order within each edge permuted.
func shuffled(rng *rand.Rand, edges []gomotif.Hyperedge) []gomotif.Hyperedge {
	out := make([]gomotif.Hyperedge, len(edges))
	for i, j := range rng.Perm(len(edges)) {
		e := append(gomotif.Hyperedge(nil), edges[j]...)
		rng.Shuffle(len(e), func(a, b int) { e[a], e[b] = e[b], e[a] })
		out[i] = e
	}
	return out
}

// relabeled maps every node ID through relabel.
func relabeled(edges []gomotif.Hyperedge, relabel func(v gomotif.NodeID) gomotif.NodeID) []gomotif.Hyperedge {
	out := make([]gomotif.Hyperedge, len(edges))
	for i, e := range edges {
		out[i] = make(gomotif.Hyperedge, len(e))
		for j, v := range e {
			out[i][j] = relabel(v)
		}
	}
	return out
}

// bruteForceCensus classifies every N-combination of the hypergraph's nodes without using the projection graph or the enumerator.
// It returns the per-class counts and the number of connected node sets.
func bruteForceCensus(edges []gomotif.Hyperedge, N gomotif.Order) (gomotif.Census, int) {
	T, err := libmotif.GenerateMotifs(N)
	if err != nil {
		panic(err)
	}

	// Set of sorted hyperedge tuples
	exists := make(map[string]bool)
	nodeSet := make(map[gomotif.NodeID]bool)
	for _, e := range edges {
		sorted := append(gomotif.Hyperedge(nil), e...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		dupe := false
		for i := 1; i < len(sorted); i++ {
			dupe = dupe || sorted[i] == sorted[i-1]
		}
		if len(sorted) < 2 || dupe {
			continue
		}
		exists[libmotif.FormatHyperedges([]gomotif.Hyperedge{sorted})] = true
		for _, v := range sorted {
			nodeSet[v] = true
		}
	}
	var nodes []gomotif.NodeID
	for v := range nodeSet {
		nodes = append(nodes, v)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	census := T.ZeroCensus()
	connected := 0
	for _, combo := range libmotif.Combinations(nodes, int(N)) {
		var entries [][]gomotif.NodeID
		var ranked [][]int
		for _, sub := range libmotif.PowerSet(combo) {
			if len(sub) < 2 || !exists[libmotif.FormatHyperedges([]gomotif.Hyperedge{sub})] {
				continue
			}
			entries = append(entries, sub)
			ranks := make([]int, len(sub))
			for i, v := range sub {
				for r, u := range combo {
					if u == v {
						ranks[i] = r + 1
					}
				}
			}
			ranked = append(ranked, ranks)
		}
		if !libmotif.IsConnected(entries, int(N)) {
			continue
		}
		connected++
		class := T.ClassOf(T.PatternFromEntries(ranked))
		census[class-1].Count++
	}
	return census, connected
}
