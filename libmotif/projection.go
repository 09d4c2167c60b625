package libmotif

import (
	"encoding/binary"
	"sort"

	"github.com/2x3systems/gomotif/gomotif"
)

// NodeSet is an ascending set of at most MaxOrder dense node indices, padded with -1.
// Being comparable, it serves directly as a map key.
type NodeSet [gomotif.MaxOrder]int32

// EmptyNodeSet has no members.
var EmptyNodeSet = NodeSet{-1, -1, -1, -1}

// MakeNodeSet returns the NodeSet holding the given indices, which must be distinct and number at most MaxOrder.
func MakeNodeSet(nodes ...int32) NodeSet {
	set := EmptyNodeSet
	copy(set[:], nodes)
	n := len(nodes)

	// insertion sort: n <= 4
	for i := 1; i < n; i++ {
		for j := i; j > 0 && set[j] < set[j-1]; j-- {
			set[j], set[j-1] = set[j-1], set[j]
		}
	}
	return set
}

// Len returns the number of members.
func (set NodeSet) Len() int {
	n := 0
	for n < len(set) && set[n] >= 0 {
		n++
	}
	return n
}

// Projection is the pairwise co-membership graph of a hypergraph together with its existence table.
//
// Node IDs are compacted into dense indices assigned in ascending ID order, so comparing indices is comparing IDs.
// A Projection is read-only once built.
type Projection struct {
	Order gomotif.Order
	Nodes []gomotif.NodeID // dense index => NodeID, ascending
	Adj   [][]int32        // dense index => ascending neighbor indices
	Edges [][]int32        // distinct well-formed hyperedges as ascending dense indices

	index map[gomotif.NodeID]int32
	table map[NodeSet]struct{} // hyperedges with 2..Order nodes
}

// BuildProjection forms the projection graph and existence table of the given hyperedges for motifs of order N.
//
// Hyperedges with fewer than two nodes, or with a repeated node, are skipped.  The input is not modified.
func BuildProjection(edges []gomotif.Hyperedge, N gomotif.Order) *Projection {
	wellFormed := make([]gomotif.Hyperedge, 0, len(edges))
	for _, e := range edges {
		if sorted, ok := normalizeHyperedge(e); ok {
			wellFormed = append(wellFormed, sorted)
		}
	}

	p := &Projection{
		Order: N,
		Nodes: sortedNodeIDs(wellFormed),
		table: make(map[NodeSet]struct{}),
	}
	p.index = make(map[gomotif.NodeID]int32, len(p.Nodes))
	for i, v := range p.Nodes {
		p.index[v] = int32(i)
	}
	p.Adj = make([][]int32, len(p.Nodes))

	seen := make(map[string]struct{}, len(wellFormed))
	var keyBuf []byte
	for _, e := range wellFormed {
		dense := make([]int32, len(e))
		keyBuf = keyBuf[:0]
		for i, v := range e {
			dense[i] = p.index[v]
			keyBuf = binary.AppendUvarint(keyBuf, uint64(dense[i]))
		}
		if _, dupe := seen[string(keyBuf)]; dupe {
			continue
		}
		seen[string(keyBuf)] = struct{}{}
		p.Edges = append(p.Edges, dense)

		if len(dense) <= int(N) {
			p.table[MakeNodeSet(dense...)] = struct{}{}
		}
		for i, a := range dense {
			for _, b := range dense[i+1:] {
				p.Adj[a] = append(p.Adj[a], b)
				p.Adj[b] = append(p.Adj[b], a)
			}
		}
	}

	for i, adj := range p.Adj {
		p.Adj[i] = sortUnique(adj)
	}
	return p
}

// NumNodes returns the number of nodes that appear in some well-formed hyperedge.
func (p *Projection) NumNodes() int {
	return len(p.Nodes)
}

// NumEdges returns the number of edges of the projection graph.
func (p *Projection) NumEdges() int {
	total := 0
	for _, adj := range p.Adj {
		total += len(adj)
	}
	return total / 2
}

// IndexOf returns the dense index of the given node.
func (p *Projection) IndexOf(v gomotif.NodeID) (int32, bool) {
	idx, ok := p.index[v]
	return idx, ok
}

// Exists reports if the given node set is literally a hyperedge (of at most Order nodes).
func (p *Projection) Exists(set NodeSet) bool {
	_, exists := p.table[set]
	return exists
}

// NodeIDs returns the node IDs of the given set, ascending.
func (p *Projection) NodeIDs(set NodeSet) []gomotif.NodeID {
	n := set.Len()
	ids := make([]gomotif.NodeID, n)
	for i := 0; i < n; i++ {
		ids[i] = p.Nodes[set[i]]
	}
	return ids
}

// normalizeHyperedge returns a sorted copy of e, or false if e has fewer than two nodes or repeats a node.
func normalizeHyperedge(e gomotif.Hyperedge) (gomotif.Hyperedge, bool) {
	if len(e) < 2 {
		return nil, false
	}
	sorted := append(gomotif.Hyperedge(nil), e...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, false
		}
	}
	return sorted, true
}

func sortUnique(vals []int32) []int32 {
	if len(vals) == 0 {
		return vals
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	n := 1
	for _, v := range vals[1:] {
		if v != vals[n-1] {
			vals[n] = v
			n++
		}
	}
	return vals[:n:n]
}
