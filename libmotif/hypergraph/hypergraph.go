package hypergraph

import (
	"sort"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/pkg/errors"
)

// HyperGraph is a mutable hypergraph along with, for each node, the hyperedges it belongs to.
//
// Unlike the census engine, a HyperGraph keeps hyperedges exactly as given (including repeated nodes),
// so its statistics reflect the raw dataset.
type HyperGraph struct {
	V     []gomotif.NodeID         // nodes in order of first appearance
	E     []gomotif.Hyperedge      // hyperedges in input order
	elist map[gomotif.NodeID][]int // for each node, the indices into E of the hyperedges it belongs to
}

// New returns a HyperGraph over a copy of the given hyperedges.
//
// Example: E = {1,2} {2,3} {1,2,3} {1,2,3,4} {1,2,3,4,5} yields V = [1 2 3 4 5]
// and MemberOf(1) = [0 2 3 4].
func New(edges []gomotif.Hyperedge) *HyperGraph {
	G := &HyperGraph{
		E:     make([]gomotif.Hyperedge, len(edges)),
		elist: make(map[gomotif.NodeID][]int),
	}
	for ei, e := range edges {
		G.E[ei] = append(gomotif.Hyperedge(nil), e...)
		for _, v := range e {
			members, exists := G.elist[v]
			if !exists {
				G.V = append(G.V, v)
			}
			G.elist[v] = append(members, ei)
		}
	}
	return G
}

// NumNodes returns len(G.V).
func (G *HyperGraph) NumNodes() int {
	return len(G.V)
}

// NumHyperedges returns len(G.E).
func (G *HyperGraph) NumHyperedges() int {
	return len(G.E)
}

// HasNode reports if v belongs to any hyperedge (or once did).
func (G *HyperGraph) HasNode(v gomotif.NodeID) bool {
	_, exists := G.elist[v]
	return exists
}

// MemberOf returns the indices into G.E of the hyperedges v belongs to.  The returned slice is owned by G.
func (G *HyperGraph) MemberOf(v gomotif.NodeID) []int {
	return G.elist[v]
}

// AddNodeToHyperedge appends existing node v to hyperedge E[ei].
func (G *HyperGraph) AddNodeToHyperedge(v gomotif.NodeID, ei int) error {
	if err := G.checkNodeAndEdge(v, ei); err != nil {
		return err
	}

	G.E[ei] = append(G.E[ei], v)
	G.elist[v] = append(G.elist[v], ei)
	return nil
}

// RemoveNodeFromHyperedge removes one occurrence of node v from hyperedge E[ei].
func (G *HyperGraph) RemoveNodeFromHyperedge(v gomotif.NodeID, ei int) error {
	if err := G.checkNodeAndEdge(v, ei); err != nil {
		return err
	}

	members := G.elist[v]
	mi := indexOf(members, ei)
	if mi < 0 {
		return errors.Wrapf(gomotif.ErrNotMember, "node %d is not listed in hyperedge %d", v, ei)
	}
	e := G.E[ei]
	vi := indexOf(e, v)
	if vi < 0 {
		return errors.Wrapf(gomotif.ErrNotMember, "hyperedge %d does not contain node %d", ei, v)
	}

	G.elist[v] = append(members[:mi:mi], members[mi+1:]...)
	G.E[ei] = append(e[:vi:vi], e[vi+1:]...)
	return nil
}

func (G *HyperGraph) checkNodeAndEdge(v gomotif.NodeID, ei int) error {
	if !G.HasNode(v) {
		return errors.Wrapf(gomotif.ErrNodeNotFound, "node %d", v)
	}
	if ei < 0 || ei >= len(G.E) {
		return errors.Wrapf(gomotif.ErrHyperedgeNotFound, "hyperedge %d (have %d)", ei, len(G.E))
	}
	return nil
}

// NodeDegree returns the number of hyperedges each node belongs to.
func (G *HyperGraph) NodeDegree() map[gomotif.NodeID]int {
	nd := make(map[gomotif.NodeID]int, len(G.V))
	for _, v := range G.V {
		nd[v] = len(G.elist[v])
	}
	return nd
}

// HyperedgeSize returns the number of nodes listed in each hyperedge, indexed like G.E.
func (G *HyperGraph) HyperedgeSize() []int {
	hs := make([]int, len(G.E))
	for ei, e := range G.E {
		hs[ei] = len(e)
	}
	return hs
}

// Neighbors returns the distinct nodes, other than v, that share at least one hyperedge with v, in ascending order.
func (G *HyperGraph) Neighbors(v gomotif.NodeID) []gomotif.NodeID {
	set := G.neighborSet(v)
	nbrs := make([]gomotif.NodeID, 0, len(set))
	for u := range set {
		nbrs = append(nbrs, u)
	}
	sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
	return nbrs
}

func (G *HyperGraph) neighborSet(v gomotif.NodeID) map[gomotif.NodeID]struct{} {
	set := make(map[gomotif.NodeID]struct{})
	for _, ei := range G.elist[v] {
		for _, u := range G.E[ei] {
			if u != v {
				set[u] = struct{}{}
			}
		}
	}
	return set
}

func indexOf[T comparable](items []T, x T) int {
	for i, xi := range items {
		if xi == x {
			return i
		}
	}
	return -1
}
