package hypergraph

import (
	"github.com/2x3systems/gomotif/gomotif"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Coefficients maps each node to its local clustering coefficient.
type Coefficients map[gomotif.NodeID]float64

// ClusteringMethod selects a definition of the local clustering coefficient.
type ClusteringMethod int32

const (
	// Opsahl's coefficient: the fraction of paths v1-e1-v-e2-v2 closed by a third hyperedge linking v1 and v2.
	Opsahl ClusteringMethod = iota

	// Zhou's coefficient: the mean hyperedge overlap of each pair of hyperedges containing v.
	Zhou

	// Proposed weights each neighbor pair by 1/(s-1), where s is the smallest hyperedge the pair shares.
	Proposed

	// Projected is the coefficient of the pairwise projection graph.
	Projected
)

var kClusteringNames = [...]string{
	Opsahl:    "opsahl",
	Zhou:      "zhou",
	Proposed:  "proposed",
	Projected: "simple",
}

func (m ClusteringMethod) String() string {
	if m >= 0 && int(m) < len(kClusteringNames) {
		return kClusteringNames[m]
	}
	return "ClusteringMethod(?)"
}

// ParseClusteringMethod returns the method named by str: "opsahl", "zhou", "proposed" or "simple".
func ParseClusteringMethod(str string) (ClusteringMethod, error) {
	for i, name := range kClusteringNames {
		if name == str {
			return ClusteringMethod(i), nil
		}
	}
	return 0, errors.Wrapf(gomotif.ErrBadClusteringCoeff, "%q", str)
}

// Clustering returns the local clustering coefficient of every node for the given method.
func (G *HyperGraph) Clustering(method ClusteringMethod) (Coefficients, error) {
	klog.V(2).Infof("computing %v clustering coefficients for %d nodes", method, len(G.V))

	switch method {
	case Opsahl:
		cc, _, _ := G.OpsahlByFraction()
		return cc, nil
	case Zhou:
		return G.Zhou(), nil
	case Proposed:
		return G.Proposed(), nil
	case Projected:
		return G.Projected(), nil
	}
	return nil, errors.Wrapf(gomotif.ErrBadClusteringCoeff, "%v", method)
}

// Opsahl returns Opsahl's clustering coefficients.
func (G *HyperGraph) Opsahl() Coefficients {
	cc, _, _ := G.OpsahlByFraction()
	return cc
}

// OpsahlByFraction returns Opsahl's clustering coefficients along with their numerators and denominators.
//
// For node v, the denominator counts every path v1-e1-v-e2-v2 formed by distinct hyperedges e1, e2 containing v
// and distinct nodes v1 in e1 and v2 in e2 other than v.  The numerator counts those paths where v1 and v2 also
// share a hyperedge other than e1 and e2.
func (G *HyperGraph) OpsahlByFraction() (cc, numer, denom Coefficients) {
	cc = make(Coefficients, len(G.V))
	numer = make(Coefficients, len(G.V))
	denom = make(Coefficients, len(G.V))

	memberSets := G.memberSets()

	for _, v := range G.V {
		members := G.elist[v]
		var n, d float64

		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				e1, e2 := members[i], members[j]
				if e1 == e2 {
					continue
				}
				for _, v1 := range G.E[e1] {
					if v1 == v {
						continue
					}
					for _, v2 := range G.E[e2] {
						if v2 == v || v2 == v1 {
							continue
						}
						d++
						if sharesOtherThan(G.elist[v1], memberSets[v2], e1, e2) {
							n++
						}
					}
				}
			}
		}

		numer[v] = n
		denom[v] = d
		if d != 0 {
			cc[v] = n / d
		} else {
			cc[v] = 0
		}
	}
	return cc, numer, denom
}

// sharesOtherThan reports if any hyperedge in members (other than e1 or e2) is in others.
func sharesOtherThan(members []int, others map[int]struct{}, e1, e2 int) bool {
	for _, ei := range members {
		if ei == e1 || ei == e2 {
			continue
		}
		if _, ok := others[ei]; ok {
			return true
		}
	}
	return false
}

// Zhou returns Zhou's clustering coefficients.
//
// For each pair of hyperedges e1, e2 containing v (with neither contained in the other), the overlap is the fraction
// of nodes of e1 \ e2 and e2 \ e1 adjacent to some node on the opposite side.  The coefficient is the sum of overlaps
// divided by the number of hyperedge pairs.  Nodes in fewer than two hyperedges have a coefficient of 0.
func (G *HyperGraph) Zhou() Coefficients {
	cc := make(Coefficients, len(G.V))
	nbrs := G.neighborSets()

	for _, v := range G.V {
		members := G.elist[v]
		cc[v] = 0
		if len(members) <= 1 {
			continue
		}

		numer := 0.0
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				e1 := toSet(G.E[members[i]])
				e2 := toSet(G.E[members[j]])
				d12 := difference(e1, e2)
				d21 := difference(e2, e1)
				if len(d12) == 0 || len(d21) == 0 {
					continue
				}
				overlap := countAdjacent(d21, d12, nbrs) + countAdjacent(d12, d21, nbrs)
				numer += float64(overlap) / float64(len(d12)+len(d21))
			}
		}

		denom := float64(len(members)) * float64(len(members)-1) / 2
		cc[v] = numer / denom
	}
	return cc
}

// countAdjacent returns how many nodes in from are adjacent to at least one node in to.
func countAdjacent(from, to map[gomotif.NodeID]struct{}, nbrs map[gomotif.NodeID]map[gomotif.NodeID]struct{}) int {
	count := 0
	for u := range from {
		for w := range to {
			if _, adj := nbrs[w][u]; adj {
				count++
				break
			}
		}
	}
	return count
}

// Proposed returns the weighted clustering coefficients.
//
// The weight of neighbors v1, v2 is 1/(s-1), where s is the size of the smallest hyperedge containing both.
// The coefficient of v is the weighted fraction of its neighbor pairs that are themselves neighbors,
// where a pair (v1, v2) weighs w(v,v1)*w(v,v2) and a closed pair contributes w(v,v1)*w(v,v2)*w(v1,v2).
func (G *HyperGraph) Proposed() Coefficients {
	cc := make(Coefficients, len(G.V))
	memberSets := G.memberSets()

	weight := make(map[gomotif.NodeID]map[gomotif.NodeID]float64, len(G.V))
	for _, v1 := range G.V {
		wv := make(map[gomotif.NodeID]float64)
		for v2 := range G.neighborSet(v1) {
			emin := len(G.V)
			for _, ei := range G.elist[v1] {
				if _, shared := memberSets[v2][ei]; shared {
					emin = min(emin, len(G.E[ei]))
				}
			}
			wv[v2] = 1 / float64(emin-1)
		}
		weight[v1] = wv
	}

	for _, v := range G.V {
		nbrs := G.Neighbors(v)
		var numer, denom float64
		for i := 0; i < len(nbrs); i++ {
			v1 := nbrs[i]
			for j := i + 1; j < len(nbrs); j++ {
				v2 := nbrs[j]
				w := weight[v][v1] * weight[v][v2]
				denom += w
				if w12, adj := weight[v1][v2]; adj {
					numer += w * w12
				}
			}
		}
		cc[v] = 0
		if denom != 0 {
			cc[v] = numer / denom
		}
	}
	return cc
}

// Projected returns the clustering coefficients of the projection graph, where two nodes are adjacent when they share
// a hyperedge: the fraction of neighbor pairs of v that are adjacent.  Nodes with fewer than two neighbors have a coefficient of 0.
func (G *HyperGraph) Projected() Coefficients {
	cc := make(Coefficients, len(G.V))
	nbrs := G.neighborSets()

	for _, v := range G.V {
		adj := G.Neighbors(v)
		deg := len(adj)
		cc[v] = 0
		if deg < 2 {
			continue
		}
		triangles := 0
		for i := 0; i < deg; i++ {
			for j := i + 1; j < deg; j++ {
				if _, closed := nbrs[adj[i]][adj[j]]; closed {
					triangles++
				}
			}
		}
		cc[v] = 2 * float64(triangles) / float64(deg*(deg-1))
	}
	return cc
}

func (G *HyperGraph) memberSets() map[gomotif.NodeID]map[int]struct{} {
	sets := make(map[gomotif.NodeID]map[int]struct{}, len(G.V))
	for _, v := range G.V {
		set := make(map[int]struct{}, len(G.elist[v]))
		for _, ei := range G.elist[v] {
			set[ei] = struct{}{}
		}
		sets[v] = set
	}
	return sets
}

func (G *HyperGraph) neighborSets() map[gomotif.NodeID]map[gomotif.NodeID]struct{} {
	sets := make(map[gomotif.NodeID]map[gomotif.NodeID]struct{}, len(G.V))
	for _, v := range G.V {
		sets[v] = G.neighborSet(v)
	}
	return sets
}

func toSet(e gomotif.Hyperedge) map[gomotif.NodeID]struct{} {
	set := make(map[gomotif.NodeID]struct{}, len(e))
	for _, v := range e {
		set[v] = struct{}{}
	}
	return set
}

func difference(a, b map[gomotif.NodeID]struct{}) map[gomotif.NodeID]struct{} {
	diff := make(map[gomotif.NodeID]struct{})
	for v := range a {
		if _, ok := b[v]; !ok {
			diff[v] = struct{}{}
		}
	}
	return diff
}
