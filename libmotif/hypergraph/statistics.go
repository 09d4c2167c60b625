package hypergraph

import (
	"github.com/2x3systems/gomotif/gomotif"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// DegreePair is a key of a JointDegreeTable.
type DegreePair struct {
	K1, K2 int
}

func degreePairComparator(a, b interface{}) int {
	A := a.(DegreePair)
	B := b.(DegreePair)
	if d := A.K1 - B.K1; d != 0 {
		return d
	}
	return A.K2 - B.K2
}

// JointDegreeTable counts, for each node degree pair (k, k'), how many times nodes of degree k and k' share a hyperedge.
// Each co-membership is counted in both directions, so (k, k) entries are counted twice.
type JointDegreeTable struct {
	Degrees []int // distinct node degrees, ascending
	counts  *redblacktree.Tree
}

// Count returns the entry for (k1, k2), which is 0 if never observed.
func (jd *JointDegreeTable) Count(k1, k2 int) int64 {
	if val, found := jd.counts.Get(DegreePair{k1, k2}); found {
		return val.(int64)
	}
	return 0
}

// Each calls fn for every non-zero entry in ascending (k1, k2) order.
func (jd *JointDegreeTable) Each(fn func(k DegreePair, count int64)) {
	itr := jd.counts.Iterator()
	for itr.Next() {
		fn(itr.Key().(DegreePair), itr.Value().(int64))
	}
}

// JointNodeDegree returns the number of hyperedges shared by nodes of each degree pair.
func (G *HyperGraph) JointNodeDegree() *JointDegreeTable {
	degrees := treeset.NewWithIntComparator()
	for _, v := range G.V {
		degrees.Add(len(G.elist[v]))
	}

	jd := &JointDegreeTable{
		Degrees: make([]int, 0, degrees.Size()),
		counts:  redblacktree.NewWith(degreePairComparator),
	}
	for _, k := range degrees.Values() {
		jd.Degrees = append(jd.Degrees, k.(int))
	}

	bump := func(k DegreePair) {
		count := int64(1)
		if val, found := jd.counts.Get(k); found {
			count += val.(int64)
		}
		jd.counts.Put(k, count)
	}

	for _, e := range G.E {
		for i := 0; i < len(e)-1; i++ {
			k1 := len(G.elist[e[i]])
			for j := i + 1; j < len(e); j++ {
				k2 := len(G.elist[e[j]])
				bump(DegreePair{k1, k2})
				bump(DegreePair{k2, k1})
			}
		}
	}
	return jd
}

// NodeFeatures are per-node statistics.
type NodeFeatures struct {
	Node          gomotif.NodeID
	Degree        int // number of hyperedges the node belongs to
	NumNeighbors  int // number of distinct other nodes sharing a hyperedge with the node
	MemberSizeSum int // sum of the sizes of the hyperedges the node belongs to
}

// Features returns the features of every node, in the order of G.V.
func (G *HyperGraph) Features() []NodeFeatures {
	features := make([]NodeFeatures, len(G.V))
	for i, v := range G.V {
		fi := NodeFeatures{
			Node:         v,
			Degree:       len(G.elist[v]),
			NumNeighbors: len(G.neighborSet(v)),
		}
		for _, ei := range G.elist[v] {
			fi.MemberSizeSum += len(G.E[ei])
		}
		features[i] = fi
	}
	return features
}

// Summary holds dataset-level counts.
type Summary struct {
	NumNodes          int
	NumHyperedges     int
	NumBipartiteEdges int // node-hyperedge memberships, i.e. edges of the bipartite incidence graph
}

// Summary returns the dataset-level counts of G.
func (G *HyperGraph) Summary() Summary {
	sum := Summary{
		NumNodes:      len(G.V),
		NumHyperedges: len(G.E),
	}
	for _, v := range G.V {
		sum.NumBipartiteEdges += len(G.elist[v])
	}
	return sum
}

// HistogramBin is the number of nodes having a given degree.
type HistogramBin struct {
	Degree   int
	NumNodes int
}

// DegreeHistogram returns the number of nodes having each degree, ascending by degree.
func (G *HyperGraph) DegreeHistogram() []HistogramBin {
	hist := redblacktree.NewWithIntComparator()
	for _, v := range G.V {
		k := len(G.elist[v])
		n := 1
		if val, found := hist.Get(k); found {
			n += val.(int)
		}
		hist.Put(k, n)
	}

	out := make([]HistogramBin, 0, hist.Size())
	itr := hist.Iterator()
	for itr.Next() {
		out = append(out, HistogramBin{Degree: itr.Key().(int), NumNodes: itr.Value().(int)})
	}
	return out
}
