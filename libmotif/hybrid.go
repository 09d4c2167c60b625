package libmotif

import (
	"github.com/2x3systems/gomotif/gomotif"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// HybridPasses holds the per-pass censuses of a hybrid run before they are reconciled.
type HybridPasses struct {
	Full     gomotif.Census // node sets lying inside a single hyperedge of Order or more nodes
	NotFull  gomotif.Census // order 4 only: (Order-1)-subsets of a hyperedge joined with one neighbor (nil otherwise)
	Standard gomotif.Census // everything else, via the backtracking enumerator
}

// Passes returns the non-nil censuses in pass order.
func (hp *HybridPasses) Passes() []gomotif.Census {
	passes := []gomotif.Census{hp.Full}
	if hp.NotFull != nil {
		passes = append(passes, hp.NotFull)
	}
	return append(passes, hp.Standard)
}

// CountHybrid splits the census into direct passes over large hyperedges and a standard pass over the remainder,
// then reconciles the passes per opts.Merge.
//
// Every pass skips node sets marked visited by an earlier pass.  MergeMax (the default) is a documented
// approximation that never exceeds the exhaustive count; MergeSum reproduces it.
func CountHybrid(edges []gomotif.Hyperedge, opts gomotif.CensusOpts) (gomotif.Census, error) {
	passes, err := CountHybridPasses(edges, opts)
	if err != nil {
		return nil, err
	}
	return gomotif.MergeCensus(opts.Merge, passes.Passes()...)
}

// CountHybridPasses runs the hybrid passes without reconciling them.
func CountHybridPasses(edges []gomotif.Hyperedge, opts gomotif.CensusOpts) (*HybridPasses, error) {
	N := opts.Order
	motifs, err := GenerateMotifs(N)
	if err != nil {
		return nil, err
	}
	if opts.Merge != gomotif.MergeMax && opts.Merge != gomotif.MergeSum {
		return nil, errors.Wrapf(gomotif.ErrBadMergeMode, "%v", opts.Merge)
	}

	visited, err := NewVisitedSet(opts)
	if err != nil {
		return nil, err
	}
	defer visited.Close()

	proj := BuildProjection(edges, N)
	passes := &HybridPasses{}

	passes.Full = countFull(proj, motifs, visited)
	if N == 4 {
		passes.NotFull = countNotFull(proj, motifs, visited)
	}
	passes.Standard = countStandard(proj, motifs, visited)

	if err = visited.Err(); err != nil {
		return nil, err
	}

	klog.V(2).Infof("hybrid census (order %d): %d hyperedges, %d nodes, %d node sets visited directly",
		N, len(edges), proj.NumNodes(), visited.Len())
	return passes, nil
}

// countFull classifies every Order-subset of each hyperedge with at least Order nodes.
func countFull(proj *Projection, motifs *MotifTable, visited VisitedSet) gomotif.Census {
	N := int(motifs.Order)
	c := newCounter(proj, motifs)
	for _, e := range proj.Edges {
		if len(e) < N {
			continue
		}
		ForEachCombination(len(e), N, func(idx []int) {
			set := EmptyNodeSet
			for i, j := range idx {
				set[i] = e[j]
			}
			if visited.TryAdd(set) {
				c.count(set)
			}
		})
	}
	return c.census()
}

// countNotFull classifies each (Order-1)-subset S of a hyperedge joined with a projection neighbor of S.
// Such sets are covered by the hyperedge containing S plus the hyperedges linking the extra node.
func countNotFull(proj *Projection, motifs *MotifTable, visited VisitedSet) gomotif.Census {
	N := int(motifs.Order)
	c := newCounter(proj, motifs)
	base := make([]int32, N-1)
	for _, e := range proj.Edges {
		if len(e) < N-1 {
			continue
		}
		ForEachCombination(len(e), N-1, func(idx []int) {
			var neighbors []int32
			for i, j := range idx {
				base[i] = e[j]
				neighbors = mergeSorted(neighbors, proj.Adj[e[j]])
			}
			for _, u := range neighbors {
				if containsNode(base, u) {
					continue
				}
				set := MakeNodeSet(append(base[:N-1:N-1], u)...)
				if visited.TryAdd(set) {
					c.count(set)
				}
			}
		})
	}
	return c.census()
}

// countStandard runs the backtracking enumerator over the sets no earlier pass has visited.
func countStandard(proj *Projection, motifs *MotifTable, visited VisitedSet) gomotif.Census {
	c := newCounter(proj, motifs)
	proj.Enumerate(int(motifs.Order), func(occ Occurrence) {
		if !visited.Has(occ.Nodes) {
			c.count(occ.Nodes)
		}
	})
	return c.census()
}
