package libmotif

import (
	"github.com/2x3systems/gomotif/gomotif"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Count runs a census of the given hyperedges as specified by opts.
//
// The order is validated before any work is done.  An empty hyperedge list yields an all-zero Census.
func Count(edges []gomotif.Hyperedge, opts gomotif.CensusOpts) (gomotif.Census, error) {
	if err := opts.Order.Validate(); err != nil {
		return nil, err
	}
	switch opts.Method {
	case gomotif.MethodExhaustive:
		return CountExhaustive(edges, opts.Order)
	case gomotif.MethodHybrid:
		return CountHybrid(edges, opts)
	}
	return nil, errors.Wrapf(gomotif.ErrBadMethod, "%v", opts.Method)
}

// CountExhaustive enumerates every connected node set of size N in the projection graph and classifies each one.
func CountExhaustive(edges []gomotif.Hyperedge, N gomotif.Order) (gomotif.Census, error) {
	motifs, err := GenerateMotifs(N)
	if err != nil {
		return nil, err
	}

	proj := BuildProjection(edges, N)
	c := newCounter(proj, motifs)

	emitted := int64(0)
	proj.Enumerate(int(N), func(occ Occurrence) {
		emitted++
		c.count(occ.Nodes)
	})

	klog.V(2).Infof("exhaustive census (order %d): %d hyperedges, %d nodes, %d node sets, %d connected",
		N, len(edges), proj.NumNodes(), emitted, c.hits)
	return c.census(), nil
}
