package hypergraph_test

import (
	"testing"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif/hypergraph"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nested5 is {1,2} {2,3} {1,2,3} {1,2,3,4} {1,2,3,4,5}
func nested5() *hypergraph.HyperGraph {
	return hypergraph.New([]gomotif.Hyperedge{
		{1, 2}, {2, 3}, {1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 4, 5},
	})
}

func TestNew(t *testing.T) {
	edges := []gomotif.Hyperedge{{4, 1}, {1, 9, 2}}
	G := hypergraph.New(edges)

	assert.Equal(t, []gomotif.NodeID{4, 1, 9, 2}, G.V)
	assert.Equal(t, []int{0, 1}, G.MemberOf(1))
	assert.Equal(t, 4, G.NumNodes())
	assert.Equal(t, 2, G.NumHyperedges())

	// G owns its hyperedges
	G.E[0][0] = 7
	assert.Equal(t, gomotif.NodeID(4), edges[0][0])
}

func TestNodeStatistics(t *testing.T) {
	G := nested5()

	assert.Equal(t, []int{0, 2, 3, 4}, G.MemberOf(1))
	assert.Equal(t, map[gomotif.NodeID]int{1: 4, 2: 5, 3: 4, 4: 2, 5: 1}, G.NodeDegree())
	assert.Equal(t, []int{2, 2, 3, 4, 5}, G.HyperedgeSize())
	assert.Equal(t, []gomotif.NodeID{1, 2, 3, 4}, G.Neighbors(5))
	assert.Equal(t, []gomotif.NodeID{1, 3}, hypergraph.New([]gomotif.Hyperedge{{2, 1}, {3, 2}}).Neighbors(2))

	assert.Equal(t, hypergraph.Summary{
		NumNodes:          5,
		NumHyperedges:     5,
		NumBipartiteEdges: 16,
	}, G.Summary())

	features := G.Features()
	require.Len(t, features, 5)
	assert.Equal(t, hypergraph.NodeFeatures{Node: 4, Degree: 2, NumNeighbors: 4, MemberSizeSum: 9}, features[3])
	assert.Equal(t, hypergraph.NodeFeatures{Node: 5, Degree: 1, NumNeighbors: 4, MemberSizeSum: 5}, features[4])

	assert.Equal(t, []hypergraph.HistogramBin{
		{Degree: 1, NumNodes: 1},
		{Degree: 2, NumNodes: 1},
		{Degree: 4, NumNodes: 2},
		{Degree: 5, NumNodes: 1},
	}, G.DegreeHistogram())
}

func TestJointNodeDegree(t *testing.T) {
	jd := nested5().JointNodeDegree()

	assert.Equal(t, []int{1, 2, 4, 5}, jd.Degrees)

	// Nodes 1 and 3 (degree 4) each share four hyperedges with node 2 (degree 5)
	assert.Equal(t, int64(8), jd.Count(4, 5))
	assert.Equal(t, int64(8), jd.Count(5, 4))

	// Nodes 1 and 3 share three hyperedges, counted in both directions
	assert.Equal(t, int64(6), jd.Count(4, 4))

	assert.Equal(t, int64(2), jd.Count(1, 4))
	assert.Equal(t, int64(1), jd.Count(1, 5))
	assert.Equal(t, int64(1), jd.Count(1, 2))
	assert.Zero(t, jd.Count(1, 1))

	var prev hypergraph.DegreePair
	total := int64(0)
	jd.Each(func(k hypergraph.DegreePair, count int64) {
		assert.True(t, prev.K1 < k.K1 || (prev.K1 == k.K1 && prev.K2 < k.K2), "%v after %v", k, prev)
		prev = k
		total += count
	})

	// Each unordered pair within a hyperedge is counted twice: 2 * (1 + 1 + 3 + 6 + 10)
	assert.Equal(t, int64(42), total)
}

func TestAddRemoveNode(t *testing.T) {
	G := nested5()

	require.NoError(t, G.AddNodeToHyperedge(5, 0))
	assert.Equal(t, gomotif.Hyperedge{1, 2, 5}, G.E[0])
	assert.Equal(t, []int{4, 0}, G.MemberOf(5))

	require.NoError(t, G.RemoveNodeFromHyperedge(2, 3))
	assert.Equal(t, gomotif.Hyperedge{1, 3, 4}, G.E[3])
	assert.Equal(t, []int{0, 1, 2, 4}, G.MemberOf(2))

	err := G.AddNodeToHyperedge(6, 0)
	assert.Equal(t, gomotif.ErrNodeNotFound, errors.Cause(err))

	err = G.AddNodeToHyperedge(1, 5)
	assert.Equal(t, gomotif.ErrHyperedgeNotFound, errors.Cause(err))

	err = G.RemoveNodeFromHyperedge(1, -1)
	assert.Equal(t, gomotif.ErrHyperedgeNotFound, errors.Cause(err))

	err = G.RemoveNodeFromHyperedge(4, 1)
	assert.Equal(t, gomotif.ErrNotMember, errors.Cause(err))

	err = G.RemoveNodeFromHyperedge(2, 3)
	assert.Equal(t, gomotif.ErrNotMember, errors.Cause(err))
}
