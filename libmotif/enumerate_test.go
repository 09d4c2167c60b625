package libmotif_test

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectionConnected reports if the given dense indices induce a connected subgraph of the projection graph.
func projectionConnected(p *libmotif.Projection, nodes []int32) bool {
	inSet := make(map[int32]bool, len(nodes))
	for _, v := range nodes {
		inSet[v] = true
	}
	reached := map[int32]bool{nodes[0]: true}
	queue := []int32{nodes[0]}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, u := range p.Adj[v] {
			if inSet[u] && !reached[u] {
				reached[u] = true
				queue = append(queue, u)
			}
		}
	}
	return len(reached) == len(nodes)
}

func TestEnumerateMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 25; trial++ {
		numNodes := 5 + rng.Intn(8) // <= 12 nodes
		edges := randomHyperedges(rng, numNodes, 2+rng.Intn(9), 4)
		p := libmotif.BuildProjection(edges, gomotif.MaxOrder)

		for _, n := range []int{2, 3, 4} {
			emitted := make(map[libmotif.NodeSet]int)
			numEmitted := 0
			p.Enumerate(n, func(occ libmotif.Occurrence) {
				numEmitted++
				emitted[occ.Nodes]++

				require.Equal(t, n, occ.Nodes.Len())
				assert.Equal(t, occ.Nodes[0], occ.Root, "root must be the least member")
			})

			// No set is emitted twice
			assert.Equal(t, len(emitted), numEmitted, "trial %d n=%d", trial, n)

			// Every connected n-subset is emitted
			all := make([]int32, p.NumNodes())
			for i := range all {
				all[i] = int32(i)
			}
			want := 0
			for _, combo := range libmotif.Combinations(all, n) {
				if projectionConnected(p, combo) {
					want++
					assert.Contains(t, emitted, libmotif.MakeNodeSet(combo...))
				}
			}
			assert.Equal(t, want, numEmitted, "trial %d n=%d", trial, n)
		}
	}
}

func TestEnumerateRejectsBadSizes(t *testing.T) {
	p := libmotif.BuildProjection([]gomotif.Hyperedge{{1, 2, 3, 4, 5}}, 4)
	for _, n := range []int{0, 1, 5} {
		p.Enumerate(n, func(libmotif.Occurrence) {
			t.Fatalf("unexpected occurrence for n=%d", n)
		})
	}

	count := 0
	p.Enumerate(4, func(libmotif.Occurrence) { count++ })
	assert.Equal(t, 5, count)
}
