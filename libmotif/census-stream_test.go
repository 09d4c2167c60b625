package libmotif_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamCensus(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	var jobs []*gomotif.CensusJob
	for i := 0; i < 12; i++ {
		jobs = append(jobs, &gomotif.CensusJob{
			Label: fmt.Sprintf("g%02d", i),
			Edges: randomHyperedges(rng, 9, 10, 4),
			Opts:  gomotif.CensusOpts{Order: gomotif.Order(3 + i%2), Method: gomotif.Method(i / 2 % 2)},
		})
	}
	jobs = append(jobs, &gomotif.CensusJob{
		Label: "bad",
		Opts:  gomotif.CensusOpts{Order: 7},
	})

	results := libmotif.StreamCensus(jobs, libmotif.StreamOpts{Workers: 4}).PullAll()
	require.Len(t, results, len(jobs))

	for i, res := range results {
		require.Equal(t, i, res.Index)
		assert.Equal(t, jobs[i].Label, res.Label)
		if res.Label == "bad" {
			assert.Equal(t, gomotif.ErrUnsupportedOrder, errors.Cause(res.Err))
			continue
		}
		require.NoError(t, res.Err)

		// Each job runs independently, so the result must match a serial run
		want, err := libmotif.Count(jobs[i].Edges, jobs[i].Opts)
		require.NoError(t, err)
		assert.Equal(t, want, res.Census, res.Label)
	}
}

func TestStreamCensusPrint(t *testing.T) {
	jobs := []*gomotif.CensusJob{
		{Label: "path", Edges: []gomotif.Hyperedge{{1, 2}, {2, 3}}, Opts: gomotif.DefaultCensusOpts},
	}

	var out bytes.Buffer
	results := libmotif.StreamCensus(jobs, libmotif.DefaultStreamOpts).Print(&out).PullAll()
	require.Len(t, results, 1)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "path\t1\t0", lines[0])
	assert.Equal(t, "path\t4\t1", lines[3])
}
