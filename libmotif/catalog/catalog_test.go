package catalog_test

import (
	"fmt"
	"path"
	"testing"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
	"github.com/2x3systems/gomotif/libmotif/catalog"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var datasets = []struct {
	label string
	expr  string
}{
	{"path", "{1,2} {2,3}"},
	{"triple", "{1,2,3}"},
	{"nested", "{1,2} {2,3} {1,2,3} {1,2,3,4} {1,2,3,4,5}"},
	{"chain", "{1,2,3} {1,2} {2,3,4} {3,4} {4,5,6} {5,6}"},
}

func selectAll(t *testing.T, cat gomotif.Catalog, order gomotif.Order) []*gomotif.CensusRecord {
	onHit := make(chan *gomotif.CensusRecord)
	var err error
	go func() {
		err = cat.Select(order, onHit)
		close(onHit)
	}()

	var recs []*gomotif.CensusRecord
	for rec := range onHit {
		recs = append(recs, rec)
	}
	require.NoError(t, err)
	return recs
}

func TestCatalogRoundTrip(t *testing.T) {
	dbPath := path.Join(t.TempDir(), "TestCatalogRoundTrip")

	ctx := gomotif.NewCatalogContext()
	cat, err := catalog.OpenCatalog(ctx, gomotif.CatalogOpts{DbPathName: dbPath})
	require.NoError(t, err)
	assert.False(t, cat.IsReadOnly())

	wrote := make(map[string]*gomotif.CensusRecord)
	for _, N := range []gomotif.Order{3, 4} {
		for _, ds := range datasets {
			edges, err := libmotif.ParseHyperedges(ds.expr)
			require.NoError(t, err)
			opts := gomotif.CensusOpts{Order: N, Method: gomotif.MethodExhaustive}
			C, err := libmotif.Count(edges, opts)
			require.NoError(t, err)

			rec := &gomotif.CensusRecord{
				Label:         ds.label,
				Order:         N,
				Method:        opts.Method,
				Merge:         opts.Merge,
				NumHyperedges: int64(len(edges)),
				Census:        C,
			}
			require.NoError(t, cat.Put(rec))
			wrote[fmt.Sprintf("%s%d", rec.Label, N)] = rec
		}
	}

	// Replacing a record leaves a single entry
	require.NoError(t, cat.Put(wrote["path3"]))

	err = cat.Put(&gomotif.CensusRecord{Label: "bad", Order: 9})
	assert.Equal(t, gomotif.ErrUnsupportedOrder, errors.Cause(err))

	rec, err := cat.Get(4, "nested")
	require.NoError(t, err)
	assert.Equal(t, wrote["nested4"], rec)

	_, err = cat.Get(3, "missing")
	assert.Equal(t, gomotif.ErrRecordNotFound, errors.Cause(err))

	require.NoError(t, cat.Close())

	// Reopen read-only and select by order
	cat, err = catalog.OpenCatalog(ctx, gomotif.CatalogOpts{DbPathName: dbPath, ReadOnly: true})
	require.NoError(t, err)
	assert.True(t, cat.IsReadOnly())

	recs := selectAll(t, cat, 3)
	require.Len(t, recs, len(datasets))
	labels := make([]string, len(recs))
	for i, rec := range recs {
		labels[i] = rec.Label
		assert.Equal(t, wrote[rec.Label+"3"], rec)
	}
	assert.Equal(t, []string{"chain", "nested", "path", "triple"}, labels)

	assert.Len(t, selectAll(t, cat, 0), 2*len(datasets))

	err = cat.Put(wrote["path3"])
	assert.Equal(t, gomotif.ErrReadOnly, errors.Cause(err))

	// Closing the context closes every attached catalog
	ctx.Close()
	<-ctx.Done()
}

func TestCatalogInMemory(t *testing.T) {
	ctx := gomotif.NewCatalogContext()
	defer ctx.Close()

	_, err := catalog.OpenCatalog(ctx, gomotif.CatalogOpts{ReadOnly: true})
	assert.Equal(t, gomotif.ErrBadCatalogParam, errors.Cause(err))

	cat, err := catalog.OpenCatalog(ctx, gomotif.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	jobs := []*gomotif.CensusJob{
		{Label: "a", Edges: []gomotif.Hyperedge{{1, 2, 3}}, Opts: gomotif.DefaultCensusOpts},
		{Label: "b", Edges: []gomotif.Hyperedge{{1, 2}, {2, 3}}, Opts: gomotif.DefaultCensusOpts},
		{Label: "c", Opts: gomotif.CensusOpts{Order: 2}},
	}
	results := libmotif.StreamCensus(jobs, libmotif.DefaultStreamOpts).AddTo(cat, func(label string) int64 {
		return int64(len(label))
	}).PullAll()
	require.Len(t, results, 3)
	assert.Error(t, results[2].Err)

	recs := selectAll(t, cat, 3)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Label)
	assert.Equal(t, int64(1), recs[0].Census.Count(6))
	assert.Equal(t, int64(1), recs[1].Census.Count(4))
	assert.Equal(t, int64(1), recs[1].NumHyperedges)
}
