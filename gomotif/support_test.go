package gomotif_test

import (
	"bytes"
	"testing"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderValidate(t *testing.T) {
	require.NoError(t, gomotif.Order(3).Validate())
	require.NoError(t, gomotif.Order(4).Validate())

	for _, N := range []gomotif.Order{-1, 0, 1, 2, 5} {
		err := N.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, gomotif.ErrUnsupportedOrder))
	}
}

func TestParseNames(t *testing.T) {
	m, err := gomotif.ParseMethod("exhaustive")
	require.NoError(t, err)
	assert.Equal(t, gomotif.MethodExhaustive, m)
	assert.Equal(t, "hybrid", gomotif.MethodHybrid.String())

	_, err = gomotif.ParseMethod("fast")
	assert.Equal(t, gomotif.ErrBadMethod, errors.Cause(err))

	mode, err := gomotif.ParseMergeMode("sum")
	require.NoError(t, err)
	assert.Equal(t, gomotif.MergeSum, mode)

	_, err = gomotif.ParseMergeMode("avg")
	assert.Equal(t, gomotif.ErrBadMergeMode, errors.Cause(err))
}

func TestMergeCensus(t *testing.T) {
	A := gomotif.Census{{1, 3}, {2, 0}, {3, 7}}
	B := gomotif.Census{{1, 1}, {2, 4}, {3, 7}}

	maxed, err := gomotif.MergeCensus(gomotif.MergeMax, A, B)
	require.NoError(t, err)
	assert.Equal(t, gomotif.Census{{1, 3}, {2, 4}, {3, 7}}, maxed)

	summed, err := gomotif.MergeCensus(gomotif.MergeSum, A, B)
	require.NoError(t, err)
	assert.Equal(t, gomotif.Census{{1, 4}, {2, 4}, {3, 14}}, summed)
	assert.Equal(t, int64(22), summed.Total())

	// inputs are untouched
	assert.Equal(t, int64(3), A.Count(1))

	_, err = gomotif.MergeCensus(gomotif.MergeMax, A, B[:2])
	assert.Equal(t, gomotif.ErrCensusMismatch, errors.Cause(err))
}

func TestCensusWriteTSV(t *testing.T) {
	C := gomotif.Census{{1, 0}, {2, 12}}
	var buf bytes.Buffer
	require.NoError(t, C.WriteTSV(&buf))
	assert.Equal(t, "1\t0\n2\t12\n", buf.String())
	assert.Equal(t, int64(12), C.Count(2))
	assert.Equal(t, int64(0), C.Count(9))
}
