package libmotif_test

import (
	"testing"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder3Classes(t *testing.T) {
	T, err := libmotif.GenerateMotifs(3)
	require.NoError(t, err)
	require.Equal(t, 6, T.NumClasses())
	require.Len(t, T.Slots, 4)

	want := []string{
		"{12,123}",
		"{12,123,13}",
		"{12,123,13,23}",
		"{12,13}",
		"{12,13,23}",
		"{123}",
	}
	for i, repr := range want {
		class := T.Class(gomotif.ClassID(i + 1))
		require.NotNil(t, class)
		assert.Equal(t, repr, T.PatternString(class.Repr))
	}
	assert.Nil(t, T.Class(0))
	assert.Nil(t, T.Class(7))

	// The open path has three labelings (one per center node)
	assert.Len(t, T.Class(4).Labelings, 3)
	assert.Len(t, T.Class(6).Labelings, 1)
}

func TestOrder4Classes(t *testing.T) {
	T, err := libmotif.GenerateMotifs(4)
	require.NoError(t, err)
	assert.Equal(t, 171, T.NumClasses())
	assert.Len(t, T.Slots, 11)

	for i := 1; i < T.NumClasses(); i++ {
		assert.Negative(t, T.ComparePatterns(T.Classes[i-1].Repr, T.Classes[i].Repr))
	}
}

func TestGenerateMotifsIsCached(t *testing.T) {
	A, err := libmotif.GenerateMotifs(3)
	require.NoError(t, err)
	B, err := libmotif.GenerateMotifs(3)
	require.NoError(t, err)
	assert.Same(t, A, B)

	_, err = libmotif.GenerateMotifs(2)
	assert.Equal(t, gomotif.ErrUnsupportedOrder, errors.Cause(err))
	_, err = libmotif.GenerateMotifs(5)
	assert.Equal(t, gomotif.ErrUnsupportedOrder, errors.Cause(err))
}

// Every labeled pattern is classified iff its entries connect all N ranks, and the classes partition the connected patterns.
func TestClassTableIsComplete(t *testing.T) {
	for _, N := range []gomotif.Order{3, 4} {
		T, err := libmotif.GenerateMotifs(N)
		require.NoError(t, err)

		numConnected := 0
		for p := 0; p < 1<<len(T.Slots); p++ {
			pat := libmotif.Pattern(p)

			var entries [][]gomotif.NodeID
			for _, mask := range T.Entries(pat) {
				var e []gomotif.NodeID
				for r := 0; r < int(N); r++ {
					if mask&(1<<r) != 0 {
						e = append(e, gomotif.NodeID(r+1))
					}
				}
				entries = append(entries, e)
			}

			connected := libmotif.IsConnected(entries, int(N))
			assert.Equal(t, connected, T.ClassOf(pat) != 0, "order %d pattern %s", N, T.PatternString(pat))
			if connected {
				numConnected++
			}
		}

		numLabelings := 0
		for _, class := range T.Classes {
			numLabelings += len(class.Labelings)
			for _, labeling := range class.Labelings {
				assert.Equal(t, class.ID, T.ClassOf(labeling))
			}
		}
		assert.Equal(t, numConnected, numLabelings)
	}
}

func TestPatternFromEntries(t *testing.T) {
	T, err := libmotif.GenerateMotifs(3)
	require.NoError(t, err)

	path := T.PatternFromEntries([][]int{{2, 1}, {2, 3}})
	assert.Equal(t, "{12,23}", T.PatternString(path))
	assert.Equal(t, gomotif.ClassID(4), T.ClassOf(path))

	// out of range and singleton entries are dropped
	assert.Equal(t, libmotif.Pattern(0), T.PatternFromEntries([][]int{{1}, {1, 4}}))
	assert.Equal(t, gomotif.ClassID(0), T.ClassOf(0))
}

func TestCensusFromAccumulator(t *testing.T) {
	T, err := libmotif.GenerateMotifs(3)
	require.NoError(t, err)

	acc := T.NewAccumulator()
	for _, labeling := range T.Class(4).Labelings {
		acc[labeling] += 2
	}
	acc[T.Class(6).Repr]++

	C := T.Census(acc)
	require.Len(t, C, 6)
	assert.Equal(t, int64(6), C.Count(4))
	assert.Equal(t, int64(1), C.Count(6))
	assert.Equal(t, int64(7), C.Total())
	assert.Equal(t, int64(0), T.ZeroCensus().Total())
}
