package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBuilder(t *testing.T) {
	tb := NewTableBuilder(Linear)
	for _, p := range [][2]float64{{0, 0}, {1, 1}, {2, 4}, {3, 9}} {
		require.NoError(t, tb.AddEntry(p[0], p[1]))
	}
	assert.Equal(t, 4, tb.Size())

	tab, err := tb.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 2.5, tab.Lookup(1.5))
	assert.Equal(t, 4, tab.Size())

	// One-shot transition: no rebuilds, no further entries
	_, err = tb.Finalize()
	require.ErrorIs(t, err, ErrFinalized)
	require.ErrorIs(t, tb.AddEntry(4, 16), ErrFinalized)
}

func TestTableBuilderOrdering(t *testing.T) {
	tb := NewTableBuilder(Spline)
	require.NoError(t, tb.AddEntry(0, 0))
	require.NoError(t, tb.AddEntry(1, 1))
	require.ErrorIs(t, tb.AddEntry(1, 2), ErrNotIncreasing)
	require.ErrorIs(t, tb.AddEntry(0.5, 2), ErrNotIncreasing)
	require.NoError(t, tb.AddEntry(2, 0))
	assert.Equal(t, 3, tb.Size())

	// Matches a directly constructed table over the same samples
	tab, err := tb.Finalize()
	require.NoError(t, err)
	direct, err := NewTable([]float64{0, 1, 2}, []float64{0, 1, 0}, Spline)
	require.NoError(t, err)
	for a := -0.5; a <= 2.5; a += 0.125 {
		assert.Equal(t, direct.Lookup(a), tab.Lookup(a))
	}
}

func TestTableBuilderTooFew(t *testing.T) {
	tb := NewTableBuilder(Spline)
	require.NoError(t, tb.AddEntry(0, 0))
	require.NoError(t, tb.AddEntry(1, 1))
	_, err := tb.Finalize()
	require.ErrorIs(t, err, ErrTooFewPoints)
	// The failed finalize does not consume the builder
	require.NoError(t, tb.AddEntry(2, 4))
	tab, err := tb.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Size())
}
