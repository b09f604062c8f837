package bubbleset

import (
	"testing"

	"github.com/paulhankin/bubblesets/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUpdate(t *testing.T) {
	e := newCountingEngine()
	var f field

	dirty, err := f.update(e, paths.Rect(0, 0, 100, 100), 4, false)
	require.NoError(t, err)
	assert.True(t, dirty, "first grid")
	first := f.grid

	dirty, err = f.update(e, paths.Rect(0, 0, 100, 100), 4, false)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Same(t, first, f.grid, "unchanged region keeps the grid")

	dirty, err = f.update(e, paths.Rect(0, 0, 60, 120), 4, false)
	require.NoError(t, err)
	assert.False(t, dirty, "resize keeps cached areas")
	assert.NotSame(t, first, f.grid)
	assert.Equal(t, 15, f.grid.W)
	assert.Equal(t, 30, f.grid.H)

	dirty, err = f.update(e, paths.Rect(4, 0, 60, 120), 4, false)
	require.NoError(t, err)
	assert.True(t, dirty, "origin moved")

	dirty, err = f.update(e, paths.Rect(4, 0, 60, 120), 4, true)
	require.NoError(t, err)
	assert.True(t, dirty, "forced")
	assert.Equal(t, 4, e.n("Grid"))
}

func TestFieldGridError(t *testing.T) {
	var f field
	_, err := f.update(newCountingEngine(), paths.Rect(0, 0, 1e9, 1e9), 1, false)
	require.Error(t, err)
	assert.Nil(t, f.grid)
}
