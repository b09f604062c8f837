package potential

import (
	"errors"
	"math"
	"testing"

	"github.com/paulhankin/bubblesets/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPixelRegion(t *testing.T) {
	a, err := FromPixelRegion(paths.Rect(-10, 5, 41, 8), 4)
	require.NoError(t, err)
	assert.Equal(t, 11, a.W)
	assert.Equal(t, 2, a.H)
	assert.Equal(t, -10.0, a.PixelX)
	assert.Equal(t, 5.0, a.PixelY)
	assert.Equal(t, 0.0, a.Get(3, 1))
	assert.Equal(t, 0.0, a.Get(-1, 0), "outside cells read as zero")
}

func TestFromPixelRegionErrors(t *testing.T) {
	_, err := FromPixelRegion(paths.Rect(0, 0, 10, 10), 0)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	_, err = FromPixelRegion(paths.Rect(math.NaN(), 0, 10, 10), 4)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	_, err = FromPixelRegion(paths.Rect(0, 0, 1e7, 1e7), 1)
	assert.True(t, errors.Is(err, ErrGridTooLarge))
}

func TestZeroSizeRegion(t *testing.T) {
	a, err := FromPixelRegion(paths.Bounds{}, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, a.W)
	assert.Equal(t, 0, a.H)
	p, err := Outline(a, nil, nil, nil, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, p.V)
}

func TestCopySharesValues(t *testing.T) {
	grid, err := FromPixelRegion(paths.Rect(0, 0, 200, 200), 4)
	require.NoError(t, err)
	b := paths.Rect(40, 40, 20, 20)
	a := RectangleInfluence(b, grid, 10)
	c := grid.Copy(a, Origin(b.Translate(paths.Vec2{40, 8}), 10))

	assert.True(t, c.Shares(a))
	assert.Equal(t, a.W, c.W)
	assert.Equal(t, a.H, c.H)
	assert.Equal(t, a.I+10, c.I)
	assert.Equal(t, a.J+2, c.J)
	assert.Equal(t, a.PixelX+40, c.PixelX)
}

func TestIncAreaClips(t *testing.T) {
	grid, err := FromPixelRegion(paths.Rect(0, 0, 40, 40), 4)
	require.NoError(t, err)
	// an area hanging over the top-left corner of the grid
	a := LineInfluence(paths.Line{A: paths.Vec2{0, 0}, B: paths.Vec2{8, 0}}, grid, 8)
	require.Less(t, a.I, 0)
	grid.IncArea(a, 2)
	assert.InDelta(t, 2*a.Get(-a.I, -a.J), grid.Get(0, 0), 1e-6)
	grid.Clear()
	assert.Equal(t, 0.0, grid.Get(0, 0))
}

func TestCloneOwnsValues(t *testing.T) {
	grid, err := FromPixelRegion(paths.Rect(0, 0, 40, 40), 4)
	require.NoError(t, err)
	grid.IncArea(RectangleInfluence(paths.Rect(10, 10, 10, 10), grid, 8), 1)
	c := grid.Clone()
	require.False(t, c.Shares(grid))
	assert.Equal(t, grid.Bounds(), c.Bounds())
	v := grid.Get(3, 3)
	require.Greater(t, v, 0.0)

	grid.Clear()
	assert.Equal(t, v, c.Get(3, 3))
}
