package surface

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterFill(t *testing.T) {
	r := NewRaster(nil, 1)
	r.View = paths.Rect(0, 0, 100, 100)
	require.NoError(t, r.Draw([]bubbleset.Drawing{{Path: square(20, 20, 60), Style: paths.Style{Fill: "red"}}}))
	img, err := r.Image()
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	in := img.NRGBAAt(50, 50)
	assert.Greater(t, in.R, uint8(250))
	assert.Less(t, in.G, uint8(5))
	assert.Equal(t, uint8(255), img.NRGBAAt(5, 5).G, "background")
}

func TestRasterStroke(t *testing.T) {
	r := NewRaster(nil, 2)
	r.View = paths.Rect(0, 0, 50, 50)
	require.NoError(t, r.Draw([]bubbleset.Drawing{{
		Path:  square(10, 10, 30),
		Style: paths.Style{Stroke: "black", StrokeWidth: 2},
	}}))
	img, err := r.Image()
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dy())
	assert.Less(t, img.NRGBAAt(50, 20).R, uint8(10), "top edge")
	assert.Equal(t, uint8(255), img.NRGBAAt(50, 50).R, "unfilled inside")
}

func TestRasterEncode(t *testing.T) {
	r := NewRaster(nil, 1)
	require.NoError(t, r.Draw([]bubbleset.Drawing{{Path: square(0, 0, 30), Style: paths.Style{Fill: "blue"}}}))
	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx(), "fitted with a margin")
}

func TestRasterErrors(t *testing.T) {
	r := NewRaster(nil, 1)
	r.View = paths.Rect(0, 0, 10, 10)
	require.NoError(t, r.Draw([]bubbleset.Drawing{{Path: square(0, 0, 5), Style: paths.Style{Fill: "nope"}}}))
	_, err := r.Image()
	assert.ErrorIs(t, err, ErrBadColor)

	r = NewRaster(nil, 1)
	r.View = paths.Rect(0, 0, 0, 10)
	_, err = r.Image()
	assert.ErrorIs(t, err, ErrEmptyView)
}
