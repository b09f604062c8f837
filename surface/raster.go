package surface

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/paulhankin/bubblesets/paths"
	"go.trai.ch/zerr"
	"golang.org/x/image/vector"
)

// Raster renders the latest drawings as an image.
type Raster struct {
	frame

	View paths.Bounds
	// Scale is the number of pixels per unit.
	Scale      float64
	Background string
	CellStyle  paths.Style
}

func NewRaster(backdrop func() []paths.Layer, scale float64) *Raster {
	return &Raster{
		frame:      frame{backdrop: backdrop},
		Scale:      scale,
		Background: "white",
		CellStyle:  DefaultCellStyle,
	}
}

// Image paints the layers onto a new image.
func (r *Raster) Image() (*image.NRGBA, error) {
	ls := r.layers(r.CellStyle)
	view := fit(r.View, ls)
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(view.Width() * scale))
	h := int(math.Ceil(view.Height() * scale))
	if w <= 0 || h <= 0 {
		return nil, zerr.With(ErrEmptyView, "view", view)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	bg, err := ParseColor(r.Background)
	if err != nil {
		return nil, err
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	px := func(v paths.Vec2) (float32, float32) {
		return float32((v[0] - view.Min[0]) * scale), float32((v[1] - view.Min[1]) * scale)
	}
	for _, l := range ls {
		fill, err := ParseColor(l.Style.Fill)
		if err != nil {
			return nil, err
		}
		stroke, err := ParseColor(l.Style.Stroke)
		if err != nil {
			return nil, err
		}
		for _, p := range l.P {
			if len(p.V) < 2 {
				continue
			}
			if fill.A > 0 && p.Closed {
				z := vector.NewRasterizer(w, h)
				z.MoveTo(px(p.V[0]))
				for _, v := range p.V[1:] {
					z.LineTo(px(v))
				}
				z.ClosePath()
				z.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})
			}
			if stroke.A > 0 && l.Style.StrokeWidth > 0 {
				strokePath(img, p, stroke, l.Style.StrokeWidth*scale/2, px)
			}
		}
	}
	return img, nil
}

// strokePath paints every segment of p as a quad of half-width hw.
func strokePath(img *image.NRGBA, p paths.Path, c color.NRGBA, hw float64, px func(paths.Vec2) (float32, float32)) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	n := len(p.V)
	if !p.Closed {
		n--
	}
	quad := func(a, e paths.Vec2) {
		ax, ay := px(a)
		ex, ey := px(e)
		dx, dy := float64(ex-ax), float64(ey-ay)
		l := math.Hypot(dx, dy)
		if l == 0 {
			return
		}
		nx, ny := float32(-dy/l*hw), float32(dx/l*hw)
		z.MoveTo(ax+nx, ay+ny)
		z.LineTo(ex+nx, ey+ny)
		z.LineTo(ex-nx, ey-ny)
		z.LineTo(ax-nx, ay-ny)
		z.ClosePath()
	}
	for i := 0; i < n; i++ {
		quad(p.V[i], p.V[(i+1)%len(p.V)])
	}
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

// Encode writes the image as PNG.
func (r *Raster) Encode(w io.Writer) error {
	img, err := r.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
