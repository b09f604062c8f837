// Package potential computes bubble set outlines: a potential field is
// accumulated on a coarse grid from the influence areas of members,
// edges and non-members, and the outline is traced where the field
// crosses a threshold.
package potential

import (
	"math"

	"github.com/paulhankin/bubblesets/paths"
	"go.trai.ch/zerr"
)

// MaxCells bounds the number of cells of a single grid.
const MaxCells = 1 << 22

// An Area is a rectangular block of field values on a grid of square
// cells PixelGroup pixels wide. A grid created by FromPixelRegion has
// offset 0,0; areas created against a grid record their cell offset
// I,J inside it. Copies of an area share its values.
type Area struct {
	PixelGroup     int
	I, J           int
	PixelX, PixelY float64
	W, H           int

	pix []float32
}

// FromPixelRegion creates a zeroed grid covering r.
func FromPixelRegion(r paths.Bounds, pixelGroup int) (*Area, error) {
	if pixelGroup < 1 {
		return nil, zerr.With(ErrInvalidGeometry, "pixel_group", pixelGroup)
	}
	for _, f := range []float64{r.Min[0], r.Min[1], r.Max[0], r.Max[1]} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, zerr.With(ErrInvalidGeometry, "region", r)
		}
	}
	w := int(math.Ceil(math.Max(0, r.Width()) / float64(pixelGroup)))
	h := int(math.Ceil(math.Max(0, r.Height()) / float64(pixelGroup)))
	if w*h > MaxCells || w > MaxCells || h > MaxCells {
		return nil, zerr.With(zerr.With(ErrGridTooLarge, "width", w), "height", h)
	}
	return &Area{
		PixelGroup: pixelGroup,
		PixelX:     r.Min[0],
		PixelY:     r.Min[1],
		W:          w,
		H:          h,
		pix:        make([]float32, w*h),
	}, nil
}

// Bounds returns the pixel region covered by a.
func (a *Area) Bounds() paths.Bounds {
	g := float64(a.PixelGroup)
	return paths.Rect(a.PixelX, a.PixelY, float64(a.W)*g, float64(a.H)*g)
}

// Get returns the value of cell i,j, or zero outside the area.
func (a *Area) Get(i, j int) float64 {
	if i < 0 || j < 0 || i >= a.W || j >= a.H {
		return 0
	}
	return float64(a.pix[i+j*a.W])
}

func (a *Area) set(i, j int, v float64) {
	a.pix[i+j*a.W] = float32(v)
}

// Clear sets every cell to zero.
func (a *Area) Clear() {
	for i := range a.pix {
		a.pix[i] = 0
	}
}

// cellX returns the index of the column containing pixel x.
func (a *Area) cellX(x float64) int {
	return int(math.Floor((x - a.PixelX) / float64(a.PixelGroup)))
}

func (a *Area) cellY(y float64) int {
	return int(math.Floor((y - a.PixelY) / float64(a.PixelGroup)))
}

// cellCenter returns the pixel position sampled by cell i,j.
func (a *Area) cellCenter(i, j int) paths.Vec2 {
	g := float64(a.PixelGroup)
	return paths.Vec2{a.PixelX + (float64(i)+0.5)*g, a.PixelY + (float64(j)+0.5)*g}
}

// sub creates a zeroed area on grid a covering the pixel region r.
func (a *Area) sub(r paths.Bounds) *Area {
	i0, j0 := a.cellX(r.Min[0]), a.cellY(r.Min[1])
	g := float64(a.PixelGroup)
	i1 := int(math.Ceil((r.Max[0] - a.PixelX) / g))
	j1 := int(math.Ceil((r.Max[1] - a.PixelY) / g))
	w, h := i1-i0, j1-j0
	if w < 0 || h < 0 || w*h > MaxCells {
		w, h = 0, 0
	}
	return &Area{
		PixelGroup: a.PixelGroup,
		I:          i0,
		J:          j0,
		PixelX:     a.PixelX + float64(i0)*g,
		PixelY:     a.PixelY + float64(j0)*g,
		W:          w,
		H:          h,
		pix:        make([]float32, w*h),
	}
}

// Copy returns an area sharing the values of s, placed on grid a so
// that its first cell contains the pixel origin.
func (a *Area) Copy(s *Area, origin paths.Vec2) *Area {
	i, j := a.cellX(origin[0]), a.cellY(origin[1])
	g := float64(a.PixelGroup)
	return &Area{
		PixelGroup: a.PixelGroup,
		I:          i,
		J:          j,
		PixelX:     a.PixelX + float64(i)*g,
		PixelY:     a.PixelY + float64(j)*g,
		W:          s.W,
		H:          s.H,
		pix:        s.pix,
	}
}

// Clone returns a copy of a with its own values.
func (a *Area) Clone() *Area {
	c := *a
	c.pix = append([]float32(nil), a.pix...)
	return &c
}

// Shares reports whether a and s are backed by the same values.
func (a *Area) Shares(s *Area) bool {
	if len(a.pix) == 0 || len(s.pix) == 0 {
		return false
	}
	return &a.pix[0] == &s.pix[0]
}

// IncArea adds factor times the values of s to a. Cells of s that fall
// outside a are ignored.
func (a *Area) IncArea(s *Area, factor float64) {
	if s == nil || factor == 0 {
		return
	}
	f := float32(factor)
	for y := 0; y < s.H; y++ {
		gy := s.J + y
		if gy < 0 || gy >= a.H {
			continue
		}
		for x := 0; x < s.W; x++ {
			gx := s.I + x
			if gx < 0 || gx >= a.W {
				continue
			}
			a.pix[gx+gy*a.W] += s.pix[x+y*s.W] * f
		}
	}
}
