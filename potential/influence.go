package potential

import (
	"math"

	"github.com/paulhankin/bubblesets/paths"
)

// distSquarer is the part of a shape an influence area depends on.
type distSquarer interface {
	Bounds() paths.Bounds
	DistSquare(v paths.Vec2) float64
}

// influence fills an area of grid around s: every cell closer than r1
// to the shape gets (r1-d)^2. The area's first cell contains the pixel
// s.Bounds().Min - r1, which is where Copy places translated copies.
func influence(s distSquarer, grid *Area, r1 float64) *Area {
	a := grid.sub(s.Bounds().Pad(r1))
	r2 := r1 * r1
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			d2 := s.DistSquare(a.cellCenter(x, y))
			if d2 >= r2 {
				continue
			}
			v := r1 - math.Sqrt(d2)
			a.set(x, y, v*v)
		}
	}
	return a
}

// CircleInfluence returns the influence area of a circular node.
func CircleInfluence(c paths.Circle, grid *Area, r1 float64) *Area {
	return influence(c, grid, r1)
}

// RectangleInfluence returns the influence area of a rectangular node.
func RectangleInfluence(b paths.Bounds, grid *Area, r1 float64) *Area {
	return influence(b, grid, r1)
}

// LineInfluence returns the influence area of an edge segment.
func LineInfluence(l paths.Line, grid *Area, r1 float64) *Area {
	return influence(l, grid, r1)
}

// Origin returns the pixel origin an influence area of a shape with
// the given bounds is anchored at.
func Origin(b paths.Bounds, r1 float64) paths.Vec2 {
	return paths.Vec2{b.Min[0] - r1, b.Min[1] - r1}
}
