// Package paths provides tools for manipulating 2d paths consisting
// of line segments, and the small set of geometric primitives
// (bounds, circles, lines) that outlines are computed from.
package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// A Path is a contiguous series of line segments, from the
// first point in the V slice to the last. A closed path has an
// implicit segment from the last point back to the first.
type Path struct {
	V      []Vec2
	Closed bool
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// Rect returns the bounds of the rectangle with top-left corner x,y
// and the given width and height.
func Rect(x, y, w, h float64) Bounds {
	return Bounds{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// Width returns the horizontal extent of b.
func (b Bounds) Width() float64 { return b.Max[0] - b.Min[0] }

// Height returns the vertical extent of b.
func (b Bounds) Height() float64 { return b.Max[1] - b.Min[1] }

// Empty reports whether b has no area.
func (b Bounds) Empty() bool {
	return !(b.Max[0] > b.Min[0]) || !(b.Max[1] > b.Min[1])
}

// Union returns the smallest bounds containing both b and o.
// A zero Bounds is treated as empty and does not contribute.
func (b Bounds) Union(o Bounds) Bounds {
	if b == (Bounds{}) {
		return o
	}
	if o == (Bounds{}) {
		return b
	}
	return Bounds{
		Min: Vec2{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1])},
		Max: Vec2{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1])},
	}
}

// Pad grows b by d on every side.
func (b Bounds) Pad(d float64) Bounds {
	return Bounds{
		Min: Vec2{b.Min[0] - d, b.Min[1] - d},
		Max: Vec2{b.Max[0] + d, b.Max[1] + d},
	}
}

// Translate returns b moved by dx.
func (b Bounds) Translate(dx Vec2) Bounds {
	return Bounds{Min: vec2AddVec2(b.Min, dx), Max: vec2AddVec2(b.Max, dx)}
}

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	inf := math.Inf(1)
	min := Vec2{inf, inf}
	max := Vec2{-inf, -inf}
	i := 0
	for _, p := range ps.P {
		for _, v := range p.V {
			i++
			min[0] = math.Min(min[0], v[0])
			min[1] = math.Min(min[1], v[1])
			max[0] = math.Max(max[0], v[0])
			max[1] = math.Max(max[1], v[1])
		}
	}
	if i == 0 {
		ps.Bounds = Bounds{}
		return
	}
	ps.Bounds = Bounds{
		Min: min,
		Max: max,
	}
}

// Transform resizes all paths so that the rectangle forming the
// current bounds is the size of the new bounds. The bounds
// are also updated to the new bounds.
func (ps *Paths) Transform(nb Bounds) {
	ob := ps.Bounds
	for _, p := range ps.P {
		for i, v := range p.V {
			x, y := v[0], v[1]
			x -= ob.Min[0]
			x /= ob.Max[0] - ob.Min[0]
			x *= nb.Max[0] - nb.Min[0]
			x += nb.Min[0]

			y -= ob.Min[1]
			y /= ob.Max[1] - ob.Min[1]
			y *= nb.Max[1] - nb.Min[1]
			y += nb.Min[1]
			p.V[i] = [2]float64{x, y}
		}
	}
	ps.Bounds = nb
}

// move adds a new (initially empty) path starting at x,
// unless the last path already ends at x.
func (ps *Paths) move(x Vec2) {
	if len(ps.P) == 0 {
		ps.P = append(ps.P, Path{V: []Vec2{x}})
		return
	}
	p := &ps.P[len(ps.P)-1]
	if len(p.V) > 0 && p.V[len(p.V)-1] == x {
		return
	}
	ps.P = append(ps.P, Path{V: []Vec2{x}})
}

// line extends the last path with an edge that goes to x.
func (ps *Paths) line(x Vec2) {
	p := &ps.P[len(ps.P)-1]
	p.V = append(p.V, x)
}

// Bounds returns the bounding box of the path's vertices.
func (p Path) Bounds() Bounds {
	ps := Paths{P: []Path{p}}
	ps.TightenBounds()
	return ps.Bounds
}

// Translate returns a copy of p moved by dx.
func (p Path) Translate(dx Vec2) Path {
	np := Path{V: make([]Vec2, len(p.V)), Closed: p.Closed}
	for i, v := range p.V {
		np.V[i] = vec2AddVec2(v, dx)
	}
	return np
}

// Open returns p as an open polyline. A closed path gets its first
// vertex repeated at the end so that the closing segment is kept.
func (p Path) Open() Path {
	if !p.Closed || len(p.V) == 0 {
		return Path{V: p.V}
	}
	v := make([]Vec2, 0, len(p.V)+1)
	v = append(v, p.V...)
	v = append(v, p.V[0])
	return Path{V: v}
}

// Contains reports whether v lies inside the polygon formed by p,
// using the even-odd rule. The path is treated as closed.
func (p Path) Contains(v Vec2) bool {
	n := len(p.V)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.V[i], p.V[j]
		if (a[1] > v[1]) != (b[1] > v[1]) {
			x := (b[0]-a[0])*(v[1]-a[1])/(b[1]-a[1]) + a[0]
			if v[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}

func vec2AddVec2(a, b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func vec2SubVec2(a, b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}
