package paths

import "math"

// A Shape is a closed region that can pull on an outline.
type Shape interface {
	Bounds() Bounds
	Center() Vec2
	// DistSquare returns the squared distance from v to the shape,
	// or zero if v lies inside it.
	DistSquare(v Vec2) float64
	Contains(v Vec2) bool
}

// Circle is a disc with center C and radius R.
type Circle struct {
	C Vec2
	R float64
}

// Line is the segment between A and B.
type Line struct {
	A, B Vec2
}

func (c Circle) Bounds() Bounds {
	return Bounds{
		Min: Vec2{c.C[0] - c.R, c.C[1] - c.R},
		Max: Vec2{c.C[0] + c.R, c.C[1] + c.R},
	}
}

func (c Circle) Center() Vec2 { return c.C }

func (c Circle) DistSquare(v Vec2) float64 {
	d := vec2dist(c.C, v)
	if d <= c.R {
		return 0
	}
	return (d - c.R) * (d - c.R)
}

func (c Circle) Contains(v Vec2) bool {
	return vec2dist(c.C, v) <= c.R
}

// Bounds makes Bounds a rectangular Shape.
func (b Bounds) Bounds() Bounds { return b }

func (b Bounds) Center() Vec2 {
	return Vec2{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2}
}

func (b Bounds) DistSquare(v Vec2) float64 {
	dx := math.Max(0, math.Max(b.Min[0]-v[0], v[0]-b.Max[0]))
	dy := math.Max(0, math.Max(b.Min[1]-v[1], v[1]-b.Max[1]))
	return dx*dx + dy*dy
}

func (b Bounds) Contains(v Vec2) bool {
	return v[0] >= b.Min[0] && v[0] <= b.Max[0] && v[1] >= b.Min[1] && v[1] <= b.Max[1]
}

// Length returns the length of the segment.
func (l Line) Length() float64 { return vec2dist(l.A, l.B) }

func (l Line) Bounds() Bounds {
	return Bounds{
		Min: Vec2{math.Min(l.A[0], l.B[0]), math.Min(l.A[1], l.B[1])},
		Max: Vec2{math.Max(l.A[0], l.B[0]), math.Max(l.A[1], l.B[1])},
	}
}

// DistSquare returns the squared distance from v to the segment.
func (l Line) DistSquare(v Vec2) float64 {
	d := vec2SegmentDist(v, l.A, l.B)
	return d * d
}

// Crosses reports whether any part of the segment lies inside b.
func (l Line) Crosses(b Bounds) bool {
	_, _, ok := clipLine(l.A, l.B, b)
	return ok
}

// Intersect returns the point where l and o cross, if they do.
func (l Line) Intersect(o Line) (Vec2, bool) {
	r := vec2SubVec2(l.B, l.A)
	s := vec2SubVec2(o.B, o.A)
	den := r[0]*s[1] - r[1]*s[0]
	if den == 0 {
		return Vec2{}, false
	}
	q := vec2SubVec2(o.A, l.A)
	t := (q[0]*s[1] - q[1]*s[0]) / den
	u := (q[0]*r[1] - q[1]*r[0]) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return Vec2{l.A[0] + t*r[0], l.A[1] + t*r[1]}, true
}

func vec2dist(v0, v1 Vec2) float64 {
	dx := v0[0] - v1[0]
	dy := v0[1] - v1[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// vec2SegmentDist returns the distance from v to the segment s-e.
func vec2SegmentDist(v, s, e Vec2) float64 {
	d := vec2SubVec2(e, s)
	l2 := d[0]*d[0] + d[1]*d[1]
	if l2 == 0 {
		return vec2dist(v, s)
	}
	t := ((v[0]-s[0])*d[0] + (v[1]-s[1])*d[1]) / l2
	t = math.Max(0, math.Min(1, t))
	return vec2dist(v, Vec2{s[0] + t*d[0], s[1] + t*d[1]})
}
