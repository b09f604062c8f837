package scene

import (
	"math"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/paths"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// labelGap separates a label from the element it belongs to.
const labelGap = 2

var labelFace = basicfont.Face7x13

// labelBox returns the box of a label whose top edge is centered on at.
func labelBox(s string, at paths.Vec2) (paths.Bounds, bool) {
	if s == "" {
		return paths.Bounds{}, false
	}
	w := float64(font.MeasureString(labelFace, s).Ceil())
	h := float64(labelFace.Metrics().Height.Ceil())
	return paths.Rect(at[0]-w/2, at[1], w, h), true
}

func union(a, b paths.Bounds) paths.Bounds {
	return paths.Bounds{
		Min: paths.Vec2{math.Min(a.Min[0], b.Min[0]), math.Min(a.Min[1], b.Min[1])},
		Max: paths.Vec2{math.Max(a.Max[0], b.Max[0]), math.Max(a.Max[1], b.Max[1])},
	}
}

// Node is a snapshot of a node.
type Node struct {
	def NodeSpec
}

func (n Node) ID() bubbleset.ElementID { return bubbleset.ElementID(n.def.ID) }

func (n Node) Shape() string { return n.def.Shape }

func (n Node) Label() string { return n.def.Label }

func (n Node) Center() paths.Vec2 { return paths.Vec2{n.def.X, n.def.Y} }

// Body returns the box of the node itself.
func (n Node) Body() paths.Bounds {
	return paths.Rect(n.def.X-n.def.Width/2, n.def.Y-n.def.Height/2, n.def.Width, n.def.Height)
}

// BoundingBox returns the body, grown by the overlay padding and
// extended by the label (drawn below the node) when asked to.
func (n Node) BoundingBox(o bubbleset.BoundsOptions) paths.Bounds {
	b := n.Body()
	if o.IncludeOverlays && n.def.Overlay > 0 {
		b = b.Pad(n.def.Overlay)
	}
	if o.IncludeLabels || o.IncludeMainLabels {
		body := n.Body()
		if lb, ok := labelBox(n.def.Label, paths.Vec2{n.def.X, body.Max[1] + labelGap}); ok {
			b = union(b, lb)
		}
	}
	return b
}

// Outline returns the node's shape as a closed polygon.
func (n Node) Outline() paths.Path {
	b := n.Body()
	if !bubbleset.IsCircleShape(n.def.Shape) {
		return paths.Path{V: []paths.Vec2{b.Min, {b.Max[0], b.Min[1]}, b.Max, {b.Min[0], b.Max[1]}}, Closed: true}
	}
	const k = 24
	v := make([]paths.Vec2, k)
	for i := range v {
		a := 2 * math.Pi * float64(i) / k
		v[i] = paths.Vec2{n.def.X + n.def.Width/2*math.Cos(a), n.def.Y + n.def.Height/2*math.Sin(a)}
	}
	return paths.Path{V: v, Closed: true}
}

// boundary returns where the ray from the node's center toward p
// leaves the node. Points inside the node give the center.
func (n Node) boundary(p paths.Vec2) paths.Vec2 {
	c := n.Center()
	dx, dy := p[0]-c[0], p[1]-c[1]
	hw, hh := n.def.Width/2, n.def.Height/2
	if (dx == 0 && dy == 0) || hw <= 0 || hh <= 0 {
		return c
	}
	var t float64
	if bubbleset.IsCircleShape(n.def.Shape) {
		t = 1 / math.Hypot(dx/hw, dy/hh)
	} else {
		t = math.Inf(1)
		if dx != 0 {
			t = hw / math.Abs(dx)
		}
		if dy != 0 {
			t = math.Min(t, hh/math.Abs(dy))
		}
	}
	if t >= 1 {
		return c
	}
	return paths.Vec2{c[0] + t*dx, c[1] + t*dy}
}

// Edge is a snapshot of an edge and its end nodes.
type Edge struct {
	def            EdgeSpec
	source, target NodeSpec
}

func (e Edge) ID() bubbleset.ElementID { return bubbleset.ElementID(e.def.ID) }

func (e Edge) Source() bubbleset.ElementID { return bubbleset.ElementID(e.def.Source) }

func (e Edge) Target() bubbleset.ElementID { return bubbleset.ElementID(e.def.Target) }

// RoutedPoints returns the source endpoint, the bends and the target
// endpoint. Endpoints lie on the boundary of their node.
func (e Edge) RoutedPoints() []paths.Vec2 {
	src, dst := Node{e.source}, Node{e.target}
	first, last := dst.Center(), src.Center()
	if len(e.def.Bends) > 0 {
		first, last = e.def.Bends[0], e.def.Bends[len(e.def.Bends)-1]
	}
	pts := make([]paths.Vec2, 0, len(e.def.Bends)+2)
	pts = append(pts, src.boundary(first))
	pts = append(pts, e.def.Bends...)
	return append(pts, dst.boundary(last))
}

func (e Edge) BoundingBox(o bubbleset.BoundsOptions) paths.Bounds {
	pts := e.RoutedPoints()
	b := paths.Path{V: pts}.Bounds()
	if o.IncludeLabels || o.IncludeMainLabels {
		mid := pts[len(pts)/2]
		if len(pts)%2 == 0 {
			a, c := pts[len(pts)/2-1], pts[len(pts)/2]
			mid = paths.Vec2{(a[0] + c[0]) / 2, (a[1] + c[1]) / 2}
		}
		if lb, ok := labelBox(e.def.Label, mid); ok {
			b = union(b, lb)
		}
	}
	if o.IncludeLabels || o.IncludeSourceLabels {
		if lb, ok := labelBox(e.def.SourceLabel, pts[0]); ok {
			b = union(b, lb)
		}
	}
	if o.IncludeLabels || o.IncludeTargetLabels {
		if lb, ok := labelBox(e.def.TargetLabel, pts[len(pts)-1]); ok {
			b = union(b, lb)
		}
	}
	return b
}

// Route returns the edge as an open path.
func (e Edge) Route() paths.Path {
	return paths.Path{V: e.RoutedPoints()}
}
