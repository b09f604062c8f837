package bubbleset

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

// nodeRecord is the cached geometry of a member or avoid node.
type nodeRecord struct {
	circle bool
	bounds paths.Bounds
	shape  paths.Shape
	area   *potential.Area
}

// edgeRecord is the cached geometry of an edge: one area per segment
// of its routed path.
type edgeRecord struct {
	lines []paths.Line
	keys  []uint64
	areas []*potential.Area
}

var circleShapes = map[string]bool{}

func init() {
	for _, s := range []string{"ellipse", "diamond", "pentagon", "hexagon", "heptagon", "octagon", "star"} {
		circleShapes[s] = true
		circleShapes["round-"+s] = true
	}
}

// IsCircleShape reports whether a shape category is approximated by a
// circle. Unknown categories are treated as rectangles.
func IsCircleShape(shape string) bool { return circleShapes[shape] }

func createShape(circle bool, bb paths.Bounds) paths.Shape {
	if circle {
		return paths.Circle{C: bb.Center(), R: math.Max(bb.Width(), bb.Height()) / 2}
	}
	return bb
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

func hashRounded(vs ...float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(round2(v)))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// nodeKey fingerprints the geometry of a node independent of its
// position.
func nodeKey(circle bool, bb paths.Bounds) uint64 {
	c := 0.0
	if circle {
		c = 1
	}
	return hashRounded(bb.Width(), bb.Height(), c)
}

func lineKey(l paths.Line) uint64 {
	return hashRounded(l.A[0], l.A[1], l.B[0], l.B[1])
}

func segments(pts []paths.Vec2) []paths.Line {
	if len(pts) < 2 {
		return nil
	}
	lines := make([]paths.Line, len(pts)-1)
	for i := range lines {
		lines[i] = paths.Line{A: pts[i], B: pts[i+1]}
	}
	return lines
}

func equalKeys(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// run holds the state of one recomputation: the grid, whether cached
// areas were invalidated, and the per-run area caches.
type run struct {
	engine Engine
	opts   Options
	grid   *potential.Area
	dirty  bool

	nodeCache map[uint64]*potential.Area
	edgeCache map[uint64]*potential.Area

	recreated  int
	translated int
	rebuilt    int
}

// resolveNode returns the record of node n, reusing the previous
// record rec when possible. A node whose size and category are
// unchanged on a valid grid only has its area translated.
func (r *run) resolveNode(rec *nodeRecord, n Node, bo BoundsOptions) *nodeRecord {
	bb := n.BoundingBox(bo)
	circle := IsCircleShape(n.Shape())
	r1 := r.opts.NodeR1
	if rec == nil || r.dirty || rec.area == nil || rec.circle != circle ||
		rec.bounds.Width() != bb.Width() || rec.bounds.Height() != bb.Height() {
		r.recreated++
		rec = &nodeRecord{circle: circle, bounds: bb, shape: createShape(circle, bb)}
		key := nodeKey(circle, bb)
		if a, ok := r.nodeCache[key]; ok {
			rec.area = r.engine.Copy(r.grid, a, potential.Origin(rec.shape.Bounds(), r1))
			return rec
		}
		if circle {
			rec.area = r.engine.CircleInfluence(rec.shape.(paths.Circle), r.grid, r1)
		} else {
			rec.area = r.engine.RectangleInfluence(bb, r.grid, r1)
		}
		r.nodeCache[key] = rec.area
		return rec
	}
	if rec.bounds.Min != bb.Min {
		r.translated++
		rec.bounds = bb
		rec.shape = createShape(circle, bb)
		rec.area = r.engine.Copy(r.grid, rec.area, potential.Origin(rec.shape.Bounds(), r1))
	}
	return rec
}

// resolveEdge returns the record of edge e. The previous areas are kept
// when the routed segments are unchanged and the grid is valid.
func (r *run) resolveEdge(rec *edgeRecord, e Edge) *edgeRecord {
	lines := segments(e.RoutedPoints())
	keys := make([]uint64, len(lines))
	for i, l := range lines {
		keys[i] = lineKey(l)
	}
	if rec != nil && !r.dirty && equalKeys(rec.keys, keys) {
		return rec
	}
	r.rebuilt++
	rec = &edgeRecord{lines: lines, keys: keys, areas: make([]*potential.Area, len(lines))}
	for i, l := range lines {
		rec.areas[i] = r.lineArea(keys[i], l)
	}
	return rec
}

func (r *run) lineArea(key uint64, l paths.Line) *potential.Area {
	if a, ok := r.edgeCache[key]; ok {
		return a
	}
	a := r.engine.LineInfluence(l, r.grid, r.opts.EdgeR1)
	r.edgeCache[key] = a
	return a
}
