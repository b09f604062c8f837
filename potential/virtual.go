package potential

import (
	"math"
	"sort"

	"github.com/paulhankin/bubblesets/paths"
)

// VirtualEdges connects every member to its closest earlier member,
// visiting members in order of distance to their common centroid, so
// that the members form a single spanning structure. Connections are
// routed around the non-member shapes, keeping buffer clearance, and
// routing stops after maxIterations detours.
func VirtualEdges(members, nonMembers []paths.Shape, maxIterations int, buffer float64) []paths.Line {
	if len(members) < 2 {
		return nil
	}
	obstacles := make([]paths.Bounds, len(nonMembers))
	for i, s := range nonMembers {
		obstacles[i] = s.Bounds()
	}
	sorted := sortByCentroid(members)
	var lines []paths.Line
	for i := 1; i < len(sorted); i++ {
		c := sorted[i].Center()
		to, ok := closestNeighbor(c, sorted[:i], obstacles)
		if !ok {
			continue
		}
		route := routeLine(paths.Line{A: c, B: to}, obstacles, maxIterations, buffer)
		lines = append(lines, mergeLines(route, obstacles)...)
	}
	return lines
}

func sortByCentroid(shapes []paths.Shape) []paths.Shape {
	var cx, cy float64
	for _, s := range shapes {
		c := s.Center()
		cx += c[0]
		cy += c[1]
	}
	n := float64(len(shapes))
	centroid := paths.Vec2{cx / n, cy / n}
	dist := func(s paths.Shape) float64 {
		c := s.Center()
		return math.Hypot(c[0]-centroid[0], c[1]-centroid[1])
	}
	sorted := append([]paths.Shape(nil), shapes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dist(sorted[i]) < dist(sorted[j])
	})
	return sorted
}

// closestNeighbor picks the visited shape minimizing the squared
// distance weighted by the number of obstacles the direct line cuts.
func closestNeighbor(c paths.Vec2, visited []paths.Shape, obstacles []paths.Bounds) (paths.Vec2, bool) {
	best := math.Inf(1)
	var to paths.Vec2
	found := false
	for _, s := range visited {
		nc := s.Center()
		d2 := (nc[0]-c[0])*(nc[0]-c[0]) + (nc[1]-c[1])*(nc[1]-c[1])
		if d2 > best {
			continue
		}
		n := float64(countCrossed(paths.Line{A: c, B: nc}, obstacles) + 1)
		if score := d2 * n * n; score < best {
			best = score
			to = nc
			found = true
		}
	}
	return to, found
}

func countCrossed(l paths.Line, obstacles []paths.Bounds) int {
	n := 0
	for _, o := range obstacles {
		if l.Crosses(o) {
			n++
		}
	}
	return n
}

// firstCrossed returns the obstacle cut by l that is closest to l.A.
func firstCrossed(l paths.Line, obstacles []paths.Bounds) (paths.Bounds, bool) {
	best := math.Inf(1)
	var first paths.Bounds
	found := false
	for _, o := range obstacles {
		if !l.Crosses(o) {
			continue
		}
		if d := o.DistSquare(l.A); d < best {
			best = d
			first = o
			found = true
		}
	}
	return first, found
}

func insideAny(v paths.Vec2, obstacles []paths.Bounds) bool {
	for _, o := range obstacles {
		if o.Contains(v) {
			return true
		}
	}
	return false
}

// detour picks a corner of the grown obstacle to route l through. The
// clearance is doubled until some corner lies outside every obstacle.
func detour(l paths.Line, o paths.Bounds, obstacles []paths.Bounds, buffer float64) (paths.Vec2, bool) {
	pad := math.Max(buffer, 1)
	for k := 0; k < 4; k++ {
		g := o.Pad(pad)
		corners := []paths.Vec2{
			g.Min,
			{g.Max[0], g.Min[1]},
			g.Max,
			{g.Min[0], g.Max[1]},
		}
		best := math.Inf(1)
		var p paths.Vec2
		found := false
		for _, c := range corners {
			if insideAny(c, obstacles) {
				continue
			}
			cost := paths.Line{A: l.A, B: c}.Length() + paths.Line{A: c, B: l.B}.Length()
			if (paths.Line{A: l.A, B: c}).Crosses(o) {
				cost *= 2
			}
			if (paths.Line{A: c, B: l.B}).Crosses(o) {
				cost *= 2
			}
			if cost < best {
				best = cost
				p = c
				found = true
			}
		}
		if found {
			return p, true
		}
		pad *= 2
	}
	return paths.Vec2{}, false
}

// routeLine splits l at obstacle corners until no piece cuts an
// obstacle or the iteration budget runs out.
func routeLine(l paths.Line, obstacles []paths.Bounds, maxIterations int, buffer float64) []paths.Line {
	var route []paths.Line
	stack := []paths.Line{l}
	budget := maxIterations
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if budget <= 0 {
			route = append(route, cur)
			continue
		}
		o, ok := firstCrossed(cur, obstacles)
		if !ok {
			route = append(route, cur)
			continue
		}
		budget--
		p, ok := detour(cur, o, obstacles, buffer)
		if !ok || p == cur.A || p == cur.B {
			route = append(route, cur)
			continue
		}
		stack = append(stack, paths.Line{A: p, B: cur.B}, paths.Line{A: cur.A, B: p})
	}
	return route
}

// mergeLines joins consecutive pieces of a route whenever the joined
// segment cuts no obstacle.
func mergeLines(route []paths.Line, obstacles []paths.Bounds) []paths.Line {
	if len(route) < 2 {
		return route
	}
	merged := []paths.Line{route[0]}
	for _, l := range route[1:] {
		last := merged[len(merged)-1]
		joined := paths.Line{A: last.A, B: l.B}
		if countCrossed(joined, obstacles) == 0 {
			merged[len(merged)-1] = joined
			continue
		}
		merged = append(merged, l)
	}
	return merged
}
