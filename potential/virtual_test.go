package potential

import (
	"testing"

	"github.com/paulhankin/bubblesets/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connected reports whether the lines join all the given points.
func connected(lines []paths.Line, pts []paths.Vec2) bool {
	parent := map[paths.Vec2]paths.Vec2{}
	var find func(v paths.Vec2) paths.Vec2
	find = func(v paths.Vec2) paths.Vec2 {
		p, ok := parent[v]
		if !ok || p == v {
			parent[v] = v
			return v
		}
		r := find(p)
		parent[v] = r
		return r
	}
	for _, l := range lines {
		parent[find(l.A)] = find(l.B)
	}
	root := find(pts[0])
	for _, p := range pts[1:] {
		if find(p) != root {
			return false
		}
	}
	return true
}

func TestVirtualEdgesSpanning(t *testing.T) {
	centers := []paths.Vec2{{0, 0}, {100, 0}, {50, 80}}
	var members []paths.Shape
	for _, c := range centers {
		members = append(members, paths.Circle{C: c, R: 10})
	}
	lines := VirtualEdges(members, nil, 100, 10)
	require.Len(t, lines, 2)
	assert.True(t, connected(lines, centers))
}

func TestVirtualEdgesTooFew(t *testing.T) {
	assert.Empty(t, VirtualEdges(nil, nil, 100, 10))
	assert.Empty(t, VirtualEdges([]paths.Shape{paths.Circle{R: 5}}, nil, 100, 10))
}

func TestVirtualEdgesAvoidObstacle(t *testing.T) {
	a := paths.Circle{C: paths.Vec2{0, 0}, R: 10}
	b := paths.Circle{C: paths.Vec2{200, 0}, R: 10}
	obstacle := paths.Rect(90, -20, 20, 40)
	lines := VirtualEdges([]paths.Shape{a, b}, []paths.Shape{obstacle}, 100, 10)
	require.GreaterOrEqual(t, len(lines), 2)
	for _, l := range lines {
		assert.False(t, l.Crosses(obstacle), "line %v cuts the obstacle", l)
	}
	assert.True(t, connected(lines, []paths.Vec2{a.C, b.C}))
}

func TestVirtualEdgesRoutingBudget(t *testing.T) {
	a := paths.Circle{C: paths.Vec2{0, 0}, R: 10}
	b := paths.Circle{C: paths.Vec2{200, 0}, R: 10}
	obstacle := paths.Rect(90, -20, 20, 40)
	lines := VirtualEdges([]paths.Shape{a, b}, []paths.Shape{obstacle}, 0, 10)
	require.Len(t, lines, 1, "without routing iterations the direct line is kept")
}
