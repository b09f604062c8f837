package scene

import (
	"strings"
	"testing"
	"time"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScene = `
nodes:
  - {id: a, x: 0, y: 0, width: 20, height: 10, label: A}
  - {id: b, x: 100, y: 0, width: 20, height: 20, shape: ellipse}
  - {id: c, x: 50, y: 80, width: 10, height: 10}
edges:
  - {id: ab, source: a, target: b, bends: [[50, 40]]}
  - {source: b, target: c}
groups:
  - name: left
    members: [a, b]
    avoid: [c]
    induced_edges: true
    options:
      virtual_edges: true
      node_r1: 40
      throttle: 50ms
      fill: red
`

func TestLoadYAML(t *testing.T) {
	g, err := LoadYAML(strings.NewReader(yamlScene))
	require.NoError(t, err)
	assert.Equal(t, []bubbleset.ElementID{"a", "b", "c"}, g.NodeIDs())
	assert.Equal(t, []bubbleset.ElementID{"ab", "e1"}, g.EdgeIDs())

	a, _ := g.Node("a")
	assert.Equal(t, "rectangle", a.Shape())
	assert.Equal(t, "A", a.(Node).Label())
	e, _ := g.Edge("ab")
	assert.Equal(t, paths.Vec2{50, 40}, e.RoutedPoints()[1])

	gr, err := g.Group("left")
	require.NoError(t, err)
	assert.Equal(t, []bubbleset.ElementID{"a", "b"}, gr.Members)
	assert.Equal(t, []bubbleset.ElementID{"ab"}, gr.Edges)
	assert.Equal(t, []bubbleset.ElementID{"c"}, gr.Avoid)
	assert.Equal(t, bubbleset.Bool(true), gr.Options.VirtualEdges)
	assert.Equal(t, 40.0, gr.Options.NodeR1)
	assert.Equal(t, 50*time.Millisecond, gr.Options.Throttle)
	assert.Equal(t, "red", gr.Options.Fill)
}

func TestLoadYAMLErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want error
	}{
		{"unknown endpoint", "nodes: [{id: a}]\nedges: [{source: a, target: b}]\n", ErrUnknownNode},
		{"duplicate", "nodes: [{id: a}, {id: a}]\n", ErrDuplicateElement},
		{"unknown member", "groups: [{name: g, members: [x]}]\n", ErrUnknownNode},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tc.src))
			assert.ErrorIs(t, err, tc.want)
		})
	}
	_, err := LoadYAML(strings.NewReader("nodes: [{id: a, colour: red}]\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

const svgScene = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">
<g transform="translate(10,20)">
<rect id="a" x="0" y="0" width="20" height="10" data-group="g1" data-label="A"/>
<circle id="b" cx="100" cy="5" r="10" data-group="g1, g2"/>
</g>
<ellipse id="c" cx="50" cy="80" rx="10" ry="5" data-avoid="g1" data-group="g2"/>
<rect x="0" y="0" width="200" height="100"/>
<path id="ab" d="M 30 25 L 60 60 L 110 25" data-source="a" data-target="b"/>
<line x1="110" y1="25" x2="50" y2="80" data-source="b" data-target="c" data-group="g2"/>
</svg>`

func TestFromSVG(t *testing.T) {
	g, err := FromSVG(strings.NewReader(svgScene))
	require.NoError(t, err)
	assert.Equal(t, []bubbleset.ElementID{"a", "b", "c"}, g.NodeIDs(), "elements without id are not nodes")
	assert.Equal(t, []bubbleset.ElementID{"ab", "e1"}, g.EdgeIDs())

	a, _ := g.Node("a")
	assert.Equal(t, paths.Vec2{20, 25}, a.(Node).Center())
	assert.Equal(t, paths.Rect(10, 20, 20, 10), a.BoundingBox(bubbleset.BoundsOptions{}))
	assert.Equal(t, "rectangle", a.Shape())
	assert.Equal(t, "A", a.(Node).Label())
	b, _ := g.Node("b")
	assert.Equal(t, paths.Vec2{110, 25}, b.(Node).Center())
	assert.Equal(t, "ellipse", b.Shape())
	c, _ := g.Node("c")
	assert.Equal(t, paths.Rect(40, 75, 20, 10), c.BoundingBox(bubbleset.BoundsOptions{}))

	e, _ := g.Edge("ab")
	pts := e.RoutedPoints()
	require.Len(t, pts, 3)
	assert.Equal(t, paths.Vec2{60, 60}, pts[1])
	e1, _ := g.Edge("e1")
	assert.Len(t, e1.RoutedPoints(), 2)

	g1, err := g.Group("g1")
	require.NoError(t, err)
	assert.Equal(t, []bubbleset.ElementID{"a", "b"}, g1.Members)
	assert.Equal(t, []bubbleset.ElementID{"c"}, g1.Avoid)
	assert.Equal(t, []bubbleset.ElementID{"ab"}, g1.Edges, "edges joining members are added")
	g2, err := g.Group("g2")
	require.NoError(t, err)
	assert.Equal(t, []bubbleset.ElementID{"b", "c"}, g2.Members)
	assert.Equal(t, []bubbleset.ElementID{"e1"}, g2.Edges)
}

func TestFromSVGErrors(t *testing.T) {
	_, err := FromSVG(strings.NewReader(`<svg><rect id="a" width="x"/></svg>`))
	assert.Error(t, err)
	_, err = FromSVG(strings.NewReader(`<svg><g transform="rotate(4)"><rect id="a"/></g></svg>`))
	assert.Error(t, err)
	_, err = FromSVG(strings.NewReader(`<svg><line data-source="a" data-target="b"/></svg>`))
	assert.ErrorIs(t, err, ErrUnknownNode)
}
