package scene

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/paulhankin/bubblesets/paths"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File is the YAML scene format.
type File struct {
	Nodes  []NodeSpec  `yaml:"nodes"`
	Edges  []EdgeSpec  `yaml:"edges"`
	Groups []GroupSpec `yaml:"groups"`
}

// Build creates a graph from the file's contents.
func (f *File) Build() (*Graph, error) {
	g := New()
	for _, n := range f.Nodes {
		if n.Shape == "" {
			n.Shape = "rectangle"
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for i, e := range f.Edges {
		if e.ID == "" {
			e.ID = "e" + strconv.Itoa(i)
		}
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	for _, gr := range f.Groups {
		if err := g.AddGroup(gr); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// LoadYAML reads a scene in the YAML format of File.
func LoadYAML(r io.Reader) (*Graph, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, zerr.Wrap(err, "failed to decode scene")
	}
	return f.Build()
}

// FromSVG reads a scene drawn as SVG. Elements with an id become
// nodes: rect as rectangles, circle and ellipse as ellipses. A path or
// line with data-source and data-target becomes an edge whose inner
// points are bends. data-label sets labels; data-group and data-avoid
// (comma separated) put elements into groups. Group transforms are
// applied to positions.
func FromSVG(r io.Reader) (*Graph, error) {
	root, err := paths.DecodeSVG(r)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decode svg scene")
	}
	l := &svgLoader{groups: map[string]*GroupSpec{}}
	if err := l.walk(root, func(v paths.Vec2) paths.Vec2 { return v }); err != nil {
		return nil, err
	}
	for _, name := range l.order {
		gr := l.groups[name]
		gr.InducedEdges = len(gr.Edges) == 0
		l.file.Groups = append(l.file.Groups, *gr)
	}
	return l.file.Build()
}

type svgLoader struct {
	file   File
	groups map[string]*GroupSpec
	order  []string
}

func (l *svgLoader) group(name string) *GroupSpec {
	gr, ok := l.groups[name]
	if !ok {
		gr = &GroupSpec{Name: name}
		l.groups[name] = gr
		l.order = append(l.order, name)
	}
	return gr
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func attrFloats(e *svgparser.Element, names ...string) ([]float64, error) {
	fs := make([]float64, len(names))
	for i, n := range names {
		a, ok := e.Attributes[n]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(a, "px"), 64)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "bad attribute"), "attribute", n)
		}
		fs[i] = f
	}
	return fs, nil
}

func (l *svgLoader) walk(e *svgparser.Element, xf func(paths.Vec2) paths.Vec2) error {
	for _, c := range e.Children {
		if err := l.element(c, xf); err != nil {
			return zerr.With(err, "element", c.Name)
		}
	}
	return nil
}

func (l *svgLoader) element(c *svgparser.Element, xf func(paths.Vec2) paths.Vec2) error {
	id := c.Attributes["id"]
	switch c.Name {
	case "g":
		gxf, err := paths.ParseTransform(c.Attributes["transform"])
		if err != nil {
			return err
		}
		return l.walk(c, func(v paths.Vec2) paths.Vec2 { return xf(gxf(v)) })
	case "rect", "circle", "ellipse":
		if id == "" {
			return nil
		}
		var b paths.Bounds
		shape := "ellipse"
		switch c.Name {
		case "rect":
			f, err := attrFloats(c, "x", "y", "width", "height")
			if err != nil {
				return err
			}
			b, shape = paths.Rect(f[0], f[1], f[2], f[3]), "rectangle"
		case "circle":
			f, err := attrFloats(c, "cx", "cy", "r")
			if err != nil {
				return err
			}
			b = paths.Rect(f[0]-f[2], f[1]-f[2], 2*f[2], 2*f[2])
		default:
			f, err := attrFloats(c, "cx", "cy", "rx", "ry")
			if err != nil {
				return err
			}
			b = paths.Rect(f[0]-f[2], f[1]-f[3], 2*f[2], 2*f[3])
		}
		if s := c.Attributes["data-shape"]; s != "" {
			shape = s
		}
		p, q := xf(b.Min), xf(b.Max)
		min := paths.Vec2{math.Min(p[0], q[0]), math.Min(p[1], q[1])}
		max := paths.Vec2{math.Max(p[0], q[0]), math.Max(p[1], q[1])}
		l.file.Nodes = append(l.file.Nodes, NodeSpec{
			ID:     id,
			X:      (min[0] + max[0]) / 2,
			Y:      (min[1] + max[1]) / 2,
			Width:  max[0] - min[0],
			Height: max[1] - min[1],
			Shape:  shape,
			Label:  c.Attributes["data-label"],
		})
		for _, name := range splitList(c.Attributes["data-group"]) {
			gr := l.group(name)
			gr.Members = append(gr.Members, id)
		}
		for _, name := range splitList(c.Attributes["data-avoid"]) {
			gr := l.group(name)
			gr.Avoid = append(gr.Avoid, id)
		}
	case "path", "line":
		src, dst := c.Attributes["data-source"], c.Attributes["data-target"]
		if src == "" || dst == "" {
			return nil
		}
		var pts []paths.Vec2
		if c.Name == "line" {
			f, err := attrFloats(c, "x1", "y1", "x2", "y2")
			if err != nil {
				return err
			}
			pts = []paths.Vec2{{f[0], f[1]}, {f[2], f[3]}}
		} else {
			ps, err := paths.ParsePathData(c.Attributes["d"])
			if err != nil {
				return err
			}
			for _, p := range ps {
				pts = append(pts, p.V...)
			}
		}
		var bends []paths.Vec2
		if len(pts) > 2 {
			for _, p := range pts[1 : len(pts)-1] {
				bends = append(bends, xf(p))
			}
		}
		l.file.Edges = append(l.file.Edges, EdgeSpec{
			ID:     id,
			Source: src,
			Target: dst,
			Bends:  bends,
			Label:  c.Attributes["data-label"],
		})
		if id == "" {
			l.file.Edges[len(l.file.Edges)-1].ID = "e" + strconv.Itoa(len(l.file.Edges)-1)
		}
		for _, name := range splitList(c.Attributes["data-group"]) {
			gr := l.group(name)
			gr.Edges = append(gr.Edges, l.file.Edges[len(l.file.Edges)-1].ID)
		}
	}
	return nil
}
