// Package scene is an in-memory node-link diagram that outlines can be
// attached to. Nodes are positioned by their center; edges are routed
// from source to target through optional bend points.
package scene

import (
	"math"
	"sync"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/paths"
	"go.trai.ch/zerr"
)

// NodeSpec describes a node to add.
type NodeSpec struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Shape  string  `yaml:"shape"`
	Label  string  `yaml:"label"`
	// Overlay pads the node when overlays are included in its bounds.
	Overlay float64 `yaml:"overlay"`
}

// EdgeSpec describes an edge to add.
type EdgeSpec struct {
	ID          string       `yaml:"id"`
	Source      string       `yaml:"source"`
	Target      string       `yaml:"target"`
	Bends       []paths.Vec2 `yaml:"bends"`
	Label       string       `yaml:"label"`
	SourceLabel string       `yaml:"source_label"`
	TargetLabel string       `yaml:"target_label"`
}

type listener struct {
	kinds bubbleset.EventKind
	fn    func(bubbleset.Event)
}

// Graph is safe for concurrent use. Listeners are called after the
// graph's lock is released, on the mutating goroutine.
type Graph struct {
	mu        sync.RWMutex
	nodes     map[bubbleset.ElementID]*NodeSpec
	nodeOrder []bubbleset.ElementID
	edges     map[bubbleset.ElementID]*EdgeSpec
	edgeOrder []bubbleset.ElementID
	groups    []Group
	listeners map[bubbleset.ElementID]map[int]listener
	next      int
}

var _ bubbleset.Graph = (*Graph)(nil)

func New() *Graph {
	return &Graph{
		nodes:     map[bubbleset.ElementID]*NodeSpec{},
		edges:     map[bubbleset.ElementID]*EdgeSpec{},
		listeners: map[bubbleset.ElementID]map[int]listener{},
	}
}

func (g *Graph) exists(id bubbleset.ElementID) bool {
	_, n := g.nodes[id]
	_, e := g.edges[id]
	return n || e
}

func (g *Graph) AddNode(s NodeSpec) error {
	id := bubbleset.ElementID(s.ID)
	g.mu.Lock()
	if g.exists(id) {
		g.mu.Unlock()
		return zerr.With(ErrDuplicateElement, "id", s.ID)
	}
	n := s
	g.nodes[id] = &n
	g.nodeOrder = append(g.nodeOrder, id)
	g.mu.Unlock()
	g.emit(bubbleset.Event{Kind: bubbleset.EventAdd, ID: id})
	return nil
}

func (g *Graph) AddEdge(s EdgeSpec) error {
	id := bubbleset.ElementID(s.ID)
	g.mu.Lock()
	if g.exists(id) {
		g.mu.Unlock()
		return zerr.With(ErrDuplicateElement, "id", s.ID)
	}
	for _, end := range []string{s.Source, s.Target} {
		if _, ok := g.nodes[bubbleset.ElementID(end)]; !ok {
			g.mu.Unlock()
			return zerr.With(zerr.With(ErrUnknownNode, "id", end), "edge", s.ID)
		}
	}
	e := s
	e.Bends = append([]paths.Vec2(nil), s.Bends...)
	g.edges[id] = &e
	g.edgeOrder = append(g.edgeOrder, id)
	g.mu.Unlock()
	g.emit(bubbleset.Event{Kind: bubbleset.EventAdd, ID: id})
	return nil
}

func remove(ids []bubbleset.ElementID, id bubbleset.ElementID) []bubbleset.ElementID {
	for i, x := range ids {
		if x == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// incident returns the edges ending at node id. The caller holds the lock.
func (g *Graph) incident(id bubbleset.ElementID) []bubbleset.ElementID {
	var es []bubbleset.ElementID
	for _, eid := range g.edgeOrder {
		e := g.edges[eid]
		if bubbleset.ElementID(e.Source) == id || bubbleset.ElementID(e.Target) == id {
			es = append(es, eid)
		}
	}
	return es
}

// RemoveNode removes a node and the edges ending at it.
func (g *Graph) RemoveNode(id bubbleset.ElementID) error {
	g.mu.Lock()
	if _, ok := g.nodes[id]; !ok {
		g.mu.Unlock()
		return zerr.With(ErrUnknownNode, "id", string(id))
	}
	var events []bubbleset.Event
	for _, eid := range g.incident(id) {
		delete(g.edges, eid)
		g.edgeOrder = remove(g.edgeOrder, eid)
		events = append(events, bubbleset.Event{Kind: bubbleset.EventRemove, ID: eid})
	}
	delete(g.nodes, id)
	g.nodeOrder = remove(g.nodeOrder, id)
	g.mu.Unlock()
	g.emit(append(events, bubbleset.Event{Kind: bubbleset.EventRemove, ID: id})...)
	return nil
}

func (g *Graph) RemoveEdge(id bubbleset.ElementID) error {
	g.mu.Lock()
	if _, ok := g.edges[id]; !ok {
		g.mu.Unlock()
		return zerr.With(ErrUnknownEdge, "id", string(id))
	}
	delete(g.edges, id)
	g.edgeOrder = remove(g.edgeOrder, id)
	g.mu.Unlock()
	g.emit(bubbleset.Event{Kind: bubbleset.EventRemove, ID: id})
	return nil
}

// updateNode applies fn to node id and notifies the node and its edges.
func (g *Graph) updateNode(id bubbleset.ElementID, fn func(n *NodeSpec)) error {
	g.mu.Lock()
	n, ok := g.nodes[id]
	if !ok {
		g.mu.Unlock()
		return zerr.With(ErrUnknownNode, "id", string(id))
	}
	fn(n)
	events := []bubbleset.Event{{Kind: bubbleset.EventPosition, ID: id}}
	for _, eid := range g.incident(id) {
		events = append(events, bubbleset.Event{Kind: bubbleset.EventMove, ID: eid})
	}
	g.mu.Unlock()
	g.emit(events...)
	return nil
}

// MoveNode moves node id by dx, dy.
func (g *Graph) MoveNode(id bubbleset.ElementID, dx, dy float64) error {
	return g.updateNode(id, func(n *NodeSpec) {
		n.X += dx
		n.Y += dy
	})
}

// SetPosition places the center of node id at x, y.
func (g *Graph) SetPosition(id bubbleset.ElementID, x, y float64) error {
	return g.updateNode(id, func(n *NodeSpec) {
		n.X, n.Y = x, y
	})
}

func (g *Graph) ResizeNode(id bubbleset.ElementID, w, h float64) error {
	return g.updateNode(id, func(n *NodeSpec) {
		n.Width, n.Height = w, h
	})
}

func (g *Graph) SetShape(id bubbleset.ElementID, shape string) error {
	return g.updateNode(id, func(n *NodeSpec) {
		n.Shape = shape
	})
}

// SetBends reroutes edge id through the given points.
func (g *Graph) SetBends(id bubbleset.ElementID, bends []paths.Vec2) error {
	g.mu.Lock()
	e, ok := g.edges[id]
	if !ok {
		g.mu.Unlock()
		return zerr.With(ErrUnknownEdge, "id", string(id))
	}
	e.Bends = append([]paths.Vec2(nil), bends...)
	g.mu.Unlock()
	g.emit(bubbleset.Event{Kind: bubbleset.EventMove, ID: id})
	return nil
}

func (g *Graph) Subscribe(id bubbleset.ElementID, kinds bubbleset.EventKind, fn func(bubbleset.Event)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	ls := g.listeners[id]
	if ls == nil {
		ls = map[int]listener{}
		g.listeners[id] = ls
	}
	k := g.next
	g.next++
	ls[k] = listener{kinds, fn}
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.listeners[id], k)
		if len(g.listeners[id]) == 0 {
			delete(g.listeners, id)
		}
	}
}

// Listeners returns the number of registered listeners.
func (g *Graph) Listeners() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, ls := range g.listeners {
		n += len(ls)
	}
	return n
}

func (g *Graph) emit(events ...bubbleset.Event) {
	for _, ev := range events {
		g.mu.RLock()
		var fns []func(bubbleset.Event)
		for _, l := range g.listeners[ev.ID] {
			if l.kinds&ev.Kind != 0 {
				fns = append(fns, l.fn)
			}
		}
		g.mu.RUnlock()
		for _, fn := range fns {
			fn(ev)
		}
	}
}

func (g *Graph) Node(id bubbleset.ElementID) (bubbleset.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return Node{def: *n}, true
}

func (g *Graph) Edge(id bubbleset.ElementID) (bubbleset.Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, false
	}
	return g.edgeView(e), true
}

// edgeView snapshots e with its end nodes. The caller holds the lock.
func (g *Graph) edgeView(e *EdgeSpec) Edge {
	v := Edge{def: *e}
	v.def.Bends = append([]paths.Vec2(nil), e.Bends...)
	v.source = *g.nodes[bubbleset.ElementID(e.Source)]
	v.target = *g.nodes[bubbleset.ElementID(e.Target)]
	return v
}

// NodeIDs returns the node ids in insertion order.
func (g *Graph) NodeIDs() []bubbleset.ElementID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]bubbleset.ElementID(nil), g.nodeOrder...)
}

// EdgeIDs returns the edge ids in insertion order.
func (g *Graph) EdgeIDs() []bubbleset.ElementID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]bubbleset.ElementID(nil), g.edgeOrder...)
}

// InducedEdges returns the edges with both ends in nodes.
func (g *Graph) InducedEdges(nodes []bubbleset.ElementID) []bubbleset.ElementID {
	in := map[bubbleset.ElementID]bool{}
	for _, id := range nodes {
		in[id] = true
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	var es []bubbleset.ElementID
	for _, eid := range g.edgeOrder {
		e := g.edges[eid]
		if in[bubbleset.ElementID(e.Source)] && in[bubbleset.ElementID(e.Target)] {
			es = append(es, eid)
		}
	}
	return es
}

// Bounds returns the extent of every node and edge, labels included.
func (g *Graph) Bounds() paths.Bounds {
	all := bubbleset.BoundsOptions{IncludeLabels: true, IncludeOverlays: true}
	g.mu.RLock()
	defer g.mu.RUnlock()
	first := true
	var b paths.Bounds
	add := func(o paths.Bounds) {
		if first {
			b, first = o, false
			return
		}
		b.Min = paths.Vec2{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1])}
		b.Max = paths.Vec2{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1])}
	}
	for _, id := range g.nodeOrder {
		add(Node{def: *g.nodes[id]}.BoundingBox(all))
	}
	for _, id := range g.edgeOrder {
		add(g.edgeView(g.edges[id]).BoundingBox(all))
	}
	return b
}

// Backdrop returns the edges and then the nodes as paths, for
// surfaces that draw the diagram under the outlines.
func (g *Graph) Backdrop() []paths.Layer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	edges := paths.Layer{Style: paths.Style{Stroke: "gray", StrokeWidth: 1}}
	for _, id := range g.edgeOrder {
		edges.P = append(edges.P, g.edgeView(g.edges[id]).Route())
	}
	nodes := paths.Layer{Style: paths.Style{Fill: "white", Stroke: "black", StrokeWidth: 1}}
	for _, id := range g.nodeOrder {
		nodes.P = append(nodes.P, Node{def: *g.nodes[id]}.Outline())
	}
	return []paths.Layer{edges, nodes}
}
