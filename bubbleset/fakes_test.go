package bubbleset

import (
	"sync"
	"time"

	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

type fakeNode struct {
	id     ElementID
	bounds paths.Bounds
	shape  string
}

func (n *fakeNode) ID() ElementID                          { return n.id }
func (n *fakeNode) BoundingBox(BoundsOptions) paths.Bounds { return n.bounds }
func (n *fakeNode) Shape() string                          { return n.shape }

type fakeEdge struct {
	id  ElementID
	pts []paths.Vec2
}

func (e *fakeEdge) ID() ElementID { return e.id }

func (e *fakeEdge) BoundingBox(BoundsOptions) paths.Bounds {
	return paths.Path{V: e.pts}.Bounds()
}

func (e *fakeEdge) RoutedPoints() []paths.Vec2 { return e.pts }

type fakeSub struct {
	kinds EventKind
	fn    func(Event)
}

type fakeGraph struct {
	mu    sync.Mutex
	nodes map[ElementID]*fakeNode
	edges map[ElementID]*fakeEdge
	subs  map[ElementID]map[int]fakeSub
	next  int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		nodes: map[ElementID]*fakeNode{},
		edges: map[ElementID]*fakeEdge{},
		subs:  map[ElementID]map[int]fakeSub{},
	}
}

func (g *fakeGraph) Node(id ElementID) (Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

func (g *fakeGraph) Edge(id ElementID) (Edge, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, false
	}
	return e, true
}

func (g *fakeGraph) Subscribe(id ElementID, kinds EventKind, fn func(Event)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.subs[id] == nil {
		g.subs[id] = map[int]fakeSub{}
	}
	k := g.next
	g.next++
	g.subs[id][k] = fakeSub{kinds, fn}
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs[id], k)
	}
}

func (g *fakeGraph) listeners() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, s := range g.subs {
		n += len(s)
	}
	return n
}

func (g *fakeGraph) emit(id ElementID, kind EventKind) {
	g.mu.Lock()
	var fns []func(Event)
	for _, s := range g.subs[id] {
		if s.kinds&kind != 0 {
			fns = append(fns, s.fn)
		}
	}
	g.mu.Unlock()
	for _, fn := range fns {
		fn(Event{Kind: kind, ID: id})
	}
}

func (g *fakeGraph) addNode(id ElementID, shape string, b paths.Bounds) {
	g.mu.Lock()
	g.nodes[id] = &fakeNode{id: id, bounds: b, shape: shape}
	g.mu.Unlock()
	g.emit(id, EventAdd)
}

func (g *fakeGraph) addEdge(id ElementID, pts ...paths.Vec2) {
	g.mu.Lock()
	g.edges[id] = &fakeEdge{id: id, pts: pts}
	g.mu.Unlock()
	g.emit(id, EventAdd)
}

func (g *fakeGraph) moveNode(id ElementID, dx, dy float64) {
	g.mu.Lock()
	n := g.nodes[id]
	n.bounds = n.bounds.Translate(paths.Vec2{dx, dy})
	g.mu.Unlock()
	g.emit(id, EventPosition)
}

func (g *fakeGraph) setRoute(id ElementID, pts ...paths.Vec2) {
	g.mu.Lock()
	g.edges[id].pts = pts
	g.mu.Unlock()
	g.emit(id, EventMove)
}

func (g *fakeGraph) removeNode(id ElementID) {
	g.mu.Lock()
	delete(g.nodes, id)
	g.mu.Unlock()
	g.emit(id, EventRemove)
}

// fakeClock runs scheduled funcs only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	c    *fakeClock
	at   time.Time
	f    func()
	done bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every timer that is due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.done && !t.at.After(c.now) {
				t.done = true
				due = append(due, t)
			}
		}
		c.mu.Unlock()
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			t.f()
		}
	}
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// countingEngine counts the calls made to the real engine.
type countingEngine struct {
	potential.Engine

	mu         sync.Mutex
	calls      map[string]int
	lastEdges  int
	outlineErr error
}

func newCountingEngine() *countingEngine {
	return &countingEngine{calls: map[string]int{}}
}

func (e *countingEngine) count(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls[name]++
}

func (e *countingEngine) n(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[name]
}

func (e *countingEngine) Grid(region paths.Bounds, pixelGroup int) (*potential.Area, error) {
	e.count("Grid")
	return e.Engine.Grid(region, pixelGroup)
}

func (e *countingEngine) Copy(grid, a *potential.Area, origin paths.Vec2) *potential.Area {
	e.count("Copy")
	return e.Engine.Copy(grid, a, origin)
}

func (e *countingEngine) CircleInfluence(c paths.Circle, grid *potential.Area, r1 float64) *potential.Area {
	e.count("CircleInfluence")
	return e.Engine.CircleInfluence(c, grid, r1)
}

func (e *countingEngine) RectangleInfluence(b paths.Bounds, grid *potential.Area, r1 float64) *potential.Area {
	e.count("RectangleInfluence")
	return e.Engine.RectangleInfluence(b, grid, r1)
}

func (e *countingEngine) LineInfluence(l paths.Line, grid *potential.Area, r1 float64) *potential.Area {
	e.count("LineInfluence")
	return e.Engine.LineInfluence(l, grid, r1)
}

func (e *countingEngine) VirtualEdges(members, nonMembers []paths.Shape, maxIterations int, buffer float64) []paths.Line {
	e.count("VirtualEdges")
	return e.Engine.VirtualEdges(members, nonMembers, maxIterations, buffer)
}

func (e *countingEngine) Outline(grid *potential.Area, members, edges, nonMembers []*potential.Area, valid func(paths.Path) bool, o potential.Options) (paths.Path, error) {
	e.count("Outline")
	e.mu.Lock()
	e.lastEdges = len(edges)
	err := e.outlineErr
	e.mu.Unlock()
	if err != nil {
		return paths.Path{}, err
	}
	return e.Engine.Outline(grid, members, edges, nonMembers, valid, o)
}

func (e *countingEngine) edgesPassed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastEdges
}
