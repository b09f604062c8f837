package bubbleset

import (
	"errors"
	"math"
	"sync"

	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

type role uint8

const (
	memberRole role = iota
	edgeRole
	avoidRole
)

type subKey struct {
	role role
	id   ElementID
}

type runStats struct {
	dirty      bool
	recreated  int
	translated int
	rebuilt    int
	rerouted   bool
}

// An Outline keeps the bubble set path of one member selection up to
// date. It is created by Collection.AddOutline and is attached until
// Remove is called.
type Outline struct {
	c       *Collection
	graph   Graph
	engine  Engine
	opts    Options
	members *Selection
	edges   *Selection
	avoid   *Selection

	mu       sync.Mutex
	attached bool
	subs     map[subKey]func()
	watches  []func()
	throttle *throttle

	field      field
	nodes      map[ElementID]*nodeRecord
	edgeRecs   map[ElementID]*edgeRecord
	virtual    []virtualEdge
	structural bool
	path       paths.Path
	last       runStats
}

func newOutline(c *Collection, members, edges, avoid *Selection, opts Options) *Outline {
	if members == nil {
		members = NewSelection()
	}
	if edges == nil {
		edges = NewSelection()
	}
	if avoid == nil {
		avoid = NewSelection()
	}
	o := &Outline{
		c:        c,
		graph:    c.graph,
		engine:   c.engine,
		opts:     opts,
		members:  members,
		edges:    edges,
		avoid:    avoid,
		subs:     map[subKey]func(){},
		nodes:    map[ElementID]*nodeRecord{},
		edgeRecs: map[ElementID]*edgeRecord{},
	}
	o.throttle = newThrottle(c.clock, opts.throttleInterval(), o.fire)
	return o
}

func (o *Outline) selection(r role) *Selection {
	switch r {
	case edgeRole:
		return o.edges
	case avoidRole:
		return o.avoid
	}
	return o.members
}

// attach subscribes to the selections and their elements.
func (o *Outline) attach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attached = true
	for _, r := range []role{memberRole, edgeRole, avoidRole} {
		sel := o.selection(r)
		o.watches = append(o.watches, sel.Watch(o.selectionChanged(r)))
		for _, id := range sel.IDs() {
			o.subscribe(r, id)
		}
	}
}

func (o *Outline) subscribe(r role, id ElementID) {
	k := subKey{r, id}
	if _, ok := o.subs[k]; ok {
		return
	}
	kinds := nodeEvents
	if r == edgeRole {
		kinds = edgeEvents
	}
	o.subs[k] = o.graph.Subscribe(id, kinds, func(Event) { o.throttle.Trigger() })
}

func (o *Outline) selectionChanged(r role) func(added, removed []ElementID) {
	return func(added, removed []ElementID) {
		o.mu.Lock()
		if !o.attached {
			o.mu.Unlock()
			return
		}
		for _, id := range added {
			o.subscribe(r, id)
		}
		for _, id := range removed {
			k := subKey{r, id}
			if cancel, ok := o.subs[k]; ok {
				cancel()
				delete(o.subs, k)
			}
			switch r {
			case edgeRole:
				delete(o.edgeRecs, id)
			case memberRole:
				if !o.avoid.Has(id) {
					delete(o.nodes, id)
				}
			case avoidRole:
				if !o.members.Has(id) {
					delete(o.nodes, id)
				}
			}
		}
		o.structural = true
		o.mu.Unlock()
		o.throttle.Trigger()
	}
}

// fire is the throttled recomputation.
func (o *Outline) fire() {
	err := o.Update(false)
	if errors.Is(err, ErrDetached) {
		return
	}
	if err != nil {
		logger().Warn("outline update failed", "error", err)
	}
	if err := o.c.Draw(); err != nil {
		logger().Warn("drawing outlines failed", "error", err)
	}
}

// Update recomputes the outline now. A forced update rebuilds the
// potential grid and every cached area.
func (o *Outline) Update(force bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.attached {
		return ErrDetached
	}
	return o.recompute(force)
}

// Remove detaches the outline from its graph and collection and drops
// every cached area. It returns false if the outline was already
// removed.
func (o *Outline) Remove() bool {
	if !o.detach() {
		return false
	}
	return o.c.remove(o)
}

func (o *Outline) detach() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.attached {
		return false
	}
	o.attached = false
	o.throttle.Stop()
	for _, cancel := range o.watches {
		cancel()
	}
	for _, cancel := range o.subs {
		cancel()
	}
	o.watches = nil
	o.subs = map[subKey]func(){}
	o.nodes = map[ElementID]*nodeRecord{}
	o.edgeRecs = map[ElementID]*edgeRecord{}
	o.virtual = nil
	o.field.reset()
	o.path = paths.Path{}
	return true
}

func (o *Outline) lookupNodes(sel *Selection) []Node {
	var ns []Node
	for _, id := range sel.IDs() {
		n, ok := o.graph.Node(id)
		if !ok {
			if _, had := o.nodes[id]; had {
				delete(o.nodes, id)
				o.structural = true
			}
			continue
		}
		ns = append(ns, n)
	}
	return ns
}

func (o *Outline) lookupEdges() []Edge {
	var es []Edge
	for _, id := range o.edges.IDs() {
		e, ok := o.graph.Edge(id)
		if !ok {
			delete(o.edgeRecs, id)
			continue
		}
		es = append(es, e)
	}
	return es
}

func unionAll(bs []paths.Bounds) paths.Bounds {
	if len(bs) == 0 {
		return paths.Bounds{}
	}
	u := bs[0]
	for _, b := range bs[1:] {
		u.Min = paths.Vec2{math.Min(u.Min[0], b.Min[0]), math.Min(u.Min[1], b.Min[1])}
		u.Max = paths.Vec2{math.Max(u.Max[0], b.Max[0]), math.Max(u.Max[1], b.Max[1])}
	}
	return u
}

func (o *Outline) recompute(force bool) error {
	bo := o.opts.boundsOptions()
	members := o.lookupNodes(o.members)
	avoid := o.lookupNodes(o.avoid)
	edges := o.lookupEdges()
	if len(members) == 0 {
		o.path = paths.Path{}
		o.last = runStats{}
		return nil
	}

	var boxes []paths.Bounds
	for _, n := range members {
		boxes = append(boxes, n.BoundingBox(bo))
	}
	for _, n := range avoid {
		boxes = append(boxes, n.BoundingBox(bo))
	}
	for _, e := range edges {
		if len(e.RoutedPoints()) > 1 {
			boxes = append(boxes, e.BoundingBox(bo))
		}
	}
	pad := math.Max(o.opts.EdgeR1, o.opts.NodeR1) + o.opts.MorphBuffer
	dirty, err := o.field.update(o.engine, unionAll(boxes).Pad(pad), o.opts.PixelGroup, force)
	if err != nil {
		return err
	}

	r := &run{
		engine:    o.engine,
		opts:      o.opts,
		grid:      o.field.grid,
		dirty:     dirty,
		nodeCache: map[uint64]*potential.Area{},
		edgeCache: map[uint64]*potential.Area{},
	}
	if !dirty {
		for _, n := range append(append([]Node(nil), members...), avoid...) {
			rec := o.nodes[n.ID()]
			if rec == nil || rec.area == nil {
				continue
			}
			if k := nodeKey(rec.circle, rec.bounds); r.nodeCache[k] == nil {
				r.nodeCache[k] = rec.area
			}
		}
		for _, v := range o.virtual {
			r.edgeCache[v.key] = v.area
		}
		for _, e := range edges {
			if rec := o.edgeRecs[e.ID()]; rec != nil {
				for i, k := range rec.keys {
					r.edgeCache[k] = rec.areas[i]
				}
			}
		}
	}

	resolve := func(ns []Node) ([]*potential.Area, []paths.Shape) {
		areas := make([]*potential.Area, len(ns))
		shapes := make([]paths.Shape, len(ns))
		for i, n := range ns {
			rec := r.resolveNode(o.nodes[n.ID()], n, bo)
			o.nodes[n.ID()] = rec
			areas[i] = rec.area
			shapes[i] = rec.shape
		}
		return areas, shapes
	}
	memberAreas, memberShapes := resolve(members)
	avoidAreas, avoidShapes := resolve(avoid)

	var edgeAreas []*potential.Area
	for _, e := range edges {
		rec := r.resolveEdge(o.edgeRecs[e.ID()], e)
		o.edgeRecs[e.ID()] = rec
		edgeAreas = append(edgeAreas, rec.areas...)
	}

	rerouted := false
	if isSet(o.opts.VirtualEdges) {
		rerouted = r.recreated > 0 || o.structural
		o.virtual = r.virtualAreas(o.virtual, memberShapes, avoidShapes, rerouted)
		for _, v := range o.virtual {
			edgeAreas = append(edgeAreas, v.area)
		}
	}
	o.structural = false

	path, err := o.engine.Outline(r.grid, memberAreas, edgeAreas, avoidAreas, potential.ContainsAll(memberShapes), o.opts.Options)
	if err != nil {
		return err
	}
	o.path = path.Sample(o.opts.SampleStep).Simplify(0).Smooth(o.opts.SmoothGranularity).Simplify(0)
	o.last = runStats{
		dirty:      dirty,
		recreated:  r.recreated,
		translated: r.translated,
		rebuilt:    r.rebuilt,
		rerouted:   rerouted,
	}
	logger().Debug("outline updated",
		"dirty", dirty,
		"recreated", r.recreated,
		"translated", r.translated,
		"edges_rebuilt", r.rebuilt,
		"virtual_edges", len(o.virtual),
		"points", len(o.path.V))
	return nil
}

// Path returns the outline computed by the last update.
func (o *Outline) Path() paths.Path {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.path
}

// VirtualEdges returns the synthetic connections used by the last
// update.
func (o *Outline) VirtualEdges() []paths.Line {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !isSet(o.opts.VirtualEdges) {
		return nil
	}
	lines := make([]paths.Line, len(o.virtual))
	for i, v := range o.virtual {
		lines[i] = v.line
	}
	return lines
}

func (o *Outline) Options() Options { return o.opts }

func (o *Outline) Members() *Selection { return o.members }

func (o *Outline) Edges() *Selection { return o.edges }

func (o *Outline) Avoid() *Selection { return o.avoid }

func (o *Outline) Attached() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attached
}

// Drawing returns what a surface needs to paint the outline.
func (o *Outline) Drawing() Drawing {
	o.mu.Lock()
	defer o.mu.Unlock()
	d := Drawing{
		Path: o.path,
		Style: paths.Style{
			Fill:        o.opts.Fill,
			Stroke:      o.opts.Stroke,
			StrokeWidth: o.opts.StrokeWidth,
		},
	}
	if isSet(o.opts.DrawPotentialArea) && o.field.grid != nil {
		d.Grid = o.field.grid.Clone()
	}
	return d
}
