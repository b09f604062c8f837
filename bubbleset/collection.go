package bubbleset

import (
	"errors"
	"sync"

	"github.com/paulhankin/bubblesets/potential"
	"go.trai.ch/zerr"
)

// A Collection owns the outlines drawn on one surface over one graph.
type Collection struct {
	graph    Graph
	surface  Surface
	engine   Engine
	clock    Clock
	defaults Options

	mu       sync.Mutex
	outlines []*Outline
}

// CollectionOption customizes a Collection.
type CollectionOption func(*Collection)

func WithEngine(e Engine) CollectionOption {
	return func(c *Collection) { c.engine = e }
}

func WithClock(clk Clock) CollectionOption {
	return func(c *Collection) { c.clock = clk }
}

// WithDefaults sets options applied to every outline, under the
// options given to AddOutline.
func WithDefaults(o Options) CollectionOption {
	return func(c *Collection) { c.defaults = DefaultOptions().Merge(o) }
}

// NewCollection returns an empty collection. The surface may be nil
// when outlines are only read back with Outline.Path.
func NewCollection(g Graph, s Surface, opts ...CollectionOption) *Collection {
	c := &Collection{
		graph:    g,
		surface:  s,
		engine:   potential.Engine{},
		clock:    realClock{},
		defaults: DefaultOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddOutline creates an outline around members, attaches it to the
// graph and computes it once. Edges and avoid may be nil.
func (c *Collection) AddOutline(members, edges, avoid *Selection, opts Options) (*Outline, error) {
	if c.graph == nil {
		return nil, ErrNoGraph
	}
	o := newOutline(c, members, edges, avoid, c.defaults.Merge(opts))
	o.attach()
	if err := o.Update(false); err != nil {
		o.detach()
		return nil, zerr.Wrap(err, "initial outline update")
	}
	c.mu.Lock()
	c.outlines = append(c.outlines, o)
	c.mu.Unlock()
	return o, nil
}

// Outlines returns the attached outlines in insertion order.
func (c *Collection) Outlines() []*Outline {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Outline(nil), c.outlines...)
}

func (c *Collection) indexOf(o *Outline) int {
	for i, x := range c.outlines {
		if x == o {
			return i
		}
	}
	return -1
}

// RemoveOutline removes o, reporting false if it is not part of c.
func (c *Collection) RemoveOutline(o *Outline) bool {
	c.mu.Lock()
	i := c.indexOf(o)
	c.mu.Unlock()
	if i < 0 {
		return false
	}
	return o.Remove()
}

func (c *Collection) remove(o *Outline) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(o)
	if i < 0 {
		return false
	}
	c.outlines = append(c.outlines[:i], c.outlines[i+1:]...)
	return true
}

// UpdateAll updates every outline and draws the result. Errors of the
// individual updates are joined.
func (c *Collection) UpdateAll(force bool) error {
	var errs error
	for _, o := range c.Outlines() {
		if err := o.Update(force); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if err := c.Draw(); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

// Draw hands the current state of every outline to the surface.
func (c *Collection) Draw() error {
	if c.surface == nil {
		return nil
	}
	outlines := c.Outlines()
	drawings := make([]Drawing, len(outlines))
	for i, o := range outlines {
		drawings[i] = o.Drawing()
	}
	return c.surface.Draw(drawings)
}

// Destroy removes every outline.
func (c *Collection) Destroy() {
	for _, o := range c.Outlines() {
		o.Remove()
	}
}
