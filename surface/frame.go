// Package surface draws the outlines of a bubbleset.Collection: as SVG
// documents, PNG images or on a terminal screen.
package surface

import (
	"sync"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

// fitMargin is added around the contents when no view is set.
const fitMargin = 10

// frame keeps the latest drawings handed over by a collection, along
// with the backdrop they are painted over.
type frame struct {
	backdrop func() []paths.Layer

	mu       sync.Mutex
	drawings []bubbleset.Drawing
}

func (f *frame) Draw(ds []bubbleset.Drawing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawings = append(f.drawings[:0:0], ds...)
	return nil
}

func (f *frame) snapshot() []bubbleset.Drawing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bubbleset.Drawing(nil), f.drawings...)
}

// layers returns the backdrop, then for each outline its grid cells
// (if any) and its path.
func (f *frame) layers(cells paths.Style) []paths.Layer {
	var ls []paths.Layer
	if f.backdrop != nil {
		ls = append(ls, f.backdrop()...)
	}
	for _, d := range f.snapshot() {
		if d.Grid != nil {
			ls = append(ls, paths.Layer{Style: cells, P: gridCells(d.Grid)})
		}
		ls = append(ls, paths.Layer{Style: d.Style, P: []paths.Path{d.Path}})
	}
	return ls
}

// gridCells returns a square for every cell with a positive value.
func gridCells(a *potential.Area) []paths.Path {
	var ps []paths.Path
	g := float64(a.PixelGroup)
	for j := 0; j < a.H; j++ {
		for i := 0; i < a.W; i++ {
			if a.Get(i, j) <= 0 {
				continue
			}
			b := paths.Rect(a.PixelX+float64(i)*g, a.PixelY+float64(j)*g, g, g)
			ps = append(ps, paths.Path{V: []paths.Vec2{b.Min, {b.Max[0], b.Min[1]}, b.Max, {b.Min[0], b.Max[1]}}, Closed: true})
		}
	}
	return ps
}

// fit returns view, or the padded extent of the layers if view is zero.
func fit(view paths.Bounds, ls []paths.Layer) paths.Bounds {
	if view != (paths.Bounds{}) {
		return view
	}
	var b paths.Bounds
	for _, l := range ls {
		for _, p := range l.P {
			if len(p.V) > 0 {
				b = b.Union(p.Bounds())
			}
		}
	}
	if b == (paths.Bounds{}) {
		return paths.Rect(0, 0, 1, 1)
	}
	return b.Pad(fitMargin)
}
