package bubbleset

import (
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

// field owns the potential grid of an outline.
type field struct {
	active paths.Bounds
	grid   *potential.Area
}

// update makes the grid cover region. Moving the region's origin
// rebuilds the grid and reports it dirty: areas computed against the
// old grid are misplaced. Resizing with the origin kept rebuilds the
// grid but keeps those areas valid. A forced update always rebuilds
// and reports dirty.
func (f *field) update(e Engine, region paths.Bounds, pixelGroup int, force bool) (dirty bool, err error) {
	switch {
	case force || f.grid == nil || region.Min != f.active.Min:
		dirty = true
	case region.Width() != f.active.Width() || region.Height() != f.active.Height():
	default:
		return false, nil
	}
	grid, err := e.Grid(region, pixelGroup)
	if err != nil {
		return false, err
	}
	f.grid = grid
	f.active = region
	return dirty, nil
}

func (f *field) reset() {
	f.grid = nil
	f.active = paths.Bounds{}
}
