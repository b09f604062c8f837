package bubbleset

import (
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

// Drawing is the current state of one outline as handed to a surface.
type Drawing struct {
	Path  paths.Path
	Style paths.Style
	// Grid is the potential grid, set when the outline draws it.
	Grid *potential.Area
}

// Surface renders the outlines of a collection, in insertion order.
//
//go:generate mockgen -source=surface.go -destination=mocks/mock_surface.go -package=mocks
type Surface interface {
	Draw(drawings []Drawing) error
}
