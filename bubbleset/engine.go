package bubbleset

import (
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

// Engine is the outline computation an Outline drives. The default is
// potential.Engine.
type Engine interface {
	Grid(region paths.Bounds, pixelGroup int) (*potential.Area, error)
	Copy(grid, a *potential.Area, origin paths.Vec2) *potential.Area
	CircleInfluence(c paths.Circle, grid *potential.Area, r1 float64) *potential.Area
	RectangleInfluence(b paths.Bounds, grid *potential.Area, r1 float64) *potential.Area
	LineInfluence(l paths.Line, grid *potential.Area, r1 float64) *potential.Area
	VirtualEdges(members, nonMembers []paths.Shape, maxIterations int, buffer float64) []paths.Line
	Outline(grid *potential.Area, members, edges, nonMembers []*potential.Area, valid func(paths.Path) bool, o potential.Options) (paths.Path, error)
}

var _ Engine = potential.Engine{}
