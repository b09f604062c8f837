package potential

import "github.com/paulhankin/bubblesets/paths"

// Engine exposes the package functions as a value, for callers that
// take the outline engine as a dependency.
type Engine struct{}

func (Engine) Grid(region paths.Bounds, pixelGroup int) (*Area, error) {
	return FromPixelRegion(region, pixelGroup)
}

func (Engine) Copy(grid, a *Area, origin paths.Vec2) *Area {
	return grid.Copy(a, origin)
}

func (Engine) CircleInfluence(c paths.Circle, grid *Area, r1 float64) *Area {
	return CircleInfluence(c, grid, r1)
}

func (Engine) RectangleInfluence(b paths.Bounds, grid *Area, r1 float64) *Area {
	return RectangleInfluence(b, grid, r1)
}

func (Engine) LineInfluence(l paths.Line, grid *Area, r1 float64) *Area {
	return LineInfluence(l, grid, r1)
}

func (Engine) VirtualEdges(members, nonMembers []paths.Shape, maxIterations int, buffer float64) []paths.Line {
	return VirtualEdges(members, nonMembers, maxIterations, buffer)
}

func (Engine) Outline(grid *Area, members, edges, nonMembers []*Area, valid func(paths.Path) bool, o Options) (paths.Path, error) {
	return Outline(grid, members, edges, nonMembers, valid, o)
}
