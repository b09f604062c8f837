package potential

import (
	"github.com/paulhankin/bubblesets/paths"
	"go.trai.ch/zerr"
)

// Options control the potential field and the contour search.
type Options struct {
	MaxRoutingIterations  int `mapstructure:"max_routing_iterations" yaml:"max_routing_iterations"`
	MaxMarchingIterations int `mapstructure:"max_marching_iterations" yaml:"max_marching_iterations"`
	PixelGroup            int `mapstructure:"pixel_group" yaml:"pixel_group"`

	EdgeR0      float64 `mapstructure:"edge_r0" yaml:"edge_r0"`
	EdgeR1      float64 `mapstructure:"edge_r1" yaml:"edge_r1"`
	NodeR0      float64 `mapstructure:"node_r0" yaml:"node_r0"`
	NodeR1      float64 `mapstructure:"node_r1" yaml:"node_r1"`
	MorphBuffer float64 `mapstructure:"morph_buffer" yaml:"morph_buffer"`
	Threshold   float64 `mapstructure:"threshold" yaml:"threshold"`

	MemberInfluenceFactor    float64 `mapstructure:"member_influence_factor" yaml:"member_influence_factor"`
	EdgeInfluenceFactor      float64 `mapstructure:"edge_influence_factor" yaml:"edge_influence_factor"`
	NonMemberInfluenceFactor float64 `mapstructure:"non_member_influence_factor" yaml:"non_member_influence_factor"`
}

// DefaultOptions returns the options used for fields left at zero.
func DefaultOptions() Options {
	return Options{
		MaxRoutingIterations:     100,
		MaxMarchingIterations:    20,
		PixelGroup:               4,
		EdgeR0:                   10,
		EdgeR1:                   20,
		NodeR0:                   15,
		NodeR1:                   50,
		MorphBuffer:              10,
		Threshold:                1,
		MemberInfluenceFactor:    1,
		EdgeInfluenceFactor:      1,
		NonMemberInfluenceFactor: -0.8,
	}
}

// Merge returns o with every non-zero field of over copied in.
func (o Options) Merge(over Options) Options {
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setInt(&o.MaxRoutingIterations, over.MaxRoutingIterations)
	setInt(&o.MaxMarchingIterations, over.MaxMarchingIterations)
	setInt(&o.PixelGroup, over.PixelGroup)
	setFloat(&o.EdgeR0, over.EdgeR0)
	setFloat(&o.EdgeR1, over.EdgeR1)
	setFloat(&o.NodeR0, over.NodeR0)
	setFloat(&o.NodeR1, over.NodeR1)
	setFloat(&o.MorphBuffer, over.MorphBuffer)
	setFloat(&o.Threshold, over.Threshold)
	setFloat(&o.MemberInfluenceFactor, over.MemberInfluenceFactor)
	setFloat(&o.EdgeInfluenceFactor, over.EdgeInfluenceFactor)
	setFloat(&o.NonMemberInfluenceFactor, over.NonMemberInfluenceFactor)
	return o
}

// Outline accumulates the field on grid and traces the contour around
// the members. If the contour is rejected by valid, the threshold is
// lowered and the member and edge influence raised (for the first half
// of the iterations) or the non-member influence weakened (for the
// rest) until a contour is accepted or the iterations run out, in which
// case an empty path is returned.
func Outline(grid *Area, members, edges, nonMembers []*Area, valid func(paths.Path) bool, o Options) (paths.Path, error) {
	if grid == nil {
		return paths.Path{}, zerr.Wrap(ErrInvalidGeometry, "no potential grid")
	}
	o = DefaultOptions().Merge(o)
	threshold := o.Threshold
	memberFactor := o.MemberInfluenceFactor
	edgeFactor := o.EdgeInfluenceFactor
	nonMemberFactor := o.NonMemberInfluenceFactor
	nodeInfA := (o.NodeR0 - o.NodeR1) * (o.NodeR0 - o.NodeR1)
	edgeInfA := (o.EdgeR0 - o.EdgeR1) * (o.EdgeR0 - o.EdgeR1)
	if nodeInfA == 0 || edgeInfA == 0 {
		return paths.Path{}, zerr.With(ErrInvalidGeometry, "reason", "r0 equals r1")
	}

	for it := 0; it < o.MaxMarchingIterations; it++ {
		grid.Clear()
		if memberFactor != 0 {
			f := memberFactor / nodeInfA
			for _, a := range members {
				grid.IncArea(a, f)
			}
		}
		if edgeFactor != 0 {
			f := edgeFactor / edgeInfA
			for _, a := range edges {
				grid.IncArea(a, f)
			}
		}
		if nonMemberFactor != 0 {
			f := nonMemberFactor / nodeInfA
			for _, a := range nonMembers {
				grid.IncArea(a, f)
			}
		}
		contour, ok := marchingSquares(grid, threshold)
		if ok && (valid == nil || valid(contour)) {
			logger().Debug("outline traced", "iterations", it+1, "points", len(contour.V))
			return contour, nil
		}
		threshold *= 0.95
		if float64(it) <= float64(o.MaxMarchingIterations)*0.5 {
			memberFactor *= 1.2
			edgeFactor *= 1.2
		} else if nonMemberFactor != 0 && len(nonMembers) > 0 {
			nonMemberFactor *= 0.8
		} else {
			break
		}
	}
	logger().Debug("no valid outline", "iterations", o.MaxMarchingIterations)
	return paths.Path{}, nil
}

// ContainsAll returns a contour predicate accepting paths that enclose
// the center of every shape.
func ContainsAll(shapes []paths.Shape) func(paths.Path) bool {
	return func(p paths.Path) bool {
		b := p.Bounds()
		for _, s := range shapes {
			c := s.Center()
			if !b.Contains(c) || !p.Contains(c) {
				return false
			}
		}
		return true
	}
}

type direction int

const (
	none direction = iota
	up
	down
	left
	right
)

// marchingSquares traces the outline of the first region above
// threshold found scanning column by column. The corners of cell x,y
// are the samples x,y (1), x+1,y (2), x,y+1 (4) and x+1,y+1 (8); the
// contour keeps the region on its left.
func marchingSquares(a *Area, threshold float64) (paths.Path, bool) {
	inside := func(x, y int) bool { return a.Get(x, y) > threshold }
	state := func(x, y int) int {
		s := 0
		if inside(x, y) {
			s |= 1
		}
		if inside(x+1, y) {
			s |= 2
		}
		if inside(x, y+1) {
			s |= 4
		}
		if inside(x+1, y+1) {
			s |= 8
		}
		return s
	}
	sx, sy, found := 0, 0, false
	for x := 0; x < a.W && !found; x++ {
		for y := 0; y < a.H; y++ {
			if inside(x, y) {
				sx, sy, found = x-1, y-1, true
				break
			}
		}
	}
	if !found {
		return paths.Path{}, false
	}

	g := float64(a.PixelGroup)
	var v []paths.Vec2
	x, y := sx, sy
	prev := none
	limit := 2 * (a.W + 2) * (a.H + 2)
	for steps := 0; steps < limit; steps++ {
		var dir direction
		switch state(x, y) {
		case 1, 5, 13:
			dir = up
		case 2, 3, 7:
			dir = right
		case 4, 12, 14:
			dir = left
		case 8, 10, 11:
			dir = down
		case 6:
			if prev == up {
				dir = left
			} else {
				dir = right
			}
		case 9:
			if prev == right {
				dir = up
			} else {
				dir = down
			}
		default:
			return paths.Path{}, false
		}
		v = append(v, paths.Vec2{a.PixelX + float64(x+1)*g, a.PixelY + float64(y+1)*g})
		switch dir {
		case up:
			y--
		case down:
			y++
		case left:
			x--
		case right:
			x++
		}
		prev = dir
		if x == sx && y == sy {
			break
		}
	}
	if len(v) < 3 {
		return paths.Path{}, false
	}
	return paths.Path{V: v, Closed: true}, true
}
