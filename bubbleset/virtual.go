package bubbleset

import (
	"github.com/paulhankin/bubblesets/paths"
	"github.com/paulhankin/bubblesets/potential"
)

type virtualEdge struct {
	line paths.Line
	key  uint64
	area *potential.Area
}

// virtualAreas returns the areas of the virtual edges for this run.
// The set is routed again only when some node was recreated; otherwise
// the previous set is returned unchanged.
func (r *run) virtualAreas(prev []virtualEdge, members, avoid []paths.Shape, structural bool) []virtualEdge {
	if !structural {
		return prev
	}
	lines := r.engine.VirtualEdges(members, avoid, r.opts.MaxRoutingIterations, r.opts.MorphBuffer)
	next := make([]virtualEdge, len(lines))
	for i, l := range lines {
		k := lineKey(l)
		next[i] = virtualEdge{line: l, key: k, area: r.lineArea(k, l)}
	}
	return next
}
