// Package bubbleset keeps bubble set outlines in sync with a mutable
// graph. Each Outline owns a member, edge and avoid selection, listens
// to changes of those elements and recomputes its path, reusing the
// influence areas of elements whose geometry did not change.
package bubbleset

import (
	"strings"

	"github.com/paulhankin/bubblesets/paths"
)

// ElementID identifies a node or an edge of the host graph.
type ElementID string

// EventKind is a bit set of mutation kinds.
type EventKind uint8

const (
	EventAdd EventKind = 1 << iota
	EventRemove
	EventPosition
	EventMove

	nodeEvents = EventAdd | EventRemove | EventPosition
	edgeEvents = EventAdd | EventMove | EventPosition
)

func (k EventKind) String() string {
	var s []string
	for _, n := range []struct {
		k    EventKind
		name string
	}{{EventAdd, "add"}, {EventRemove, "remove"}, {EventPosition, "position"}, {EventMove, "move"}} {
		if k&n.k != 0 {
			s = append(s, n.name)
		}
	}
	return strings.Join(s, "|")
}

// Event is a mutation notification for one element.
type Event struct {
	Kind EventKind
	ID   ElementID
}

// BoundsOptions select the incidental geometry included in bounding
// box queries.
type BoundsOptions struct {
	IncludeLabels       bool
	IncludeMainLabels   bool
	IncludeOverlays     bool
	IncludeSourceLabels bool
	IncludeTargetLabels bool
}

// A Node is a graph node as seen by an outline.
type Node interface {
	ID() ElementID
	BoundingBox(BoundsOptions) paths.Bounds
	// Shape returns the visual shape category, e.g. "rectangle" or
	// "ellipse".
	Shape() string
}

// An Edge is a graph edge as seen by an outline.
type Edge interface {
	ID() ElementID
	BoundingBox(BoundsOptions) paths.Bounds
	// RoutedPoints returns the points the edge is drawn through:
	// source endpoint, bends and target endpoint.
	RoutedPoints() []paths.Vec2
}

// Graph is the host graph an outline reads geometry from.
//
// Subscribe registers fn for the given event kinds on the element id,
// whether or not the element currently exists. The returned cancel
// func may be called any number of times. Listeners must not be called
// while the graph holds locks that Node, Edge or Subscribe take.
type Graph interface {
	Node(id ElementID) (Node, bool)
	Edge(id ElementID) (Edge, bool)
	Subscribe(id ElementID, kinds EventKind, fn func(Event)) (cancel func())
}
