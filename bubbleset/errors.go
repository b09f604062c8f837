package bubbleset

import "go.trai.ch/zerr"

var (
	// ErrDetached is returned when updating an outline that was removed.
	ErrDetached = zerr.New("outline detached")

	// ErrNoGraph is returned when a collection has no host graph.
	ErrNoGraph = zerr.New("no host graph")
)
