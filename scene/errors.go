package scene

import "go.trai.ch/zerr"

var (
	ErrUnknownNode      = zerr.New("unknown node")
	ErrUnknownEdge      = zerr.New("unknown edge")
	ErrDuplicateElement = zerr.New("duplicate element id")
	ErrUnknownGroup     = zerr.New("unknown group")
)
