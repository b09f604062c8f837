package surface

import "go.trai.ch/zerr"

var (
	// ErrBadColor is returned for colours that cannot be parsed.
	ErrBadColor  = zerr.New("bad colour")
	ErrEmptyView = zerr.New("empty view")
)
