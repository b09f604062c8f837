package potential

import "go.trai.ch/zerr"

var (
	// ErrGridTooLarge is returned when a potential grid would exceed MaxCells.
	ErrGridTooLarge = zerr.New("potential grid too large")

	// ErrInvalidGeometry is returned for non-finite regions or a pixel group below one.
	ErrInvalidGeometry = zerr.New("invalid geometry")
)
