package surface

import (
	"io"

	"github.com/paulhankin/bubblesets/paths"
)

// DefaultCellStyle paints potential grid cells.
var DefaultCellStyle = paths.Style{Fill: "rgba(0,0,255,0.1)"}

// SVG renders the latest drawings as an SVG document.
type SVG struct {
	frame

	// View is the region written. The zero value fits the contents.
	View      paths.Bounds
	CellStyle paths.Style
}

// NewSVG returns an SVG surface painting over the layers returned by
// backdrop, which may be nil.
func NewSVG(backdrop func() []paths.Layer) *SVG {
	return &SVG{frame: frame{backdrop: backdrop}, CellStyle: DefaultCellStyle}
}

// Encode writes the document.
func (s *SVG) Encode(w io.Writer) error {
	ls := s.layers(s.CellStyle)
	return paths.WriteSVG(w, fit(s.View, ls), ls...)
}
