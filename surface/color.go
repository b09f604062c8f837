package surface

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.trai.ch/zerr"
	"golang.org/x/image/colornames"
)

// ParseColor understands #rgb, #rrggbb, rgb(), rgba() and the SVG
// colour names. "" and "none" are transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, zerr.With(ErrBadColor, "colour", s)
		}
		return nrgba(c, 1), nil
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	return color.NRGBA{}, zerr.With(ErrBadColor, "colour", s)
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{r, g, b, uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))}
}

func parseFunc(s string) (color.NRGBA, error) {
	bad := zerr.With(ErrBadColor, "colour", s)
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end != len(s)-1 {
		return color.NRGBA{}, bad
	}
	name, args := s[:open], strings.Split(s[open+1:end], ",")
	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return color.NRGBA{}, bad
	}
	if len(args) != want {
		return color.NRGBA{}, bad
	}
	var f [4]float64
	f[3] = 1
	for i, a := range args {
		a = strings.TrimSpace(a)
		scale := 1.0
		if strings.HasSuffix(a, "%") {
			a = strings.TrimSuffix(a, "%")
			scale = 0.01
			if i < 3 {
				scale = 2.55
			}
		}
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return color.NRGBA{}, bad
		}
		f[i] = v * scale
	}
	return nrgba(colorful.Color{R: f[0] / 255, G: f[1] / 255, B: f[2] / 255}, f[3]), nil
}
