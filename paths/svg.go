package paths

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"golang.org/x/net/html/charset"
)

func parseBounds(e *svgparser.Element) (Bounds, error) {
	if vb := strings.Fields(strings.ReplaceAll(e.Attributes["viewBox"], ",", " ")); len(vb) == 4 {
		f, err := parseFloats(vb)
		if err != nil {
			return Bounds{}, fmt.Errorf("bad viewBox: %w", err)
		}
		return Rect(f[0], f[1], f[2], f[3]), nil
	}
	width, werr := strconv.ParseFloat(e.Attributes["width"], 64)
	height, herr := strconv.ParseFloat(e.Attributes["height"], 64)
	if werr != nil {
		return Bounds{}, werr
	}
	if herr != nil {
		return Bounds{}, herr
	}
	return Bounds{
		Max: Vec2{float64(width), float64(height)},
	}, nil
}

func parseLine(ps *Paths, xform *svgXform, e *svgparser.Element) error {
	var ferr error
	pf := func(s string) float64 {
		if ferr != nil {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		ferr = err
		return f
	}
	x1 := pf(e.Attributes["x1"])
	x2 := pf(e.Attributes["x2"])
	y1 := pf(e.Attributes["y1"])
	y2 := pf(e.Attributes["y2"])
	ps.move(xform.Apply(Vec2{x1, y1}))
	ps.line(xform.Apply(Vec2{x2, y2}))
	return ferr
}

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

func parseFloats(a []string) ([]float64, error) {
	var r []float64
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

func svgXformTranslate(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{1, 0, x},
			{0, 1, y},
			{0, 0, 1},
		},
	}
}

func svgXformScale(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{x, 0, 0},
			{0, y, 0},
			{0, 0, 1},
		},
	}
}

func parseSingleXform(name string, args []string) (*svgXform, error) {
	switch name {
	case "translate":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("translate should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return svgXformTranslate(fa[0], fa[1]), nil
	case "scale":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("scale should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return svgXformScale(fa[0], fa[1]), nil
	default:
		return nil, fmt.Errorf("unknown transform function %q", name)
	}
}

// ParseTransform parses an SVG transform attribute (translate and
// scale only) and returns a function applying it to a point.
func ParseTransform(x string) (func(Vec2) Vec2, error) {
	xf, err := parseSVGXForm(x)
	if err != nil {
		return nil, err
	}
	return xf.Apply, nil
}

func parseSVGXForm(x string) (*svgXform, error) {
	var s scanner.Scanner
	xf := svgIdentity
	s.Init(strings.NewReader(x))
	state := xfsName
	fname := ""
	var args []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return nil, fmt.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			fname = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return nil, fmt.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				continue
			}
			fallthrough
		case xfsArg:
			if tok == ')' {
				newxform, err := parseSingleXform(fname, args)
				if err != nil {
					return nil, err
				}
				xf = xf.Compose(newxform)
				state = xfsName
				args = nil
			} else if tok == '-' {
				// the scanner splits the sign from the number
				args = append(args, "-")
			} else if tok == scanner.Float || tok == scanner.Int {
				if n := len(args); n > 0 && args[n-1] == "-" {
					args[n-1] += s.TokenText()
				} else {
					args = append(args, s.TokenText())
				}
				state = xfsMaybeComma
			} else {
				return nil, fmt.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return nil, fmt.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}

// pathTokens splits SVG path data into commands and numbers.
func pathTokens(d string) []string {
	var toks []string
	start := -1
	flush := func(i int) {
		if start >= 0 {
			toks = append(toks, d[start:i])
			start = -1
		}
	}
	for i, r := range d {
		switch {
		case r == ',' || unicode.IsSpace(r):
			flush(i)
		case strings.ContainsRune("MmLlZz", r):
			flush(i)
			toks = append(toks, string(r))
		case r == '-' && start >= 0 && d[i-1] != 'e' && d[i-1] != 'E':
			flush(i)
			start = i
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(d))
	return toks
}

// parsePath understands absolute and relative move, line and close
// commands. Pairs following a move are implicit lines.
func parsePath(ps *Paths, xf *svgXform, d string) error {
	var cmd byte
	var xy, cur, start Vec2
	var xyp int
	for _, t := range pathTokens(d) {
		switch t {
		case "M", "m", "L", "l":
			if xyp != 0 {
				return fmt.Errorf("got odd number of components before %s", t)
			}
			cmd = t[0]
			continue
		case "Z", "z":
			if xyp != 0 {
				return fmt.Errorf("got odd number of components before %s", t)
			}
			if len(ps.P) == 0 {
				return fmt.Errorf("close with no open path")
			}
			ps.P[len(ps.P)-1].Closed = true
			cur = start
			cmd = 0
			continue
		}
		x, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return err
		}
		if cmd == 0 {
			return fmt.Errorf("path data needs a command before %q", t)
		}
		xy[xyp] = x
		xyp++
		if xyp < 2 {
			continue
		}
		xyp = 0
		p := xy
		if cmd == 'm' || cmd == 'l' {
			p = vec2AddVec2(cur, xy)
		}
		cur = p
		switch cmd {
		case 'M', 'm':
			ps.P = append(ps.P, Path{})
			start = p
			cmd = cmd - 'M' + 'L'
		default:
			if len(ps.P) == 0 {
				return fmt.Errorf("line with no open path")
			}
		}
		ps.P[len(ps.P)-1].V = append(ps.P[len(ps.P)-1].V, xf.Apply(p))
	}
	if xyp != 0 {
		return fmt.Errorf("got stray component in path")
	}
	return nil
}

// ParsePathData parses the contents of an SVG path "d" attribute.
func ParsePathData(d string) ([]Path, error) {
	ps := &Paths{}
	if err := parsePath(ps, svgIdentity, d); err != nil {
		return nil, err
	}
	return ps.P, nil
}

type svgXform struct {
	M [3][3]float64
}

func (xf *svgXform) Compose(xf2 *svgXform) *svgXform {
	var a svgXform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a.M[i][k] += xf.M[i][j] * xf2.M[j][k]
			}
		}
	}
	return &a
}

func (xf *svgXform) Apply(v Vec2) Vec2 {
	x := [3]float64{v[0], v[1], 1.0}
	var r [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += xf.M[i][j] * x[j]
		}
	}
	return Vec2{r[0] / r[2], r[1] / r[2]}
}

var svgIdentity = &svgXform{
	M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

func parsePaths(p *Paths, xform *svgXform, e *svgparser.Element) error {
	for _, c := range e.Children {
		switch c.Name {
		case "g":
			gxf, err := parseSVGXForm(c.Attributes["transform"])
			if err != nil {
				return err
			}
			xf2 := xform.Compose(gxf)
			if err := parsePaths(p, xf2, c); err != nil {
				return err
			}
		case "path":
			if err := parsePath(p, xform, c.Attributes["d"]); err != nil {
				return err
			}
		case "line":
			if err := parseLine(p, xform, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeSVG reads a whole SVG document and returns its root element.
func DecodeSVG(r io.Reader) (*svgparser.Element, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, err
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, err
	}
	return elt, nil
}

// FromSVG parses an SVG file, extracting paths.
// This provides only limited SVG parsing support, and
// will fail or produce incorrect results if the SVG file
// uses features that it doesn't understand.
func FromSVG(r io.Reader) (p *Paths, rerr error) {
	elt, err := DecodeSVG(r)
	if err != nil {
		return nil, err
	}
	bs, err := parseBounds(elt)
	if err != nil {
		return nil, err
	}
	p = &Paths{Bounds: bs}
	return p, parsePaths(p, svgIdentity, elt)
}

// Style describes how a layer of paths is painted. Empty colours
// are written as "none".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Layer is a group of paths painted with one style.
type Layer struct {
	Style Style
	P     []Path
}

var (
	svgh = `<svg height="%.2f" width="%.2f" viewBox="%.2f %.2f %.2f %.2f" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`

	attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")
)

func colorAttr(c string) string {
	if c == "" {
		return "none"
	}
	return attrEscaper.Replace(c)
}

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	return WriteSVG(w, ps.Bounds, Layer{
		Style: Style{Stroke: "black", StrokeWidth: 0.1},
		P:     ps.P,
	})
}

// WriteSVG writes an SVG file with the given view bounds, one group
// per layer. Closed paths are terminated with Z.
func WriteSVG(w io.Writer, b Bounds, layers ...Layer) error {
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	wr(svgh, b.Height(), b.Width(), b.Min[0], b.Min[1], b.Width(), b.Height())
	wr("\n")
	for _, l := range layers {
		wr("<g fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\">\n", colorAttr(l.Style.Fill), colorAttr(l.Style.Stroke), l.Style.StrokeWidth)
		for _, p := range l.P {
			if len(p.V) == 0 {
				continue
			}
			wr(`<path d="`)
			for i, v := range p.V {
				if i == 0 {
					wr("M %.2f, %.2f", v[0], v[1])
				} else {
					wr(" %.2f, %.2f", v[0], v[1])
				}
			}
			if p.Closed {
				wr(" Z")
			}
			wr("\"/>\n")
		}
		wr("</g>\n")
	}
	wr("</svg>")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
