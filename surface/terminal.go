package surface

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/paths"
)

const (
	backdropRune = '.'
	outlineRune  = '*'
)

// Terminal draws outlines as character cells on a tcell screen. Every
// Draw repaints the whole screen.
type Terminal struct {
	frame

	Screen tcell.Screen
	// View is the region mapped onto the screen. The zero value fits
	// the contents.
	View paths.Bounds

	status string
}

func NewTerminal(s tcell.Screen, backdrop func() []paths.Layer) *Terminal {
	return &Terminal{frame: frame{backdrop: backdrop}, Screen: s}
}

func (t *Terminal) Draw(ds []bubbleset.Drawing) error {
	if err := t.frame.Draw(ds); err != nil {
		return err
	}
	t.Repaint()
	return nil
}

// SetStatus sets the text written on the last row. It takes effect
// on the next repaint.
func (t *Terminal) SetStatus(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = s
}

// Repaint draws the latest drawings again, for instance after the
// screen was resized.
func (t *Terminal) Repaint() {
	var backdrop []paths.Layer
	if t.backdrop != nil {
		backdrop = t.backdrop()
	}
	drawings := t.snapshot()
	t.mu.Lock()
	status := t.status
	t.mu.Unlock()
	ls := backdrop
	for _, d := range drawings {
		ls = append(ls, paths.Layer{P: []paths.Path{d.Path}})
	}
	view := fit(t.View, ls)
	w, h := t.Screen.Size()
	t.Screen.Clear()
	if w < 2 || h < 2 {
		t.Screen.Show()
		return
	}
	rows := h
	if status != "" {
		rows--
	}
	if view.Empty() {
		t.Screen.Show()
		return
	}
	cells := paths.Rect(0, 0, float64(w-1), float64(rows-1))
	set := func(x, y int, r rune, st tcell.Style) {
		if x >= 0 && y >= 0 && x < w && y < rows {
			t.Screen.SetContent(x, y, r, nil, st)
		}
	}
	dim := tcell.StyleDefault.Dim(true)
	for _, l := range backdrop {
		for _, p := range toCells(l.P, view, cells) {
			plot(p, func(x, y int) { set(x, y, backdropRune, dim) })
		}
	}
	for _, d := range drawings {
		st := tcell.StyleDefault
		if c, err := ParseColor(d.Style.Stroke); err == nil && c.A > 0 {
			st = st.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		}
		for _, p := range toCells([]paths.Path{d.Path}, view, cells) {
			plot(p, func(x, y int) { set(x, y, outlineRune, st) })
		}
	}
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		t.Screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	t.Screen.Show()
}

// toCells maps ps from view onto the character cells, dropping what
// falls outside and vertices closer than half a cell to a line.
func toCells(ps []paths.Path, view, cells paths.Bounds) []paths.Path {
	out := paths.Paths{Bounds: view}
	for _, p := range ps {
		p = p.Open()
		out.P = append(out.P, paths.Path{V: append([]paths.Vec2(nil), p.V...)})
	}
	out.Transform(cells)
	out.Clip(cells)
	out.Simplify(0.5)
	return out.P
}

// plot calls fn for every cell along p.
func plot(p paths.Path, fn func(x, y int)) {
	cell := func(v paths.Vec2) (int, int) {
		return int(math.Round(v[0])), int(math.Round(v[1]))
	}
	for i := 1; i < len(p.V); i++ {
		x0, y0 := cell(p.V[i-1])
		x1, y1 := cell(p.V[i])
		line(x0, y0, x1, y1, fn)
	}
}

// line is Bresenham's algorithm.
func line(x0, y0, x1, y1 int, fn func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		fn(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
