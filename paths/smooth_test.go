package paths

import (
	"math"
	"reflect"
	"testing"
)

func TestSample(t *testing.T) {
	var v []Vec2
	for i := 0; i < 10; i++ {
		v = append(v, Vec2{float64(i), 0})
	}
	open := Path{V: v}.Sample(4)
	if want := []Vec2{{0, 0}, {4, 0}, {8, 0}, {9, 0}}; !reflect.DeepEqual(open.V, want) {
		t.Errorf("open Sample(4) = %v, want %v", open.V, want)
	}
	closed := Path{V: v, Closed: true}.Sample(4)
	if want := []Vec2{{0, 0}, {4, 0}, {8, 0}}; !reflect.DeepEqual(closed.V, want) || !closed.Closed {
		t.Errorf("closed Sample(4) = %v, want %v", closed, want)
	}
	short := Path{V: v[:5], Closed: true}
	if got := short.Sample(4); !reflect.DeepEqual(got, short) {
		t.Errorf("Sample should keep a closed path that would degenerate, got %v", got)
	}
}

func TestSmoothClosedSquare(t *testing.T) {
	square := Path{V: []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Closed: true}
	got := square.Smooth(6)
	if !got.Closed || len(got.V) != 24 {
		t.Fatalf("Smooth(6) of a square gave %d points (closed %v), want 24 closed", len(got.V), got.Closed)
	}
	// a B-spline stays inside the convex hull of its control points
	for _, v := range got.V {
		if v[0] < 0 || v[0] > 10 || v[1] < 0 || v[1] > 10 {
			t.Errorf("smoothed point %v outside the square", v)
		}
	}
	// the curve is symmetric about the square's center
	var cx, cy float64
	for _, v := range got.V {
		cx += v[0]
		cy += v[1]
	}
	n := float64(len(got.V))
	if math.Abs(cx/n-5) > 1e-9 || math.Abs(cy/n-5) > 1e-9 {
		t.Errorf("smoothed centroid = %v, %v, want 5, 5", cx/n, cy/n)
	}
}

func TestSmoothOpenKeepsEnds(t *testing.T) {
	p := Path{V: []Vec2{{0, 0}, {10, 5}, {20, 0}, {30, 5}}}
	got := p.Smooth(4)
	if got.V[0] != p.V[0] || got.V[len(got.V)-1] != p.V[3] {
		t.Errorf("Smooth moved the end points: %v", got.V)
	}
	if got.Closed {
		t.Errorf("Smooth closed an open path")
	}
}

func TestSmoothShortPath(t *testing.T) {
	p := Path{V: []Vec2{{0, 0}, {1, 1}}}
	if got := p.Smooth(6); !reflect.DeepEqual(got, p) {
		t.Errorf("Smooth of a segment = %v, want it unchanged", got)
	}
}

func TestSimplifyClosed(t *testing.T) {
	p := Path{
		V:      []Vec2{{0, 0}, {5, 0.01}, {10, 0}, {10, 10}, {5, 10.01}, {0, 10}},
		Closed: true,
	}
	got := p.Simplify(0.1)
	want := Path{V: []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Closed: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Simplify = %v, want %v", got, want)
	}
	tri := Path{V: []Vec2{{0, 0}, {1, 0}, {0, 1}}, Closed: true}
	if got := tri.Simplify(5); !reflect.DeepEqual(got, tri) {
		t.Errorf("Simplify dropped points of a triangle: %v", got)
	}
}
