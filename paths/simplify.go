package paths

// simplifyEpsilon absorbs rounding noise so that a tolerance of zero
// still drops points lying on a straight run.
const simplifyEpsilon = 1e-9

func simplifyPath(v []Vec2, tol float64) []Vec2 {
	if len(v) < 3 {
		return v
	}
	worst := 0
	worstD := 0.0
	for i := 1; i < len(v)-1; i++ {
		d := vec2SegmentDist(v[i], v[0], v[len(v)-1])
		if d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol+simplifyEpsilon {
		return []Vec2{v[0], v[len(v)-1]}
	}
	lefts := simplifyPath(v[:worst+1], tol)
	rights := simplifyPath(v[worst:], tol)
	return append(lefts, rights[1:]...)
}

// Simplify returns p with points removed, with the guarantee that
// all removed points are within the given tolerance (distance)
// from the new path. A closed path keeps at least three points.
func (p Path) Simplify(tol float64) Path {
	if !p.Closed {
		return Path{V: simplifyPath(append([]Vec2(nil), p.V...), tol)}
	}
	if len(p.V) < 4 {
		return p
	}
	ring := append(append([]Vec2(nil), p.V...), p.V[0])
	s := simplifyPath(ring, tol)
	s = s[:len(s)-1]
	if len(s) < 3 {
		return p
	}
	return Path{V: s, Closed: true}
}

// Simplify removes points from paths, with the guarantee that
// all removed points are within the given tolerance (distance)
// from the new path.
func (ps *Paths) Simplify(tol float64) {
	for i, p := range ps.P {
		ps.P[i] = p.Simplify(tol)
	}
}
