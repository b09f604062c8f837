package paths

// Sample returns the path made of every step-th vertex of p, starting
// with the first. The last vertex of an open path is always kept.
// If sampling would leave a closed path with fewer than three
// vertices, p is returned unchanged.
func (p Path) Sample(step int) Path {
	if step <= 1 || len(p.V) == 0 {
		return p
	}
	v := make([]Vec2, 0, len(p.V)/step+2)
	for i := 0; i < len(p.V); i += step {
		v = append(v, p.V[i])
	}
	if !p.Closed {
		if last := p.V[len(p.V)-1]; v[len(v)-1] != last {
			v = append(v, last)
		}
		return Path{V: v}
	}
	if len(v) < 3 {
		return p
	}
	return Path{V: v, Closed: true}
}

// Smooth approximates p with a uniform cubic B-spline, emitting
// granularity points per original segment. Open paths keep their
// end points.
func (p Path) Smooth(granularity int) Path {
	n := len(p.V)
	if n < 3 || granularity < 1 {
		return p
	}
	at := func(i int) Vec2 {
		if p.Closed {
			return p.V[((i%n)+n)%n]
		}
		if i < 0 {
			return p.V[0]
		}
		if i >= n {
			return p.V[n-1]
		}
		return p.V[i]
	}
	var v []Vec2
	spans := n
	if !p.Closed {
		spans = n - 1
		v = append(v, p.V[0])
	}
	for i := 0; i < spans; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		for k := 0; k < granularity; k++ {
			if !p.Closed && i == 0 && k == 0 {
				continue
			}
			v = append(v, bspline(p0, p1, p2, p3, float64(k)/float64(granularity)))
		}
	}
	if !p.Closed {
		v = append(v, p.V[n-1])
	}
	return Path{V: v, Closed: p.Closed}
}

// bspline evaluates the uniform cubic B-spline segment defined by
// four control points at t in [0, 1).
func bspline(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t
	b0 := (1 - t) * (1 - t) * (1 - t) / 6
	b1 := (3*t3 - 6*t2 + 4) / 6
	b2 := (-3*t3 + 3*t2 + 3*t + 1) / 6
	b3 := t3 / 6
	return Vec2{
		b0*p0[0] + b1*p1[0] + b2*p2[0] + b3*p3[0],
		b0*p0[1] + b1*p1[1] + b2*p2[1] + b3*p3[1],
	}
}
