package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// parallelEpsilon is the cross-product magnitude (relative to the product
// of the direction lengths) below which two lines are treated as parallel.
const parallelEpsilon = 1e-12

// LineIntersectionSlope intersects the line through a1,a2 with the line
// through b1,b2 by solving the two slope-intercept equations directly.
//
// Vertical lines have infinite slope and parallel lines have equal slopes;
// both cases propagate Inf/NaN into the result rather than failing.
func LineIntersectionSlope(a1, a2, b1, b2 v2.Vec) v2.Vec {
	m1 := (a2.Y - a1.Y) / (a2.X - a1.X)
	m2 := (b2.Y - b1.Y) / (b2.X - b1.X)

	x := (m1*a1.X - m2*b1.X + b1.Y - a1.Y) / (m1 - m2)
	y := (m2*a1.Y - m1*b1.Y + m1*m2*(b1.X-a1.X)) / (m2 - m1)
	return v2.Vec{X: x, Y: y}
}

// LineIntersection intersects the line through a1,a2 with the line through
// b1,b2 using the determinant form, which handles vertical lines exactly.
// It reports false, with a NaN point, when the lines are parallel,
// coincident, or either one is degenerate.
func LineIntersection(a1, a2, b1, b2 v2.Vec) (v2.Vec, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)

	denom := cross2(d1, d2)
	scale := math.Hypot(d1.X, d1.Y) * math.Hypot(d2.X, d2.Y)
	if scale == 0 || math.Abs(denom) <= parallelEpsilon*scale {
		return v2.Vec{X: math.NaN(), Y: math.NaN()}, false
	}

	t := cross2(b1.Sub(a1), d2) / denom
	return v2.Vec{X: a1.X + t*d1.X, Y: a1.Y + t*d1.Y}, true
}

func cross2(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// IsFinite reports whether both components of p are finite.
func IsFinite(p v2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
