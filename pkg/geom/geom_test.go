package geom

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVectorOps(t *testing.T) {
	a := v3.Vec{X: 1, Y: 2, Z: 3}
	b := v3.Vec{X: 4, Y: 5, Z: 6}

	if got := Add(a, b); got != (v3.Vec{X: 5, Y: 7, Z: 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := Sub(b, a); got != (v3.Vec{X: 3, Y: 3, Z: 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := Dot(a, b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := Cross(a, b); got != (v3.Vec{X: -3, Y: 6, Z: -3}) {
		t.Errorf("Cross = %v", got)
	}
	if got := Scale(a, 2); got != (v3.Vec{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := Magnitude(v3.Vec{X: 3, Y: 4}); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize(v3.Vec{X: 0, Y: 3, Z: 4})
	if !near(n.Y, 0.6) || !near(n.Z, 0.8) || n.X != 0 {
		t.Errorf("Normalize = %v", n)
	}

	z := Normalize(v3.Vec{})
	if !math.IsNaN(z.X) || !math.IsNaN(z.Y) || !math.IsNaN(z.Z) {
		t.Errorf("Normalize(zero) = %v, want NaN components", z)
	}
}

func TestLineIntersection(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 v2.Vec
		want           v2.Vec
		ok             bool
	}{
		{
			name: "diagonals",
			a1:   v2.Vec{X: 0, Y: 0}, a2: v2.Vec{X: 1, Y: 1},
			b1: v2.Vec{X: 0, Y: 1}, b2: v2.Vec{X: 1, Y: 0},
			want: v2.Vec{X: 0.5, Y: 0.5}, ok: true,
		},
		{
			name: "vertical against horizontal",
			a1:   v2.Vec{X: 2, Y: -1}, a2: v2.Vec{X: 2, Y: 5},
			b1: v2.Vec{X: -3, Y: 1}, b2: v2.Vec{X: 0, Y: 1},
			want: v2.Vec{X: 2, Y: 1}, ok: true,
		},
		{
			name: "parallel",
			a1:   v2.Vec{X: 0, Y: 0}, a2: v2.Vec{X: 1, Y: 0},
			b1: v2.Vec{X: 0, Y: 1}, b2: v2.Vec{X: 1, Y: 1},
			ok: false,
		},
		{
			name: "coincident",
			a1:   v2.Vec{X: 0, Y: 0}, a2: v2.Vec{X: 1, Y: 1},
			b1: v2.Vec{X: 2, Y: 2}, b2: v2.Vec{X: 3, Y: 3},
			ok: false,
		},
		{
			name: "degenerate segment",
			a1:   v2.Vec{X: 1, Y: 1}, a2: v2.Vec{X: 1, Y: 1},
			b1: v2.Vec{X: 0, Y: 0}, b2: v2.Vec{X: 1, Y: 0},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineIntersection(tt.a1, tt.a2, tt.b1, tt.b2)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				if IsFinite(got) {
					t.Errorf("expected non-finite point, got %v", got)
				}
				return
			}
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineIntersectionSlope(t *testing.T) {
	got := LineIntersectionSlope(
		v2.Vec{X: 0, Y: 0}, v2.Vec{X: 1, Y: 1},
		v2.Vec{X: 0, Y: 1}, v2.Vec{X: 1, Y: 0},
	)
	if !near(got.X, 0.5) || !near(got.Y, 0.5) {
		t.Errorf("got %v, want (0.5, 0.5)", got)
	}

	// Parallel and vertical inputs propagate non-finite values.
	parallel := LineIntersectionSlope(
		v2.Vec{X: 0, Y: 0}, v2.Vec{X: 1, Y: 0},
		v2.Vec{X: 0, Y: 1}, v2.Vec{X: 1, Y: 1},
	)
	if IsFinite(parallel) {
		t.Errorf("parallel lines: got finite %v", parallel)
	}
	vertical := LineIntersectionSlope(
		v2.Vec{X: 2, Y: 0}, v2.Vec{X: 2, Y: 1},
		v2.Vec{X: 0, Y: 0}, v2.Vec{X: 1, Y: 1},
	)
	if IsFinite(vertical) {
		t.Errorf("vertical line: got finite %v", vertical)
	}
}
