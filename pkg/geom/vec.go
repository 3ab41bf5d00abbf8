// Package geom provides the small set of vector operations the mesh
// pipeline is built on. Vectors are sdfx vec/v2 and vec/v3 values so that
// they flow directly into sdf.M44 transforms.
//
// None of these functions guard against degenerate input. Normalizing a
// zero vector yields NaN components, and callers that can produce one are
// expected to tolerate it.
package geom

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Add returns a + b.
func Add(a, b v3.Vec) v3.Vec {
	return a.Add(b)
}

// Sub returns a - b.
func Sub(a, b v3.Vec) v3.Vec {
	return a.Sub(b)
}

// Dot returns the dot product of a and b.
func Dot(a, b v3.Vec) float64 {
	return a.Dot(b)
}

// Cross returns the cross product a x b.
func Cross(a, b v3.Vec) v3.Vec {
	return a.Cross(b)
}

// Scale returns v multiplied by k.
func Scale(v v3.Vec, k float64) v3.Vec {
	return v.MulScalar(k)
}

// Magnitude returns the Euclidean length of v.
func Magnitude(v v3.Vec) float64 {
	return v.Length()
}

// Normalize divides v by its magnitude. A zero vector produces NaN.
func Normalize(v v3.Vec) v3.Vec {
	m := Magnitude(v)
	return v3.Vec{X: v.X / m, Y: v.Y / m, Z: v.Z / m}
}

// XY drops the Z component of v.
func XY(v v3.Vec) v2.Vec {
	return v2.Vec{X: v.X, Y: v.Y}
}

// WithXY returns v with its X and Y components replaced by p.
func WithXY(v v3.Vec, p v2.Vec) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: v.Z}
}
