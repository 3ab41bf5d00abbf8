// Package tessellate turns sketch input into drawable geometry: line-strip
// preview buffers while the polyline is being drawn, and the swept tube mesh
// once it is finalized.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/tubesketch/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrTooFewPoints is returned when a sketch with fewer than two points is
// finalized.
var ErrTooFewPoints = errors.New("sketch needs at least two points")

var previewNormal = v3.Vec{X: 1, Y: 1, Z: 1}

// Sketch accumulates polyline points in normalized device coordinates.
type Sketch struct {
	points []v2.Vec
}

// Add appends a point.
func (s *Sketch) Add(p v2.Vec) {
	s.points = append(s.points, p)
}

// Len returns the number of committed points.
func (s *Sketch) Len() int {
	return len(s.points)
}

// Points returns a copy of the committed points.
func (s *Sketch) Points() []v2.Vec {
	return append([]v2.Vec(nil), s.points...)
}

// Last returns the most recent point.
func (s *Sketch) Last() (v2.Vec, bool) {
	if len(s.points) == 0 {
		return v2.Vec{}, false
	}
	return s.points[len(s.points)-1], true
}

// Clear drops all points.
func (s *Sketch) Clear() {
	s.points = nil
}

func previewVertex(p v2.Vec, c kernel.Color) kernel.Vertex {
	return kernel.Vertex{
		Position: v3.Vec{X: p.X, Y: p.Y},
		Color:    c,
		Normal:   previewNormal,
	}
}

// Polyline returns the committed points as line-strip vertices on the z=0
// plane.
func Polyline(points []v2.Vec) []kernel.Vertex {
	if len(points) == 0 {
		return nil
	}
	out := make([]kernel.Vertex, len(points))
	for i, p := range points {
		out[i] = previewVertex(p, kernel.SketchColor)
	}
	return out
}

// RubberBand returns the two-vertex segment from the sketch's last point
// to the cursor, or nil when nothing is committed yet.
func (s *Sketch) RubberBand(cursor v2.Vec) []kernel.Vertex {
	last, ok := s.Last()
	if !ok {
		return nil
	}
	return []kernel.Vertex{
		previewVertex(last, kernel.RubberBandColor),
		previewVertex(cursor, kernel.RubberBandColor),
	}
}

// Finalize sweeps the sketch into a tube mesh.
func Finalize(points []v2.Vec, opts kernel.SweepOptions) (*kernel.Mesh, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("tessellate: %d point(s): %w", len(points), ErrTooFewPoints)
	}
	mesh := kernel.BuildSweptMesh(points, opts)
	if mesh.IsEmpty() {
		return nil, fmt.Errorf("tessellate: sweep of %d points produced no geometry", len(points))
	}
	return mesh, nil
}
