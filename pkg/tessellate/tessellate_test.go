package tessellate_test

import (
	"errors"
	"testing"

	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/chazu/tubesketch/pkg/tessellate"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestSketchAccumulates(t *testing.T) {
	var s tessellate.Sketch
	if _, ok := s.Last(); ok {
		t.Fatal("empty sketch should have no last point")
	}
	s.Add(v2.Vec{X: 0.1, Y: 0.2})
	s.Add(v2.Vec{X: -0.3, Y: 0.4})

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	last, ok := s.Last()
	if !ok || last != (v2.Vec{X: -0.3, Y: 0.4}) {
		t.Errorf("Last = %v, %v", last, ok)
	}

	pts := s.Points()
	pts[0] = v2.Vec{X: 9, Y: 9}
	if s.Points()[0] != (v2.Vec{X: 0.1, Y: 0.2}) {
		t.Error("Points should return a copy")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}

func TestPolyline(t *testing.T) {
	pts := []v2.Vec{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}}
	verts := tessellate.Polyline(pts)
	if len(verts) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(verts))
	}
	for i, v := range verts {
		if v.Position.X != pts[i].X || v.Position.Y != pts[i].Y || v.Position.Z != 0 {
			t.Errorf("vertex %d position = %v", i, v.Position)
		}
		if v.Color != kernel.SketchColor {
			t.Errorf("vertex %d color = %v, want sketch color", i, v.Color)
		}
		if v.Tag != kernel.TagNone {
			t.Errorf("vertex %d tag = %v, want none", i, v.Tag)
		}
	}
	if tessellate.Polyline(nil) != nil {
		t.Error("empty polyline should be nil")
	}
}

func TestRubberBand(t *testing.T) {
	var s tessellate.Sketch
	if s.RubberBand(v2.Vec{X: 1}) != nil {
		t.Error("rubber band with no points should be nil")
	}
	s.Add(v2.Vec{X: 0, Y: 0})
	s.Add(v2.Vec{X: 0.2, Y: 0.3})
	band := s.RubberBand(v2.Vec{X: -0.5, Y: 0.5})
	if len(band) != 2 {
		t.Fatalf("band length = %d, want 2", len(band))
	}
	if band[0].Position.X != 0.2 || band[0].Position.Y != 0.3 {
		t.Errorf("band start = %v, want last point", band[0].Position)
	}
	if band[1].Position.X != -0.5 || band[1].Position.Y != 0.5 {
		t.Errorf("band end = %v, want cursor", band[1].Position)
	}
	if band[0].Color != kernel.RubberBandColor {
		t.Errorf("band color = %v", band[0].Color)
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name      string
		points    []v2.Vec
		wantErr   bool
		wantVerts int
	}{
		{"empty", nil, true, 0},
		{"single point", []v2.Vec{{X: 0.1, Y: 0.1}}, true, 0},
		{"two points", []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}}, false, 2*13 + 2*13 + 2},
		{"three points", []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, false, 2*2*13 + 2*13 + 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tessellate.Finalize(tt.points, kernel.DefaultSweepOptions())
			if tt.wantErr {
				if !errors.Is(err, tessellate.ErrTooFewPoints) {
					t.Fatalf("err = %v, want ErrTooFewPoints", err)
				}
				if m != nil {
					t.Error("mesh should be nil on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.VertexCount() != tt.wantVerts {
				t.Errorf("vertex count = %d, want %d", m.VertexCount(), tt.wantVerts)
			}
		})
	}
}
