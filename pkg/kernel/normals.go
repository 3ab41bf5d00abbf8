package kernel

import (
	"github.com/chazu/tubesketch/pkg/geom"
)

// NormalLines returns line-list vertices (two per mesh vertex) running from
// each vertex along its normalized normal for the given length. Used to
// inspect the generated normals.
func NormalLines(m *Mesh, length float64) []Vertex {
	if m.IsEmpty() {
		return nil
	}
	out := make([]Vertex, 0, 2*len(m.Vertices))
	for _, v := range m.Vertices {
		tip := geom.Add(v.Position, geom.Scale(geom.Normalize(v.Normal), length))
		out = append(out,
			Vertex{Position: v.Position, Color: NormalColor, Normal: v.Normal},
			Vertex{Position: tip, Color: NormalColor, Normal: v.Normal},
		)
	}
	return out
}
