package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vertex is one mesh vertex before packing.
type Vertex struct {
	Position v3.Vec
	Color    Color
	Normal   v3.Vec
	Tag      Tag
}

// Layout records how a swept mesh's vertex list is organized so callers can
// address rings without recomputing offsets.
type Layout struct {
	Segments   int // number of tube segments
	Resolution int // angular steps per ring; each ring has Resolution+1 vertices
}

// RingSize returns the number of vertices in one ring.
func (l Layout) RingSize() int {
	return l.Resolution + 1
}

// SegmentStride returns the number of vertices one tube segment occupies.
func (l Layout) SegmentStride() int {
	return 2 * l.RingSize()
}

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices []Vertex `json:"-"`
	Indices  []uint32 `json:"indices"` // [i0,i1,i2, ...] triangles
	Layout   Layout   `json:"-"`
	Name     string   `json:"name"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0
}

// Buffer packs the vertices into interleaved records of VertexSize floats.
// Tagged vertices carry their tag in the alpha channel.
func (m *Mesh) Buffer() []float32 {
	return PackVertices(m.Vertices)
}

// PackVertices packs vertices into interleaved records of VertexSize floats.
func PackVertices(verts []Vertex) []float32 {
	buf := make([]float32, 0, len(verts)*VertexSize)
	for _, v := range verts {
		alpha := v.Color[3]
		if a, ok := v.Tag.Alpha(); ok {
			alpha = a
		}
		buf = append(buf,
			float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z),
			v.Color[0], v.Color[1], v.Color[2], alpha,
			float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z),
		)
	}
	return buf
}

// Positions returns a flat [x0,y0,z0, x1,y1,z1, ...] position array.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z))
	}
	return out
}

// Normals returns a flat [nx0,ny0,nz0, ...] normal array.
func (m *Mesh) Normals() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z))
	}
	return out
}

// FarRing returns the positions of segment i's ring at the segment's far
// end (the end nearer the next sketch point).
func (m *Mesh) FarRing(i int) []v3.Vec {
	return m.ring(i, 0)
}

// NearRing returns the positions of segment i's ring at its near end.
func (m *Mesh) NearRing(i int) []v3.Vec {
	return m.ring(i, 1)
}

func (m *Mesh) ring(i, side int) []v3.Vec {
	if i < 0 || i >= m.Layout.Segments {
		return nil
	}
	base := i * m.Layout.SegmentStride()
	out := make([]v3.Vec, m.Layout.RingSize())
	for k := range out {
		out[k] = m.Vertices[base+2*k+side].Position
	}
	return out
}
