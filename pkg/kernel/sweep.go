package kernel

import (
	"math"

	"github.com/chazu/tubesketch/pkg/geom"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Defaults for SweepOptions.
const (
	DefaultRadius     = 0.2
	DefaultResolution = 12
)

// SweepOptions control tube generation.
type SweepOptions struct {
	Radius     float64   // tube radius
	Resolution int       // angular steps around the tube
	Frame      FrameMode // segment angle derivation
}

// DefaultSweepOptions returns the options the sketch tool starts with.
func DefaultSweepOptions() SweepOptions {
	return SweepOptions{Radius: DefaultRadius, Resolution: DefaultResolution, Frame: FrameAtan2}
}

func (o SweepOptions) withDefaults() SweepOptions {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Resolution <= 0 {
		o.Resolution = DefaultResolution
	}
	return o
}

// tube is one segment's geometry before joints are resolved.
type tube struct {
	frame             SegmentFrame
	far, near         []v3.Vec
	farNorm, nearNorm []v3.Vec
}

// ringOffsets returns the local (y, z) offsets of a ring's n+1 vertices.
// The last entry closes the ring at 2*pi.
func ringOffsets(radius float64, n int) []v2.Vec {
	dtheta := 2 * math.Pi / float64(n)
	out := make([]v2.Vec, n+1)
	for k := range out {
		theta := float64(k) * dtheta
		out[k] = v2.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return out
}

// buildTube places a ring at both ends of the segment's frame. Normals are
// radial and left unnormalized.
func buildTube(f SegmentFrame, offsets []v2.Vec) tube {
	t := tube{
		frame:    f,
		far:      make([]v3.Vec, len(offsets)),
		near:     make([]v3.Vec, len(offsets)),
		farNorm:  make([]v3.Vec, len(offsets)),
		nearNorm: make([]v3.Vec, len(offsets)),
	}
	farCenter := f.Far()
	nearCenter := f.Near()
	half := f.Length / 2
	for k, o := range offsets {
		t.far[k] = f.Point(half, o.X, o.Y)
		t.near[k] = f.Point(-half, o.X, o.Y)
		t.farNorm[k] = geom.Sub(t.far[k], farCenter)
		t.nearNorm[k] = geom.Sub(t.near[k], nearCenter)
	}
	return t
}

// jointPoint resolves one miter vertex: the XY intersection of the incoming
// segment's edge line with the outgoing segment's edge line at the same
// ring index.
func jointPoint(in, out tube, k int, mode FrameMode) v2.Vec {
	a1, a2 := geom.XY(in.far[k]), geom.XY(in.near[k])
	b1, b2 := geom.XY(out.far[k]), geom.XY(out.near[k])

	if mode == FrameLegacy {
		return geom.LineIntersectionSlope(a1, a2, b1, b2)
	}
	p, ok := geom.LineIntersection(a1, a2, b1, b2)
	if !ok {
		// Parallel edges: the incoming end ring already sits on the joint.
		return a1
	}
	return p
}

// miter returns copies of the tubes whose shared joint rings have been
// moved onto the edge-line intersections. Only X and Y are re-solved.
func miter(tubes []tube, mode FrameMode) []tube {
	out := make([]tube, len(tubes))
	for i, t := range tubes {
		out[i] = t
		out[i].far = append([]v3.Vec(nil), t.far...)
		out[i].near = append([]v3.Vec(nil), t.near...)
	}
	for i := 0; i+1 < len(tubes); i++ {
		for k := range tubes[i].far {
			p := jointPoint(tubes[i], tubes[i+1], k, mode)
			out[i].far[k] = geom.WithXY(out[i].far[k], p)
			out[i+1].near[k] = geom.WithXY(out[i+1].near[k], p)
		}
	}
	return out
}

// tubeVertices interleaves a tube's rings as far0, near0, far1, near1, ...
func tubeVertices(t tube) []Vertex {
	verts := make([]Vertex, 0, 2*len(t.far))
	for k := range t.far {
		verts = append(verts,
			Vertex{Position: t.far[k], Color: MeshColor, Normal: t.farNorm[k], Tag: TagMesh},
			Vertex{Position: t.near[k], Color: MeshColor, Normal: t.nearNorm[k], Tag: TagMesh},
		)
	}
	return verts
}

// tubeIndices emits two triangles per angular step for the segment whose
// first vertex sits at base.
func tubeIndices(base uint32, n int) []uint32 {
	inds := make([]uint32, 0, 6*n)
	for k := 0; k < n; k++ {
		j := base + uint32(2*k)
		inds = append(inds,
			j, j+1, j+2,
			j+2, j+1, j+3,
		)
	}
	return inds
}

// capGeometry closes both open ends of the tube chain. Rims are rebuilt
// from the end frames with flat normals along the tube axis pointing away
// from the body; the two fan centers follow both rims.
func capGeometry(first, last SegmentFrame, offsets []v2.Vec, base uint32) ([]Vertex, []uint32) {
	start := first.Near()
	end := last.Far()
	startNorm := geom.Sub(start, first.Far())
	endNorm := geom.Sub(end, last.Near())

	n := len(offsets) - 1
	verts := make([]Vertex, 0, 2*len(offsets)+2)
	for _, o := range offsets {
		verts = append(verts, Vertex{Position: first.Point(-first.Length/2, o.X, o.Y), Color: MeshColor, Normal: startNorm, Tag: TagMesh})
	}
	for _, o := range offsets {
		verts = append(verts, Vertex{Position: last.Point(last.Length/2, o.X, o.Y), Color: MeshColor, Normal: endNorm, Tag: TagMesh})
	}
	verts = append(verts,
		Vertex{Position: start, Color: MeshColor, Normal: startNorm, Tag: TagMesh},
		Vertex{Position: end, Color: MeshColor, Normal: endNorm, Tag: TagMesh},
	)

	total := base + uint32(len(verts))
	startCenter := total - 2
	endCenter := total - 1

	inds := make([]uint32, 0, 6*n)
	rim := base
	for i := rim; i < rim+uint32(n); i++ {
		inds = append(inds, i+1, i, startCenter)
	}
	rim += uint32(n + 1)
	for i := rim; i < rim+uint32(n); i++ {
		inds = append(inds, i, i+1, endCenter)
	}
	return verts, inds
}

// BuildSweptMesh sweeps a circular cross-section along the polyline through
// points, mitering internal joints and capping both ends. Fewer than two
// points yield an empty mesh. Degenerate input is not rejected; it shows
// up as collapsed or non-finite vertices.
func BuildSweptMesh(points []v2.Vec, opts SweepOptions) *Mesh {
	opts = opts.withDefaults()
	n := opts.Resolution
	layout := Layout{Resolution: n}
	if len(points) < 2 {
		return &Mesh{Layout: layout, Name: "tube"}
	}

	offsets := ringOffsets(opts.Radius, n)
	tubes := make([]tube, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		f := BuildSegmentFrame(points[i], points[i+1], opts.Frame)
		tubes = append(tubes, buildTube(f, offsets))
	}
	tubes = miter(tubes, opts.Frame)
	layout.Segments = len(tubes)

	var verts []Vertex
	var inds []uint32
	for _, t := range tubes {
		base := uint32(len(verts))
		verts = append(verts, tubeVertices(t)...)
		inds = append(inds, tubeIndices(base, n)...)
	}

	capVerts, capInds := capGeometry(tubes[0].frame, tubes[len(tubes)-1].frame, offsets, uint32(len(verts)))
	verts = append(verts, capVerts...)
	inds = append(inds, capInds...)

	return &Mesh{Vertices: verts, Indices: inds, Layout: layout, Name: "tube"}
}
