// Package kernel generates the triangle meshes the renderer draws: the
// swept tube built from a sketched polyline and the small cube that marks
// the point light. Meshes are plain interleaved vertex records plus a flat
// index list; the package has no knowledge of the graphics backend.
package kernel

// VertexSize is the number of float32 values in one packed vertex record:
// position (3), color (4), normal (3).
const VertexSize = 10

// Attribute offsets, in floats, within a packed vertex record.
const (
	PositionOffset = 0
	ColorOffset    = 3
	NormalOffset   = 7
)

// Tag identifies which scene object a vertex belongs to. It is carried as
// data on every vertex and only folded into the color alpha channel when
// the vertex is packed for the GPU, where the color-pick pass reads it back.
type Tag int

const (
	TagNone  Tag = iota // sketch lines, debug geometry
	TagMesh             // swept tube body and caps
	TagLight            // light indicator cube
)

// Alpha bytes written for tagged vertices. Both are visually near-opaque.
const (
	MeshAlpha  uint8 = 254
	LightAlpha uint8 = 253
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagMesh:
		return "mesh"
	case TagLight:
		return "light"
	default:
		return "unknown"
	}
}

// Alpha returns the packed alpha value for tagged vertices and reports
// whether the tag overrides the vertex color's own alpha.
func (t Tag) Alpha() (float32, bool) {
	switch t {
	case TagMesh:
		return float32(MeshAlpha) / 255, true
	case TagLight:
		return float32(LightAlpha) / 255, true
	default:
		return 0, false
	}
}

// ClassifyAlpha maps an alpha byte read back from the framebuffer to the
// tag that produced it. Any other value is background.
func ClassifyAlpha(a uint8) Tag {
	switch a {
	case LightAlpha:
		return TagLight
	case MeshAlpha:
		return TagMesh
	default:
		return TagNone
	}
}

// Color is an RGBA color with components in [0,1].
type Color [4]float32

// Palette used by the generated geometry.
var (
	MeshColor       = Color{1, 0, 0, 1}
	LightCubeColor  = Color{1, 1, 0, 1}
	SketchColor     = Color{0, 1, 0, 1}
	RubberBandColor = Color{1, 0, 0, 1}
	NormalColor     = Color{1, 0, 0, 1}
)
