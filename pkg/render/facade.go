// Package render draws the scene through a narrow graphics facade. The
// facade mirrors the handful of GL calls the tool needs, so the same draw
// and pick routines run against a real context or against a Recorder that
// ships the command list to the frontend.
package render

import "fmt"

// Primitive is the topology of a draw call.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	LineStrip
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case LineStrip:
		return "line-strip"
	case Points:
		return "points"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// MarshalText encodes the primitive by name.
func (p Primitive) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a primitive name.
func (p *Primitive) UnmarshalText(b []byte) error {
	switch string(b) {
	case "triangles":
		*p = Triangles
	case "lines":
		*p = Lines
	case "line-strip":
		*p = LineStrip
	case "points":
		*p = Points
	default:
		return fmt.Errorf("unknown primitive %q", b)
	}
	return nil
}

// Facade is the graphics surface. Vertex data is interleaved
// kernel.VertexSize floats per vertex.
type Facade interface {
	UploadVertices(data []float32)
	UploadIndices(data []uint32)
	SetUniform(name string, value any)
	DrawIndexed(p Primitive, count int)
	DrawArrays(p Primitive, first, count int)
	Clear(color, depth bool)
	// ReadPixel returns the RGBA bytes at a framebuffer position with the
	// origin at the bottom-left.
	ReadPixel(x, y int) [4]uint8
}

// Uniform names shared with the shader program.
const (
	UniformModel            = "u_ModelMatrix"
	UniformNormal           = "u_NormalMatrix"
	UniformView             = "u_ViewMatrix"
	UniformProjection       = "u_ProjMatrix"
	UniformShadingStyle     = "u_ShadingStyle"
	UniformLightColor       = "u_LightColor"
	UniformLightPosition    = "u_LightPosition"
	UniformViewPosition     = "u_ViewPosition"
	UniformAmbientColor     = "u_AmbientColor"
	UniformSpecularColor    = "u_SpecularColor"
	UniformSpecularConstant = "u_SpecularConstant"
	UniformSelected         = "u_Selected_Click"
	UniformLight            = "u_Light"
)
