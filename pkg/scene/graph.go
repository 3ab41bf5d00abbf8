package scene

import (
	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// Object names one of the two transformable scene objects.
type Object int

const (
	ObjectMesh Object = iota
	ObjectLight
)

func (o Object) String() string {
	switch o {
	case ObjectMesh:
		return "mesh"
	case ObjectLight:
		return "light"
	default:
		return "unknown"
	}
}

// Camera is a fixed look-at perspective camera.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

// View returns the look-at view matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Lighting holds the light and material parameters uploaded as uniforms.
type Lighting struct {
	Color            mgl32.Vec3
	Ambient          mgl32.Vec3
	Specular         mgl32.Vec3
	SpecularConstant float32
}

// Options seed a new Graph.
type Options struct {
	Camera     Camera
	Lighting   Lighting
	Shading    ShadingMode
	LightStart TransformState
}

// DefaultOptions returns the startup scene: camera at z=5 looking down -Z,
// white light at (1,1,1) drawn at one tenth scale, dark blue ambient and
// green specular.
func DefaultOptions() Options {
	return Options{
		Camera: Camera{
			Eye:    mgl32.Vec3{0, 0, 5},
			Center: mgl32.Vec3{0, 0, -100},
			Up:     mgl32.Vec3{0, 1, 0},
			FovY:   30,
			Near:   1,
			Far:    100,
		},
		Lighting: Lighting{
			Color:            mgl32.Vec3{1, 1, 1},
			Ambient:          mgl32.Vec3{0, 0, 0.2},
			Specular:         mgl32.Vec3{0, 1, 0},
			SpecularConstant: 8,
		},
		Shading:    ShadingGouraud,
		LightStart: TransformState{Translate: mgl32.Vec3{1, 1, 1}, Scale: 0.1},
	}
}

// Graph is the scene: two transform states, the geometry they place, and
// the global render parameters.
type Graph struct {
	Mesh  TransformState
	Light TransformState

	Camera   Camera
	Lighting Lighting
	Shading  ShadingMode

	// Tube is nil until a sketch has been finalized.
	Tube      *kernel.Mesh
	LightCube *kernel.Mesh

	opts Options
}

// New creates a scene with no tube.
func New(opts Options) *Graph {
	g := &Graph{
		LightCube: kernel.LightCube(),
		opts:      opts,
	}
	g.Reset()
	return g
}

// Reset drops the tube and restores transforms and shading to their
// starting values.
func (g *Graph) Reset() {
	g.Mesh = Identity()
	g.Light = g.opts.LightStart
	g.Camera = g.opts.Camera
	g.Lighting = g.opts.Lighting
	g.Shading = g.opts.Shading
	g.Tube = nil
}

// Transform returns the transform state of the given object.
func (g *Graph) Transform(o Object) *TransformState {
	if o == ObjectLight {
		return &g.Light
	}
	return &g.Mesh
}

// LightPosition is the light's world position as seen by the shaders.
func (g *Graph) LightPosition() mgl32.Vec3 {
	return g.Light.Translate
}

// HasTube reports whether a finalized mesh is present.
func (g *Graph) HasTube() bool {
	return !g.Tube.IsEmpty()
}

// SetAmbient sets the ambient color from 0..255 channel values.
func (g *Graph) SetAmbient(r, gr, b int) {
	g.Lighting.Ambient = mgl32.Vec3{Channel(r), Channel(gr), Channel(b)}
}

// SetSpecular sets the specular color from 0..255 channel values.
func (g *Graph) SetSpecular(r, gr, b int) {
	g.Lighting.Specular = mgl32.Vec3{Channel(r), Channel(gr), Channel(b)}
}

// SetSpecularConstant sets the specular exponent.
func (g *Graph) SetSpecularConstant(n float32) {
	g.Lighting.SpecularConstant = n
}

// Channel clamps an 8-bit color channel to [0,255] and scales it to [0,1].
func Channel(v int) float32 {
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return float32(v) / 255
}
