package render

import (
	"github.com/chazu/tubesketch/pkg/kernel"
	"github.com/chazu/tubesketch/pkg/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameParams are the per-frame values that do not live in the scene.
type FrameParams struct {
	Aspect float32
	// Selected is the selection code highlighted by the shader:
	// 0 none, 1 mesh, 2 light.
	Selected int
}

func setGlobals(f Facade, g *scene.Graph, p FrameParams) {
	f.SetUniform(UniformView, g.Camera.View())
	f.SetUniform(UniformProjection, g.Camera.Projection(p.Aspect))
	f.SetUniform(UniformShadingStyle, int(g.Shading))
	f.SetUniform(UniformLightColor, g.Lighting.Color)
	f.SetUniform(UniformLightPosition, g.LightPosition())
	f.SetUniform(UniformViewPosition, g.Camera.Eye)
	f.SetUniform(UniformAmbientColor, g.Lighting.Ambient)
	f.SetUniform(UniformSpecularColor, g.Lighting.Specular)
	f.SetUniform(UniformSpecularConstant, g.Lighting.SpecularConstant)
	f.SetUniform(UniformSelected, p.Selected)
	f.SetUniform(UniformLight, 0)
}

func drawMesh(f Facade, m *kernel.Mesh, ts scene.TransformState) {
	f.UploadVertices(m.Buffer())
	f.UploadIndices(m.Indices)
	f.SetUniform(UniformModel, ts.ModelMatrix())
	f.SetUniform(UniformNormal, ts.NormalMatrix())
	f.DrawIndexed(Triangles, len(m.Indices))
}

// DrawScene clears the target and draws the tube (when present) followed by
// the light cube. The light cube is drawn with u_Light raised so the shader
// skips lighting it.
func DrawScene(f Facade, g *scene.Graph, p FrameParams) {
	f.Clear(true, true)
	drawObjects(f, g, p)
}

func drawObjects(f Facade, g *scene.Graph, p FrameParams) {
	setGlobals(f, g, p)
	if g.HasTube() {
		drawMesh(f, g.Tube, g.Mesh)
	}
	if !g.LightCube.IsEmpty() {
		f.SetUniform(UniformLight, 1)
		drawMesh(f, g.LightCube, g.Light)
		f.SetUniform(UniformLight, 0)
	}
}

// DrawSketch clears the target and draws sketch preview vertices: the
// committed points as a line strip plus an optional rubber band segment.
func DrawSketch(f Facade, g *scene.Graph, p FrameParams, polyline, rubber []kernel.Vertex) {
	f.Clear(true, true)
	setGlobals(f, g, p)
	f.SetUniform(UniformShadingStyle, int(scene.ShadingFlat))
	f.SetUniform(UniformModel, mgl32.Ident4())
	f.SetUniform(UniformNormal, mgl32.Ident4())
	drawLines(f, polyline)
	drawLines(f, rubber)
}

func drawLines(f Facade, verts []kernel.Vertex) {
	if len(verts) == 0 {
		return
	}
	f.UploadVertices(kernel.PackVertices(verts))
	if len(verts) == 1 {
		f.DrawArrays(Points, 0, 1)
		return
	}
	f.DrawArrays(LineStrip, 0, len(verts))
}

// Pick redraws the scene over a color-only clear and classifies the pixel
// under (x, y) by its alpha byte. x and y are framebuffer coordinates with a
// bottom-left origin. The desktop frontend reads its pixel before the press
// is sent and stages it, so there the recorded pass is never read back.
func Pick(f Facade, g *scene.Graph, p FrameParams, x, y int) kernel.Tag {
	f.Clear(true, false)
	drawObjects(f, g, p)
	px := f.ReadPixel(x, y)
	return kernel.ClassifyAlpha(px[3])
}

// DrawNormals overlays the tube's normals as flat line segments of the given
// length, placed with the mesh transform.
func DrawNormals(f Facade, g *scene.Graph, length float64) {
	if !g.HasTube() {
		return
	}
	lines := kernel.NormalLines(g.Tube, length)
	f.SetUniform(UniformShadingStyle, int(scene.ShadingFlat))
	f.SetUniform(UniformModel, g.Mesh.ModelMatrix())
	f.SetUniform(UniformNormal, g.Mesh.NormalMatrix())
	f.UploadVertices(kernel.PackVertices(lines))
	f.DrawArrays(Lines, 0, len(lines))
	f.SetUniform(UniformShadingStyle, int(g.Shading))
}
