package interact

import "github.com/chazu/tubesketch/pkg/scene"

// Status is a serializable snapshot of the controller.
type Status struct {
	State       string               `json:"state"`
	Selected    string               `json:"selected"`
	Shading     int                  `json:"shading"`
	ShadingName string               `json:"shadingName"`
	Points      int                  `json:"points"`
	Vertices    int                  `json:"vertices"`
	Triangles   int                  `json:"triangles"`
	Animations  map[string]string    `json:"animations"`
	Mesh        scene.TransformState `json:"mesh"`
	Light       scene.TransformState `json:"light"`
}

// Status returns a snapshot of the current state.
func (c *Controller) Status() Status {
	g := c.scene
	st := Status{
		State:       c.State().String(),
		Selected:    c.selected.String(),
		Shading:     int(g.Shading),
		ShadingName: g.Shading.String(),
		Points:      c.sketch.Len(),
		Animations:  map[string]string{},
		Mesh:        g.Mesh,
		Light:       g.Light,
	}
	if g.HasTube() {
		st.Vertices = g.Tube.VertexCount()
		st.Triangles = g.Tube.TriangleCount()
	}
	for _, a := range []Animation{AnimSpin, AnimSquare, AnimGravity} {
		st.Animations[a.String()] = c.anim.State(a).String()
	}
	return st
}
