package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// cubeFace is one face of the unit light cube: four corners in
// counter-clockwise order seen from outside, and the face normal.
type cubeFace struct {
	corners [4]v3.Vec
	normal  v3.Vec
}

var cubeFaces = [6]cubeFace{
	{ // front
		corners: [4]v3.Vec{{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}},
		normal:  v3.Vec{Z: 1},
	},
	{ // right
		corners: [4]v3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}},
		normal:  v3.Vec{X: 1},
	},
	{ // up
		corners: [4]v3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}},
		normal:  v3.Vec{Y: 1},
	},
	{ // left
		corners: [4]v3.Vec{{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}},
		normal:  v3.Vec{X: -1},
	},
	{ // down
		corners: [4]v3.Vec{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}},
		normal:  v3.Vec{Y: -1},
	},
	{ // back
		corners: [4]v3.Vec{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}},
		normal:  v3.Vec{Z: -1},
	},
}

// LightCube returns the 2x2x2 cube drawn at the light position. Every
// vertex is tagged TagLight so the pick pass can identify it.
func LightCube() *Mesh {
	verts := make([]Vertex, 0, 24)
	inds := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(verts))
		for _, c := range f.corners {
			verts = append(verts, Vertex{Position: c, Color: LightCubeColor, Normal: f.normal, Tag: TagLight})
		}
		inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	}
	return &Mesh{Vertices: verts, Indices: inds, Name: "light"}
}
