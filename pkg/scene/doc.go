// Package scene holds the render-facing state of the sketch tool: the two
// independently transformable objects (the swept mesh and the point light),
// the camera, lighting parameters, and the active shading mode.
//
// A Graph is owned by one controller and mutated from a single goroutine.
package scene
