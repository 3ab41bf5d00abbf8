package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformState is the full placement of one scene object. Rotation holds
// Euler angles in degrees applied X, then Y, then Z.
type TransformState struct {
	Translate mgl32.Vec3 `json:"translate"`
	Rotation  mgl32.Vec3 `json:"rotation"`
	Shear     mgl32.Vec2 `json:"shear"`
	Scale     float32    `json:"scale"`
}

// Identity returns a transform with unit scale and nothing else applied.
func Identity() TransformState {
	return TransformState{Scale: 1}
}

// ShearMatrix returns the XY shear used by the model matrix:
// x' = x + sy*y, y' = sx*x + y.
func ShearMatrix(sx, sy float32) mgl32.Mat4 {
	// Column-major.
	return mgl32.Mat4{
		1, sx, 0, 0,
		sy, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ModelMatrix composes translate * rotX * rotY * rotZ * scale * shear.
func (t TransformState) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translate.X(), t.Translate.Y(), t.Translate.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y())))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())))
	m = m.Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
	return m.Mul4(ShearMatrix(t.Shear.X(), t.Shear.Y()))
}

// NormalMatrix returns the inverse transpose of the model matrix. A zero
// scale makes the model matrix singular; mgl32 then returns the zero matrix.
func (t TransformState) NormalMatrix() mgl32.Mat4 {
	return t.ModelMatrix().Inv().Transpose()
}

// TranslateBy adds a translation delta.
func (t *TransformState) TranslateBy(dx, dy, dz float32) {
	t.Translate = t.Translate.Add(mgl32.Vec3{dx, dy, dz})
}

// RotateBy adds Euler angle deltas in degrees.
func (t *TransformState) RotateBy(dx, dy, dz float32) {
	t.Rotation = t.Rotation.Add(mgl32.Vec3{dx, dy, dz})
}

// ShearBy adds shear deltas.
func (t *TransformState) ShearBy(dx, dy float32) {
	t.Shear = t.Shear.Add(mgl32.Vec2{dx, dy})
}

// ScaleBy adds a delta to the uniform scale. The result is not clamped and
// may reach zero or go negative.
func (t *TransformState) ScaleBy(d float32) {
	t.Scale += d
}
