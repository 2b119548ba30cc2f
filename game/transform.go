package game

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position and rotation in world space. The zero Transform is the identity.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Rot returns the rotation of the transform, substituting the identity for a zero quaternion.
func (t Transform) Rot() mgl32.Quat {
	if t.Rotation.W == 0 && IsZero(t.Rotation.V) {
		return mgl32.QuatIdent()
	}
	return t.Rotation
}

// TransformPoint converts a point from local to world space.
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rot().Rotate(p).Add(t.Position)
}

// InverseTransformPoint converts a point from world to local space.
func (t Transform) InverseTransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rot().Inverse().Rotate(p.Sub(t.Position))
}

// TransformDirection rotates a direction from local to world space.
func (t Transform) TransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return t.Rot().Rotate(d)
}

// InverseTransformDirection rotates a direction from world to local space.
func (t Transform) InverseTransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return t.Rot().Inverse().Rotate(d)
}

// Up returns the local Y axis in world space.
func (t Transform) Up() mgl32.Vec3 {
	return t.TransformDirection(mgl32.Vec3{0, 1, 0})
}
