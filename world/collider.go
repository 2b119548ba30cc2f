package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/game"
)

// Collider is a box in the world. A collider attached to a platform moves and rotates with it,
// and its box is relative to the platform.
type Collider struct {
	Box   cube.BBox
	Layer int
	// Trigger colliders never block bodies and are reported as overlaps.
	Trigger  bool
	Platform *Platform
}

// transform returns the transform of the space the box of the collider is defined in.
func (c *Collider) transform() game.Transform {
	if c.Platform == nil {
		return game.Transform{}
	}
	return c.Platform.Transform
}

// body returns the platform of the collider as a connected body, or nil if the collider is
// static.
func (c *Collider) body() controller.ConnectedBody {
	if c.Platform == nil {
		return nil
	}
	return c.Platform
}

// pointVelocity returns the velocity of the collider surface at the point passed.
func (c *Collider) pointVelocity(point mgl32.Vec3) mgl32.Vec3 {
	if c.Platform == nil {
		return mgl32.Vec3{}
	}
	return c.Platform.PointVelocity(point)
}

// separation returns the world space normal pointing from the collider towards the sphere passed,
// and the distance between the sphere and the box surface. The distance is negative if the
// sphere penetrates the box.
func (c *Collider) separation(center mgl32.Vec3, radius float32) (mgl32.Vec3, float32) {
	t := c.transform()
	local := t.InverseTransformPoint(center)

	if !c.Box.Vec3Within(local) {
		closest := clampToBox(c.Box, local)
		diff := local.Sub(closest)
		dist := diff.Len()
		if dist > mgl32.Epsilon {
			return t.TransformDirection(diff.Mul(1 / dist)), dist - radius
		}
	}
	n, depth := nearestFace(c.Box, local)
	return t.TransformDirection(n), -depth - radius
}

// clampToBox returns the point of the box closest to the point passed.
func clampToBox(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	min, max := bb.Min(), bb.Max()
	return mgl32.Vec3{
		mgl32.Clamp(p.X(), min.X(), max.X()),
		mgl32.Clamp(p.Y(), min.Y(), max.Y()),
		mgl32.Clamp(p.Z(), min.Z(), max.Z()),
	}
}

// nearestFace returns the outward normal of the face of the box nearest to the point passed and
// the distance to it.
func nearestFace(bb cube.BBox, p mgl32.Vec3) (mgl32.Vec3, float32) {
	min, max := bb.Min(), bb.Max()
	var (
		normal mgl32.Vec3
		best   = float32(math32.MaxFloat32)
	)
	for axis := 0; axis < 3; axis++ {
		if d := math32.Abs(p[axis] - min[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
		if d := math32.Abs(max[axis] - p[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
	}
	return normal, best
}
