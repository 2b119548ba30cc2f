package controller

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// Body is the rigid body the controller drives. The controller reads its velocity at the start
// of every physics step and writes the resulting velocity back at the end of it; integrating the
// velocity into a position is left to the physics engine.
type Body interface {
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
	SetVelocity(v mgl32.Vec3)
	Mass() float32
}

// ConnectedBody is a rigid body the controller can stand on or be anchored to, such as a moving
// platform.
type ConnectedBody interface {
	// Kinematic returns true if the body is moved by code rather than by forces.
	Kinematic() bool
	Mass() float32
	TransformPoint(local mgl32.Vec3) mgl32.Vec3
	InverseTransformPoint(world mgl32.Vec3) mgl32.Vec3
	AngularVelocity() mgl32.Vec3
}

// GravityProvider returns the gravity at a position. *gravity.Field and every gravity.Source
// implement it.
type GravityProvider interface {
	GravityAt(pos mgl32.Vec3) mgl32.Vec3
}

// Prober performs ray casts against the world.
type Prober interface {
	// Raycast casts a ray from origin along the normalized direction up to maxDistance against
	// colliders on the layers of the mask. Triggers are only hit if hitTriggers is true. Colliders
	// containing the origin are never hit.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask game.LayerMask, hitTriggers bool) (RaycastHit, bool)
}

// RaycastHit is the closest hit of a ray cast.
type RaycastHit struct {
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Layer    int
	// Body is the body the hit collider is attached to, or nil for static colliders.
	Body ConnectedBody
}

// Collision is a collision between the controller and a collider during a physics step. It
// carries the normals of every contact point of the collision.
type Collision struct {
	Normals []mgl32.Vec3
	Layer   int
	Body    ConnectedBody
}

// Trigger is an overlap between the controller and a trigger collider during a physics step.
type Trigger struct {
	Layer int
	Body  ConnectedBody
}

// collisionInfo is a Collision with the angle between each normal and the up axis at the time
// it was reported.
type collisionInfo struct {
	normals []mgl32.Vec3
	angles  []float32
	layer   int
}
