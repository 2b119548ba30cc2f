package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// Platform is a body that colliders can be attached to. A kinematic platform follows its
// waypoints and rotates with its angular velocity, pushing controllers standing on it.
type Platform struct {
	game.Transform

	// Waypoints are visited in order at Speed units per second, looping back to the first one.
	Waypoints []mgl32.Vec3
	Speed     float32
	// Angular is the angular velocity in radians per second.
	Angular mgl32.Vec3

	mass      float32
	kinematic bool

	velocity mgl32.Vec3
	next     int
}

// NewPlatform returns a kinematic platform at the transform passed.
func NewPlatform(t game.Transform) *Platform {
	return &Platform{Transform: t, kinematic: true}
}

// NewDynamicPlatform returns a platform that is not kinematic and has the mass passed. Dynamic
// platforms move like kinematic ones in this world; only the mass rule of connected bodies
// treats them differently.
func NewDynamicPlatform(t game.Transform, mass float32) *Platform {
	return &Platform{Transform: t, mass: mass}
}

// Kinematic ...
func (p *Platform) Kinematic() bool {
	return p.kinematic
}

// Mass ...
func (p *Platform) Mass() float32 {
	return p.mass
}

// AngularVelocity ...
func (p *Platform) AngularVelocity() mgl32.Vec3 {
	return p.Angular
}

// Velocity returns the linear velocity of the platform during the last tick.
func (p *Platform) Velocity() mgl32.Vec3 {
	return p.velocity
}

// PointVelocity returns the velocity of the point passed if it were attached to the platform.
func (p *Platform) PointVelocity(point mgl32.Vec3) mgl32.Vec3 {
	return p.velocity.Add(p.Angular.Cross(point.Sub(p.Position)))
}

// tick advances the platform along its waypoints and rotates it.
func (p *Platform) tick(dt float32) {
	p.velocity = mgl32.Vec3{}
	if len(p.Waypoints) > 0 && dt > 0 {
		target := p.Waypoints[p.next%len(p.Waypoints)]
		delta := target.Sub(p.Position)
		step := p.Speed * dt
		if dist := delta.Len(); dist <= step {
			p.next = (p.next + 1) % len(p.Waypoints)
		} else {
			delta = delta.Mul(step / dist)
		}
		p.Position = p.Position.Add(delta)
		p.velocity = delta.Mul(1 / dt)
	}

	if speed := p.Angular.Len(); speed > mgl32.Epsilon {
		turn := mgl32.QuatRotate(speed*dt, p.Angular.Mul(1/speed))
		p.Rotation = turn.Mul(p.Rot()).Normalize()
	}
}
