package world

import "github.com/go-gl/mathgl/mgl32"

// Body is a sphere moved by the world. It is the body a controller drives.
type Body struct {
	pos, vel     mgl32.Vec3
	radius, mass float32
}

// NewBody returns a body at rest at the position passed.
func NewBody(pos mgl32.Vec3, radius, mass float32) *Body {
	return &Body{pos: pos, radius: radius, mass: mass}
}

// Position ...
func (b *Body) Position() mgl32.Vec3 {
	return b.pos
}

// SetPosition teleports the body to the position passed.
func (b *Body) SetPosition(pos mgl32.Vec3) {
	b.pos = pos
}

// Velocity ...
func (b *Body) Velocity() mgl32.Vec3 {
	return b.vel
}

// SetVelocity ...
func (b *Body) SetVelocity(v mgl32.Vec3) {
	b.vel = v
}

// Mass ...
func (b *Body) Mass() float32 {
	return b.mass
}

// Radius ...
func (b *Body) Radius() float32 {
	return b.radius
}
