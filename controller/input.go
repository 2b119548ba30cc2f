package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Input is the player input of a single frame.
type Input struct {
	// Movement is the planar movement input, X to the right and Y forward.
	Movement mgl32.Vec2
	// Vertical is the up/down input used while swimming.
	Vertical float32

	JumpPressed bool
	JumpHeld    bool
	ClimbHeld   bool
}

// Clamped returns the input with the movement vector clamped to a length of one and the
// vertical axis clamped to [-1, 1].
func (in Input) Clamped() Input {
	if l := in.Movement.Len(); l > 1 {
		in.Movement = in.Movement.Mul(1 / l)
	}
	in.Vertical = mgl32.Clamp(in.Vertical, -1, 1)
	if math32.IsNaN(in.Vertical) {
		in.Vertical = 0
	}
	return in
}

// planar returns the movement input as a vector in movement axis space.
func (in Input) planar() mgl32.Vec3 {
	return mgl32.Vec3{in.Movement.X(), 0, in.Movement.Y()}
}

// spatial returns the movement and vertical input as a vector in movement axis space.
func (in Input) spatial() mgl32.Vec3 {
	return mgl32.Vec3{in.Movement.X(), in.Vertical, in.Movement.Y()}
}
