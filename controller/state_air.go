package controller

import "github.com/go-gl/mathgl/mgl32"

// airState moves the controller through the air. The falling variant applies the fall multiplier
// to gravity unconditionally.
type airState struct {
	nopState
	falling bool
}

func (s *airState) Update(c *Controller) {
	if c.input.JumpPressed {
		c.RequestMode(ModeJumping)
	}
	if c.input.ClimbHeld {
		c.RequestMode(ModeClimbing)
	}
}

func (s *airState) FixedUpdate(c *Controller) {
	s.transition(c)
	c.velocity = c.velocity.Add(s.movement(c))
}

// transition requests the mode that should follow the airborne mode, if any.
func (s *airState) transition(c *Controller) {
	if c.input.ClimbHeld {
		c.RequestMode(ModeClimbing)
	}
	if c.InWater() {
		c.RequestMode(ModeSwimming)
	} else if c.OnGround() || c.CheckSteepContacts() {
		c.RequestMode(ModeGrounded)
	} else if !s.falling && !c.OnSteep() && c.IsFalling() {
		c.RequestMode(ModeFalling)
	}
}

// movement returns the air movement and gravity of a step. Against a steep wall gravity pulls
// along the wall.
func (s *airState) movement(c *Controller) mgl32.Vec3 {
	g := c.gravityVec
	if c.OnSteep() {
		g = c.SlopeDirection().Mul(g.Len())
	}
	multiplier := float32(1)
	if s.falling || c.IsFalling() || c.OnSteep() {
		multiplier = c.s.Air.FallMultiplier
	}
	movement := c.GetMovement(c.s.Air.MaxSpeed, c.s.Air.MaxAcceleration, c.input.planar(), false)
	return movement.Add(g.Mul(c.dt() * multiplier))
}
