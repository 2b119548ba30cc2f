package controller

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// groundedState moves the controller along the ground. It is the fallback state and can always be
// entered.
type groundedState struct {
	nopState

	stepsOutsideGround int
	wantsToClimb       bool
}

func (s *groundedState) Enter(*Controller) {
	s.stepsOutsideGround = 0
	s.wantsToClimb = false
}

func (s *groundedState) Update(c *Controller) {
	if c.input.JumpPressed {
		c.RequestMode(ModeJumping)
	}
	s.wantsToClimb = c.input.ClimbHeld
}

func (s *groundedState) FixedUpdate(c *Controller) {
	if s.wantsToClimb {
		c.RequestMode(ModeClimbing)
	}
	if c.InWater() {
		c.RequestMode(ModeSwimming)
	}
	if c.OnGround() {
		s.stepsOutsideGround = 0
	} else if s.stepsOutsideGround++; s.stepsOutsideGround > game.InAirStepsOffset {
		c.RequestMode(ModeInAir)
	}

	speed := c.s.Ground.MaxSpeed
	if s.wantsToClimb {
		speed = c.s.Climb.MaxSpeed
	}
	movement := c.GetMovement(speed, c.s.Ground.MaxAcceleration, c.input.planar(), false)
	c.velocity = c.velocity.Add(movement).Add(s.downForce(c))
}

// downForce returns the part of gravity pressing the controller onto its contact surface, or the
// full gravity if there is no contact surface.
func (s *groundedState) downForce(c *Controller) mgl32.Vec3 {
	dt := c.dt()
	n := c.contactNormal
	if game.IsZero(n) {
		return c.gravityVec.Mul(dt)
	}
	return n.Mul(c.gravityVec.Dot(n) * dt)
}
