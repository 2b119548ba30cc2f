package controller

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/gravctl/game"
)

// swimmingState moves the controller through water. Speed and acceleration blend from the ground
// or air values towards the swim values as the body submerges, and drag and buoyancy scale with
// submergence.
type swimmingState struct {
	nopState
}

func (s *swimmingState) CanEnter(c *Controller) bool {
	return c.InWater() && c.evaluateSubmergence() > game.MinimumSubmergence
}

func (s *swimmingState) FixedUpdate(c *Controller) {
	sub := c.evaluateSubmergence()
	if sub <= game.MinimumSubmergence {
		c.requestFallback()
	}

	speed, accel := c.s.Air.MaxSpeed, c.s.Air.MaxAcceleration
	if c.OnGround() {
		speed, accel = c.s.Ground.MaxSpeed, c.s.Ground.MaxAcceleration
	}
	swimFactor := math32.Min(1, sub/c.s.Swim.Threshold)
	speed = game.Lerp(speed, c.s.Swim.MaxSpeed, swimFactor)
	accel = game.Lerp(accel, c.s.Swim.MaxAcceleration, swimFactor)

	movement := c.GetMovement(speed, accel, c.input.spatial(), true)
	c.SetContactNormal(c.upAxis)
	c.PreventSnap()

	dt := c.dt()
	c.velocity = c.velocity.Mul(1 - c.s.Swim.WaterDrag*sub*dt).
		Add(movement).
		Add(c.gravityVec.Mul((1 - c.s.Swim.Buoyancy*sub) * dt))
}
