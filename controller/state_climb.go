package controller

import "github.com/oomph-ac/gravctl/game"

// climbingState moves the controller along a climbable wall, pressing it against the wall with a
// grip force.
type climbingState struct {
	nopState
}

func (s *climbingState) CanEnter(c *Controller) bool {
	return !game.IsZero(c.updateClimbNormal())
}

func (s *climbingState) Update(c *Controller) {
	if !c.input.ClimbHeld {
		c.requestFallback()
	}
	if c.input.JumpPressed {
		s.wallKick(c)
	}
}

func (s *climbingState) FixedUpdate(c *Controller) {
	c.PreventSnap()
	n := c.updateClimbNormal()
	if game.IsZero(n) {
		c.requestFallback()
		return
	}

	grip := n.Mul(c.s.Climb.MaxAcceleration * game.ClimbGripFactor * c.dt())
	c.SetMovementAxes(n.Cross(c.upAxis), c.upAxis)
	c.SetContactNormal(n)

	movement := c.GetMovement(c.s.Climb.MaxSpeed, c.s.Climb.MaxAcceleration, c.input.planar(), false)
	c.velocity = c.velocity.Add(movement).Sub(grip)
	c.lastClimbNormal = n
}

// wallKick hands over to the jumping state, jumping off the wall.
func (s *climbingState) wallKick(c *Controller) {
	if game.IsZero(c.climbNormal) {
		return
	}
	c.SetContactNormal(c.climbNormal)
	c.RequestMode(ModeJumping)
}
