package controller

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// jumpingState applies a jump impulse on its first physics step and moves the controller through
// the air afterwards. The jump count and the time of the last jump are kept between activations.
type jumpingState struct {
	nopState

	jumpCount    int
	lastJumpTime float64
	hasJumped    bool
	canCoyote    bool
}

func newJumpingState() *jumpingState {
	return &jumpingState{jumpCount: math.MaxInt, lastJumpTime: math.Inf(-1)}
}

// CanEnter resets the jump count when the controller touches ground or a wall it can kick off,
// and allows the jump if a jump charge is left or the coyote window is open.
func (s *jumpingState) CanEnter(c *Controller) bool {
	if c.OnGround() || c.CheckSteepContacts() || s.canWallJump(c) {
		s.jumpCount = 0
	}
	s.canCoyote = s.checkCoyote(c)
	return s.jumpCount < c.s.Jump.MaxJumps || s.canCoyote
}

func (s *jumpingState) Enter(*Controller) {
	s.hasJumped = false
}

func (s *jumpingState) Update(c *Controller) {
	if c.input.JumpPressed {
		c.RequestMode(ModeJumping)
	}
}

func (s *jumpingState) FixedUpdate(c *Controller) {
	c.PreventSnap()
	movement := c.GetMovement(c.s.Air.MaxSpeed, c.s.Air.MaxAcceleration, c.input.planar(), false)
	if !s.hasJumped {
		s.hasJumped = true
		c.velocity = c.velocity.Add(movement).Add(s.jump(c))
		return
	}

	multiplier := c.s.Air.FallMultiplier
	if c.input.JumpHeld {
		multiplier = 1
	}
	c.velocity = c.velocity.Add(movement).Add(c.gravityVec.Mul(c.dt() * multiplier))
	if c.IsFalling() {
		c.RequestMode(ModeInAir)
	}
}

// jump returns the jump impulse. The impulse points away from the surface jumped off, tilted
// towards the up axis, and is reduced by the speed the controller already has in that direction.
func (s *jumpingState) jump(c *Controller) mgl32.Vec3 {
	var n mgl32.Vec3
	switch {
	case s.canCoyote:
		n = c.lastContactNormal
	case c.OnGround():
		n = c.contactNormal
	default:
		n = c.steepNormal
	}
	dir := game.SafeNormalize(game.SafeNormalize(n).Add(c.upAxis))

	if s.canCoyote {
		s.jumpCount = 1
	} else {
		s.jumpCount++
	}
	s.lastJumpTime = c.clock

	speed := math32.Sqrt(2 * c.gravityVec.Len() * c.s.Jump.Height)
	if aligned := c.velocity.Dot(dir); aligned > 0 {
		speed = math32.Max(speed-aligned, 0)
	}
	impulse := dir.Mul(speed)

	c.Dbg.Notify(DebugModeMovement, true, "jump #%d impulse=%v coyote=%v", s.jumpCount, impulse, s.canCoyote)
	c.h.HandleJump(c, impulse)
	return impulse
}

// canWallJump returns true if the controller touches a steep surface that does not face
// downwards.
func (s *jumpingState) canWallJump(c *Controller) bool {
	return c.OnSteep() && c.upAxis.Dot(game.SafeNormalize(c.steepNormal)) > game.WallJumpMinDot
}

// checkCoyote returns true if the controller left the ground recently enough to still jump, and
// the last jump was long enough ago.
func (s *jumpingState) checkCoyote(c *Controller) bool {
	window := float64(c.s.Jump.CoyoteTime)
	sinceGrounded := c.clock - c.lastGroundedTime
	sinceJump := c.clock - s.lastJumpTime
	return !c.OnGround() && sinceGrounded <= window && sinceJump > window+float64(c.dt())
}
