package controller

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// GetMovement returns the velocity change that moves the controller towards the target velocity
// described by the input, limited to maxAccel per second. The change lies in the plane of the
// contact normal and is relative to the connected body, so that a moving platform does not fight
// the input. The vertical input component is only used if allowVertical is true.
func (c *Controller) GetMovement(speed, maxAccel float32, input mgl32.Vec3, allowVertical bool) mgl32.Vec3 {
	xAxis := game.ProjectDirectionOnPlane(c.rightAxis, c.contactNormal)
	zAxis := game.ProjectDirectionOnPlane(c.forwardAxis, c.contactNormal)

	rel := c.RelativeVelocity()
	target := input.Mul(speed)
	adjustment := mgl32.Vec3{
		target.X() - rel.Dot(xAxis),
		0,
		target.Z() - rel.Dot(zAxis),
	}
	if allowVertical {
		adjustment[1] = target.Y() - rel.Dot(c.upAxis)
	}
	adjustment = game.ClampMagnitude(adjustment, maxAccel*c.dt())

	movement := xAxis.Mul(adjustment.X()).Add(zAxis.Mul(adjustment.Z()))
	if allowVertical {
		movement = movement.Add(c.upAxis.Mul(adjustment.Y()))
	}
	return movement
}

// SetMovementAxes overrides the right and forward movement axes until the next frame update.
func (c *Controller) SetMovementAxes(right, forward mgl32.Vec3) {
	c.rightAxis, c.forwardAxis = right, forward
}

// AddVelocity adds to the working velocity of the current physics step.
func (c *Controller) AddVelocity(v mgl32.Vec3) {
	c.velocity = c.velocity.Add(v)
}

// Position returns the position of the body the controller drives.
func (c *Controller) Position() mgl32.Vec3 {
	return c.body.Position()
}

// Velocity returns the velocity of the controller.
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.velocity
}

// RelativeVelocity returns the velocity of the controller relative to the connected body.
func (c *Controller) RelativeVelocity() mgl32.Vec3 {
	return c.velocity.Sub(c.connected.velocity)
}

// RelativeMovement returns the displacement of the body during the last step relative to the body
// it was connected to.
func (c *Controller) RelativeMovement() mgl32.Vec3 {
	return c.body.Velocity().Sub(c.lastConnectedVelocity).Mul(c.dt())
}

// LastConnectedVelocity returns the velocity of the connected body during the last step.
func (c *Controller) LastConnectedVelocity() mgl32.Vec3 {
	return c.lastConnectedVelocity
}

// AngularVelocity returns the angular velocity of the body the controller is connected to.
func (c *Controller) AngularVelocity() mgl32.Vec3 {
	return c.connected.angularVelocity()
}

// Gravity returns the gravity at the body position during the last physics step.
func (c *Controller) Gravity() mgl32.Vec3 {
	return c.gravityVec
}

// UpAxis returns the direction opposite to gravity.
func (c *Controller) UpAxis() mgl32.Vec3 {
	return c.upAxis
}

// RightAxis returns the right movement axis.
func (c *Controller) RightAxis() mgl32.Vec3 {
	return c.rightAxis
}

// ForwardAxis returns the forward movement axis.
func (c *Controller) ForwardAxis() mgl32.Vec3 {
	return c.forwardAxis
}

// OnGround returns true if the controller has at least one ground contact this step.
func (c *Controller) OnGround() bool {
	return c.groundContactCount > 0
}

// OnSteep returns true if the controller touches a surface too steep to stand on.
func (c *Controller) OnSteep() bool {
	return c.steepContactCount > 0
}

// IsFalling returns true if the controller is airborne and moving along gravity.
func (c *Controller) IsFalling() bool {
	return !c.OnGround() && c.velocity.Dot(c.gravityVec) > 0
}

// SlopeDirection returns the direction a body slides down the steep surface it touches.
func (c *Controller) SlopeDirection() mgl32.Vec3 {
	return game.ProjectDirectionOnPlane(c.gravityVec, game.SafeNormalize(c.steepNormal))
}

// ContactNormal returns the ground contact normal of the current step.
func (c *Controller) ContactNormal() mgl32.Vec3 {
	return c.contactNormal
}

// SteepNormal returns the steep contact normal of the current step.
func (c *Controller) SteepNormal() mgl32.Vec3 {
	return c.steepNormal
}

// LastContactNormal returns the last nonzero ground contact normal.
func (c *Controller) LastContactNormal() mgl32.Vec3 {
	return c.lastContactNormal
}

// LastSteepNormal returns the last nonzero steep contact normal.
func (c *Controller) LastSteepNormal() mgl32.Vec3 {
	return c.lastSteepNormal
}

// GroundContactCount returns the amount of ground contacts of the current step.
func (c *Controller) GroundContactCount() int {
	return c.groundContactCount
}

// SteepContactCount returns the amount of steep contacts of the current step.
func (c *Controller) SteepContactCount() int {
	return c.steepContactCount
}

// ClimbNormal returns the averaged normal of the climbable surfaces touched this step.
func (c *Controller) ClimbNormal() mgl32.Vec3 {
	return c.climbNormal
}

// LastClimbNormal returns the climb normal of the last climbing step.
func (c *Controller) LastClimbNormal() mgl32.Vec3 {
	return c.lastClimbNormal
}

// Submergence returns how deep the body was submerged when last evaluated.
func (c *Controller) Submergence() float32 {
	return c.submergence
}

// StepsSinceGrounded returns the amount of physics steps since the controller was last grounded.
func (c *Controller) StepsSinceGrounded() int {
	return c.stepsSinceGrounded
}

// Clock returns the simulated time in seconds.
func (c *Controller) Clock() float64 {
	return c.clock
}

// Input returns the input of the last frame.
func (c *Controller) Input() Input {
	return c.input
}
