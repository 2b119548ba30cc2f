package controller

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// AddCollision reports a collision of the current physics step. Every contact normal is
// classified as ground or steep against the current up axis.
func (c *Controller) AddCollision(col Collision) {
	info := collisionInfo{
		normals: col.Normals,
		angles:  make([]float32, len(col.Normals)),
		layer:   col.Layer,
	}
	for i, n := range col.Normals {
		info.angles[i] = game.AngleBetween(c.upAxis, n)
		c.classifyContact(n, col.Layer, col.Body)
	}
	c.collisions = append(c.collisions, info)
}

// AddTrigger reports a trigger overlap of the current physics step. A body attached to the
// trigger becomes the connected body.
func (c *Controller) AddTrigger(t Trigger) {
	c.triggers = append(c.triggers, t)
	if t.Body != nil {
		c.connected.connect(t.Body)
	}
}

// classifyContact adds a contact normal to the ground or steep accumulator. Ground contacts always
// connect their body, steep contacts only if there is no ground contact yet.
func (c *Controller) classifyContact(normal mgl32.Vec3, layer int, body ConnectedBody) {
	upDot := c.upAxis.Dot(normal)
	if upDot >= c.minDot(layer) {
		c.groundContactCount++
		c.contactNormal = c.contactNormal.Add(normal)
		if body != nil {
			c.connected.connect(body)
		}
		c.Dbg.Notify(DebugModeContacts, true, "ground contact normal=%v layer=%d", normal, layer)
		return
	}
	c.steepContactCount++
	c.steepNormal = c.steepNormal.Add(normal)
	if c.groundContactCount == 0 && body != nil {
		c.connected.connect(body)
	}
	c.Dbg.Notify(DebugModeContacts, true, "steep contact normal=%v layer=%d", normal, layer)
}

// minDot returns the lowest up axis dot product a surface on the layer may have to count as
// ground.
func (c *Controller) minDot(layer int) float32 {
	if c.s.Controller.StairsMask.Contains(layer) {
		return c.minStairsDot
	}
	return c.minGroundDot
}

// CheckSteepContacts promotes multiple steep contacts to a single ground contact if their
// averaged normal is flat enough to stand on, as in a V-shaped groove. It returns true if the
// contacts were promoted.
func (c *Controller) CheckSteepContacts() bool {
	if c.steepContactCount <= 1 {
		return false
	}
	n := game.SafeNormalize(c.steepNormal)
	if c.upAxis.Dot(n) < c.minGroundDot {
		return false
	}
	c.steepContactCount = 0
	c.groundContactCount = 1
	c.steepNormal = n
	c.contactNormal = n
	c.Dbg.Notify(DebugModeContacts, true, "promoted steep contacts to ground normal=%v", n)
	return true
}

// snapToGround attempts to keep the controller on the ground after it lost contact for a single
// step, by probing for ground below it.
func (c *Controller) snapToGround() bool {
	if !c.canSnap || c.stepsSinceGrounded > 1 {
		return false
	}
	speed := c.velocity.Len()
	if speed > c.s.Controller.MaxSnapSpeed {
		return false
	}
	hit, ok := c.prober.Raycast(c.body.Position(), c.upAxis.Mul(-1), c.s.Controller.ProbeDistance, c.s.Controller.ProbeMask, false)
	if !ok || c.upAxis.Dot(hit.Normal) < c.minDot(hit.Layer) {
		return false
	}

	c.groundContactCount = 1
	c.contactNormal = hit.Normal
	if dot := c.velocity.Dot(hit.Normal); dot > 0 {
		c.velocity = game.SafeNormalize(c.velocity.Sub(hit.Normal.Mul(dot))).Mul(speed)
	}
	if hit.Body != nil {
		c.connected.connect(hit.Body)
	}
	c.Dbg.Notify(DebugModeSnap, true, "snapped to ground distance=%.4f normal=%v", hit.Distance, hit.Normal)
	return true
}

// PreventSnap disables ground snapping for the next physics step.
func (c *Controller) PreventSnap() {
	c.canSnap = false
}

// SetContactNormal overrides the contact normal of the current step and treats the controller as
// grounded on it.
func (c *Controller) SetContactNormal(n mgl32.Vec3) {
	c.contactNormal = n
	c.groundContactCount = 1
	c.stepsSinceGrounded = 0
}

// updateClimbNormal averages the normals of this step's collisions on climbable layers within the
// maximum climb angle.
func (c *Controller) updateClimbNormal() mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, col := range c.collisions {
		if !c.s.Climb.Mask.Contains(col.layer) {
			continue
		}
		for i, n := range col.normals {
			if col.angles[i] <= c.s.Climb.MaxAngle {
				sum = sum.Add(n)
			}
		}
	}
	c.climbNormal = game.SafeNormalize(sum)
	return c.climbNormal
}

// InWater returns true if the controller overlaps a trigger on one of the water layers.
func (c *Controller) InWater() bool {
	for _, t := range c.triggers {
		if c.s.Swim.Mask.Contains(t.Layer) {
			return true
		}
	}
	return false
}

// evaluateSubmergence probes the water surface from slightly above the body and stores how deep
// the body is submerged.
func (c *Controller) evaluateSubmergence() float32 {
	if !c.InWater() {
		c.submergence = 0
		return 0
	}
	origin := c.body.Position().Add(c.upAxis.Mul(c.s.Swim.SubmergenceOffset))
	rng := c.s.Swim.SubmergenceRange
	hit, ok := c.prober.Raycast(origin, c.upAxis.Mul(-1), rng+1, c.s.Swim.Mask, true)
	if !ok {
		c.submergence = 1
	} else {
		c.submergence = Submergence(hit.Distance, rng)
	}
	c.Dbg.Notify(DebugModeSwim, true, "submergence=%.4f hit=%v", c.submergence, ok)
	return c.submergence
}

// Submergence converts the distance from the probe origin to the water surface into the fraction
// of the body below the surface, in [0, 1].
func Submergence(distance, rng float32) float32 {
	if rng <= 0 {
		return 1
	}
	return mgl32.Clamp(1-distance/rng, 0, 1)
}
