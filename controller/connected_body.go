package controller

import (
	"github.com/go-gl/mathgl/mgl32"
)

// connectedBodyHandler tracks the body the controller rests on and estimates the velocity the
// body imparts on the controller. The estimate is only available from the second consecutive
// step the same body is connected.
type connectedBodyHandler struct {
	body, previous ConnectedBody

	anchorWorld mgl32.Vec3
	anchorLocal mgl32.Vec3

	velocity     mgl32.Vec3
	lastVelocity mgl32.Vec3
}

// connect records the body as the candidate connected body of this step. The last body
// connected before update wins.
func (h *connectedBodyHandler) connect(body ConnectedBody) {
	h.body = body
}

// update estimates the connected body velocity from the movement of the anchor and records a
// new anchor at the controller position. Dynamic bodies lighter than the controller are ignored
// unless followLighter is set.
func (h *connectedBodyHandler) update(pos mgl32.Vec3, mass, dt float32, followLighter bool) {
	if h.body == nil {
		return
	}
	if !h.body.Kinematic() && !followLighter && h.body.Mass() < mass {
		return
	}
	if h.body == h.previous && dt > 0 {
		moved := h.body.TransformPoint(h.anchorLocal).Sub(h.anchorWorld)
		h.velocity = moved.Mul(1 / dt)
	}
	h.anchorWorld = pos
	h.anchorLocal = h.body.InverseTransformPoint(pos)
}

// clear drops the connected body at the end of a step, remembering it for the next one.
func (h *connectedBodyHandler) clear() {
	h.lastVelocity = h.velocity
	h.velocity = mgl32.Vec3{}
	h.previous = h.body
	h.body = nil
}

// angularVelocity returns the angular velocity of the connected body, or zero if there is none.
func (h *connectedBodyHandler) angularVelocity() mgl32.Vec3 {
	if h.body == nil {
		return mgl32.Vec3{}
	}
	return h.body.AngularVelocity()
}
