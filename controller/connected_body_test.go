package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

func TestConnectedBodyVelocity(t *testing.T) {
	var h connectedBodyHandler
	platform := &mockPlatform{kinematic: true}

	h.connect(platform)
	h.update(mgl32.Vec3{}, 1, 0.5, false)
	if !game.IsZero(h.velocity) {
		t.Fatalf("expected no velocity on the first connected step, got %v", h.velocity)
	}
	h.clear()

	platform.pos = mgl32.Vec3{1, 0, 0}
	h.connect(platform)
	h.update(mgl32.Vec3{}, 1, 0.5, false)
	if !game.ApproxEqualVec3(h.velocity, mgl32.Vec3{2, 0, 0}, 1e-6) {
		t.Fatalf("expected velocity (2, 0, 0), got %v", h.velocity)
	}
	h.clear()
	if h.lastVelocity != (mgl32.Vec3{2, 0, 0}) || !game.IsZero(h.velocity) {
		t.Fatalf("expected the velocity to move to lastVelocity, got %v and %v", h.lastVelocity, h.velocity)
	}
}

func TestConnectedBodySwitch(t *testing.T) {
	var h connectedBodyHandler
	a, b := &mockPlatform{kinematic: true}, &mockPlatform{kinematic: true, pos: mgl32.Vec3{10, 0, 0}}

	h.connect(a)
	h.update(mgl32.Vec3{}, 1, 0.5, false)
	h.clear()

	h.connect(b)
	h.update(mgl32.Vec3{}, 1, 0.5, false)
	if !game.IsZero(h.velocity) {
		t.Fatalf("expected no velocity on the first step on another body, got %v", h.velocity)
	}
}

func TestConnectedBodyMass(t *testing.T) {
	light := &mockPlatform{mass: 0.5}

	var h connectedBodyHandler
	for i := 0; i < 2; i++ {
		light.pos = mgl32.Vec3{float32(i), 0, 0}
		h.connect(light)
		h.update(mgl32.Vec3{}, 1, 1, false)
	}
	if !game.IsZero(h.velocity) {
		t.Fatalf("expected a lighter dynamic body to be ignored, got %v", h.velocity)
	}

	h = connectedBodyHandler{}
	for i := 0; i < 2; i++ {
		light.pos = mgl32.Vec3{float32(i), 0, 0}
		h.connect(light)
		h.update(mgl32.Vec3{}, 1, 1, true)
		if i == 0 {
			h.clear()
		}
	}
	if !game.ApproxEqualVec3(h.velocity, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Fatalf("expected a lighter body to be followed when enabled, got %v", h.velocity)
	}
}

func TestConnectedBodyAngularVelocity(t *testing.T) {
	var h connectedBodyHandler
	if !game.IsZero(h.angularVelocity()) {
		t.Fatalf("expected no angular velocity without a body")
	}
	h.connect(&mockPlatform{kinematic: true, angular: mgl32.Vec3{0, 2, 0}})
	if h.angularVelocity() != (mgl32.Vec3{0, 2, 0}) {
		t.Fatalf("unexpected angular velocity %v", h.angularVelocity())
	}
}

func TestControllerInheritsPlatformVelocity(t *testing.T) {
	c, body, _, _ := newTestController(ModeGrounded)
	platform := &mockPlatform{kinematic: true}
	dt := c.Settings().Controller.FixedTimeStep

	col := groundCollision()
	col.Body = platform
	c.AddCollision(col)
	c.FixedUpdate()

	platform.pos = mgl32.Vec3{dt, 0, 0}
	body.vel = mgl32.Vec3{}
	c.AddCollision(col)
	c.FixedUpdate()

	if !game.ApproxEqualVec3(c.LastConnectedVelocity(), mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Fatalf("expected the platform velocity (1, 0, 0), got %v", c.LastConnectedVelocity())
	}
	// Standing still on the platform means accelerating towards its velocity.
	wantX := c.Settings().Ground.MaxAcceleration * dt
	if !mgl32.FloatEqualThreshold(body.vel.X(), wantX, 1e-4) {
		t.Fatalf("expected to accelerate towards the platform by %v, got %v", wantX, body.vel.X())
	}
}
