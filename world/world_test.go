package world

import (
	"io"
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/game"
	"github.com/oomph-ac/gravctl/gravity"
	"github.com/oomph-ac/gravctl/settings"
	"github.com/sirupsen/logrus"
)

const dt = float32(0.02)

var up = mgl32.Vec3{0, 1, 0}

func floor() *Collider {
	return &Collider{Box: cube.Box(-50, -1, -50, 50, 0, 50), Layer: game.LayerDefault}
}

func TestMoveRestsOnFloor(t *testing.T) {
	w := New()
	w.AddCollider(floor())

	b := NewBody(mgl32.Vec3{0, 0.5, 0}, 0.5, 1)
	b.SetVelocity(mgl32.Vec3{1, -1, 0})
	cols, trigs := w.Move(b, dt)

	if len(cols) != 1 || len(trigs) != 0 {
		t.Fatalf("expected a single collision, got %d collisions and %d triggers", len(cols), len(trigs))
	}
	if !game.ApproxEqualVec3(cols[0].Normals[0], up, 1e-5) {
		t.Fatalf("expected the floor normal to point up, got %v", cols[0].Normals[0])
	}
	if cols[0].Body != nil {
		t.Fatalf("expected a static collider to have no connected body")
	}
	if !mgl32.FloatEqualThreshold(b.Position().Y(), 0.5, 1e-5) {
		t.Fatalf("expected the body to be pushed out to 0.5, got %v", b.Position().Y())
	}
	if v := b.Velocity(); v.Y() != 0 || v.X() != 1 {
		t.Fatalf("expected only the velocity into the floor to be removed, got %v", v)
	}
}

func TestMoveTouchWithinContactOffset(t *testing.T) {
	w := New()
	w.AddCollider(floor())

	b := NewBody(mgl32.Vec3{0, 0.505, 0}, 0.5, 1)
	if cols, _ := w.Move(b, dt); len(cols) != 1 {
		t.Fatalf("expected a body hovering within the contact offset to touch the floor")
	}
	b.SetPosition(mgl32.Vec3{0, 1, 0})
	if cols, _ := w.Move(b, dt); len(cols) != 0 {
		t.Fatalf("expected no collision above the floor, got %d", len(cols))
	}
}

func TestMoveTriggers(t *testing.T) {
	w := New()
	w.AddCollider(&Collider{Box: cube.Box(-5, -5, -5, 5, 0, 5), Layer: game.LayerWater, Trigger: true})

	b := NewBody(mgl32.Vec3{0, -1, 0}, 0.5, 1)
	b.SetVelocity(mgl32.Vec3{0, -1, 0})
	cols, trigs := w.Move(b, dt)
	if len(cols) != 0 || len(trigs) != 1 || trigs[0].Layer != game.LayerWater {
		t.Fatalf("expected a single water overlap, got %v and %v", cols, trigs)
	}
	if b.Velocity() != (mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("expected a trigger not to block the body, got %v", b.Velocity())
	}
}

func TestRaycast(t *testing.T) {
	w := New()
	w.AddCollider(floor())
	w.AddCollider(&Collider{Box: cube.Box(-5, 0, -5, 5, 3, 5), Layer: game.LayerWater, Trigger: true})

	origin := mgl32.Vec3{0, 4, 0}
	down := mgl32.Vec3{0, -1, 0}

	hit, ok := w.Raycast(origin, down, 10, game.AllLayers, false)
	if !ok || !mgl32.FloatEqualThreshold(hit.Distance, 4, 1e-4) || hit.Layer != game.LayerDefault {
		t.Fatalf("expected to hit the floor at distance 4, got %+v (%v)", hit, ok)
	}
	if !game.ApproxEqualVec3(hit.Normal, up, 1e-5) || !game.ApproxEqualVec3(hit.Point, mgl32.Vec3{}, 1e-4) {
		t.Fatalf("unexpected hit normal %v or point %v", hit.Normal, hit.Point)
	}

	hit, ok = w.Raycast(origin, down, 10, game.MaskOf(game.LayerWater), true)
	if !ok || !mgl32.FloatEqualThreshold(hit.Distance, 1, 1e-4) {
		t.Fatalf("expected to hit the water surface at distance 1, got %+v (%v)", hit, ok)
	}
	if _, ok = w.Raycast(origin, down, 10, game.MaskOf(game.LayerWater), false); ok {
		t.Fatalf("expected triggers to be ignored")
	}
	if _, ok = w.Raycast(origin, down, 3, game.MaskOf(game.LayerDefault), false); ok {
		t.Fatalf("expected the floor to be out of reach")
	}
	if _, ok = w.Raycast(mgl32.Vec3{0, 1, 0}, down, 10, game.MaskOf(game.LayerWater), true); ok {
		t.Fatalf("expected a trigger containing the origin to be ignored")
	}
}

func TestPlatformTick(t *testing.T) {
	p := NewPlatform(game.Transform{})
	p.Waypoints = []mgl32.Vec3{{1, 0, 0}, {0, 0, 0}}
	p.Speed = 1

	p.tick(0.5)
	if !game.ApproxEqualVec3(p.Position, mgl32.Vec3{0.5, 0, 0}, 1e-6) || !game.ApproxEqualVec3(p.Velocity(), mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Fatalf("unexpected position %v or velocity %v", p.Position, p.Velocity())
	}
	p.tick(0.5)
	p.tick(0.5)
	if !game.ApproxEqualVec3(p.Position, mgl32.Vec3{0.5, 0, 0}, 1e-6) || !game.ApproxEqualVec3(p.Velocity(), mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Fatalf("expected to head back to the second waypoint, got %v and %v", p.Position, p.Velocity())
	}
}

func TestPlatformRotation(t *testing.T) {
	p := NewPlatform(game.Transform{})
	p.Angular = mgl32.Vec3{0, math32.Pi, 0}
	p.tick(1)

	if got := p.TransformPoint(mgl32.Vec3{1, 0, 0}); !game.ApproxEqualVec3(got, mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Fatalf("expected a half turn, got %v", got)
	}
	if got := p.PointVelocity(mgl32.Vec3{1, 0, 0}); !game.ApproxEqualVec3(got, mgl32.Vec3{0, 0, -math32.Pi}, 1e-5) {
		t.Fatalf("unexpected point velocity %v", got)
	}
}

func TestRaycastRotatedPlatform(t *testing.T) {
	p := NewPlatform(game.Transform{Rotation: mgl32.QuatRotate(math32.Pi/2, up)})
	w := New()
	w.AddCollider(&Collider{Box: cube.Box(-1, -0.5, -0.5, 1, 0.5, 0.5), Layer: game.LayerPlatform, Platform: p})

	hit, ok := w.Raycast(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 10, game.AllLayers, false)
	if !ok || !mgl32.FloatEqualThreshold(hit.Distance, 4, 1e-4) {
		t.Fatalf("expected to hit the rotated box at distance 4, got %+v (%v)", hit, ok)
	}
	if !game.ApproxEqualVec3(hit.Normal, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Fatalf("expected normal (0, 0, 1), got %v", hit.Normal)
	}
	if hit.Body != p {
		t.Fatalf("expected the platform as hit body")
	}
}

func newController(t *testing.T, b *Body, w *World) *controller.Controller {
	log := logrus.New()
	log.SetOutput(io.Discard)
	c, err := controller.New(controller.Config{
		Log:      log,
		Settings: settings.DefaultSettings(),
		Body:     b,
		Gravity:  gravity.DefaultUniform(),
		Prober:   w,
	})
	if err != nil {
		t.Fatalf("unable to create controller: %v", err)
	}
	return c
}

func step(c *controller.Controller, w *World, b *Body, in controller.Input) {
	w.Tick(dt)
	c.Update(in)
	c.FixedUpdate()
	cols, trigs := w.Move(b, dt)
	for _, col := range cols {
		c.AddCollision(col)
	}
	for _, trig := range trigs {
		c.AddTrigger(trig)
	}
}

func TestControllerStandsAndJumps(t *testing.T) {
	w := New()
	w.AddCollider(floor())
	b := NewBody(mgl32.Vec3{0, 0.5, 0}, 0.5, 1)
	c := newController(t, b, w)

	for i := 0; i < 50; i++ {
		step(c, w, b, controller.Input{})
	}
	if c.Mode() != controller.ModeGrounded || !mgl32.FloatEqualThreshold(b.Position().Y(), 0.5, 1e-3) {
		t.Fatalf("expected to rest on the floor, got %v at %v", c.Mode(), b.Position())
	}

	step(c, w, b, controller.Input{JumpPressed: true, JumpHeld: true})
	peak := b.Position().Y()
	landed := false
	for i := 0; i < 300; i++ {
		step(c, w, b, controller.Input{JumpHeld: true})
		peak = math32.Max(peak, b.Position().Y())
		if i > 10 && c.Mode() == controller.ModeGrounded {
			landed = true
			break
		}
	}
	if height := peak - 0.5; height < 1.9 || height > 2.3 {
		t.Fatalf("expected a jump height close to %v, got %v", c.Settings().Jump.Height, height)
	}
	if !landed {
		t.Fatalf("expected to land again, still %v at %v", c.Mode(), b.Position())
	}
}

func TestControllerRidesPlatform(t *testing.T) {
	p := NewPlatform(game.Transform{})
	p.Waypoints = []mgl32.Vec3{{1000, 0, 0}}
	p.Speed = 1

	w := New()
	w.AddCollider(&Collider{Box: cube.Box(-50, -1, -50, 50, 0, 50), Layer: game.LayerPlatform, Platform: p})
	b := NewBody(mgl32.Vec3{0, 0.5, 0}, 0.5, 1)
	c := newController(t, b, w)

	for i := 0; i < 50; i++ {
		step(c, w, b, controller.Input{})
	}
	if !mgl32.FloatEqualThreshold(b.Velocity().X(), 1, 0.05) {
		t.Fatalf("expected to move along with the platform, got velocity %v", b.Velocity())
	}
	if !game.ApproxEqualVec3(c.LastConnectedVelocity(), mgl32.Vec3{1, 0, 0}, 0.05) {
		t.Fatalf("expected the platform velocity as connected velocity, got %v", c.LastConnectedVelocity())
	}
}

func TestControllerSwimsInWater(t *testing.T) {
	w := New()
	w.AddCollider(floor())
	w.AddCollider(&Collider{Box: cube.Box(-50, 0, -50, 50, 5, 50), Layer: game.LayerWater, Trigger: true})
	b := NewBody(mgl32.Vec3{0, 2, 0}, 0.5, 1)
	c := newController(t, b, w)

	for i := 0; i < 5; i++ {
		step(c, w, b, controller.Input{})
	}
	if c.Mode() != controller.ModeSwimming {
		t.Fatalf("expected to swim in deep water, got %v", c.Mode())
	}
	if c.Submergence() != 1 {
		t.Fatalf("expected full submergence deep below the surface, got %v", c.Submergence())
	}
}

func TestNearestFace(t *testing.T) {
	bb := cube.Box(-1, -1, -1, 1, 1, 1)
	normal, dist := nearestFace(bb, mgl32.Vec3{0.2, 0.9, -0.1})
	if normal != (mgl32.Vec3{0, 1, 0}) || !mgl32.FloatEqualThreshold(dist, 0.1, 1e-5) {
		t.Fatalf("expected the top face 0.1 away, got %v at %v", normal, dist)
	}
	normal, _ = nearestFace(bb, mgl32.Vec3{-0.95, 0, 0.5})
	if normal != (mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("expected the -x face, got %v", normal)
	}
}
