package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

var wallNormal = mgl32.Vec3{1, 0, 0}

func climbableWall() Collision {
	return Collision{Normals: []mgl32.Vec3{wallNormal}, Layer: game.LayerClimbable}
}

// startClimbing returns a controller that grabbed a climbable wall from the ground.
func startClimbing(t *testing.T) (*Controller, *mockBody, *recordingHandler) {
	c, body, _, h := newTestController(ModeGrounded)
	c.AddCollision(climbableWall())
	c.Update(Input{ClimbHeld: true})
	c.FixedUpdate()
	if c.Mode() != ModeClimbing {
		t.Fatalf("expected climbing after grabbing a wall, got %v", c.Mode())
	}
	return c, body, h
}

func TestClimbingRequiresClimbableSurface(t *testing.T) {
	c, _, _, _ := newTestController(ModeGrounded)
	c.AddCollision(Collision{Normals: []mgl32.Vec3{wallNormal}, Layer: game.LayerDefault})
	c.Update(Input{ClimbHeld: true})
	c.FixedUpdate()
	if c.Mode() == ModeClimbing {
		t.Fatalf("expected a wall on the default layer not to be climbable")
	}
}

func TestClimbingStep(t *testing.T) {
	c, body, _ := startClimbing(t)
	body.vel = mgl32.Vec3{}

	c.AddCollision(climbableWall())
	c.Update(Input{ClimbHeld: true, Movement: mgl32.Vec2{0, 1}})
	c.FixedUpdate()

	if c.Mode() != ModeClimbing {
		t.Fatalf("expected to keep climbing, got %v", c.Mode())
	}
	if c.LastClimbNormal() != wallNormal {
		t.Fatalf("expected last climb normal %v, got %v", wallNormal, c.LastClimbNormal())
	}
	s := c.Settings()
	dt := s.Controller.FixedTimeStep
	if want := s.Climb.MaxAcceleration * dt; !mgl32.FloatEqualThreshold(body.vel.Y(), want, 1e-5) {
		t.Fatalf("expected to climb up with %v, got %v", want, body.vel.Y())
	}
	if grip := -s.Climb.MaxAcceleration * game.ClimbGripFactor * dt; !mgl32.FloatEqualThreshold(body.vel.X(), grip, 1e-5) {
		t.Fatalf("expected a grip of %v towards the wall, got %v", grip, body.vel.X())
	}
	if game.ApproxEqualVec3(c.Velocity(), mgl32.Vec3{}, 1e-6) {
		t.Fatalf("expected climbing to move the body")
	}
}

func TestClimbingRelease(t *testing.T) {
	c, _, h := startClimbing(t)
	c.Update(Input{})
	if c.Mode() != ModeInAir {
		t.Fatalf("expected in air after releasing the wall, got %v", c.Mode())
	}
	want := []modeChange{{ModeGrounded, ModeClimbing}, {ModeClimbing, ModeInAir}}
	if len(h.changes) != 2 || h.changes[0] != want[0] || h.changes[1] != want[1] {
		t.Fatalf("expected changes %v, got %v", want, h.changes)
	}
}

func TestClimbingLosesWall(t *testing.T) {
	c, _, _ := startClimbing(t)
	c.Update(Input{ClimbHeld: true})
	c.FixedUpdate()
	if c.Mode() != ModeInAir {
		t.Fatalf("expected in air after losing the wall, got %v", c.Mode())
	}
}

func TestWallKick(t *testing.T) {
	c, body, h := startClimbing(t)
	c.AddCollision(climbableWall())
	c.Update(Input{ClimbHeld: true})
	c.FixedUpdate()

	c.Update(Input{ClimbHeld: true, JumpPressed: true})
	if c.Mode() != ModeJumping {
		t.Fatalf("expected a wall kick to start a jump, got %v", c.Mode())
	}
	body.vel = mgl32.Vec3{}
	c.FixedUpdate()

	if len(h.jumps) != 1 {
		t.Fatalf("expected one jump, got %d", len(h.jumps))
	}
	dir := game.SafeNormalize(h.jumps[0])
	if want := game.SafeNormalize(wallNormal.Add(up)); !game.ApproxEqualVec3(dir, want, 1e-5) {
		t.Fatalf("expected to jump off the wall along %v, got %v", want, dir)
	}
}

func TestSwimming(t *testing.T) {
	c, body, prober, h := newTestController(ModeGrounded)
	prober.water = &RaycastHit{Distance: 0.5}

	c.AddTrigger(Trigger{Layer: game.LayerWater})
	c.FixedUpdate()
	if c.Mode() != ModeSwimming {
		t.Fatalf("expected swimming in water, got %v", c.Mode())
	}

	body.vel = mgl32.Vec3{}
	c.AddTrigger(Trigger{Layer: game.LayerWater})
	c.FixedUpdate()
	if !mgl32.FloatEqualThreshold(c.Submergence(), 0.5, 1e-6) {
		t.Fatalf("expected submergence 0.5, got %v", c.Submergence())
	}
	// Half of gravity is cancelled by buoyancy.
	want := mgl32.Vec3{0, -game.DefaultGravity * 0.5 * c.Settings().Controller.FixedTimeStep, 0}
	if !game.ApproxEqualVec3(body.vel, want, 1e-5) {
		t.Fatalf("expected velocity %v, got %v", want, body.vel)
	}

	c.FixedUpdate()
	if c.Mode() != ModeInAir {
		t.Fatalf("expected to leave the water, got %v", c.Mode())
	}
	if n := len(h.changes); n != 2 || h.changes[1] != (modeChange{ModeSwimming, ModeInAir}) {
		t.Fatalf("unexpected mode changes %v", h.changes)
	}
}

func TestShallowWaterIsNotSwimmable(t *testing.T) {
	c, _, prober, _ := newTestController(ModeGrounded)
	prober.water = &RaycastHit{Distance: 0.9}
	c.AddCollision(groundCollision())
	c.AddTrigger(Trigger{Layer: game.LayerWater})
	c.FixedUpdate()
	if c.Mode() != ModeGrounded {
		t.Fatalf("expected to wade through shallow water, got %v", c.Mode())
	}
}

func TestSwimmingVerticalInput(t *testing.T) {
	c, body, prober, _ := newTestController(ModeSwimming)
	prober.water = &RaycastHit{Distance: 0}
	s := c.Settings()
	s.Swim.Buoyancy = 1
	c.SetSettings(s)

	c.AddTrigger(Trigger{Layer: game.LayerWater})
	c.Update(Input{Vertical: 1})
	c.FixedUpdate()
	if body.vel.Y() <= 0 {
		t.Fatalf("expected to swim up, got %v", body.vel)
	}
}

func TestTransitionOrder(t *testing.T) {
	c, _, _, _ := newTestController(ModeGrounded)
	var order []string
	c.states[ModeGrounded] = &tracingState{name: "grounded", order: &order}
	c.states[ModeInAir] = &tracingState{name: "in_air", order: &order}

	c.RequestMode(ModeInAir)
	c.applyTransition()
	want := []string{"in_air can_enter", "grounded exit", "in_air enter"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestRequestUnknownMode(t *testing.T) {
	c, _, _, _ := newTestController(ModeGrounded)
	if c.RequestMode(modeCount) {
		t.Fatalf("expected an unknown mode to be declined")
	}
}

type tracingState struct {
	nopState
	name  string
	order *[]string
}

func (s *tracingState) CanEnter(*Controller) bool {
	*s.order = append(*s.order, s.name+" can_enter")
	return true
}
func (s *tracingState) Enter(*Controller) { *s.order = append(*s.order, s.name+" enter") }
func (s *tracingState) Exit(*Controller)  { *s.order = append(*s.order, s.name+" exit") }
func (s *tracingState) FixedUpdate(*Controller) {}

func TestParseMode(t *testing.T) {
	for m := Mode(0); m < modeCount; m++ {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Fatalf("expected %v to round trip, got %v", m, got)
		}
	}
	if _, ok := ParseMode("flying"); ok {
		t.Fatalf("expected an unknown mode name to fail")
	}
}

func TestParseDebugModes(t *testing.T) {
	modes, ok := ParseDebugModes("snap, swim")
	if !ok || len(modes) != 2 || modes[0] != DebugModeSnap || modes[1] != DebugModeSwim {
		t.Fatalf("unexpected modes %v", modes)
	}
	if modes, ok = ParseDebugModes("all"); !ok || len(modes) != debugModeCount {
		t.Fatalf("expected every mode, got %v", modes)
	}
	if _, ok = ParseDebugModes("snap,nothing"); ok {
		t.Fatalf("expected an unknown debug mode to fail")
	}

	d := NewDebugger(testLogger().WithField("test", true))
	d.Toggle(DebugModeSnap)
	if !d.Enabled(DebugModeSnap) || d.Enabled(DebugModeSwim) {
		t.Fatalf("unexpected debugger state")
	}
	d.Toggle(DebugModeSnap)
	if d.Enabled(DebugModeSnap) {
		t.Fatalf("expected the mode to be toggled off")
	}
}
