package controller

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
	"github.com/oomph-ac/gravctl/gravity"
	"github.com/oomph-ac/gravctl/settings"
	"github.com/sirupsen/logrus"
)

type mockBody struct {
	pos, vel mgl32.Vec3
	mass     float32
}

func (b *mockBody) Position() mgl32.Vec3      { return b.pos }
func (b *mockBody) Velocity() mgl32.Vec3      { return b.vel }
func (b *mockBody) SetVelocity(v mgl32.Vec3) { b.vel = v }
func (b *mockBody) Mass() float32             { return b.mass }

// mockProber answers ground probes with ground and water probes with water. A nil hit is a miss.
type mockProber struct {
	ground *RaycastHit
	water  *RaycastHit
	calls  int
}

func (p *mockProber) Raycast(_, _ mgl32.Vec3, maxDistance float32, _ game.LayerMask, hitTriggers bool) (RaycastHit, bool) {
	p.calls++
	hit := p.ground
	if hitTriggers {
		hit = p.water
	}
	if hit == nil || hit.Distance > maxDistance {
		return RaycastHit{}, false
	}
	return *hit, true
}

type mockPlatform struct {
	pos       mgl32.Vec3
	angular   mgl32.Vec3
	mass      float32
	kinematic bool
}

func (p *mockPlatform) Kinematic() bool                              { return p.kinematic }
func (p *mockPlatform) Mass() float32                                { return p.mass }
func (p *mockPlatform) TransformPoint(local mgl32.Vec3) mgl32.Vec3   { return local.Add(p.pos) }
func (p *mockPlatform) InverseTransformPoint(w mgl32.Vec3) mgl32.Vec3 { return w.Sub(p.pos) }
func (p *mockPlatform) AngularVelocity() mgl32.Vec3                  { return p.angular }

type modeChange struct {
	from, to Mode
}

type recordingHandler struct {
	NopHandler
	changes []modeChange
	jumps   []mgl32.Vec3
}

func (h *recordingHandler) HandleModeChange(_ *Controller, from, to Mode) {
	h.changes = append(h.changes, modeChange{from, to})
}

func (h *recordingHandler) HandleJump(_ *Controller, impulse mgl32.Vec3) {
	h.jumps = append(h.jumps, impulse)
}

var up = mgl32.Vec3{0, 1, 0}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestController returns a controller in uniform earth gravity with a body at rest at the
// origin and a prober that never hits.
func newTestController(mode Mode) (*Controller, *mockBody, *mockProber, *recordingHandler) {
	body := &mockBody{mass: 1}
	prober := &mockProber{}
	h := &recordingHandler{}
	c, err := New(Config{
		Name:        "test",
		Log:         testLogger(),
		Settings:    settings.DefaultSettings(),
		Body:        body,
		Gravity:     gravity.DefaultUniform(),
		Prober:      prober,
		Handler:     h,
		InitialMode: mode,
	})
	if err != nil {
		panic(err)
	}
	return c, body, prober, h
}

func groundCollision() Collision {
	return Collision{Normals: []mgl32.Vec3{up}, Layer: game.LayerDefault}
}
