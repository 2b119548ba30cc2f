package gravity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/assert"
	"github.com/oomph-ac/gravctl/game"
)

func TestFieldSuperposition(t *testing.T) {
	a := NewSphere(SphereConfig{Gravity: 9.81, InnerRadius: 1, OuterRadius: 50, OuterFalloffRadius: 60})
	b := NewUniform(mgl32.Vec3{1, 0, 0})
	c := NewPlane(PlaneConfig{Gravity: 3, Transform: testTransform(mgl32.Vec3{0, -10, 0})})

	pos := mgl32.Vec3{3, 4, 5}
	want := a.GravityAt(pos).Add(b.GravityAt(pos)).Add(c.GravityAt(pos))

	orders := [][]Source{{a, b, c}, {c, b, a}, {b, a, c}}
	for _, order := range orders {
		f := NewField()
		for _, src := range order {
			f.Register(src)
		}
		if got := f.GravityAt(pos); !game.ApproxEqualVec3(got, want, 1e-5) {
			t.Fatalf("expected %v regardless of order, got %v", want, got)
		}
	}
}

func TestFieldEmpty(t *testing.T) {
	f := NewField()
	if g := f.GravityAt(mgl32.Vec3{1, 2, 3}); g != (mgl32.Vec3{}) {
		t.Fatalf("expected zero gravity without sources, got %v", g)
	}
	if _, ok := f.UpAxisAt(mgl32.Vec3{}); ok {
		t.Fatalf("expected no up axis without gravity")
	}
}

func TestFieldFallback(t *testing.T) {
	f := NewField()
	f.SetFallback(DefaultUniform())
	up, ok := f.UpAxisAt(mgl32.Vec3{})
	if !ok || !game.ApproxEqualVec3(up, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("expected fallback up axis (0, 1, 0), got %v (%v)", up, ok)
	}

	s := NewSphere(SphereConfig{Gravity: 5, InnerRadius: 1, OuterRadius: 10, OuterFalloffRadius: 10})
	f.Register(s)
	if g := f.GravityAt(mgl32.Vec3{2, 0, 0}); !game.ApproxEqualVec3(g, mgl32.Vec3{-2.5, 0, 0}, 1e-5) {
		t.Fatalf("expected the registered source to win, got %v", g)
	}
	if g := f.GravityAt(mgl32.Vec3{50, 0, 0}); !game.ApproxEqualVec3(g, DefaultUniform().Vector, 1e-5) {
		t.Fatalf("expected the fallback outside of the sphere, got %v", g)
	}
}

func TestFieldUnregister(t *testing.T) {
	f := NewField()
	u := NewUniform(mgl32.Vec3{0, -1, 0})
	f.Register(u)
	if !f.Registered(u) || f.Len() != 1 {
		t.Fatalf("expected the source to be registered")
	}
	f.Unregister(u)
	if f.Registered(u) || f.Len() != 0 {
		t.Fatalf("expected the source to be removed")
	}
}

func TestFieldLogicErrors(t *testing.T) {
	if !assert.Enabled {
		t.Skip("assertions are disabled")
	}
	expectPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected a panic", name)
			}
		}()
		fn()
	}

	f := NewField()
	u := NewUniform(mgl32.Vec3{0, -1, 0})
	f.Register(u)
	expectPanic("duplicate register", func() { f.Register(u) })
	expectPanic("unknown unregister", func() { f.Unregister(NewUniform(mgl32.Vec3{})) })
	if f.Len() != 1 {
		t.Fatalf("failed registrations must not change the field, got %d sources", f.Len())
	}
}

func testTransform(pos mgl32.Vec3) game.Transform {
	return game.Transform{Position: pos}
}
