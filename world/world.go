// Package world implements a small physics world of box colliders, kinematic platforms and
// sphere bodies. It provides controllers with collisions, trigger overlaps and ray casts.
package world

import (
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/game"
	"github.com/sasha-s/go-deadlock"
)

const (
	// contactOffset is the distance at which a body is considered to touch a collider.
	contactOffset float32 = 0.01
	// solverIterations is the maximum amount of depenetration passes per move.
	solverIterations = 4
)

// World holds the colliders and platforms of a scene. Ticking the world and moving bodies may be
// done from different goroutines, but a single body must only be moved by one goroutine at a
// time.
type World struct {
	colliders []*Collider
	platforms []*Platform

	deadlock.RWMutex
}

// New returns an empty world.
func New() *World {
	return &World{}
}

// AddCollider adds a collider to the world. Its platform, if any, is added too.
func (w *World) AddCollider(c *Collider) {
	w.Lock()
	defer w.Unlock()

	w.colliders = append(w.colliders, c)
	if c.Platform != nil {
		w.addPlatform(c.Platform)
	}
}

// AddPlatform adds a platform to the world so that it is moved on every tick.
func (w *World) AddPlatform(p *Platform) {
	w.Lock()
	defer w.Unlock()

	w.addPlatform(p)
}

func (w *World) addPlatform(p *Platform) {
	for _, existing := range w.platforms {
		if existing == p {
			return
		}
	}
	w.platforms = append(w.platforms, p)
}

// Colliders returns the amount of colliders in the world.
func (w *World) Colliders() int {
	w.RLock()
	defer w.RUnlock()

	return len(w.colliders)
}

// Tick moves every platform of the world by a single step of the duration passed.
func (w *World) Tick(dt float32) {
	w.Lock()
	defer w.Unlock()

	for _, p := range w.platforms {
		p.tick(dt)
	}
}

// Move integrates the velocity of the body over the duration passed and pushes it out of every
// solid collider it penetrates. It returns the collisions and trigger overlaps of the body at its
// new position.
func (w *World) Move(b *Body, dt float32) ([]controller.Collision, []controller.Trigger) {
	w.RLock()
	defer w.RUnlock()

	b.pos = b.pos.Add(b.vel.Mul(dt))

	touching := make([]bool, len(w.colliders))
	normals := make([]mgl32.Vec3, len(w.colliders))
	for i := 0; i < solverIterations; i++ {
		resolved := true
		for idx, c := range w.colliders {
			if c.Trigger {
				continue
			}
			n, sep := c.separation(b.pos, b.radius)
			if sep >= contactOffset {
				continue
			}
			touching[idx], normals[idx] = true, n
			if sep < 0 {
				b.pos = b.pos.Add(n.Mul(-sep))
				resolved = false
			}
			if d := b.vel.Sub(c.pointVelocity(b.pos)).Dot(n); d < 0 {
				b.vel = b.vel.Sub(n.Mul(d))
			}
		}
		if resolved {
			break
		}
	}

	var (
		collisions []controller.Collision
		triggers   []controller.Trigger
	)
	for idx, c := range w.colliders {
		if c.Trigger {
			if _, sep := c.separation(b.pos, b.radius); sep < 0 {
				triggers = append(triggers, controller.Trigger{Layer: c.Layer, Body: c.body()})
			}
			continue
		}
		if touching[idx] {
			collisions = append(collisions, controller.Collision{
				Normals: []mgl32.Vec3{normals[idx]},
				Layer:   c.Layer,
				Body:    c.body(),
			})
		}
	}
	return collisions, triggers
}

// Raycast casts a ray against the colliders on the layers of the mask and returns the nearest
// hit within maxDistance. Trigger colliders are only hit if hitTriggers is true, and colliders
// containing the origin of the ray are ignored.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask game.LayerMask, hitTriggers bool) (controller.RaycastHit, bool) {
	w.RLock()
	defer w.RUnlock()

	end := origin.Add(game.SafeNormalize(direction).Mul(maxDistance))

	var (
		hit   controller.RaycastHit
		found bool
	)
	for _, c := range w.colliders {
		if !mask.Contains(c.Layer) || (c.Trigger && !hitTriggers) {
			continue
		}
		t := c.transform()
		start := t.InverseTransformPoint(origin)
		if c.Box.Vec3Within(start) {
			continue
		}
		result, ok := trace.BBoxIntercept(c.Box, start, t.InverseTransformPoint(end))
		if !ok {
			continue
		}
		local := result.Position()
		dist := local.Sub(start).Len()
		if dist > maxDistance || (found && dist >= hit.Distance) {
			continue
		}
		n, _ := nearestFace(c.Box, local)
		hit = controller.RaycastHit{
			Distance: dist,
			Point:    t.TransformPoint(local),
			Normal:   t.TransformDirection(n),
			Layer:    c.Layer,
			Body:     c.body(),
		}
		found = true
	}
	return hit, found
}

var (
	_ controller.Body          = (*Body)(nil)
	_ controller.ConnectedBody = (*Platform)(nil)
	_ controller.Prober        = (*World)(nil)
)
