package gravity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// PlaneConfig holds the parameters of a planar gravity source. Size holds the half extents of
// the plane along its local X and Z axes; a zero component leaves that axis unbounded. Reach
// bounds the local Y distance from the plane in both directions and is unbounded when zero.
type PlaneConfig struct {
	game.Transform
	Gravity float32
	Size    mgl32.Vec2
	Reach   float32
}

// Validate clamps the extents to non-negative values.
func (c PlaneConfig) Validate() PlaneConfig {
	c.Size = mgl32.Vec2{math32.Max(c.Size[0], 0), math32.Max(c.Size[1], 0)}
	c.Reach = math32.Max(c.Reach, 0)
	return c
}

// Plane pulls bodies along the negated up axis of its transform.
type Plane struct {
	conf PlaneConfig
}

// NewPlane returns a Plane with the validated config.
func NewPlane(conf PlaneConfig) *Plane {
	return &Plane{conf: conf.Validate()}
}

// Config returns the validated config of the plane.
func (p *Plane) Config() PlaneConfig {
	return p.conf
}

// SetConfig validates and replaces the config of the plane.
func (p *Plane) SetConfig(conf PlaneConfig) {
	p.conf = conf.Validate()
}

// GravityAt ...
func (p *Plane) GravityAt(pos mgl32.Vec3) mgl32.Vec3 {
	local := p.conf.InverseTransformPoint(pos)
	if !within(local[0], p.conf.Size[0]) || !within(local[1], p.conf.Reach) || !within(local[2], p.conf.Size[1]) {
		return mgl32.Vec3{}
	}
	return p.conf.Up().Mul(-p.conf.Gravity)
}

// within reports whether |v| <= extent, treating a zero extent as unbounded.
func within(v, extent float32) bool {
	return extent == 0 || math32.Abs(v) <= extent
}
