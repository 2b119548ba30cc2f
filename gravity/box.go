package gravity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// BoxConfig holds the parameters of a cuboid gravity source. Boundary holds the half extents
// of the box in its local space. Inside the box gravity pulls towards the nearest face, at
// full strength up to InnerDistance from that face and fading out at InnerFalloffDistance.
// Outside it pulls towards the nearest point on the surface with an outer band.
type BoxConfig struct {
	game.Transform
	Gravity  float32
	Boundary mgl32.Vec3

	InnerDistance        float32
	InnerFalloffDistance float32
	OuterDistance        float32
	OuterFalloffDistance float32
}

// Validate clamps the boundary to non-negative extents and the distances into the ranges the
// boundary allows.
func (c BoxConfig) Validate() BoxConfig {
	c.Boundary = mgl32.Vec3{
		math32.Max(c.Boundary[0], 0),
		math32.Max(c.Boundary[1], 0),
		math32.Max(c.Boundary[2], 0),
	}
	maxInner := math32.Min(math32.Min(c.Boundary[0], c.Boundary[1]), c.Boundary[2])
	c.InnerDistance = mgl32.Clamp(c.InnerDistance, 0, maxInner)
	c.InnerFalloffDistance = math32.Max(math32.Min(c.InnerFalloffDistance, maxInner), c.InnerDistance)
	c.OuterDistance = math32.Max(c.OuterDistance, 0)
	c.OuterFalloffDistance = math32.Max(c.OuterFalloffDistance, c.OuterDistance)
	return c
}

// Box pulls bodies towards the faces of a cuboid.
type Box struct {
	conf BoxConfig

	innerFalloffFactor float32
	outerFalloffFactor float32
}

// NewBox returns a Box with the validated config.
func NewBox(conf BoxConfig) *Box {
	b := &Box{}
	b.SetConfig(conf)
	return b
}

// Config returns the validated config of the box.
func (b *Box) Config() BoxConfig {
	return b.conf
}

// SetConfig validates the config and recomputes the falloff factors.
func (b *Box) SetConfig(conf BoxConfig) {
	b.conf = conf.Validate()
	b.innerFalloffFactor = falloffFactor(b.conf.InnerDistance, b.conf.InnerFalloffDistance)
	b.outerFalloffFactor = falloffFactor(b.conf.OuterDistance, b.conf.OuterFalloffDistance)
}

// GravityAt ...
func (b *Box) GravityAt(pos mgl32.Vec3) mgl32.Vec3 {
	local := b.conf.InverseTransformPoint(pos)
	bound := b.conf.Boundary

	var (
		vector  mgl32.Vec3
		outside int
	)
	for axis := 0; axis < 3; axis++ {
		if local[axis] > bound[axis] {
			vector[axis] = bound[axis] - local[axis]
			outside++
		} else if local[axis] < -bound[axis] {
			vector[axis] = -bound[axis] - local[axis]
			outside++
		}
	}
	if outside > 0 {
		return b.outerGravity(vector, outside)
	}

	distances := mgl32.Vec3{
		bound[0] - math32.Abs(local[0]),
		bound[1] - math32.Abs(local[1]),
		bound[2] - math32.Abs(local[2]),
	}
	axis := 2
	if distances[0] < distances[1] {
		if distances[0] < distances[2] {
			axis = 0
		}
	} else if distances[1] < distances[2] {
		axis = 1
	}
	vector[axis] = b.innerComponent(local[axis], distances[axis])
	return b.conf.TransformDirection(vector)
}

// outerGravity computes the gravity for a point outside the boundary. vector points from the
// point to the nearest surface point in local space.
func (b *Box) outerGravity(vector mgl32.Vec3, outside int) mgl32.Vec3 {
	var distance float32
	if outside == 1 {
		distance = math32.Abs(vector[0] + vector[1] + vector[2])
	} else {
		distance = vector.Len()
	}
	if distance >= b.conf.OuterFalloffDistance || distance == 0 {
		return mgl32.Vec3{}
	}

	g := b.conf.Gravity / distance
	if distance > b.conf.OuterDistance {
		g *= 1 - (distance-b.conf.OuterDistance)*b.outerFalloffFactor
	}
	return b.conf.TransformDirection(vector.Mul(g))
}

// innerComponent returns the gravity along a single axis for a point inside the box, distance
// away from the nearest face of that axis.
func (b *Box) innerComponent(coordinate, distance float32) float32 {
	if distance > b.conf.InnerFalloffDistance {
		return 0
	}
	g := b.conf.Gravity
	if distance > b.conf.InnerDistance {
		g *= 1 - (distance-b.conf.InnerDistance)*b.innerFalloffFactor
	}
	if coordinate > 0 {
		return -g
	}
	return g
}
