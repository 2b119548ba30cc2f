package gravity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereConfig holds the parameters of a spherical gravity source. Between InnerRadius and
// OuterRadius the pull is Gravity divided by the distance to the centre. It fades out linearly
// towards InnerFalloffRadius and OuterFalloffRadius and is zero beyond them.
type SphereConfig struct {
	Position mgl32.Vec3
	Gravity  float32

	InnerFalloffRadius float32
	InnerRadius        float32
	OuterRadius        float32
	OuterFalloffRadius float32
}

// Validate clamps the radii so that InnerFalloffRadius <= InnerRadius <= OuterRadius <=
// OuterFalloffRadius holds.
func (c SphereConfig) Validate() SphereConfig {
	c.InnerFalloffRadius = math32.Max(c.InnerFalloffRadius, 0)
	c.InnerRadius = math32.Max(c.InnerRadius, c.InnerFalloffRadius)
	c.OuterRadius = math32.Max(c.OuterRadius, c.InnerRadius)
	c.OuterFalloffRadius = math32.Max(c.OuterFalloffRadius, c.OuterRadius)
	return c
}

// Sphere pulls bodies towards its centre.
type Sphere struct {
	conf SphereConfig

	innerFalloffFactor float32
	outerFalloffFactor float32
}

// NewSphere returns a Sphere with the validated config.
func NewSphere(conf SphereConfig) *Sphere {
	s := &Sphere{}
	s.SetConfig(conf)
	return s
}

// Config returns the validated config of the sphere.
func (s *Sphere) Config() SphereConfig {
	return s.conf
}

// SetConfig validates the config and recomputes the falloff factors.
func (s *Sphere) SetConfig(conf SphereConfig) {
	s.conf = conf.Validate()
	s.innerFalloffFactor = falloffFactor(s.conf.InnerFalloffRadius, s.conf.InnerRadius)
	s.outerFalloffFactor = falloffFactor(s.conf.OuterRadius, s.conf.OuterFalloffRadius)
}

// GravityAt ...
func (s *Sphere) GravityAt(pos mgl32.Vec3) mgl32.Vec3 {
	vector := s.conf.Position.Sub(pos)
	distance := vector.Len()
	if distance <= s.conf.InnerFalloffRadius || distance >= s.conf.OuterFalloffRadius {
		return mgl32.Vec3{}
	}

	g := s.conf.Gravity / distance
	if distance > s.conf.OuterRadius {
		g *= 1 - (distance-s.conf.OuterRadius)*s.outerFalloffFactor
	} else if distance < s.conf.InnerRadius {
		g *= 1 - (s.conf.InnerRadius-distance)*s.innerFalloffFactor
	}
	return vector.Mul(g / distance)
}
