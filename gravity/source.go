// Package gravity implements the gravity sources a world is built from and the Field that
// aggregates them.
package gravity

import "github.com/go-gl/mathgl/mgl32"

// Source is a shape that pulls bodies towards it. GravityAt returns the acceleration the
// source applies at a world position, or the zero vector if the position is out of its reach.
type Source interface {
	GravityAt(pos mgl32.Vec3) mgl32.Vec3
}

// falloffFactor returns the reciprocal of a falloff band's width, or zero if the band has
// no width.
func falloffFactor(from, to float32) float32 {
	if to <= from {
		return 0
	}
	return 1 / (to - from)
}
