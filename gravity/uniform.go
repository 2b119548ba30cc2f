package gravity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
)

// Uniform applies the same acceleration everywhere. It is usually installed as the fallback
// of a Field.
type Uniform struct {
	Vector mgl32.Vec3
}

// NewUniform returns a Uniform source with the vector passed.
func NewUniform(vector mgl32.Vec3) *Uniform {
	return &Uniform{Vector: vector}
}

// DefaultUniform returns a Uniform source pulling along -Y with the default gravity.
func DefaultUniform() *Uniform {
	return NewUniform(mgl32.Vec3{0, -game.DefaultGravity, 0})
}

// GravityAt ...
func (u *Uniform) GravityAt(mgl32.Vec3) mgl32.Vec3 {
	return u.Vector
}
