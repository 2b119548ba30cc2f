package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// IsZero returns true if every component of the vector is exactly zero.
func IsZero(v mgl32.Vec3) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// SafeNormalize normalizes the vector, returning the zero vector instead of NaN components
// when the vector has no length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= mgl32.Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along the plane normal n. n is expected to be
// normalized; a zero normal leaves v unchanged.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// ProjectDirectionOnPlane projects the direction onto the plane and normalizes the result.
func ProjectDirectionOnPlane(dir, n mgl32.Vec3) mgl32.Vec3 {
	return SafeNormalize(ProjectOnPlane(dir, n))
}

// ClampMagnitude shortens v to max if it is longer.
func ClampMagnitude(v mgl32.Vec3, max float32) mgl32.Vec3 {
	sqr := v.LenSqr()
	if sqr <= max*max || sqr == 0 {
		return v
	}
	return v.Mul(max / math32.Sqrt(sqr))
}

// Lerp linearly interpolates between a and b by t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*mgl32.Clamp(t, 0, 1)
}

// AngleBetween returns the angle between two vectors in degrees.
func AngleBetween(a, b mgl32.Vec3) float32 {
	den := math32.Sqrt(a.LenSqr() * b.LenSqr())
	if den <= mgl32.Epsilon {
		return 0
	}
	return mgl32.RadToDeg(math32.Acos(mgl32.Clamp(a.Dot(b)/den, -1, 1)))
}

// MinDot returns the cosine of the angle given in degrees.
func MinDot(angle float32) float32 {
	return math32.Cos(mgl32.DegToRad(angle))
}

// ApproxEqualVec3 returns true if the distance between a and b is at most threshold.
func ApproxEqualVec3(a, b mgl32.Vec3, threshold float32) bool {
	return a.Sub(b).Len() <= threshold
}
