package game

const (
	// DefaultGravity is the magnitude of the fallback uniform gravity.
	DefaultGravity = float32(9.81)
	// DefaultFixedTimeStep is the physics step used when none is configured.
	DefaultFixedTimeStep = float32(0.02)

	// InAirStepsOffset is the amount of consecutive steps without ground contact the grounded
	// state tolerates before handing over to the airborne state.
	InAirStepsOffset = 2
	// MinimumSubmergence is the submergence below which the swimming state cannot be active.
	MinimumSubmergence = float32(0.2)
	// ClimbGripFactor scales the climb acceleration into the force pressing the body to the wall.
	ClimbGripFactor = float32(0.9)
	// WallJumpMinDot is the lowest dot product between the up axis and a steep normal that still
	// counts as a wall the character can kick off.
	WallJumpMinDot = float32(-0.01)
)
