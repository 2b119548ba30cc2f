package game

const (
	ErrorDuplicateGravitySource = "gravity source %v is already registered"
	ErrorUnknownGravitySource   = "gravity source %v is not registered"
	ErrorInvalidSettings        = "invalid settings: %v"
	ErrorNilBody                = "controller requires a body"
	ErrorNilGravity             = "controller requires a gravity provider"
	ErrorNilProber              = "controller requires a prober"
	ErrorUnknownMode            = "unknown movement mode %d"
)
