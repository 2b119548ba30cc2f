package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
	"github.com/pelletier/go-toml"
)

// Settings contains every tunable value of a controller and its movement states.
type Settings struct {
	Controller ControllerSettings
	Ground     GroundSettings
	Air        AirSettings
	Jump       JumpSettings
	Climb      ClimbSettings
	Swim       SwimSettings
}

// ControllerSettings configures contact classification, ground snapping and integration.
type ControllerSettings struct {
	// MaxGroundAngle is the steepest angle, in degrees, a surface may have to count as ground.
	MaxGroundAngle float32
	// MaxStairsAngle replaces MaxGroundAngle for surfaces on one of the StairsMask layers.
	MaxStairsAngle float32
	// MaxSnapSpeed is the highest speed at which the controller still snaps to the ground.
	MaxSnapSpeed float32
	// ProbeDistance is the length of the ground snap probe.
	ProbeDistance float32
	// TerminalVelocity caps the speed of the body after every step. It is kept within [15, 100].
	TerminalVelocity float32
	// FixedTimeStep is the duration of a physics step in seconds.
	FixedTimeStep float32
	ProbeMask     game.LayerMask
	StairsMask    game.LayerMask
	// FollowLighterBodies makes the controller inherit the velocity of dynamic bodies lighter
	// than itself.
	FollowLighterBodies bool
}

type GroundSettings struct {
	MaxSpeed        float32
	MaxAcceleration float32
}

type AirSettings struct {
	MaxSpeed        float32
	MaxAcceleration float32
	// FallMultiplier scales gravity while falling or sliding down a steep wall.
	FallMultiplier float32
}

type JumpSettings struct {
	Height float32
	// CoyoteTime is the time in seconds after leaving the ground during which a jump is allowed.
	CoyoteTime float32
	// MaxJumps is the amount of jumps allowed before the controller touches ground again.
	MaxJumps int
}

type ClimbSettings struct {
	MaxSpeed        float32
	MaxAcceleration float32
	// MaxAngle is the largest angle, in degrees, between the up axis and a climbable surface.
	MaxAngle float32
	Mask     game.LayerMask
}

type SwimSettings struct {
	MaxSpeed        float32
	MaxAcceleration float32
	WaterDrag       float32
	Buoyancy        float32
	// SubmergenceOffset is how far above the body centre the submergence probe starts.
	SubmergenceOffset float32
	// SubmergenceRange is the length over which submergence goes from zero to one.
	SubmergenceRange float32
	// Threshold is the submergence at which the swim values fully replace the ground and air
	// values.
	Threshold float32
	Mask      game.LayerMask
}

// DefaultSettings returns the default settings of a controller.
func DefaultSettings() Settings {
	s := Settings{}
	s.Controller.MaxGroundAngle = 25
	s.Controller.MaxStairsAngle = 50
	s.Controller.MaxSnapSpeed = 100
	s.Controller.ProbeDistance = 1
	s.Controller.TerminalVelocity = 30
	s.Controller.FixedTimeStep = game.DefaultFixedTimeStep
	s.Controller.ProbeMask = game.AllLayers &^ game.MaskOf(game.LayerWater)
	s.Controller.StairsMask = game.MaskOf(game.LayerStairs)

	s.Ground.MaxSpeed = 9
	s.Ground.MaxAcceleration = 30

	s.Air.MaxSpeed = 9
	s.Air.MaxAcceleration = 30
	s.Air.FallMultiplier = 2

	s.Jump.Height = 2.1
	s.Jump.CoyoteTime = 0.2
	s.Jump.MaxJumps = 1

	s.Climb.MaxSpeed = 2
	s.Climb.MaxAcceleration = 20
	s.Climb.MaxAngle = 140
	s.Climb.Mask = game.MaskOf(game.LayerClimbable)

	s.Swim.MaxSpeed = 5
	s.Swim.MaxAcceleration = 5
	s.Swim.WaterDrag = 1
	s.Swim.Buoyancy = 1
	s.Swim.SubmergenceOffset = 0.5
	s.Swim.SubmergenceRange = 1
	s.Swim.Threshold = 0.5
	s.Swim.Mask = game.MaskOf(game.LayerWater)
	return s
}

// Validate returns a copy of the settings with every value clamped into its valid range.
func (s Settings) Validate() Settings {
	c := &s.Controller
	c.MaxGroundAngle = mgl32.Clamp(c.MaxGroundAngle, 0, 90)
	c.MaxStairsAngle = mgl32.Clamp(c.MaxStairsAngle, 0, 90)
	c.MaxSnapSpeed = mgl32.Clamp(c.MaxSnapSpeed, 0, 100)
	c.ProbeDistance = nonNegative(c.ProbeDistance)
	c.TerminalVelocity = mgl32.Clamp(c.TerminalVelocity, 15, 100)
	c.FixedTimeStep = mgl32.Clamp(c.FixedTimeStep, 0.001, 0.1)

	s.Ground.MaxSpeed = nonNegative(s.Ground.MaxSpeed)
	s.Ground.MaxAcceleration = nonNegative(s.Ground.MaxAcceleration)

	s.Air.MaxSpeed = nonNegative(s.Air.MaxSpeed)
	s.Air.MaxAcceleration = nonNegative(s.Air.MaxAcceleration)
	s.Air.FallMultiplier = mgl32.Clamp(s.Air.FallMultiplier, 1, 10)

	s.Jump.Height = nonNegative(s.Jump.Height)
	s.Jump.CoyoteTime = nonNegative(s.Jump.CoyoteTime)
	s.Jump.MaxJumps = min(max(s.Jump.MaxJumps, 0), 5)

	s.Climb.MaxSpeed = nonNegative(s.Climb.MaxSpeed)
	s.Climb.MaxAcceleration = nonNegative(s.Climb.MaxAcceleration)
	s.Climb.MaxAngle = mgl32.Clamp(s.Climb.MaxAngle, 90, 180)

	s.Swim.MaxSpeed = nonNegative(s.Swim.MaxSpeed)
	s.Swim.MaxAcceleration = nonNegative(s.Swim.MaxAcceleration)
	s.Swim.WaterDrag = mgl32.Clamp(s.Swim.WaterDrag, 0, 10)
	s.Swim.Buoyancy = nonNegative(s.Swim.Buoyancy)
	s.Swim.SubmergenceOffset = nonNegative(s.Swim.SubmergenceOffset)
	s.Swim.SubmergenceRange = math32.Max(s.Swim.SubmergenceRange, 0.1)
	s.Swim.Threshold = mgl32.Clamp(s.Swim.Threshold, 0.01, 1)
	return s
}

func nonNegative(v float32) float32 {
	return math32.Max(v, 0)
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	return Save(path, DefaultSettings())
}

// Save encodes the settings passed to the file at the path.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their default, and every value is validated.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}
	return Decode(data)
}

// Decode decodes TOML encoded settings on top of the defaults and validates them.
func Decode(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return s.Validate(), nil
}
