package controller

import "fmt"

// Mode is the movement mode of a controller. Exactly one mode is active at a time.
type Mode uint8

const (
	ModeGrounded Mode = iota
	ModeInAir
	ModeFalling
	ModeJumping
	ModeClimbing
	ModeSwimming
	modeCount
)

var modeNames = [modeCount]string{"grounded", "in_air", "falling", "jumping", "climbing", "swimming"}

// String ...
func (m Mode) String() string {
	if m >= modeCount {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode returns the Mode with the name passed.
func ParseMode(name string) (Mode, bool) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), true
		}
	}
	return 0, false
}
