package controller

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DebugModeContacts = iota
	DebugModeSnap
	DebugModeStates
	DebugModeMovement
	DebugModeConnectedBody
	DebugModeSwim
	debugModeCount
)

var debugModeNames = [debugModeCount]string{"contacts", "snap", "states", "movement", "connected_body", "swim"}

// Debugger logs per-step debug information of a controller for the debug modes that are enabled.
type Debugger struct {
	log   *logrus.Entry
	modes [debugModeCount]bool
}

// NewDebugger returns a Debugger logging to the entry passed with every mode disabled.
func NewDebugger(log *logrus.Entry) *Debugger {
	return &Debugger{log: log}
}

// Notify logs the message if the debug mode is enabled and cond is true.
func (d *Debugger) Notify(mode int, cond bool, format string, args ...interface{}) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.WithField("debug", debugModeNames[mode]).Debugf(format, args...)
}

// Toggle flips the debug mode.
func (d *Debugger) Toggle(mode int) {
	if mode >= 0 && mode < debugModeCount {
		d.modes[mode] = !d.modes[mode]
	}
}

// Enable enables the debug mode.
func (d *Debugger) Enable(mode int) {
	if mode >= 0 && mode < debugModeCount {
		d.modes[mode] = true
	}
}

// Enabled returns true if the debug mode is enabled.
func (d *Debugger) Enabled(mode int) bool {
	return mode >= 0 && mode < debugModeCount && d.modes[mode]
}

// ParseDebugModes parses a comma separated list of debug mode names. "all" enables every mode.
func ParseDebugModes(list string) ([]int, bool) {
	var modes []int
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "all" {
			modes = modes[:0]
			for m := 0; m < debugModeCount; m++ {
				modes = append(modes, m)
			}
			return modes, true
		}
		found := false
		for m, n := range debugModeNames {
			if n == name {
				modes = append(modes, m)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return modes, true
}
