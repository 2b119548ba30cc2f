package controller

import "github.com/go-gl/mathgl/mgl32"

// Handler receives notifications about what a controller does. Handlers are called on the
// goroutine stepping the controller.
type Handler interface {
	// HandleModeChange is called after the controller switched from one mode to another.
	HandleModeChange(c *Controller, from, to Mode)
	// HandleJump is called when a jump impulse is applied.
	HandleJump(c *Controller, impulse mgl32.Vec3)
	// HandleFixedUpdate is called at the end of every physics step, before the per-step state
	// is cleared.
	HandleFixedUpdate(c *Controller)
}

// NopHandler implements Handler without doing anything.
type NopHandler struct{}

func (NopHandler) HandleModeChange(*Controller, Mode, Mode) {}
func (NopHandler) HandleJump(*Controller, mgl32.Vec3)       {}
func (NopHandler) HandleFixedUpdate(*Controller)            {}
