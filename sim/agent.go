package sim

import (
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/world"
)

// Agent is a controller and the body it drives, fed by a script of inputs.
type Agent struct {
	Name       string
	Body       *world.Body
	Controller *controller.Controller

	script []InputStep
	index  int
	done   int
}

// nextInput returns the input of the current script step and advances the script. Jump is
// pressed on the first step of a script entry and held for the rest of it. Once the script ran
// out, the agent receives no input.
func (a *Agent) nextInput() controller.Input {
	for a.index < len(a.script) && a.done >= a.script[a.index].Steps {
		a.index++
		a.done = 0
	}
	if a.index >= len(a.script) {
		return controller.Input{}
	}
	st := a.script[a.index]
	in := controller.Input{
		Movement:    st.Move,
		Vertical:    st.Vertical,
		JumpPressed: st.Jump && a.done == 0,
		JumpHeld:    st.Jump,
		ClimbHeld:   st.Climb,
	}
	a.done++
	return in
}

// step runs a frame and a physics step of the controller, moves the body and reports its
// contacts for the next step.
func (a *Agent) step(w *world.World, dt float32) {
	a.Controller.Update(a.nextInput())
	a.Controller.FixedUpdate()

	collisions, triggers := w.Move(a.Body, dt)
	for _, col := range collisions {
		a.Controller.AddCollision(col)
	}
	for _, t := range triggers {
		a.Controller.AddTrigger(t)
	}
}
