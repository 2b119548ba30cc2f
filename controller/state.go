package controller

// State is the behaviour of a single movement mode. A state reads and writes the controller it is
// passed and requests transitions through Controller.RequestMode; it never switches modes itself.
type State interface {
	// CanEnter is the entry guard of the state. It may update data the state keeps between
	// activations.
	CanEnter(c *Controller) bool
	// Enter is called when the state becomes active, after the previous state exited.
	Enter(c *Controller)
	// Exit is called when the state stops being active.
	Exit(c *Controller)
	// Update is called once per rendered frame.
	Update(c *Controller)
	// FixedUpdate is called once per physics step, after contacts have been classified.
	FixedUpdate(c *Controller)
}

// nopState implements the hooks a state does not need.
type nopState struct{}

func (nopState) CanEnter(*Controller) bool { return true }
func (nopState) Enter(*Controller)         {}
func (nopState) Exit(*Controller)          {}
func (nopState) Update(*Controller)        {}
