package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/game"
	"github.com/oomph-ac/gravctl/gravity"
	"github.com/oomph-ac/gravctl/oerror"
	"github.com/oomph-ac/gravctl/settings"
	"github.com/sirupsen/logrus"
)

// Config holds the collaborators and settings a Controller is created with.
type Config struct {
	// Name identifies the controller in logs.
	Name     string
	Log      *logrus.Logger
	Settings settings.Settings

	Body    Body
	Gravity GravityProvider
	Prober  Prober
	// Handler is notified about mode changes, jumps and steps. It may be nil.
	Handler Handler
	// InitialMode is the mode the controller starts in.
	InitialMode Mode
}

// Controller moves a spherical body through a world with non-uniform gravity. Update must be
// called once per rendered frame and FixedUpdate once per physics step, with the collisions and
// trigger overlaps of the step reported through AddCollision and AddTrigger beforehand.
// A Controller is not safe for concurrent use.
type Controller struct {
	name string
	log  *logrus.Entry
	Dbg  *Debugger

	s            settings.Settings
	minGroundDot float32
	minStairsDot float32

	body    Body
	gravity GravityProvider
	prober  Prober
	h       Handler

	mode    Mode
	states  [modeCount]State
	next    Mode
	pending bool

	input       Input
	inputSpace  bool
	inputRight  mgl32.Vec3
	inputFwd    mgl32.Vec3
	gravityVec  mgl32.Vec3
	upAxis      mgl32.Vec3
	rightAxis   mgl32.Vec3
	forwardAxis mgl32.Vec3

	velocity              mgl32.Vec3
	lastConnectedVelocity mgl32.Vec3
	connected             connectedBodyHandler

	groundContactCount int
	steepContactCount  int
	contactNormal      mgl32.Vec3
	steepNormal        mgl32.Vec3
	lastContactNormal  mgl32.Vec3
	lastSteepNormal    mgl32.Vec3

	climbNormal     mgl32.Vec3
	lastClimbNormal mgl32.Vec3
	submergence     float32

	collisions []collisionInfo
	triggers   []Trigger

	clock              float64
	lastGroundedTime   float64
	stepsSinceGrounded int
	canSnap            bool
}

// New creates a Controller from the config passed. It returns an error if a required
// collaborator is missing.
func New(conf Config) (*Controller, error) {
	switch {
	case conf.Body == nil:
		return nil, oerror.New(game.ErrorNilBody)
	case conf.Gravity == nil:
		return nil, oerror.New(game.ErrorNilGravity)
	case conf.Prober == nil:
		return nil, oerror.New(game.ErrorNilProber)
	case conf.InitialMode >= modeCount:
		return nil, oerror.New(game.ErrorUnknownMode, conf.InitialMode)
	}
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	if conf.Handler == nil {
		conf.Handler = NopHandler{}
	}

	c := &Controller{
		name:             conf.Name,
		log:              conf.Log.WithField("controller", conf.Name),
		body:             conf.Body,
		gravity:          conf.Gravity,
		prober:           conf.Prober,
		h:                conf.Handler,
		mode:             conf.InitialMode,
		upAxis:           mgl32.Vec3{0, 1, 0},
		rightAxis:        mgl32.Vec3{1, 0, 0},
		forwardAxis:      mgl32.Vec3{0, 0, 1},
		lastGroundedTime: math.Inf(-1),
		canSnap:          true,
	}
	c.Dbg = NewDebugger(c.log)
	c.states = [modeCount]State{
		ModeGrounded: &groundedState{},
		ModeInAir:    &airState{},
		ModeFalling:  &airState{falling: true},
		ModeJumping:  newJumpingState(),
		ModeClimbing: &climbingState{},
		ModeSwimming: &swimmingState{},
	}
	c.SetSettings(conf.Settings)
	if up, ok := gravity.UpAxis(c.gravity.GravityAt(c.body.Position())); ok {
		c.upAxis = up
	}
	c.updateAxes()
	c.states[c.mode].Enter(c)
	return c, nil
}

// Name returns the name of the controller.
func (c *Controller) Name() string {
	return c.name
}

// Log returns the logger of the controller.
func (c *Controller) Log() *logrus.Entry {
	return c.log
}

// Settings returns the validated settings of the controller.
func (c *Controller) Settings() settings.Settings {
	return c.s
}

// SetSettings validates and applies new settings. It is safe to call between steps.
func (c *Controller) SetSettings(s settings.Settings) {
	c.s = s.Validate()
	c.minGroundDot = game.MinDot(c.s.Controller.MaxGroundAngle)
	c.minStairsDot = game.MinDot(c.s.Controller.MaxStairsAngle)
}

// SetHandler replaces the handler of the controller. A nil handler disables notifications.
func (c *Controller) SetHandler(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	c.h = h
}

// SetInputSpace makes movement input relative to the right and forward directions passed, usually
// those of a camera. Without an input space the world X and Z axes are used.
func (c *Controller) SetInputSpace(right, forward mgl32.Vec3) {
	c.inputSpace = true
	c.inputRight, c.inputFwd = right, forward
}

// ClearInputSpace makes movement input relative to the world X and Z axes again.
func (c *Controller) ClearInputSpace() {
	c.inputSpace = false
}

// Update runs the per-frame logic of the controller: it stores the input, derives the movement
// axes from the up axis and runs the frame hook of the active mode.
func (c *Controller) Update(in Input) {
	c.input = in.Clamped()
	c.updateAxes()

	c.states[c.mode].Update(c)
	c.applyTransition()
	c.input.JumpPressed = false
}

// FixedUpdate runs a single physics step of the controller.
func (c *Controller) FixedUpdate() {
	c.clock += float64(c.dt())
	c.gravityVec = c.gravity.GravityAt(c.body.Position())
	if up, ok := gravity.UpAxis(c.gravityVec); ok {
		c.upAxis = up
	}

	c.updateInternalState()
	c.states[c.mode].FixedUpdate(c)
	c.applyTransition()

	c.velocity = game.ClampMagnitude(c.velocity, c.s.Controller.TerminalVelocity)
	c.body.SetVelocity(c.velocity)
	c.Dbg.Notify(DebugModeMovement, true, "mode=%v velocity=%v up=%v onGround=%v", c.mode, c.velocity, c.upAxis, c.OnGround())

	c.h.HandleFixedUpdate(c)
	c.clearInternalState()
}

func (c *Controller) updateInternalState() {
	c.stepsSinceGrounded++
	c.velocity = c.body.Velocity()
	if c.OnGround() || c.snapToGround() {
		c.stepsSinceGrounded = 0
		c.lastGroundedTime = c.clock
		if c.groundContactCount > 1 {
			c.contactNormal = game.SafeNormalize(c.contactNormal)
		}
	}
	c.canSnap = true

	c.connected.update(c.body.Position(), c.body.Mass(), c.dt(), c.s.Controller.FollowLighterBodies)
	c.Dbg.Notify(DebugModeConnectedBody, c.connected.body != nil, "connected velocity=%v", c.connected.velocity)
}

func (c *Controller) clearInternalState() {
	c.lastConnectedVelocity = c.connected.velocity
	c.connected.clear()

	if !game.IsZero(c.contactNormal) {
		c.lastContactNormal = c.contactNormal
	}
	if !game.IsZero(c.steepNormal) {
		c.lastSteepNormal = c.steepNormal
	}
	c.groundContactCount, c.steepContactCount = 0, 0
	c.contactNormal, c.steepNormal = mgl32.Vec3{}, mgl32.Vec3{}
	c.collisions = c.collisions[:0]
	c.triggers = c.triggers[:0]
}

// updateAxes projects the input space, or the world axes, onto the plane of the up axis.
func (c *Controller) updateAxes() {
	right, forward := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}
	if c.inputSpace {
		right, forward = c.inputRight, c.inputFwd
	}
	c.rightAxis = game.ProjectDirectionOnPlane(right, c.upAxis)
	c.forwardAxis = game.ProjectDirectionOnPlane(forward, c.upAxis)
}

// dt returns the duration of a physics step.
func (c *Controller) dt() float32 {
	return c.s.Controller.FixedTimeStep
}

// Mode returns the active movement mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// RequestMode asks the controller to switch to the mode passed. The request is granted if no
// other request was granted during the current hook and the entry guard of the mode passes. The
// switch itself happens once the current hook returns.
func (c *Controller) RequestMode(m Mode) bool {
	if c.pending || m >= modeCount {
		return false
	}
	if !c.states[m].CanEnter(c) {
		c.Dbg.Notify(DebugModeStates, true, "request for %v declined in %v", m, c.mode)
		return false
	}
	c.pending, c.next = true, m
	return true
}

// requestFallback requests the grounded mode if the controller is on the ground, or the airborne
// mode otherwise.
func (c *Controller) requestFallback() bool {
	if c.OnGround() {
		return c.RequestMode(ModeGrounded)
	}
	return c.RequestMode(ModeInAir)
}

// applyTransition switches to the mode requested during the last hook, exiting the active mode
// before entering the new one.
func (c *Controller) applyTransition() {
	if !c.pending {
		return
	}
	c.pending = false

	from, to := c.mode, c.next
	c.states[from].Exit(c)
	c.mode = to
	c.states[to].Enter(c)

	c.Dbg.Notify(DebugModeStates, true, "%v -> %v", from, to)
	c.h.HandleModeChange(c, from, to)
}
