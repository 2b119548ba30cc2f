// Package sim steps controllers through a world of gravity sources and colliders.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/game"
	"github.com/oomph-ac/gravctl/gravity"
	"github.com/oomph-ac/gravctl/settings"
	"github.com/oomph-ac/gravctl/utils"
	"github.com/oomph-ac/gravctl/worker"
	"github.com/oomph-ac/gravctl/world"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// maxStepsPerAdvance caps the physics steps a single Advance runs. Time beyond it is dropped.
const maxStepsPerAdvance = 8

// timedSteps is the amount of recent step durations kept for StepTimings.
const timedSteps = 256

// Config holds the options a Simulation is created with.
type Config struct {
	Log      *logrus.Logger
	Settings settings.Settings
	// Workers is the amount of goroutines controllers are stepped on. Zero uses one per CPU.
	Workers int
	// Handler is set on every controller. It may be nil.
	Handler controller.Handler
}

// Simulation steps a set of agents with a fixed time step.
type Simulation struct {
	name string
	log  *logrus.Logger
	hub  *sentry.Hub

	field  *gravity.Field
	world  *world.World
	agents []*Agent
	pool   *worker.Pool
	h      controller.Handler

	s           settings.Settings
	pending     *settings.Settings
	accumulator float32
	steps       uint64
	durations   *utils.CircularQueue[int64]

	running atomic.Bool
	mu      deadlock.Mutex
}

// New creates a simulation of the scenario passed.
func New(sc Scenario, conf Config) (*Simulation, error) {
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	field, w, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("build scenario %q: %w", sc.Name, err)
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("scenario", sc.Name)
	})

	s := &Simulation{
		name:  sc.Name,
		log:   conf.Log,
		hub:   hub,
		field: field,
		world: w,
		pool:  worker.New(conf.Workers),
		h:     conf.Handler,
		s:     conf.Settings.Validate(),

		durations: utils.NewCircularQueue[int64](timedSteps, nil),
	}
	for _, as := range sc.Agents {
		if err := s.addAgent(as); err != nil {
			s.pool.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Simulation) addAgent(as AgentScenario) error {
	mode, err := as.mode()
	if err != nil {
		return err
	}
	radius, mass := as.Radius, as.Mass
	if radius <= 0 {
		radius = 0.5
	}
	if mass <= 0 {
		mass = 1
	}
	body := world.NewBody(as.Position, radius, mass)
	c, err := controller.New(controller.Config{
		Name:        as.Name,
		Log:         s.log,
		Settings:    s.s,
		Body:        body,
		Gravity:     s.field,
		Prober:      s.world,
		Handler:     s.h,
		InitialMode: mode,
	})
	if err != nil {
		return fmt.Errorf("create agent %q: %w", as.Name, err)
	}
	s.agents = append(s.agents, &Agent{Name: as.Name, Body: body, Controller: c, script: as.Script})
	return nil
}

// Name returns the name of the scenario simulated.
func (s *Simulation) Name() string {
	return s.name
}

// Field returns the gravity field of the simulation.
func (s *Simulation) Field() *gravity.Field {
	return s.field
}

// World returns the world of the simulation.
func (s *Simulation) World() *world.World {
	return s.world
}

// Agents returns the agents of the simulation.
func (s *Simulation) Agents() []*Agent {
	return s.agents
}

// Agent returns the agent with the name passed.
func (s *Simulation) Agent(name string) (*Agent, bool) {
	for _, a := range s.agents {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Steps returns the amount of physics steps simulated.
func (s *Simulation) Steps() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Settings returns the settings the agents are stepped with.
func (s *Simulation) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s
}

// ApplySettings replaces the settings of every agent before the next step.
func (s *Simulation) ApplySettings(st settings.Settings) {
	st = st.Validate()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &st
}

// WatchSettings applies every settings update of the watcher until it is closed.
func (s *Simulation) WatchSettings(w *settings.Watcher) {
	go func() {
		defer func() {
			if v := recover(); v != nil {
				s.hub.Recover(v)
			}
		}()
		for {
			select {
			case st, ok := <-w.Updates:
				if !ok {
					return
				}
				s.log.WithField("scenario", s.name).Info("applying reloaded settings")
				s.ApplySettings(st)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.WithField("scenario", s.name).Errorf("unable to reload settings: %v", err)
			}
		}
	}()
}

// Step runs a single physics step for every agent.
func (s *Simulation) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step()
}

func (s *Simulation) step() error {
	if s.pending != nil {
		s.s, s.pending = *s.pending, nil
		for _, a := range s.agents {
			a.Controller.SetSettings(s.s)
		}
	}
	started := time.Now()
	dt := s.s.Controller.FixedTimeStep
	s.world.Tick(dt)

	tasks := make([]func(), len(s.agents))
	for i, a := range s.agents {
		tasks[i] = func() { a.step(s.world, dt) }
	}
	if err := s.pool.Batch(tasks...); err != nil {
		return fmt.Errorf("step %d: %w", s.steps, err)
	}
	s.steps++
	_ = s.durations.Append(int64(time.Since(started)))
	return nil
}

// StepTimings returns the mean and standard deviation of the wall time taken by recent steps.
func (s *Simulation) StepTimings() (mean, stddev time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	durations := make([]int64, 0, s.durations.Len())
	for d := range s.durations.Iter() {
		durations = append(durations, d)
	}
	return time.Duration(game.Mean(durations)), time.Duration(game.StandardDeviation(durations))
}

// Advance adds the elapsed time to the accumulator and runs as many physics steps as fit into it.
// It returns the amount of steps run.
func (s *Simulation) Advance(elapsed time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := s.s.Controller.FixedTimeStep
	s.accumulator += float32(elapsed.Seconds())

	n := 0
	for s.accumulator >= dt {
		if n == maxStepsPerAdvance {
			s.log.WithField("scenario", s.name).Debugf("dropping %.4fs of simulation time", s.accumulator)
			s.accumulator = 0
			break
		}
		if err := s.step(); err != nil {
			return n, err
		}
		s.accumulator -= dt
		n++
	}
	return n, nil
}

// Run steps the simulation until the amount of steps passed ran or the context is cancelled. If
// realtime is true, steps are paced to the fixed time step.
func (s *Simulation) Run(ctx context.Context, steps int, realtime bool) (err error) {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("simulation %q is already running", s.name)
	}
	defer s.running.Store(false)
	defer func() {
		if v := recover(); v != nil {
			s.hub.Recover(v)
			s.hub.Flush(2 * time.Second)
			err = fmt.Errorf("simulation %q panicked: %v", s.name, v)
		}
	}()

	start := s.Steps()
	if !realtime {
		for i := 0; i < steps; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.Step(); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(time.Duration(float64(s.Settings().Controller.FixedTimeStep) * float64(time.Second)))
	defer ticker.Stop()
	last := time.Now()
	for s.Steps()-start < uint64(steps) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := s.Advance(now.Sub(last)); err != nil {
				return err
			}
			last = now
		}
	}
	return nil
}

// Running returns true while Run is in progress.
func (s *Simulation) Running() bool {
	return s.running.Load()
}

// Close stops the workers of the simulation.
func (s *Simulation) Close() {
	s.pool.Close()
}
