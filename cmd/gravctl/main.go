package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/event"
	"github.com/oomph-ac/gravctl/game"
	"github.com/oomph-ac/gravctl/settings"
	"github.com/oomph-ac/gravctl/sim"
	"github.com/sirupsen/logrus"
)

// The following program runs a scenario headless and prints where every agent ended up.
func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "Scenario file")
	settingsPath := flag.String("settings", "settings.toml", "Settings file, created with defaults if missing")
	steps := flag.Int("steps", 500, "Physics steps to simulate")
	realtime := flag.Bool("realtime", false, "Pace steps to the fixed time step")
	watch := flag.Bool("watch", false, "Reload the settings file when it changes")
	record := flag.String("record", "", "Write a trace recording to this file")
	workers := flag.Int("workers", 0, "Goroutines stepping agents (0 = one per CPU)")
	debug := flag.String("debug", "", "Comma separated debug modes to log (contacts, snap, states, movement, connected_body, swim, all)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if *debug != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Fatalf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	if err := run(log, options{
		scenario: *scenarioPath,
		settings: *settingsPath,
		steps:    *steps,
		realtime: *realtime,
		watch:    *watch,
		record:   *record,
		workers:  *workers,
		debug:    *debug,
	}); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	scenario, settings, record, debug string
	steps, workers                    int
	realtime, watch                   bool
}

func run(log *logrus.Logger, opts options) error {
	if _, err := os.Stat(opts.settings); os.IsNotExist(err) {
		if err := settings.SaveDefault(opts.settings); err != nil {
			return fmt.Errorf("write default settings: %w", err)
		}
		log.Infof("wrote default settings to %s", opts.settings)
	}
	st, err := settings.Load(opts.settings)
	if err != nil {
		return err
	}
	sc, err := sim.LoadScenario(opts.scenario)
	if err != nil {
		return err
	}

	var (
		h   controller.Handler
		rec *event.Recorder
	)
	if opts.record != "" {
		f, err := os.Create(opts.record)
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		defer f.Close()

		names := make([]string, len(sc.Agents))
		for i, a := range sc.Agents {
			names[i] = a.Name
		}
		rec, err = event.NewRecorder(f, event.Header{
			Scenario:      sc.Name,
			Controllers:   names,
			FixedTimeStep: st.Controller.FixedTimeStep,
			Started:       time.Now(),
		}, 0)
		if err != nil {
			return err
		}
		h = rec
	}

	s, err := sim.New(sc, sim.Config{Log: log, Settings: st, Workers: opts.workers, Handler: h})
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.debug != "" {
		modes, ok := controller.ParseDebugModes(opts.debug)
		if !ok {
			return fmt.Errorf("unknown debug modes %q", opts.debug)
		}
		for _, a := range s.Agents() {
			for _, m := range modes {
				a.Controller.Dbg.Enable(m)
			}
		}
	}
	if opts.watch {
		w, err := settings.Watch(opts.settings, log)
		if err != nil {
			return fmt.Errorf("watch settings: %w", err)
		}
		defer w.Close()
		s.WatchSettings(w)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Infof("running scenario %q with %d agents for %d steps", sc.Name, len(s.Agents()), opts.steps)
	start := time.Now()
	runErr := s.Run(ctx, opts.steps, opts.realtime)
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Errorf("unable to finish recording: %v", err)
		} else {
			log.Infof("recorded %d events to %s (checksum %x)", rec.Count(), opts.record, rec.Checksum())
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	log.Infof("simulated %d steps in %v", s.Steps(), time.Since(start))
	if mean, stddev := s.StepTimings(); mean > 0 {
		log.Infof("step time: mean=%v stddev=%v", mean, stddev)
	}
	for _, a := range s.Agents() {
		c := a.Controller
		log.WithField("agent", a.Name).Infof("mode=%v position=%v velocity=%v up=%v", c.Mode(),
			game.RoundVec32(a.Body.Position(), 3), game.RoundVec32(c.Velocity(), 3), game.RoundVec32(c.UpAxis(), 3))
	}
	return nil
}
