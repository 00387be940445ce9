package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/frontporchlabs/rooflights/internal/clock"
	"github.com/frontporchlabs/rooflights/internal/events"
	"github.com/frontporchlabs/rooflights/internal/led"
	"github.com/frontporchlabs/rooflights/internal/lighting"
	"github.com/frontporchlabs/rooflights/internal/logging"
	"github.com/frontporchlabs/rooflights/internal/settings"
)

// CreateSimulateCmd creates the simulate command: a full simulated day
// on a fake relay and a console strip preview, with the clock running
// faster than real time.
func CreateSimulateCmd() *cobra.Command {
	var speed int
	var hours int
	var settingsFile string
	var sunriseHour int
	var sunsetHour int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an accelerated simulated day on a console display",
		Long: `Drives the lighting controller through sunset, late night and sunrise ` +
			`using a manual clock, a fake transformer relay, and a terminal strip preview. ` +
			`No hardware is required.`,
		Run: func(_ *cobra.Command, _ []string) {
			level := "info"
			if quiet {
				level = "warn"
			}
			logging.Initialize(logging.Config{Level: level, Format: "text"})
			logger := logging.GetLogger("simulate")

			store := settings.NewStore(settingsFile)
			if err := store.Load(); err != nil {
				logger.Error("Failed to load settings", "error", err)
				os.Exit(1)
			}

			start := time.Now().Truncate(time.Hour)
			man := clock.NewManual(start)
			bus := events.New()
			sun := clock.FixedSun{
				SunriseHour: sunriseHour,
				SunsetHour:  sunsetHour,
				Location:    start.Location(),
			}

			var out lighting.Output
			console, err := led.Console(lighting.DefaultLayout)
			if err != nil {
				logger.Warn("Console preview unavailable, discarding frames", "error", err)
				out = led.Noop()
			} else {
				out = console
				defer console.Close()
			}

			// Timer firings happen on this goroutine during Advance, so
			// route them through the controller loop.
			var ctrl *lighting.Controller
			sched := clock.WithDispatch(man, func(fn func()) { ctrl.Dispatch(fn) })
			ctrl = lighting.New(&lighting.Options{
				Settings:  store,
				Bus:       bus,
				Relay:     &gpiotest.Pin{N: "relay"},
				Output:    out,
				Sun:       sun,
				Logger:    logging.GetLogger("lighting"),
				Scheduler: sched,
			})

			// Arm sun events on the simulated clock for the whole run.
			runner := clock.NewSunRunner(man, sun,
				func() { bus.Publish(events.SunriseEvent{Timestamp: man.Now().Format(time.RFC3339)}) },
				func() { bus.Publish(events.SunsetEvent{Timestamp: man.Now().Format(time.RFC3339)}) },
			)
			runner.Start()
			defer runner.Stop()

			ctrl.Bootstrap(man.Now())
			ctrl.Start()
			defer ctrl.Stop()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			go ctrl.Run(ctx)

			// Ambient light: bright at noon, dark at night.
			go publishLuxCurve(ctx, man, bus)

			logger.Info("Simulation started",
				"start", start.Format(time.Kitchen),
				"speed", speed,
				"hours", hours)

			end := start.Add(time.Duration(hours) * time.Hour)
			ticker := time.NewTicker(50 * time.Millisecond)
			defer ticker.Stop()

			for man.Now().Before(end) {
				select {
				case <-ctx.Done():
					logger.Info("Simulation interrupted")
					return
				case <-ticker.C:
					man.Advance(time.Duration(speed) * 50 * time.Millisecond)
				}
			}

			snap := ctrl.Snapshot()
			logger.Info("Simulation finished",
				"mode", snap.Mode,
				"time_of_day", snap.TimeOfDay,
				"lights_on", snap.LightsOn,
				"transformer", snap.Transformer)
		},
	}

	cmd.Flags().IntVar(&speed, "speed", 600, "Simulated seconds per real second")
	cmd.Flags().IntVar(&hours, "hours", 26, "Simulated hours to run")
	cmd.Flags().StringVar(&settingsFile, "settings", "settings-sim.toml", "Settings file for the simulated run")
	cmd.Flags().IntVar(&sunriseHour, "sunrise", 7, "Simulated sunrise hour")
	cmd.Flags().IntVar(&sunsetHour, "sunset", 19, "Simulated sunset hour")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Log warnings and errors only")

	return cmd
}

// publishLuxCurve emits an ambient light sample each simulated quarter
// hour, following a coarse day curve.
func publishLuxCurve(ctx context.Context, man *clock.Manual, bus *events.Bus) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h := man.Now().Hour()
			var lux float64
			switch {
			case h >= 10 && h < 16:
				lux = 2000
			case h >= 7 && h < 19:
				lux = 600
			default:
				lux = 5
			}
			bus.Publish(events.LuxSampleEvent{
				Lux:       lux,
				Timestamp: man.Now().Format(time.RFC3339),
			})
		}
	}
}
