package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/host/v3"

	"github.com/frontporchlabs/rooflights/cmd"
	"github.com/frontporchlabs/rooflights/internal/api"
	"github.com/frontporchlabs/rooflights/internal/clock"
	"github.com/frontporchlabs/rooflights/internal/command"
	"github.com/frontporchlabs/rooflights/internal/config"
	"github.com/frontporchlabs/rooflights/internal/events"
	"github.com/frontporchlabs/rooflights/internal/led"
	"github.com/frontporchlabs/rooflights/internal/lighting"
	"github.com/frontporchlabs/rooflights/internal/logging"
	"github.com/frontporchlabs/rooflights/internal/metrics"
	"github.com/frontporchlabs/rooflights/internal/settings"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8080" toml:"server.port" env:"SERVER_PORT"`

	// Lighting settings
	SettingsFile string `help:"Persisted tunables file" default:"settings.toml" toml:"lighting.settings_file" env:"SETTINGS_FILE"`
	PanelSize    int    `help:"LEDs per roof panel" default:"38" toml:"lighting.panel_size" env:"PANEL_SIZE"`
	LeftPanels   int    `help:"Panels left of center" default:"6" toml:"lighting.left_panels" env:"LEFT_PANELS"`
	RightPanels  int    `help:"Panels right of center" default:"4" toml:"lighting.right_panels" env:"RIGHT_PANELS"`

	// Hardware settings
	SPIPort  string `help:"SPI port for the LED strip (empty picks the first)" default:"" toml:"hardware.spi_port" env:"SPI_PORT"`
	RelayPin string `help:"GPIO pin driving the transformer relay" default:"GPIO17" toml:"hardware.relay_pin" env:"RELAY_PIN"`

	// Sun times (local wall clock; an external ephemeris can override daily)
	SunriseHour   int `help:"Sunrise hour" default:"7" toml:"sun.sunrise_hour" env:"SUNRISE_HOUR"`
	SunriseMinute int `help:"Sunrise minute" default:"0" toml:"sun.sunrise_minute" env:"SUNRISE_MINUTE"`
	SunsetHour    int `help:"Sunset hour" default:"19" toml:"sun.sunset_hour" env:"SUNSET_HOUR"`
	SunsetMinute  int `help:"Sunset minute" default:"0" toml:"sun.sunset_minute" env:"SUNSET_MINUTE"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel       string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat      string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingLighting    string `help:"Lighting controller logging level" default:"info" toml:"logging.lighting" env:"LOGGING_LIGHTING"`
	LoggingTransformer string `help:"Transformer sequencer logging level" default:"info" toml:"logging.transformer" env:"LOGGING_TRANSFORMER"`
	LoggingLED         string `help:"LED output logging level" default:"info" toml:"logging.led" env:"LOGGING_LED"`
	LoggingAPI         string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"lighting":    opts.LoggingLighting,
				"transformer": opts.LoggingTransformer,
				"led":         opts.LoggingLED,
				"api":         opts.LoggingAPI,
			},
		})
		logger := logging.GetLogger("main")

		if _, err := host.Init(); err != nil {
			logger.Warn("Hardware host init failed, GPIO and SPI unavailable", "error", err)
		}

		layout := lighting.Layout{
			PanelSize:   opts.PanelSize,
			LeftPanels:  opts.LeftPanels,
			RightPanels: opts.RightPanels,
		}

		store := settings.NewStore(opts.SettingsFile)
		if err := store.Load(); err != nil {
			logger.Error("Failed to load settings", "error", err, "path", opts.SettingsFile)
			os.Exit(1)
		}

		relay := gpioreg.ByName(opts.RelayPin)
		if relay == nil {
			logger.Warn("Relay pin not found, using fake relay", "pin", opts.RelayPin)
			relay = &gpiotest.Pin{N: opts.RelayPin, L: gpio.Low}
		}

		out, err := led.New(opts.SPIPort, layout, logging.GetLogger("led"))
		if err != nil {
			logger.Error("Failed to open LED output", "error", err)
			os.Exit(1)
		}

		bus := events.New()
		met := metrics.New()
		sun := clock.FixedSun{
			SunriseHour:   opts.SunriseHour,
			SunriseMinute: opts.SunriseMinute,
			SunsetHour:    opts.SunsetHour,
			SunsetMinute:  opts.SunsetMinute,
		}

		// The scheduler routes timer firings onto the controller loop.
		var ctrl *lighting.Controller
		sched := clock.NewTimers(func(fn func()) { ctrl.Dispatch(fn) }, logging.GetLogger("clock"))

		ctrl = lighting.New(&lighting.Options{
			Config:    lighting.Config{Layout: layout},
			Settings:  store,
			Bus:       bus,
			Relay:     relay,
			Output:    out,
			Sun:       sun,
			Metrics:   met,
			Logger:    logging.GetLogger("lighting"),
			Scheduler: sched,
		})

		sunRunner := clock.NewSunRunner(sched, sun,
			func() { bus.Publish(events.SunriseEvent{Timestamp: time.Now().Format(time.RFC3339)}) },
			func() { bus.Publish(events.SunsetEvent{Timestamp: time.Now().Format(time.RFC3339)}) },
		)

		commands := command.New(logging.GetLogger("command"), met)
		lighting.RegisterCommands(commands, ctrl, store)

		// Settings edited on disk are picked up without a restart.
		watcher := config.NewConfigWatcher(opts.SettingsFile, settings.LoadFile, logger)
		watcher.OnReload(func(s settings.Settings) {
			logger.Info("Settings file changed, applying")
			store.Replace(s)
			ctrl.RearmLateNightAlarm()
		})

		server := api.NewServer(&api.Options{
			AuthUsername:   opts.AuthUsername,
			AuthPassword:   opts.AuthPassword,
			Controller:     ctrl,
			Commands:       commands,
			Settings:       store,
			Bus:            bus,
			MetricsHandler: met.Handler(),
		})

		runCtx, cancelRun := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			ctrl.Bootstrap(time.Now())
			ctrl.Start()
			go ctrl.Run(runCtx)
			sunRunner.Start()

			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Settings watcher unavailable", "error", watchErr)
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Warn("Error stopping settings watcher", "error", stopErr)
			}
			sunRunner.Stop()
			ctrl.Stop()
			cancelRun()
			sched.StopAll()
			if closeErr := out.Close(); closeErr != nil {
				logger.Warn("Error closing LED output", "error", closeErr)
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateSimulateCmd())

	cli.Run()
}
