// Package transformer sequences the relay feeding the LED power
// transformer. The relay must never open while pixel data is mid-flight
// and the strips must not be driven before the transformer has settled,
// so every power change runs through a small state machine with delays.
package transformer

import (
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/frontporchlabs/rooflights/internal/clock"
)

// State is the sequencer's position in the power cycle.
type State int

const (
	Off State = iota
	WarmingUp
	On
	CoolingDown
)

// String returns the state name for logs and the status page.
func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case WarmingUp:
		return "warming-up"
	case On:
		return "on"
	case CoolingDown:
		return "cooling-down"
	default:
		return "unknown"
	}
}

const (
	// WarmUpDelay lets the transformer stabilize before LEDs are driven.
	WarmUpDelay = 2 * time.Second
	// SettleDelay lets the final blank frame finish transmitting before
	// the relay opens.
	SettleDelay = 100 * time.Millisecond

	timerName = "transformer"
)

// Sequencer drives the relay pin through safe power transitions. It is
// not safe for concurrent use; the lighting controller owns it and calls
// it only from its own loop.
type Sequencer struct {
	relay    gpio.PinIO
	sched    clock.Scheduler
	blank    func()
	logger   *slog.Logger
	onChange func(State)

	state  State
	target bool
}

// New creates a sequencer in the Off state. blank is invoked just before
// power-down to zero the strip; onChange, if non-nil, observes every
// state transition.
func New(relay gpio.PinIO, sched clock.Scheduler, blank func(), logger *slog.Logger, onChange func(State)) *Sequencer {
	return &Sequencer{
		relay:    relay,
		sched:    sched,
		blank:    blank,
		logger:   logger,
		onChange: onChange,
		state:    Off,
	}
}

// State returns the current sequencer state.
func (s *Sequencer) State() State {
	return s.state
}

// Powered reports whether the LEDs may be driven: only once the warm-up
// has completed.
func (s *Sequencer) Powered() bool {
	return s.state == On
}

// Request asks for the transformer to be on or off. Duplicate requests,
// meaning a transition to the target already in progress or complete, are
// ignored.
func (s *Sequencer) Request(on bool) {
	if on == s.target {
		// The transition is already in progress or complete.
		return
	}
	s.target = on
	s.logger.Info("Transformer state requested", "on", on)

	if on {
		// Close the relay immediately; hold off the LEDs until the
		// transformer has warmed up.
		if err := s.relay.Out(gpio.High); err != nil {
			s.logger.Error("Relay write failed", "error", err)
		}
		s.setState(WarmingUp)
		s.sched.Schedule(timerName, WarmUpDelay, func() {
			s.setState(On)
		})
		return
	}

	// Stop driving LEDs, push one blank frame, and only open the relay
	// once the flush has had time to complete.
	s.setState(CoolingDown)
	if s.blank != nil {
		s.blank()
	}
	s.sched.Schedule(timerName, SettleDelay, func() {
		if err := s.relay.Out(gpio.Low); err != nil {
			s.logger.Error("Relay write failed", "error", err)
		}
		s.setState(Off)
	})
}

// Seed forces the sequencer directly into On or Off without delays.
// Used once at startup when the initial state is derived from the
// current time of day.
func (s *Sequencer) Seed(on bool) {
	s.target = on
	level := gpio.Low
	state := Off
	if on {
		level = gpio.High
		state = On
	}
	if err := s.relay.Out(level); err != nil {
		s.logger.Error("Relay write failed", "error", err)
	}
	s.setState(state)
}

func (s *Sequencer) setState(next State) {
	if s.state == next {
		return
	}
	s.state = next
	s.logger.Info("Transformer transition", "state", next.String())
	if s.onChange != nil {
		s.onChange(next)
	}
}
