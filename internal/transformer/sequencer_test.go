package transformer

import (
	"log/slog"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/frontporchlabs/rooflights/internal/clock"
)

func newTestSequencer(t *testing.T, blank func()) (*Sequencer, *gpiotest.Pin, *clock.Manual) {
	t.Helper()
	pin := &gpiotest.Pin{N: "relay"}
	sched := clock.NewManual(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
	logger := slog.New(slog.DiscardHandler)
	return New(pin, sched, blank, logger, nil), pin, sched
}

func TestSequencer_PowerOnSequence(t *testing.T) {
	seq, pin, sched := newTestSequencer(t, nil)

	seq.Request(true)

	if pin.L != gpio.High {
		t.Error("Relay should close immediately on power-on request")
	}
	if seq.State() != WarmingUp {
		t.Errorf("State = %v, want WarmingUp", seq.State())
	}
	if seq.Powered() {
		t.Error("LEDs must not be driven before warm-up completes")
	}

	sched.Advance(WarmUpDelay - time.Millisecond)
	if seq.Powered() {
		t.Error("Warm-up must not complete early")
	}
	if pin.L != gpio.High {
		t.Error("Relay must stay closed throughout warm-up")
	}

	sched.Advance(time.Millisecond)
	if seq.State() != On || !seq.Powered() {
		t.Errorf("State = %v after warm-up, want On", seq.State())
	}
}

func TestSequencer_DuplicateRequestIgnored(t *testing.T) {
	seq, _, sched := newTestSequencer(t, nil)

	seq.Request(true)
	seq.Request(true)

	if !sched.Pending("transformer") {
		t.Fatal("Expected exactly one warm-up timer armed")
	}
	sched.Advance(WarmUpDelay)
	if sched.Pending("transformer") {
		t.Error("Second request must not arm a second timer")
	}
	if seq.State() != On {
		t.Errorf("State = %v, want On", seq.State())
	}
}

func TestSequencer_PowerOffBlanksBeforeRelayOpens(t *testing.T) {
	var order []string
	var pin *gpiotest.Pin
	blank := func() {
		if pin.L == gpio.Low {
			t.Error("Relay opened before blank frame was flushed")
		}
		order = append(order, "blank")
	}

	seq, p, sched := newTestSequencer(t, blank)
	pin = p

	seq.Seed(true)
	seq.Request(false)

	if seq.State() != CoolingDown {
		t.Errorf("State = %v, want CoolingDown", seq.State())
	}
	if len(order) != 1 {
		t.Fatal("Blank-and-flush must run synchronously on power-off")
	}
	if pin.L != gpio.High {
		t.Error("Relay must stay closed during the settle delay")
	}

	sched.Advance(SettleDelay)
	if pin.L != gpio.Low {
		t.Error("Relay should open after the settle delay")
	}
	if seq.State() != Off {
		t.Errorf("State = %v, want Off", seq.State())
	}
}

func TestSequencer_ReverseMidTransition(t *testing.T) {
	seq, pin, sched := newTestSequencer(t, nil)

	seq.Request(true)
	seq.Request(false) // supersedes the warm-up

	sched.Advance(WarmUpDelay)
	if seq.State() != Off {
		t.Errorf("State = %v, want Off after reversed transition", seq.State())
	}
	if pin.L != gpio.Low {
		t.Error("Relay should be open after reversed transition")
	}
}

func TestSequencer_Seed(t *testing.T) {
	seq, pin, _ := newTestSequencer(t, nil)

	seq.Seed(true)
	if seq.State() != On || pin.L != gpio.High {
		t.Errorf("Seed(true): state=%v relay=%v", seq.State(), pin.L)
	}

	// Seeding to On makes a later On request a no-op.
	seq.Request(true)
	if seq.State() != On {
		t.Errorf("State = %v, want On", seq.State())
	}
}
