package lighting

import (
	"testing"
	"time"
)

func TestGestureDecoderCountsPressesInWindow(t *testing.T) {
	base := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	d := NewGestureDecoder(time.Second)

	d.Press(base)
	d.Press(base.Add(300 * time.Millisecond))
	d.Press(base.Add(600 * time.Millisecond))

	if _, ok := d.Tick(base.Add(900 * time.Millisecond)); ok {
		t.Fatal("gesture emitted before the window elapsed")
	}

	count, ok := d.Tick(base.Add(1700 * time.Millisecond))
	if !ok {
		t.Fatal("gesture not emitted after window elapsed")
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestGestureDecoderWindowSlidesWithEachPress(t *testing.T) {
	base := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	d := NewGestureDecoder(time.Second)

	// Each press lands just inside the window from the previous one.
	d.Press(base)
	d.Press(base.Add(900 * time.Millisecond))
	d.Press(base.Add(1800 * time.Millisecond))

	count, ok := d.Tick(base.Add(2900 * time.Millisecond))
	if !ok || count != 3 {
		t.Errorf("count = %d ok = %v, want 3 true", count, ok)
	}
}

func TestGestureDecoderEmitsOnce(t *testing.T) {
	base := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	d := NewGestureDecoder(time.Second)

	d.Press(base)
	if _, ok := d.Tick(base.Add(2 * time.Second)); !ok {
		t.Fatal("first Tick did not emit")
	}
	if _, ok := d.Tick(base.Add(3 * time.Second)); ok {
		t.Error("second Tick emitted the same gesture again")
	}
}

func TestGestureDecoderIdleWithoutPresses(t *testing.T) {
	d := NewGestureDecoder(time.Second)
	if d.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", d.Pending())
	}
	if _, ok := d.Tick(time.Now()); ok {
		t.Error("idle decoder emitted a gesture")
	}
}
