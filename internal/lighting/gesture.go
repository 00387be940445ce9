package lighting

import "time"

// DefaultGestureWindow is how long the button must stay idle before an
// accumulated burst of presses is emitted as a single gesture.
const DefaultGestureWindow = time.Second

// GestureDecoder turns a burst of rapid button presses into one discrete
// gesture carrying the press count. The window is a trailing debounce:
// every press restarts it, and the count is emitted only once no press
// has arrived for a full window.
type GestureDecoder struct {
	window time.Duration
	count  int
	last   time.Time
}

// NewGestureDecoder returns a decoder with the given idle window.
// A zero window selects DefaultGestureWindow.
func NewGestureDecoder(window time.Duration) GestureDecoder {
	if window <= 0 {
		window = DefaultGestureWindow
	}
	return GestureDecoder{window: window}
}

// Press records one button activation edge at the given time.
func (d *GestureDecoder) Press(now time.Time) {
	d.count++
	d.last = now
}

// Pending returns the number of presses accumulated so far.
func (d *GestureDecoder) Pending() int {
	return d.count
}

// Tick checks for gesture completion. If presses have accumulated and the
// idle window has elapsed since the last one, it returns the press count
// and resets the counter. Otherwise ok is false.
func (d *GestureDecoder) Tick(now time.Time) (count int, ok bool) {
	if d.count == 0 || now.Sub(d.last) < d.window {
		return 0, false
	}
	count = d.count
	d.count = 0
	return count, true
}
