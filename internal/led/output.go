// Package led is the output layer between the lighting controller and
// the physical strips: it owns the logical-to-physical index map and the
// strip driver, with console and no-op fallbacks for running off-target.
package led

import "image/color"

// Output receives one fully composited frame per tick. Flush transmits
// the frame; implementations apply the index map so callers always work
// in logical left-to-right order.
type Output interface {
	// Flush transmits the frame. len(frame) must equal the layout's
	// LED count.
	Flush(frame []color.NRGBA) error

	// Close releases the underlying device.
	Close() error
}
