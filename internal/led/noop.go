package led

import "image/color"

// noop discards frames. Used when no output hardware is available and
// console preview is disabled.
type noop struct{}

// Noop returns an Output that discards every frame.
func Noop() Output {
	return noop{}
}

func (noop) Flush([]color.NRGBA) error { return nil }
func (noop) Close() error              { return nil }
