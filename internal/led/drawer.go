package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
)

// drawerOutput drives any periph display.Drawer (the nrzled SPI device in
// production, a console screen in simulation) as a 1-pixel-high strip.
type drawerOutput struct {
	drawer display.Drawer
	index  IndexMap
	img    *image.NRGBA
}

func newDrawerOutput(d display.Drawer, index IndexMap) *drawerOutput {
	return &drawerOutput{
		drawer: d,
		index:  index,
		img:    image.NewNRGBA(image.Rect(0, 0, len(index), 1)),
	}
}

// Flush implements Output.
func (o *drawerOutput) Flush(frame []color.NRGBA) error {
	if len(frame) != len(o.index) {
		return fmt.Errorf("frame length %d does not match LED count %d", len(frame), len(o.index))
	}
	for logical, physical := range o.index {
		o.img.SetNRGBA(physical, 0, frame[logical])
	}
	if err := o.drawer.Draw(o.drawer.Bounds(), o.img, image.Point{}); err != nil {
		return fmt.Errorf("strip draw failed: %w", err)
	}
	return nil
}

// Close implements Output.
func (o *drawerOutput) Close() error {
	return o.drawer.Halt()
}
