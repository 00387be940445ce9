package lighting

import (
	"image/color"
	"math"
)

// Compose scales a base pixel by the given intensity and quantizes it to
// output bytes. Channels clamp to [0, 255] regardless of input.
func Compose(c RGB, intensity float64) color.NRGBA {
	return color.NRGBA{
		R: quantize(c.R * intensity),
		G: quantize(c.G * intensity),
		B: quantize(c.B * intensity),
		A: 255,
	}
}

func quantize(v float64) uint8 {
	scaled := math.Round(v * 255)
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
