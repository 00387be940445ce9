package led

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/frontporchlabs/rooflights/internal/lighting"
)

// refreshRate is the WS2811 data clock base in kHz.
const refreshRate physic.Frequency = 800

// New opens the strip output for the given layout. It prefers the SPI
// NRZ driver on the named port and falls back to a console preview when
// no SPI hardware is present, so the service runs unchanged off-target.
func New(spiPort string, layout lighting.Layout, logger *slog.Logger) (Output, error) {
	index, err := BuildIndexMap(layout)
	if err != nil {
		return nil, err
	}

	port, err := spireg.Open(spiPort)
	if err != nil {
		logger.Info("No SPI port available, using console strip preview", "port", spiPort, "error", err)
		return newDrawerOutput(screen.New(len(index)), index), nil
	}

	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: len(index),
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open NRZ LED driver: %w", err)
	}
	if err := dev.Halt(); err != nil {
		return nil, fmt.Errorf("failed to blank strip at startup: %w", err)
	}

	logger.Info("SPI strip driver ready", "port", spiPort, "pixels", len(index))
	return newDrawerOutput(dev, index), nil
}

// Console returns an Output rendering to the terminal, for simulation.
func Console(layout lighting.Layout) (Output, error) {
	index, err := BuildIndexMap(layout)
	if err != nil {
		return nil, err
	}
	return newDrawerOutput(screen.New(len(index)), index), nil
}
