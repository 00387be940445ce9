// Package metrics exposes the lighting system's operational counters in
// Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for the lighting service.
type Metrics struct {
	registry *prometheus.Registry

	FramesTotal            prometheus.Counter
	GesturesTotal          *prometheus.CounterVec
	TransformerTransitions *prometheus.CounterVec
	CommandsTotal          *prometheus.CounterVec
	AmbientLux             prometheus.Gauge
	LightsOn               prometheus.Gauge
}

// New creates and registers the lighting collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rooflights_frames_total",
			Help: "Pixel frames flushed to the strip output",
		}),
		GesturesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rooflights_gestures_total",
			Help: "Decoded button gestures by press count",
		}, []string{"count"}),
		TransformerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rooflights_transformer_transitions_total",
			Help: "Transformer sequencer state transitions",
		}, []string{"state"}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rooflights_commands_total",
			Help: "Command surface invocations by command and result",
		}, []string{"command", "result"}),
		AmbientLux: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rooflights_ambient_lux",
			Help: "Most recent ambient light sample",
		}),
		LightsOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rooflights_lights_on",
			Help: "Whether the display is currently lit (1) or dark (0)",
		}),
	}

	registry.MustRegister(
		m.FramesTotal,
		m.GesturesTotal,
		m.TransformerTransitions,
		m.CommandsTotal,
		m.AmbientLux,
		m.LightsOn,
	)
	return m
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
