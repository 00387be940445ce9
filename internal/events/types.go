package events

// Event type constants for kelindar/event.
const (
	TypeButtonPressed uint32 = iota + 1
	TypeMotion
	TypeLuxSample
	TypeSunrise
	TypeSunset
	TypeLateNightAlarm
	TypeModeChanged
	TypeTransformerChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ButtonPressedEvent is one debounced activation edge of the push-button.
// The digital-IO collaborator publishes these; the controller counts them
// into gestures.
type ButtonPressedEvent struct {
	Timestamp string `json:"timestamp" doc:"Edge timestamp"`
}

// Type returns the event type identifier for ButtonPressedEvent.
func (e ButtonPressedEvent) Type() uint32 { return TypeButtonPressed }

// MotionEvent is a motion sensor edge. Active is true on trip, false on
// release.
type MotionEvent struct {
	Active    bool   `json:"active" doc:"True while the sensor sees motion"`
	Timestamp string `json:"timestamp" doc:"Edge timestamp"`
}

// Type returns the event type identifier for MotionEvent.
func (e MotionEvent) Type() uint32 { return TypeMotion }

// LuxSampleEvent is a periodic ambient-light reading in lux.
type LuxSampleEvent struct {
	Lux       float64 `json:"lux" example:"120.5" doc:"Measured ambient light"`
	Timestamp string  `json:"timestamp" doc:"Sample timestamp"`
}

// Type returns the event type identifier for LuxSampleEvent.
func (e LuxSampleEvent) Type() uint32 { return TypeLuxSample }

// SunriseEvent fires once per day at sunrise.
type SunriseEvent struct {
	Timestamp string `json:"timestamp" doc:"Event timestamp"`
}

// Type returns the event type identifier for SunriseEvent.
func (e SunriseEvent) Type() uint32 { return TypeSunrise }

// SunsetEvent fires once per day at sunset.
type SunsetEvent struct {
	Timestamp string `json:"timestamp" doc:"Event timestamp"`
}

// Type returns the event type identifier for SunsetEvent.
func (e SunsetEvent) Type() uint32 { return TypeSunset }

// LateNightAlarmEvent fires daily at the configured late-night start time.
type LateNightAlarmEvent struct {
	Timestamp string `json:"timestamp" doc:"Event timestamp"`
}

// Type returns the event type identifier for LateNightAlarmEvent.
func (e LateNightAlarmEvent) Type() uint32 { return TypeLateNightAlarm }

// ModeChangedEvent announces a view-mode transition for diagnostics.
type ModeChangedEvent struct {
	Mode      string `json:"mode" example:"cycle-patterns" doc:"New view mode"`
	Timestamp string `json:"timestamp" doc:"Transition timestamp"`
}

// Type returns the event type identifier for ModeChangedEvent.
func (e ModeChangedEvent) Type() uint32 { return TypeModeChanged }

// TransformerChangedEvent announces a transformer sequencer transition.
type TransformerChangedEvent struct {
	State     string `json:"state" example:"warming-up" doc:"New transformer state"`
	Timestamp string `json:"timestamp" doc:"Transition timestamp"`
}

// Type returns the event type identifier for TransformerChangedEvent.
func (e TransformerChangedEvent) Type() uint32 { return TypeTransformerChanged }
