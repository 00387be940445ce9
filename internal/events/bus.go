// Package events carries the asynchronous inputs and state-change
// notifications of the lighting system over an in-process pub/sub bus.
// Hardware collaborators publish edges and samples; the controller
// subscribes and serializes them onto its own loop.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(MotionEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event's generic Publish needs the concrete type.
	switch e := ev.(type) {
	case ButtonPressedEvent:
		event.Publish(b.dispatcher, e)
	case MotionEvent:
		event.Publish(b.dispatcher, e)
	case LuxSampleEvent:
		event.Publish(b.dispatcher, e)
	case SunriseEvent:
		event.Publish(b.dispatcher, e)
	case SunsetEvent:
		event.Publish(b.dispatcher, e)
	case LateNightAlarmEvent:
		event.Publish(b.dispatcher, e)
	case ModeChangedEvent:
		event.Publish(b.dispatcher, e)
	case TransformerChangedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a handler function; the handler's parameter type
// selects which events it receives. Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e MotionEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ButtonPressedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(MotionEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LuxSampleEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SunriseEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SunsetEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LateNightAlarmEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ModeChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(TransformerChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
