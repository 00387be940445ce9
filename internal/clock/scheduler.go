// Package clock provides named, cancelable timers and daily alarms for
// the lighting core. All external time sources (RTC, sunrise/sunset
// computation) stay behind interfaces defined here.
package clock

import (
	"log/slog"
	"sync"
	"time"
)

// Scheduler arms named one-shot timers. Scheduling a name that is already
// armed replaces the pending timer; Cancel of an unknown name is a no-op.
type Scheduler interface {
	// Schedule arms fn to run once after d. The previous timer with the
	// same name, if any, is replaced.
	Schedule(name string, d time.Duration, fn func())
	// Cancel disarms the named timer if it is pending.
	Cancel(name string)
	// ScheduleDaily arms fn to run every day at the given wall time,
	// replacing any existing alarm with the same name.
	ScheduleDaily(name string, hour, minute int, fn func())
	// Now returns the scheduler's current time.
	Now() time.Time
}

// Timers is the production Scheduler backed by time.AfterFunc. Callbacks
// are routed through a dispatch function so they execute on the
// controller's single event loop rather than on timer goroutines.
type Timers struct {
	dispatch func(func())
	logger   *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimers creates a scheduler that hands every fired callback to
// dispatch. A nil dispatch runs callbacks inline on the timer goroutine.
func NewTimers(dispatch func(func()), logger *slog.Logger) *Timers {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Timers{
		dispatch: dispatch,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}
}

// Schedule implements Scheduler.
func (t *Timers) Schedule(name string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.timers[name]; ok {
		prev.Stop()
	}
	t.timers[name] = time.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.timers, name)
		t.mu.Unlock()
		t.dispatch(fn)
	})
}

// Cancel implements Scheduler.
func (t *Timers) Cancel(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.timers[name]; ok {
		prev.Stop()
		delete(t.timers, name)
	}
}

// ScheduleDaily implements Scheduler. The alarm re-arms itself after
// every firing.
func (t *Timers) ScheduleDaily(name string, hour, minute int, fn func()) {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	t.Schedule(name, next.Sub(now), func() {
		fn()
		t.ScheduleDaily(name, hour, minute, fn)
	})
	if t.logger != nil {
		t.logger.Debug("Daily alarm armed", "name", name, "at", next)
	}
}

// Now implements Scheduler.
func (t *Timers) Now() time.Time {
	return time.Now()
}

// StopAll disarms every pending timer. Used during shutdown.
func (t *Timers) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, timer := range t.timers {
		timer.Stop()
		delete(t.timers, name)
	}
}
