package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests and simulation. Time only
// moves when Advance is called; due callbacks fire inline, in order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	entries []manualEntry
}

type manualEntry struct {
	name  string
	at    time.Time
	fn    func()
	daily bool
	hour  int
	min   int
}

// NewManual creates a manual scheduler starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(name string, d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked(name)
	m.entries = append(m.entries, manualEntry{name: name, at: m.now.Add(d), fn: fn})
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked(name)
}

func (m *Manual) cancelLocked(name string) {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.name != name {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}

// ScheduleDaily implements Scheduler.
func (m *Manual) ScheduleDaily(name string, hour, minute int, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked(name)
	next := time.Date(m.now.Year(), m.now.Month(), m.now.Day(), hour, minute, 0, 0, m.now.Location())
	if !next.After(m.now) {
		next = next.AddDate(0, 0, 1)
	}
	m.entries = append(m.entries, manualEntry{
		name: name, at: next, fn: fn, daily: true, hour: hour, min: minute,
	})
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending reports whether the named timer is armed.
func (m *Manual) Pending(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.name == name {
			return true
		}
	}
	return false
}

// Advance moves time forward by d, firing every due callback in
// chronological order. Daily alarms re-arm themselves. The lock is
// released while each callback runs so callbacks can schedule and
// cancel timers.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	deadline := m.now.Add(d)
	for {
		idx := -1
		for i, e := range m.entries {
			if e.at.After(deadline) {
				continue
			}
			if idx == -1 || e.at.Before(m.entries[idx].at) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		e := m.entries[idx]
		m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
		m.now = e.at
		if e.daily {
			m.entries = append(m.entries, manualEntry{
				name: e.name, at: e.at.AddDate(0, 0, 1), fn: e.fn,
				daily: true, hour: e.hour, min: e.min,
			})
		}
		m.mu.Unlock()
		e.fn()
		m.mu.Lock()
	}
	m.now = deadline
	sort.SliceStable(m.entries, func(i, j int) bool { return m.entries[i].at.Before(m.entries[j].at) })
	m.mu.Unlock()
}
