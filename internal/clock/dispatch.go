package clock

import "time"

// WithDispatch wraps a Scheduler so fired callbacks are handed to
// dispatch instead of running on the firing goroutine. Timers routes
// firings through its own dispatch hook already; this gives Manual the
// same property when its Advance caller runs concurrently with the
// callback owner's loop.
func WithDispatch(s Scheduler, dispatch func(func())) Scheduler {
	return dispatched{s: s, dispatch: dispatch}
}

type dispatched struct {
	s        Scheduler
	dispatch func(func())
}

func (d dispatched) Schedule(name string, dur time.Duration, fn func()) {
	d.s.Schedule(name, dur, func() { d.dispatch(fn) })
}

func (d dispatched) Cancel(name string) {
	d.s.Cancel(name)
}

func (d dispatched) ScheduleDaily(name string, hour, minute int, fn func()) {
	d.s.ScheduleDaily(name, hour, minute, func() { d.dispatch(fn) })
}

func (d dispatched) Now() time.Time {
	return d.s.Now()
}
