package clock

// SunRunner arms daily sunrise and sunset firings on a Scheduler. The
// notify callbacks re-arm for the following day after each firing, so
// drifting sun times from the provider are picked up automatically.
type SunRunner struct {
	sched     Scheduler
	sun       SunProvider
	onSunrise func()
	onSunset  func()
}

// NewSunRunner creates a runner that invokes the callbacks at the
// provider's sunrise and sunset times.
func NewSunRunner(sched Scheduler, sun SunProvider, onSunrise, onSunset func()) *SunRunner {
	return &SunRunner{sched: sched, sun: sun, onSunrise: onSunrise, onSunset: onSunset}
}

// Start arms the next sunrise and sunset firings.
func (r *SunRunner) Start() {
	r.armSunrise()
	r.armSunset()
}

// Stop disarms both firings.
func (r *SunRunner) Stop() {
	r.sched.Cancel("sunrise")
	r.sched.Cancel("sunset")
}

func (r *SunRunner) armSunrise() {
	now := r.sched.Now()
	rise, _ := r.sun.SunTimes(now.Year(), now.Month(), now.Day())
	if !rise.After(now) {
		next := now.AddDate(0, 0, 1)
		rise, _ = r.sun.SunTimes(next.Year(), next.Month(), next.Day())
	}
	r.sched.Schedule("sunrise", rise.Sub(now), func() {
		r.onSunrise()
		r.armSunrise()
	})
}

func (r *SunRunner) armSunset() {
	now := r.sched.Now()
	_, set := r.sun.SunTimes(now.Year(), now.Month(), now.Day())
	if !set.After(now) {
		next := now.AddDate(0, 0, 1)
		_, set = r.sun.SunTimes(next.Year(), next.Month(), next.Day())
	}
	r.sched.Schedule("sunset", set.Sub(now), func() {
		r.onSunset()
		r.armSunset()
	})
}
