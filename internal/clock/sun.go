package clock

import "time"

// SunProvider supplies sunrise and sunset times for a calendar date.
// Astronomical computation is an external concern; the core only
// consumes the resulting times.
type SunProvider interface {
	SunTimes(year int, month time.Month, day int) (sunrise, sunset time.Time)
}

// FixedSun is a SunProvider with constant wall-clock sunrise and sunset
// hours. It backs the simulator and installations without an ephemeris
// source configured.
type FixedSun struct {
	SunriseHour, SunriseMinute int
	SunsetHour, SunsetMinute   int
	Location                   *time.Location
}

// SunTimes implements SunProvider.
func (f FixedSun) SunTimes(year int, month time.Month, day int) (time.Time, time.Time) {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	sunrise := time.Date(year, month, day, f.SunriseHour, f.SunriseMinute, 0, 0, loc)
	sunset := time.Date(year, month, day, f.SunsetHour, f.SunsetMinute, 0, 0, loc)
	return sunrise, sunset
}
