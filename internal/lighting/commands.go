package lighting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frontporchlabs/rooflights/internal/command"
	"github.com/frontporchlabs/rooflights/internal/settings"
)

// RegisterCommands binds the full text command set to a controller and
// its settings store. Setters persist before reporting success, so a
// reboot never loses an acknowledged change.
func RegisterCommands(tbl *command.Table, ctrl *Controller, store *settings.Store) {
	tbl.Register("set_toggle", 1, func(args []string) (string, error) {
		on, err := parseOnOff(args[0])
		if err != nil {
			return "", err
		}
		ctrl.SetToggle(on)
		return fmt.Sprintf("lights %s", args[0]), nil
	})

	tbl.Register("test_pattern", 1, func(args []string) (string, error) {
		on, err := parseOnOff(args[0])
		if err != nil {
			return "", err
		}
		ctrl.SetTestPattern(on)
		return fmt.Sprintf("test pattern %s", args[0]), nil
	})

	tbl.Register("set_color", 3, func(args []string) (string, error) {
		var rgb [3]float64
		for i, a := range args {
			v, err := parseUnit(a)
			if err != nil {
				return "", err
			}
			rgb[i] = v
		}
		err := store.Update(func(s *settings.Settings) {
			s.DefaultColor = settings.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
		})
		return "color set", err
	})

	tbl.Register("get_color", 0, func([]string) (string, error) {
		c := store.Get().DefaultColor
		return fmt.Sprintf("%g %g %g", c.R, c.G, c.B), nil
	})

	tbl.Register("set_intensity", 2, func(args []string) (string, error) {
		def, err := parseUnit(args[0])
		if err != nil {
			return "", err
		}
		active, err := parseUnit(args[1])
		if err != nil {
			return "", err
		}
		err = store.Update(func(s *settings.Settings) {
			s.DefaultIntensity = def
			s.ActiveIntensity = active
		})
		return "intensity set", err
	})

	tbl.Register("get_intensity", 0, func([]string) (string, error) {
		s := store.Get()
		return fmt.Sprintf("%g %g", s.DefaultIntensity, s.ActiveIntensity), nil
	})

	tbl.Register("set_luxminmax", 2, func(args []string) (string, error) {
		min, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", fmt.Errorf("bad lux value %q", args[0])
		}
		max, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", fmt.Errorf("bad lux value %q", args[1])
		}
		if min < 0 || min >= max {
			return "", fmt.Errorf("lux range %g..%g is not ascending", min, max)
		}
		err = store.Update(func(s *settings.Settings) {
			s.MinLux = min
			s.MaxLux = max
		})
		return "lux range set", err
	})

	tbl.Register("get_luxminmax", 0, func([]string) (string, error) {
		s := store.Get()
		return fmt.Sprintf("%g %g", s.MinLux, s.MaxLux), nil
	})

	tbl.Register("set_latenightstarttime", 2, func(args []string) (string, error) {
		hour, minute, err := parseHourMinute(args[0], args[1])
		if err != nil {
			return "", err
		}
		if err := store.Update(func(s *settings.Settings) {
			s.LateNightHour = hour
			s.LateNightMinute = minute
		}); err != nil {
			return "", err
		}
		ctrl.RearmLateNightAlarm()
		return "late night start set", nil
	})

	tbl.Register("get_latenightstarttime", 0, func([]string) (string, error) {
		s := store.Get()
		return fmt.Sprintf("%02d:%02d", s.LateNightHour, s.LateNightMinute), nil
	})

	tbl.Register("set_motionTO", 1, func(args []string) (string, error) {
		m, err := parseMinutes(args[0])
		if err != nil {
			return "", err
		}
		err = store.Update(func(s *settings.Settings) { s.MotionTimeoutMin = m })
		return "motion timeout set", err
	})

	tbl.Register("get_motionTO", 0, func([]string) (string, error) {
		return strconv.Itoa(store.Get().MotionTimeoutMin), nil
	})

	tbl.Register("set_latenightTO", 1, func(args []string) (string, error) {
		m, err := parseMinutes(args[0])
		if err != nil {
			return "", err
		}
		err = store.Update(func(s *settings.Settings) { s.LateNightTimeoutMin = m })
		return "late night timeout set", err
	})

	tbl.Register("get_latenightTO", 0, func([]string) (string, error) {
		return strconv.Itoa(store.Get().LateNightTimeoutMin), nil
	})
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

// parseUnit parses a float constrained to [0, 1].
func parseUnit(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("%q is not in 0..1", s)
	}
	return v, nil
}

func parseHourMinute(h, m string) (hour, minute int, err error) {
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour %q", h)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute %q", m)
	}
	return hour, minute, nil
}

func parseMinutes(s string) (int, error) {
	m, err := strconv.Atoi(s)
	if err != nil || m <= 0 {
		return 0, fmt.Errorf("%q is not a positive minute count", s)
	}
	return m, nil
}
