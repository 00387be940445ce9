package lighting

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/frontporchlabs/rooflights/internal/command"
)

func newCommandRig(t *testing.T) (*command.Table, *testRig) {
	t.Helper()
	now := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC)
	rig := newTestRig(t, now)
	rig.ctrl.timeOfDay = Night

	tbl := command.New(slog.New(slog.DiscardHandler), nil)
	RegisterCommands(tbl, rig.ctrl, rig.store)

	go rig.ctrl.Run(t.Context())
	return tbl, rig
}

func TestSetColorPersists(t *testing.T) {
	tbl, rig := newCommandRig(t)

	res := tbl.Execute("set_color 1 0 0.5")
	if !res.OK {
		t.Fatalf("set_color failed: %s", res.Output)
	}

	c := rig.store.Get().DefaultColor
	if c.R != 1 || c.G != 0 || c.B != 0.5 {
		t.Errorf("stored color = %+v", c)
	}

	res = tbl.Execute("get_color")
	if !res.OK || res.Output != "1 0 0.5" {
		t.Errorf("get_color = %+v", res)
	}
}

func TestSetColorRejectsOutOfRange(t *testing.T) {
	tbl, rig := newCommandRig(t)
	before := rig.store.Get().DefaultColor

	res := tbl.Execute("set_color 2 0 0")
	if res.OK {
		t.Fatal("out-of-range component accepted")
	}
	if rig.store.Get().DefaultColor != before {
		t.Error("rejected command mutated settings")
	}
}

func TestSetIntensityRoundTrip(t *testing.T) {
	tbl, rig := newCommandRig(t)

	if res := tbl.Execute("set_intensity 0.25 0.9"); !res.OK {
		t.Fatalf("set_intensity failed: %s", res.Output)
	}
	s := rig.store.Get()
	if s.DefaultIntensity != 0.25 || s.ActiveIntensity != 0.9 {
		t.Errorf("intensities = %v %v", s.DefaultIntensity, s.ActiveIntensity)
	}
	if res := tbl.Execute("get_intensity"); res.Output != "0.25 0.9" {
		t.Errorf("get_intensity = %q", res.Output)
	}
}

func TestSetLuxMinMaxValidatesOrder(t *testing.T) {
	tbl, rig := newCommandRig(t)

	if res := tbl.Execute("set_luxminmax 900 100"); res.OK {
		t.Error("descending lux range accepted")
	}
	if res := tbl.Execute("set_luxminmax 100 900"); !res.OK {
		t.Fatalf("valid lux range rejected: %s", res.Output)
	}
	s := rig.store.Get()
	if s.MinLux != 100 || s.MaxLux != 900 {
		t.Errorf("lux range = %g..%g", s.MinLux, s.MaxLux)
	}
}

func TestSetLateNightStartRearmsAlarm(t *testing.T) {
	tbl, rig := newCommandRig(t)

	if res := tbl.Execute("set_latenightstarttime 22 30"); !res.OK {
		t.Fatalf("set_latenightstarttime failed: %s", res.Output)
	}
	s := rig.store.Get()
	if s.LateNightHour != 22 || s.LateNightMinute != 30 {
		t.Errorf("stored start = %02d:%02d", s.LateNightHour, s.LateNightMinute)
	}
	if !rig.man.Pending(lateNightAlarm) {
		t.Error("daily alarm not re-armed")
	}
	if res := tbl.Execute("get_latenightstarttime"); res.Output != "22:30" {
		t.Errorf("get_latenightstarttime = %q", res.Output)
	}
}

func TestSetLateNightStartRejectsBadTime(t *testing.T) {
	tbl, _ := newCommandRig(t)
	for _, bad := range []string{"24 00", "12 60", "noon 00", "12", "12 3x"} {
		if res := tbl.Execute("set_latenightstarttime " + bad); res.OK {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestTimeoutCommands(t *testing.T) {
	tbl, rig := newCommandRig(t)

	if res := tbl.Execute("set_motionTO 30"); !res.OK {
		t.Fatalf("set_motionTO failed: %s", res.Output)
	}
	if res := tbl.Execute("set_latenightTO 45"); !res.OK {
		t.Fatalf("set_latenightTO failed: %s", res.Output)
	}
	s := rig.store.Get()
	if s.MotionTimeoutMin != 30 || s.LateNightTimeoutMin != 45 {
		t.Errorf("timeouts = %d/%d", s.MotionTimeoutMin, s.LateNightTimeoutMin)
	}

	if res := tbl.Execute("set_motionTO 0"); res.OK {
		t.Error("zero timeout accepted")
	}
	if res := tbl.Execute("set_motionTO -5"); res.OK {
		t.Error("negative timeout accepted")
	}
}

func TestToggleCommandDrivesController(t *testing.T) {
	tbl, rig := newCommandRig(t)

	if res := tbl.Execute("set_toggle on"); !res.OK {
		t.Fatalf("set_toggle failed: %s", res.Output)
	}
	if !rig.ctrl.Snapshot().LightsOn {
		t.Error("set_toggle on did not turn lights on")
	}

	if res := tbl.Execute("set_toggle maybe"); res.OK {
		t.Error("bad toggle argument accepted")
	}
}

func TestTestPatternCommand(t *testing.T) {
	tbl, rig := newCommandRig(t)

	if res := tbl.Execute("test_pattern on"); !res.OK {
		t.Fatalf("test_pattern on failed: %s", res.Output)
	}
	if got := rig.ctrl.Snapshot().Mode; got != TestPattern.String() {
		t.Errorf("mode = %q", got)
	}

	if res := tbl.Execute("test_pattern off"); !res.OK {
		t.Fatalf("test_pattern off failed: %s", res.Output)
	}
	if got := rig.ctrl.Snapshot().Mode; got != Normal.String() {
		t.Errorf("mode = %q", got)
	}
}

func TestCommandNamesAreComplete(t *testing.T) {
	tbl, _ := newCommandRig(t)

	want := []string{
		"set_toggle", "test_pattern",
		"set_color", "get_color",
		"set_intensity", "get_intensity",
		"set_luxminmax", "get_luxminmax",
		"set_latenightstarttime", "get_latenightstarttime",
		"set_motionTO", "get_motionTO",
		"set_latenightTO", "get_latenightTO",
	}
	names := strings.Join(tbl.Names(), " ")
	for _, w := range want {
		if !strings.Contains(names, w) {
			t.Errorf("command %q not registered", w)
		}
	}
}
