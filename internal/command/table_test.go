package command

import (
	"errors"
	"log/slog"
	"testing"
)

func newTestTable() *Table {
	return New(slog.New(slog.DiscardHandler), nil)
}

func TestExecuteDispatchesByName(t *testing.T) {
	tbl := newTestTable()
	var got []string
	tbl.Register("set_color", 3, func(args []string) (string, error) {
		got = append([]string{}, args...)
		return "ok", nil
	})

	res := tbl.Execute("set_color 1 0 0.5")
	if !res.OK {
		t.Fatalf("Execute failed: %s", res.Output)
	}
	if len(got) != 3 || got[0] != "1" || got[2] != "0.5" {
		t.Errorf("handler args = %v", got)
	}
}

func TestExecuteRejectsUnknownCommand(t *testing.T) {
	tbl := newTestTable()
	res := tbl.Execute("warp_core_eject")
	if res.OK {
		t.Error("unknown command succeeded")
	}
}

func TestExecuteRejectsWrongArity(t *testing.T) {
	tbl := newTestTable()
	called := false
	tbl.Register("set_intensity", 1, func([]string) (string, error) {
		called = true
		return "", nil
	})

	for _, line := range []string{"set_intensity", "set_intensity 0.5 0.6"} {
		if res := tbl.Execute(line); res.OK {
			t.Errorf("%q succeeded with wrong arity", line)
		}
	}
	if called {
		t.Error("handler ran despite arity mismatch")
	}
}

func TestExecuteRejectsEmptyLine(t *testing.T) {
	tbl := newTestTable()
	if res := tbl.Execute("   "); res.OK {
		t.Error("blank line succeeded")
	}
}

func TestExecutePropagatesHandlerError(t *testing.T) {
	tbl := newTestTable()
	tbl.Register("set_luxminmax", 2, func([]string) (string, error) {
		return "", errors.New("min must be below max")
	})

	res := tbl.Execute("set_luxminmax 900 100")
	if res.OK {
		t.Fatal("failing handler reported success")
	}
	if res.Output != "min must be below max" {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	tbl := newTestTable()
	tbl.Register("set_toggle", 1, func([]string) (string, error) { return "", nil })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	tbl.Register("set_toggle", 1, func([]string) (string, error) { return "", nil })
}
