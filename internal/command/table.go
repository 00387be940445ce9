// Package command implements the text command surface: a registry of
// named commands with fixed arity, parsed from single-line input. It is
// transport-agnostic; the HTTP API and the simulator both feed it.
package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/frontporchlabs/rooflights/internal/metrics"
)

// Result is the outcome of one command execution.
type Result struct {
	OK     bool   `json:"ok" doc:"Whether the command succeeded"`
	Output string `json:"output,omitempty" doc:"Command output or error detail"`
}

// Handler runs one command. Argument count has already been validated
// against the registered arity. A returned error fails the command
// without partial effect.
type Handler func(args []string) (string, error)

type entry struct {
	arity   int
	handler Handler
}

// Table is a registry of commands keyed by name.
type Table struct {
	entries map[string]entry
	logger  *slog.Logger
	met     *metrics.Metrics
}

// New creates an empty command table.
func New(logger *slog.Logger, met *metrics.Metrics) *Table {
	return &Table{
		entries: make(map[string]entry),
		logger:  logger,
		met:     met,
	}
}

// Register adds a command. Registering a duplicate name panics; the
// table is assembled once at startup and a collision is a programming
// error.
func (t *Table) Register(name string, arity int, h Handler) {
	if _, ok := t.entries[name]; ok {
		panic(fmt.Sprintf("command %q registered twice", name))
	}
	t.entries[name] = entry{arity: arity, handler: h}
}

// Names lists the registered command names.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	return names
}

// Execute parses one command line and runs it. Unknown names, wrong
// argument counts, and handler errors all fail without side effects.
func (t *Table) Execute(line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return t.fail("", "empty command")
	}

	name, args := fields[0], fields[1:]
	e, ok := t.entries[name]
	if !ok {
		return t.fail(name, fmt.Sprintf("unknown command %q", name))
	}
	if len(args) != e.arity {
		return t.fail(name, fmt.Sprintf("%s takes %d argument(s), got %d", name, e.arity, len(args)))
	}

	out, err := e.handler(args)
	if err != nil {
		return t.fail(name, err.Error())
	}

	t.logger.Info("Command executed", "command", name, "args", args)
	if t.met != nil {
		t.met.CommandsTotal.WithLabelValues(name, "ok").Inc()
	}
	return Result{OK: true, Output: out}
}

func (t *Table) fail(name, detail string) Result {
	t.logger.Warn("Command rejected", "command", name, "reason", detail)
	if t.met != nil {
		label := name
		if label == "" {
			label = "(empty)"
		}
		t.met.CommandsTotal.WithLabelValues(label, "error").Inc()
	}
	return Result{OK: false, Output: detail}
}
