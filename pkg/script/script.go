// Package script runs bscript source end to end: it tokenizes the source and
// executes the token stream on a pooled machine.
package script

import (
	"io"
	"log/slog"

	"github.com/agenthands/bscript/pkg/core/value"
	"github.com/agenthands/bscript/pkg/vm"
)

// Options configures a run.
type Options struct {
	Out    io.Writer    // print and goto output; io.Discard when nil
	Gas    int          // statement limit, 0 for none
	Logger *slog.Logger // debug tracing; discarded when nil
}

// Result describes a completed run.
type Result struct {
	Env   map[string]value.Value // terminal bindings
	Steps int
}

// Run executes source. Lexical errors are returned before any statement
// runs; runtime errors abort the run with whatever output was already
// written.
func Run(source []byte, opts Options) (*Result, error) {
	prog, err := vm.Compile(source)
	if err != nil {
		return nil, err
	}
	return Exec(prog, opts)
}

// Exec runs an already compiled program.
func Exec(prog *vm.Program, opts Options) (*Result, error) {
	m := vm.GetMachine()
	defer vm.PutMachine(m)

	m.Load(prog)
	m.Out = opts.Out
	if m.Out == nil {
		m.Out = io.Discard
	}
	m.Logger = opts.Logger

	if opts.Logger != nil {
		opts.Logger.Debug("run start", slog.Int("tokens", prog.Len()), slog.Int("gas", opts.Gas))
	}
	if err := m.Run(opts.Gas); err != nil {
		return nil, err
	}
	return &Result{Env: m.Env.Snapshot(), Steps: m.Steps}, nil
}
