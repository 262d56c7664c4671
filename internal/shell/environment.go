package shell

import (
	"time"

	"github.com/oasis-os/oasis/internal/vfs"
)

// Clock is the platform time service. Production wires it to time.Now;
// tests and embedded targets without a host clock can substitute a fixed
// or simulated implementation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock backed by the host's wall clock.
var SystemClock Clock = systemClock{}

// Environment is the per-execution context a Command reads and writes.
// Lifetime: one Environment exists per command execution; the interpreter
// clones it for each pipeline stage and writes only Cwd back to the
// shared session state.
type Environment struct {
	Cwd string
	VFS vfs.VFS

	// Stdin carries the previous pipeline stage's stdout, joined as bytes.
	Stdin []byte

	Vars *VarScope

	// ReadInput, if set, supplies one line of interactive input for a
	// prompt. It is carried into cloned environments; no builtin in this
	// package calls it.
	ReadInput func(prompt string) (string, error)

	// Clock backs time-dependent builtins (date, uptime, cal). Optional:
	// nil means those builtins report unavailable rather than panic, for
	// embedded environments with no platform time service wired up.
	Clock Clock

	// BootTime anchors "uptime"; zero means unknown.
	BootTime time.Time

	// Interp lets a builtin (time, watch) re-enter the interpreter on its
	// own argument command.
	Interp *Interpreter
}

// Clone returns a shallow copy sharing VFS/Vars but with a fresh Stdin,
// used when forking into a pipeline stage.
func (e *Environment) Clone(stdin []byte) *Environment {
	return &Environment{
		Cwd:       e.Cwd,
		VFS:       e.VFS,
		Stdin:     stdin,
		Vars:      e.Vars,
		ReadInput: e.ReadInput,
		Clock:     e.Clock,
		BootTime:  e.BootTime,
		Interp:    e.Interp,
	}
}
