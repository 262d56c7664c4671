package shell

import (
	"github.com/oasis-os/oasis/internal/oerr"
)

type runCmd struct{}

func (runCmd) Name() string        { return "run" }
func (runCmd) Description() string { return "Execute a script file from the VFS" }
func (runCmd) Usage() string       { return "run <path>" }
func (runCmd) Category() string    { return "scripting" }
func (runCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: run <path>")
	}
	if env.Interp == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no interpreter available")
	}
	path := resolvePath(env.Cwd, args[0])
	data, err := env.VFS.Read(path)
	if err != nil {
		return Output{}, err
	}
	return env.Interp.RunScript(string(data), env)
}

// sourceCmd runs a script in the caller's own Environment, same as run: the
// interpreter has no distinct subshell scope to isolate Vars from, so
// "source" and "run" are equivalent here.
type sourceCmd struct{}

func (sourceCmd) Name() string        { return "source" }
func (sourceCmd) Description() string { return "Execute a script file in the current session" }
func (sourceCmd) Usage() string       { return "source <path>" }
func (sourceCmd) Category() string    { return "scripting" }
func (sourceCmd) Execute(args []string, env *Environment) (Output, error) {
	return runCmd{}.Execute(args, env)
}

// RegisterScripting adds every scripting builtin to r.
func RegisterScripting(r *Registry) {
	r.Register(runCmd{})
	r.Register(sourceCmd{})
}
