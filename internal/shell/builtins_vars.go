package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

type setCmd struct{}

func (setCmd) Name() string        { return "set" }
func (setCmd) Description() string { return "Set a variable" }
func (setCmd) Usage() string       { return "set <name> <value...>" }
func (setCmd) Category() string    { return "vars" }
func (setCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: set <name> <value...>")
	}
	env.Vars.Set(args[0], strings.Join(args[1:], " "))
	return TextOutput(""), nil
}

type unsetCmd struct{}

func (unsetCmd) Name() string        { return "unset" }
func (unsetCmd) Description() string { return "Remove a variable" }
func (unsetCmd) Usage() string       { return "unset <name>" }
func (unsetCmd) Category() string    { return "vars" }
func (unsetCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: unset <name>")
	}
	env.Vars.Unset(args[0])
	return TextOutput(""), nil
}

type envCmd struct{}

func (envCmd) Name() string        { return "env" }
func (envCmd) Description() string { return "List every set variable" }
func (envCmd) Usage() string       { return "env" }
func (envCmd) Category() string    { return "vars" }
func (envCmd) Execute(args []string, env *Environment) (Output, error) {
	all := env.Vars.All()
	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, "%s=%s\n", k, all[k])
	}
	return TextOutput(b.String()), nil
}

type aliasCmd struct{}

func (aliasCmd) Name() string        { return "alias" }
func (aliasCmd) Description() string { return "Define or list command aliases" }
func (aliasCmd) Usage() string       { return "alias [name] [target]" }
func (aliasCmd) Category() string    { return "vars" }
func (aliasCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) == 0 {
		all := env.Vars.Aliases()
		names := make([]string, 0, len(all))
		for k := range all {
			names = append(names, k)
		}
		sort.Strings(names)
		var b strings.Builder
		for _, k := range names {
			fmt.Fprintf(&b, "%s=%s\n", k, all[k])
		}
		return TextOutput(b.String()), nil
	}
	if len(args) < 2 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: alias <name> <target>")
	}
	env.Vars.SetAlias(args[0], args[1])
	return TextOutput(""), nil
}

type unaliasCmd struct{}

func (unaliasCmd) Name() string        { return "unalias" }
func (unaliasCmd) Description() string { return "Remove a command alias" }
func (unaliasCmd) Usage() string       { return "unalias <name>" }
func (unaliasCmd) Category() string    { return "vars" }
func (unaliasCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: unalias <name>")
	}
	env.Vars.UnsetAlias(args[0])
	return TextOutput(""), nil
}

// RegisterVars adds every variable-management builtin to r.
func RegisterVars(r *Registry) {
	r.Register(setCmd{})
	r.Register(unsetCmd{})
	r.Register(envCmd{})
	r.Register(aliasCmd{})
	r.Register(unaliasCmd{})
}
