package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

type helpCmd struct{}

func (helpCmd) Name() string        { return "help" }
func (helpCmd) Description() string { return "List every available command" }
func (helpCmd) Usage() string       { return "help" }
func (helpCmd) Category() string    { return "doc" }
func (helpCmd) Execute(args []string, env *Environment) (Output, error) {
	if env.Interp == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no registry available")
	}
	all := env.Interp.Registry.All()
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	var b strings.Builder
	category := ""
	for _, c := range all {
		if c.Category() != category {
			category = c.Category()
			fmt.Fprintf(&b, "\n[%s]\n", category)
		}
		fmt.Fprintf(&b, "  %-12s %s\n", c.Name(), c.Description())
	}
	return TextOutput(strings.TrimPrefix(b.String(), "\n")), nil
}

type manCmd struct{}

func (manCmd) Name() string        { return "man" }
func (manCmd) Description() string { return "Show usage for one command" }
func (manCmd) Usage() string       { return "man <command>" }
func (manCmd) Category() string    { return "doc" }
func (manCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: man <command>")
	}
	if env.Interp == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no registry available")
	}
	c, ok := env.Interp.Registry.Lookup(args[0])
	if !ok {
		return Output{}, oerr.Newf(oerr.KindCommand, "no manual entry for %s", args[0])
	}
	return TextOutput(fmt.Sprintf("%s - %s\n\nusage: %s\n", c.Name(), c.Description(), c.Usage())), nil
}

const tutorialText = `Welcome to OASIS.

Windows open on the desktop; drag a titlebar to move one, drag the
bottom-right corner to resize. The terminal accepts pipelines (|),
redirects (>, >>, <), and sequencing (&&, ||, ;). Try "help" for the
full command list, or "man <command>" for one command's usage.
`

type tutorialCmd struct{}

func (tutorialCmd) Name() string        { return "tutorial" }
func (tutorialCmd) Description() string { return "Print the getting-started walkthrough" }
func (tutorialCmd) Usage() string       { return "tutorial" }
func (tutorialCmd) Category() string    { return "doc" }
func (tutorialCmd) Execute(args []string, env *Environment) (Output, error) {
	return TextOutput(tutorialText), nil
}

type motdCmd struct{}

func (motdCmd) Name() string        { return "motd" }
func (motdCmd) Description() string { return "Print the message of the day" }
func (motdCmd) Usage() string       { return "motd" }
func (motdCmd) Category() string    { return "doc" }
func (motdCmd) Execute(args []string, env *Environment) (Output, error) {
	if env.VFS.Exists("/etc/motd") {
		data, err := env.VFS.Read("/etc/motd")
		if err == nil {
			return TextOutput(string(data)), nil
		}
	}
	return TextOutput("Welcome to OASIS. Type 'help' to get started.\n"), nil
}

// RegisterDoc adds every documentation builtin to r.
func RegisterDoc(r *Registry) {
	r.Register(helpCmd{})
	r.Register(manCmd{})
	r.Register(tutorialCmd{})
	r.Register(motdCmd{})
}
