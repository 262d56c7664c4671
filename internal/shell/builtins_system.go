package shell

import (
	"fmt"
	"time"

	"github.com/oasis-os/oasis/internal/oerr"
)

type uptimeCmd struct{}

func (uptimeCmd) Name() string        { return "uptime" }
func (uptimeCmd) Description() string { return "Time since boot" }
func (uptimeCmd) Usage() string       { return "uptime" }
func (uptimeCmd) Category() string    { return "system" }
func (uptimeCmd) Execute(args []string, env *Environment) (Output, error) {
	if env.Clock == nil || env.BootTime.IsZero() {
		return Output{}, oerr.New(oerr.KindCommand, "no time service available")
	}
	d := env.Clock.Now().Sub(env.BootTime)
	return TextOutput(d.Truncate(time.Second).String() + "\n"), nil
}

type dfCmd struct{}

func (dfCmd) Name() string        { return "df" }
func (dfCmd) Description() string { return "Report VFS usage under /" }
func (dfCmd) Usage() string       { return "df" }
func (dfCmd) Category() string    { return "system" }
func (dfCmd) Execute(args []string, env *Environment) (Output, error) {
	var total int64
	var walk func(path string) error
	walk = func(path string) error {
		entries, err := env.VFS.Readdir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.Kind.String() == "dir" {
				if err := walk(path + "/" + e.Name); err != nil {
					return err
				}
			} else {
				total += e.Size
			}
		}
		return nil
	}
	if err := walk("/"); err != nil {
		return Output{}, err
	}
	return StructuredOutput(map[string]string{"used_bytes": fmt.Sprintf("%d", total)}), nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Print the current user" }
func (whoamiCmd) Usage() string       { return "whoami" }
func (whoamiCmd) Category() string    { return "system" }
func (whoamiCmd) Execute(args []string, env *Environment) (Output, error) {
	user, _ := env.Vars.Get("USER")
	return TextOutput(user + "\n"), nil
}

type hostnameCmd struct{}

func (hostnameCmd) Name() string        { return "hostname" }
func (hostnameCmd) Description() string { return "Print the device name" }
func (hostnameCmd) Usage() string       { return "hostname" }
func (hostnameCmd) Category() string    { return "system" }
func (hostnameCmd) Execute(args []string, env *Environment) (Output, error) {
	return TextOutput("oasis\n"), nil
}

type dateCmd struct{}

func (dateCmd) Name() string        { return "date" }
func (dateCmd) Description() string { return "Print the current date and time" }
func (dateCmd) Usage() string       { return "date" }
func (dateCmd) Category() string    { return "system" }
func (dateCmd) Execute(args []string, env *Environment) (Output, error) {
	if env.Clock == nil {
		return Output{}, oerr.New(oerr.KindCommand, "no time service available")
	}
	return TextOutput(env.Clock.Now().Format(time.RFC1123) + "\n"), nil
}

type sleepCmd struct{}

func (sleepCmd) Name() string        { return "sleep" }
func (sleepCmd) Description() string { return "Pause for N seconds" }
func (sleepCmd) Usage() string       { return "sleep <seconds>" }
func (sleepCmd) Category() string    { return "system" }
func (sleepCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: sleep <seconds>")
	}
	secs := atoiOr(args[0], 0)
	time.Sleep(time.Duration(secs) * time.Second)
	return TextOutput(""), nil
}

// RegisterSystem adds every system builtin to r.
func RegisterSystem(r *Registry) {
	r.Register(uptimeCmd{})
	r.Register(dfCmd{})
	r.Register(whoamiCmd{})
	r.Register(hostnameCmd{})
	r.Register(dateCmd{})
	r.Register(sleepCmd{})
}
