package shell

import (
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

// writeRequest stores a plain-text request at path for the main loop to
// poll and consume, per the request-file convention: the interpreter never
// holds a direct handle to UI state.
func writeRequest(env *Environment, path, body string) error {
	dir := path[:strings.LastIndex(path, "/")]
	if !env.VFS.Exists(dir) {
		if err := env.VFS.Mkdir(dir); err != nil {
			return err
		}
	}
	return env.VFS.Write(path, []byte(body))
}

type wmCmd struct{}

func (wmCmd) Name() string        { return "wm" }
func (wmCmd) Description() string { return "Send a window-manager request" }
func (wmCmd) Usage() string       { return "wm <close|focus|minimize|maximize> <window-id>" }
func (wmCmd) Category() string    { return "ui" }
func (wmCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: wm <action> [window-id]")
	}
	if err := writeRequest(env, "/var/wm/request", strings.Join(args, " ")); err != nil {
		return Output{}, err
	}
	return TextOutput("wm request queued\n"), nil
}

type sdiCmd struct{}

func (sdiCmd) Name() string        { return "sdi" }
func (sdiCmd) Description() string { return "Send a scene-registry request" }
func (sdiCmd) Usage() string       { return "sdi <create|remove|set> <args...>" }
func (sdiCmd) Category() string    { return "ui" }
func (sdiCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: sdi <action> [args...]")
	}
	if err := writeRequest(env, "/var/sdi/request", strings.Join(args, " ")); err != nil {
		return Output{}, err
	}
	return TextOutput("sdi request queued\n"), nil
}

type themeCmd struct{}

func (themeCmd) Name() string        { return "theme" }
func (themeCmd) Description() string { return "Request a skin swap" }
func (themeCmd) Usage() string       { return "theme <dark|light|classic|high-contrast>" }
func (themeCmd) Category() string    { return "ui" }
func (themeCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: theme <name>")
	}
	if err := writeRequest(env, "/var/theme/request", args[0]); err != nil {
		return Output{}, err
	}
	return TextOutput("theme swap to " + args[0] + " queued\n"), nil
}

type notifyCmd struct{}

func (notifyCmd) Name() string        { return "notify" }
func (notifyCmd) Description() string { return "Post a desktop notification" }
func (notifyCmd) Usage() string       { return "notify <message...>" }
func (notifyCmd) Category() string    { return "ui" }
func (notifyCmd) Execute(args []string, env *Environment) (Output, error) {
	if len(args) < 1 {
		return Output{}, oerr.New(oerr.KindCommand, "usage: notify <message...>")
	}
	if err := writeRequest(env, "/var/notify/message", strings.Join(args, " ")); err != nil {
		return Output{}, err
	}
	return TextOutput("notification queued\n"), nil
}

type screenshotCmd struct{}

func (screenshotCmd) Name() string        { return "screenshot" }
func (screenshotCmd) Description() string { return "Request a framebuffer capture" }
func (screenshotCmd) Usage() string       { return "screenshot <path>" }
func (screenshotCmd) Category() string    { return "ui" }
func (screenshotCmd) Execute(args []string, env *Environment) (Output, error) {
	dest := "/home/screenshot.bmp"
	if len(args) > 0 {
		dest = args[0]
	}
	if err := writeRequest(env, "/var/screenshot/request", dest); err != nil {
		return Output{}, err
	}
	return TextOutput("screenshot request queued: " + dest + "\n"), nil
}

// RegisterUI adds every UI-control builtin to r.
func RegisterUI(r *Registry) {
	r.Register(wmCmd{})
	r.Register(sdiCmd{})
	r.Register(themeCmd{})
	r.Register(notifyCmd{})
	r.Register(screenshotCmd{})
}
