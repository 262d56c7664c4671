// Command oasisd is the OASIS desktop session: it wires the scene
// registry, window manager, terminal interpreter and embedded runtime
// into one bubbletea program.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/oasis-os/oasis/internal/backend/termbackend"
	"github.com/oasis-os/oasis/internal/config"
	"github.com/oasis-os/oasis/internal/remoteterm"
	"github.com/oasis-os/oasis/internal/runtime"
	"github.com/oasis-os/oasis/internal/sdi"
	"github.com/oasis-os/oasis/internal/shell"
	"github.com/oasis-os/oasis/internal/theme"
	"github.com/oasis-os/oasis/internal/ui"
	"github.com/oasis-os/oasis/internal/vfs"
	"github.com/oasis-os/oasis/internal/wm"
)

var version = "dev"

type cliOptions struct {
	ConfigDir string `short:"C" long:"config-dir" description:"directory to search upward from for oasis.yaml" default:"."`
	Verbose   bool   `short:"v" long:"verbose" description:"enable debug logging"`
	Version   bool   `long:"version" description:"print the version and exit"`
}

func main() {
	var opts cliOptions
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println("oasisd", version)
		return
	}

	log := newLogger(opts.Verbose)

	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	sess, err := newSession(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("start session")
	}
	defer sess.shutdown()

	p := tea.NewProgram(sess, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		os.Exit(1)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// session is the bubbletea model for the whole desktop: scene registry,
// window manager, one terminal window's shell state, the embedded
// runtime's audio/IO workers, and an optional remote listener.
type session struct {
	log zerolog.Logger
	cfg *config.Config

	theme    theme.Theme
	registry *sdi.Registry
	wmgr     *wm.Manager
	back     *termbackend.Backend

	fs vfs.VFS

	shellRegistry *shell.Registry
	interp        *shell.Interpreter
	env           *shell.Environment

	termWinID  string
	scrollback []string
	inputLine  string
	history    []string
	histIdx    int

	rt       *runtime.Runtime
	audio    *runtime.AudioHandle
	io       *runtime.IoHandle
	listener *remoteterm.Listener

	width, height int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func newSession(cfg *config.Config, log zerolog.Logger) (*session, error) {
	var fs vfs.VFS
	if cfg.VfsRootAbs != "" {
		hostFS, err := vfs.NewHostVFS(cfg.VfsRootAbs)
		if err != nil {
			return nil, err
		}
		fs = hostFS
	} else {
		fs = vfs.NewMemVFS()
	}

	th := resolveTheme(cfg, fs, log)

	registry := sdi.NewRegistry()
	wmgr := wm.New(th)
	back := termbackend.New(80*8, 24*16)

	shellRegistry := shell.NewRegistry()
	shell.RegisterAll(shellRegistry)
	vars := shell.NewVarScope(func() string { return "/" }, "oasis", "/home/oasis")
	interp := shell.NewInterpreter(shellRegistry, vars)
	env := &shell.Environment{
		Cwd:   "/",
		VFS:   fs,
		Vars:  vars,
		Clock: shell.SystemClock,
		Interp: interp,
	}

	rt, audio, io := runtime.Start(fs, nil, nil, log.With().Str("component", "runtime").Logger())

	s := &session{
		log:           log,
		cfg:           cfg,
		theme:         th,
		registry:      registry,
		wmgr:          wmgr,
		back:          back,
		fs:            fs,
		shellRegistry: shellRegistry,
		interp:        interp,
		env:           env,
		rt:            rt,
		audio:         audio,
		io:            io,
		width:         80,
		height:        24,
	}

	win := wmgr.CreateWindow(wm.Config{
		Title: "terminal",
		X:     0, Y: 0, W: 80 * 8, H: 24 * 16,
		Type: wm.TypeApp,
	}, registry)
	s.termWinID = win.ID
	s.scrollback = append(s.scrollback, "OASIS ready. Type 'help' for a list of commands.")

	if cfg.FeatureEnabled("remote_terminal") {
		listener := remoteterm.NewListener(log.With().Str("component", "remoteterm").Logger(), cfg.ListenerConfig())
		if err := listener.Start(); err != nil {
			log.Warn().Err(err).Msg("remote listener failed to start, continuing without it")
		} else {
			s.listener = listener
		}
	}

	return s, nil
}

func resolveTheme(cfg *config.Config, fs vfs.VFS, log zerolog.Logger) theme.Theme {
	if cfg.Theme.SkinPath != "" {
		skin, err := theme.LoadSkinFromVFS(fs, cfg.Theme.SkinPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Theme.SkinPath).Msg("failed to load skin, falling back to variant")
		} else {
			return theme.Derive(skin)
		}
	}
	return theme.ByName(cfg.Theme.Variant)
}

func (s *session) shutdown() {
	if s.listener != nil {
		s.listener.Stop()
	}
	if err := s.rt.Shutdown(); err != nil {
		s.log.Warn().Err(err).Msg("runtime shutdown")
	}
}

func (s *session) Init() tea.Cmd {
	return tick()
}

func (s *session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = m.Width, m.Height
		s.back = termbackend.New(m.Width*8, m.Height*16)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(m)

	case tea.MouseMsg:
		s.handleMouse(m)
		return s, nil

	case tickMsg:
		s.pollRemote()
		return s, tick()
	}
	return s, nil
}

func (s *session) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, Keys.CtrlC), key.Matches(m, Keys.Quit):
		s.shutdown()
		return s, tea.Quit
	case key.Matches(m, Keys.Up):
		s.recallHistory(-1)
		return s, nil
	case key.Matches(m, Keys.Down):
		s.recallHistory(1)
		return s, nil
	}

	switch m.Type {
	case tea.KeyEnter:
		s.runLocalLine(s.inputLine)
		s.inputLine = ""
		s.histIdx = len(s.history)
	case tea.KeyBackspace:
		if len(s.inputLine) > 0 {
			s.inputLine = s.inputLine[:len(s.inputLine)-1]
		}
	case tea.KeySpace:
		s.inputLine += " "
	case tea.KeyRunes:
		s.inputLine += string(m.Runes)
	}
	return s, nil
}

// recallHistory moves the input line to an earlier (-1) or later (+1)
// entry in command history, the way a shell's readline does on arrow keys.
func (s *session) recallHistory(dir int) {
	if len(s.history) == 0 {
		return
	}
	idx := s.histIdx + dir
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.history) {
		idx = len(s.history)
	}
	s.histIdx = idx
	if idx == len(s.history) {
		s.inputLine = ""
		return
	}
	s.inputLine = s.history[idx]
}

func (s *session) handleMouse(m tea.MouseMsg) {
	var kind wm.PointerKind
	switch m.Action {
	case tea.MouseActionPress:
		kind = wm.PointerPress
	case tea.MouseActionRelease:
		kind = wm.PointerRelease
	default:
		kind = wm.PointerMove
	}
	ev := s.wmgr.HandleInput(wm.PointerEvent{Kind: kind, X: m.X * 8, Y: m.Y * 16}, s.registry)
	if ev.Kind == wm.EventWindowClosed && ev.WindowID == s.termWinID {
		s.termWinID = ""
	}
}

// runLocalLine executes one line typed at the desktop's own terminal
// window, appending the command and its output to scrollback.
func (s *session) runLocalLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	s.scrollback = append(s.scrollback, "> "+line)
	s.history = append(s.history, line)
	out, err := s.interp.RunLine(line, s.env)
	if err != nil {
		s.scrollback = append(s.scrollback, "error: "+err.Error())
		return
	}
	if text := out.Stdout(); text != "" {
		s.scrollback = append(s.scrollback, strings.Split(text, "\n")...)
	}
}

// pollRemote drains the remote listener once per tick, running each
// received line through its own environment clone so a remote session's
// cwd/stdin never leaks into the desktop terminal's.
func (s *session) pollRemote() {
	if s.listener == nil {
		return
	}
	for _, cmd := range s.listener.Poll() {
		remoteEnv := s.env.Clone(nil)
		out, err := s.interp.RunLine(cmd.Line, remoteEnv)
		var resp string
		if err != nil {
			resp = "error: " + err.Error()
		} else {
			resp = out.Stdout()
		}
		if sendErr := s.listener.SendResponse(cmd.ConnIndex, resp); sendErr != nil {
			s.log.Debug().Err(sendErr).Msg("send remote response")
		}
	}
}

func (s *session) View() string {
	s.back.Clear()
	s.registry.Draw(s.back)
	s.drawTerminalContent()
	return s.back.Render()
}

// drawTerminalContent paints the terminal window's scrollback and input
// line directly via the backend, bypassing the scene registry: terminal
// text is high-churn per-frame content, not a stable named object set.
func (s *session) drawTerminalContent() {
	win := s.findTermWindow()
	if win == nil {
		return
	}
	ctx := ui.DrawContext{Backend: s.back, Theme: s.theme}
	x, y, w, h := win.ContentRect()
	ctx.Panel(x, y, w, h)

	lineH := s.back.MeasureTextHeight(0)
	maxLines := h / lineH
	if maxLines < 1 {
		maxLines = 1
	}

	start := 0
	if len(s.scrollback) > maxLines-1 {
		start = len(s.scrollback) - (maxLines - 1)
	}
	row := 0
	for _, line := range s.scrollback[start:] {
		ctx.Label(line, x, y+row*lineH, 0, s.theme.Output)
		row++
	}
	ctx.Label("> "+s.inputLine, x, y+row*lineH, 0, s.theme.Prompt)
}

func (s *session) findTermWindow() *wm.Window {
	for _, w := range s.wmgr.Windows() {
		if w.ID == s.termWinID {
			return w
		}
	}
	return nil
}
