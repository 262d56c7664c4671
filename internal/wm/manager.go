package wm

import (
	"sync"

	"github.com/google/uuid"

	"github.com/oasis-os/oasis/internal/sdi"
	"github.com/oasis-os/oasis/internal/theme"
)

// Config describes a window to create.
type Config struct {
	ID    string
	Title string
	X, Y  int
	W, H  int
	Type  WindowType
}

// Manager owns every window and its z-order / scene-registry presence.
// Shape mirrors terminal.Manager: a mutex-guarded slice plus id lookup,
// with z-order reshuffling standing in for tab switching.
type Manager struct {
	mu      sync.Mutex
	windows []*Window
	nextZ   int
	drag    *dragState
	theme   theme.Theme
}

// New creates an empty window manager drawing with th.
func New(th theme.Theme) *Manager {
	return &Manager{theme: th}
}

func (m *Manager) SetTheme(th theme.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = th
}

func (m *Manager) find(id string) (*Window, int) {
	for i, w := range m.windows {
		if w.ID == id {
			return w, i
		}
	}
	return nil, -1
}

// CreateWindow adds a window on top of the z-order and registers its scene
// objects in registry.
func (m *Manager) CreateWindow(cfg Config, registry *sdi.Registry) *Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	w := &Window{
		ID: id, Title: cfg.Title,
		X: cfg.X, Y: cfg.Y, W: cfg.W, H: cfg.H,
		Type: cfg.Type, Visible: true,
		z: m.nextZ,
	}
	m.nextZ++
	m.windows = append(m.windows, w)
	m.syncSceneLocked(w, registry)
	return w
}

// CloseWindow removes a window and its scene objects.
func (m *Manager) CloseWindow(id string, registry *sdi.Registry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id, registry)
}

// Focus brings id to the top of the z-order. No-op if id is unknown.
func (m *Manager) Focus(id string, registry *sdi.Registry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, _ := m.find(id)
	if w == nil {
		return
	}
	w.z = m.nextZ
	m.nextZ++
	m.syncSceneLocked(w, registry)
}

// Active returns the topmost non-minimized visible window, or nil.
func (m *Manager) Active() *Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *Window
	for _, w := range m.windows {
		if !w.Visible || w.Minimized {
			continue
		}
		if best == nil || w.z > best.z {
			best = w
		}
	}
	return best
}

// Windows returns a snapshot of every window, back-to-front.
func (m *Manager) Windows() []*Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

func frameName(id string) string     { return "win:" + id + ":frame" }
func titlebarName(id string) string  { return "win:" + id + ":titlebar" }
func titleTextName(id string) string { return "win:" + id + ":title" }

func (m *Manager) syncSceneLocked(w *Window, registry *sdi.Registry) {
	frame := registry.Create(frameName(w.ID))
	frame.X, frame.Y, frame.W, frame.H = w.X, w.Y, w.W, w.H
	frame.Z = w.z
	frame.Visible = w.Visible && !w.Minimized
	frame.Fill = m.theme.Surface
	frame.CornerRadius = m.theme.BorderRadiusMD
	frame.StrokeWidth = 1
	frame.StrokeColor = m.theme.Border
	frame.ShadowLevel = m.theme.ShadowModal

	titlebar := registry.Create(titlebarName(w.ID))
	titlebar.X, titlebar.Y, titlebar.W, titlebar.H = w.X, w.Y, w.W, titlebarHeight
	titlebar.Z = w.z + 1
	titlebar.Visible = w.Visible && !w.Minimized
	titlebar.Fill = m.theme.StatusBar

	title := registry.Create(titleTextName(w.ID))
	title.X, title.Y = w.X+6, w.Y+4
	title.Z = w.z + 2
	title.Visible = titlebar.Visible
	title.Text = w.Title
	title.FontSize = m.theme.FontSizeMD
	title.TextColor = m.theme.TextPrimary
}

// HandleInput routes a pointer sample in hit-testing order: titlebar
// buttons, resize corner, titlebar drag, content click, desktop click.
func (m *Manager) HandleInput(ev PointerEvent, registry *sdi.Registry) WmEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Kind {
	case PointerMove:
		return m.handleMoveLocked(ev, registry)
	case PointerRelease:
		m.drag = nil
		return noEvent()
	}

	topmost := m.topmostAtLocked(ev.X, ev.Y)
	if topmost == nil {
		return WmEvent{Kind: EventDesktopClick, X: ev.X, Y: ev.Y}
	}

	if cx, cy, s := topmost.closeButtonRect(); inSquare(ev.X, ev.Y, cx, cy, s) {
		m.removeLocked(topmost.ID, registry)
		return WmEvent{Kind: EventWindowClosed, WindowID: topmost.ID}
	}
	if cx, cy, s := topmost.minimizeButtonRect(); inSquare(ev.X, ev.Y, cx, cy, s) {
		topmost.Minimized = true
		m.syncSceneLocked(topmost, registry)
		return noEvent()
	}
	if cx, cy, s := topmost.maximizeButtonRect(); inSquare(ev.X, ev.Y, cx, cy, s) {
		topmost.Minimized = false
		m.syncSceneLocked(topmost, registry)
		return noEvent()
	}
	if topmost.resizeCorner(ev.X, ev.Y) {
		m.drag = &dragState{windowID: topmost.ID, startX: ev.X, startY: ev.Y, origWinW: topmost.W, origWinH: topmost.H, resizing: true}
		return noEvent()
	}
	if topmost.inTitlebar(ev.X, ev.Y) {
		m.drag = &dragState{windowID: topmost.ID, startX: ev.X, startY: ev.Y, origWinX: topmost.X, origWinY: topmost.Y}
		return noEvent()
	}
	if topmost.inContent(ev.X, ev.Y) {
		cx, cy, _, _ := topmost.ContentRect()
		w, _ := m.find(topmost.ID)
		w.z = m.nextZ
		m.nextZ++
		m.syncSceneLocked(w, registry)
		return WmEvent{Kind: EventContentClick, WindowID: topmost.ID, X: ev.X - cx, Y: ev.Y - cy}
	}
	return WmEvent{Kind: EventDesktopClick, X: ev.X, Y: ev.Y}
}

func (m *Manager) handleMoveLocked(ev PointerEvent, registry *sdi.Registry) WmEvent {
	if m.drag == nil {
		return noEvent()
	}
	w, _ := m.find(m.drag.windowID)
	if w == nil {
		return noEvent()
	}
	dx, dy := ev.X-m.drag.startX, ev.Y-m.drag.startY
	if m.drag.resizing {
		w.W = m.drag.origWinW + dx
		w.H = m.drag.origWinH + dy
		if w.W < 80 {
			w.W = 80
		}
		if w.H < titlebarHeight+20 {
			w.H = titlebarHeight + 20
		}
	} else {
		w.X = m.drag.origWinX + dx
		w.Y = m.drag.origWinY + dy
	}
	m.syncSceneLocked(w, registry)
	return noEvent()
}

func (m *Manager) topmostAtLocked(x, y int) *Window {
	var best *Window
	for _, w := range m.windows {
		if !w.Visible || w.Minimized || !w.containsPoint(x, y) {
			continue
		}
		if best == nil || w.z > best.z {
			best = w
		}
	}
	return best
}

func (m *Manager) removeLocked(id string, registry *sdi.Registry) {
	_, idx := m.find(id)
	if idx < 0 {
		return
	}
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	registry.Remove(frameName(id))
	registry.Remove(titlebarName(id))
	registry.Remove(titleTextName(id))
}
