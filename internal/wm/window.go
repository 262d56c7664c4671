// Package wm implements the OASIS window manager: a z-ordered collection of
// floating windows, click routing, and drag/resize. A mutex-guarded
// slice-plus-lookup shape with z-order reshuffling in place of tab
// switching.
package wm

// WindowType distinguishes an app window from a modal dialog.
type WindowType int

const (
	TypeApp WindowType = iota
	TypeDialog
)

const (
	titlebarHeight = 24
	borderWidth    = 2
)

// Window is one floating window.
type Window struct {
	ID    string
	Title string

	X, Y int
	W, H int

	Type      WindowType
	Visible   bool
	Minimized bool

	z int
}

// ContentRect returns the window's content area: the frame rect minus the
// titlebar and border edges.
func (w *Window) ContentRect() (x, y, width, height int) {
	x = w.X + borderWidth
	y = w.Y + titlebarHeight
	width = w.W - borderWidth*2
	height = w.H - titlebarHeight - borderWidth
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return
}

func (w *Window) containsPoint(x, y int) bool {
	return x >= w.X && x < w.X+w.W && y >= w.Y && y < w.Y+w.H
}

func (w *Window) inTitlebar(x, y int) bool {
	return x >= w.X && x < w.X+w.W && y >= w.Y && y < w.Y+titlebarHeight
}

func (w *Window) inContent(x, y int) bool {
	cx, cy, cw, ch := w.ContentRect()
	return x >= cx && x < cx+cw && y >= cy && y < cy+ch
}

// titlebar button hit zones: close/maximize/minimize are 20px squares at
// the right edge of the titlebar, in that order from the right.
func (w *Window) closeButtonRect() (x, y, s int)    { return w.X + w.W - 20, w.Y, 20 }
func (w *Window) maximizeButtonRect() (x, y, s int) { return w.X + w.W - 40, w.Y, 20 }
func (w *Window) minimizeButtonRect() (x, y, s int) { return w.X + w.W - 60, w.Y, 20 }

func inSquare(px, py, x, y, s int) bool {
	return px >= x && px < x+s && py >= y && py < y+s
}

func (w *Window) resizeCorner(x, y int) bool {
	const handle = 8
	return x >= w.X+w.W-handle && x < w.X+w.W && y >= w.Y+w.H-handle && y < w.Y+w.H
}
