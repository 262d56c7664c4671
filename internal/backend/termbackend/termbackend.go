// Package termbackend renders the scene registry into a terminal cell grid
// using lipgloss for styling: the desktop-class rendering backend. One
// terminal cell covers cellW x cellH (8 x 16) pixels, so fill/stroke/text
// calls divide their pixel coordinates by cellW/cellH before touching the
// grid.
package termbackend

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/oasis-os/oasis/internal/backend"
	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/sdi"
)

const (
	cellW = 8
	cellH = 16
)

type cell struct {
	ch     rune
	fg, bg sdi.Color
	set    bool
}

type clipFrame struct {
	rect       backend.Rect
	dx, dy     int
}

// Backend is a terminal-cell rendering backend. Cols/Rows are fixed at
// construction; Init/Shutdown are no-ops since the terminal session itself
// is managed by the bubbletea program that owns this backend.
type Backend struct {
	cols, rows int
	grid       [][]cell
	clips      []clipFrame
	textures   map[sdi.TextureID]texture
	nextTex    sdi.TextureID
}

type texture struct {
	w, h int
	rgba []byte
}

// New creates a terminal backend sized to fit pxW x pxH pixels.
func New(pxW, pxH int) *Backend {
	cols := pxW / cellW
	if cols < 1 {
		cols = 1
	}
	rows := pxH / cellH
	if rows < 1 {
		rows = 1
	}
	b := &Backend{
		cols:     cols,
		rows:     rows,
		textures: make(map[sdi.TextureID]texture),
	}
	b.grid = newGrid(cols, rows)
	return b
}

func newGrid(cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}
	return grid
}

func (b *Backend) Init() error { return nil }
func (b *Backend) Shutdown()   {}

func (b *Backend) Clear() {
	b.grid = newGrid(b.cols, b.rows)
}

func (b *Backend) toCell(x, y int) (int, int) {
	cx, cy := x/cellW, y/cellH
	if len(b.clips) > 0 {
		top := b.clips[len(b.clips)-1]
		cx += top.dx / cellW
		cy += top.dy / cellH
	}
	return cx, cy
}

func (b *Backend) clipBounds() (x0, y0, x1, y1 int) {
	x1, y1 = b.cols, b.rows
	for _, c := range b.clips {
		cx0, cy0 := c.rect.X/cellW, c.rect.Y/cellH
		cx1, cy1 := (c.rect.X+c.rect.W)/cellW, (c.rect.Y+c.rect.H)/cellH
		if cx0 > x0 {
			x0 = cx0
		}
		if cy0 > y0 {
			y0 = cy0
		}
		if cx1 < x1 {
			x1 = cx1
		}
		if cy1 < y1 {
			y1 = cy1
		}
	}
	return
}

func (b *Backend) setCell(col, row int, ch rune, fg, bg sdi.Color) {
	x0, y0, x1, y1 := b.clipBounds()
	if col < x0 || col >= x1 || row < y0 || row >= y1 {
		return
	}
	if row < 0 || row >= len(b.grid) || col < 0 || col >= len(b.grid[row]) {
		return
	}
	b.grid[row][col] = cell{ch: ch, fg: fg, bg: bg, set: true}
}

func (b *Backend) fillRegion(x, y, w, h int, c sdi.Color) {
	col0, row0 := b.toCell(x, y)
	col1, row1 := b.toCell(x+w, y+h)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			b.setCell(col, row, ' ', c, c)
		}
	}
}

func (b *Backend) FillRect(x, y, w, h int, c sdi.Color) {
	b.fillRegion(x, y, w, h, c)
}

// FillRoundedRect approximates rounding by shaving the corner cells when
// radius covers at least one cell; a terminal grid has no true curves.
func (b *Backend) FillRoundedRect(x, y, w, h, radius int, c sdi.Color) {
	b.fillRegion(x, y, w, h, c)
	if radius < cellW {
		return
	}
	col0, row0 := b.toCell(x, y)
	col1, row1 := b.toCell(x+w, y+h)
	if col1 <= col0 || row1 <= row0 {
		return
	}
	b.grid[row0][col0] = cell{}
	b.grid[row0][col1-1] = cell{}
	b.grid[row1-1][col0] = cell{}
	b.grid[row1-1][col1-1] = cell{}
}

func (b *Backend) FillGradientRect(x, y, w, h, radius int, g sdi.Gradient) {
	col0, row0 := b.toCell(x, y)
	col1, row1 := b.toCell(x+w, y+h)
	rows := row1 - row0
	if rows <= 0 {
		rows = 1
	}
	for row := row0; row < row1; row++ {
		t := float64(row-row0) / float64(rows)
		c := mixColor(g.Top, g.Bottom, t)
		for col := col0; col < col1; col++ {
			b.setCell(col, row, ' ', c, c)
		}
	}
}

func mixColor(a, b sdi.Color, t float64) sdi.Color {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return sdi.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func (b *Backend) StrokeRect(x, y, w, h, width int, c sdi.Color) {
	b.StrokeRoundedRect(x, y, w, h, 0, width, c)
}

func (b *Backend) StrokeRoundedRect(x, y, w, h, radius, width int, c sdi.Color) {
	col0, row0 := b.toCell(x, y)
	col1, row1 := b.toCell(x+w, y+h)
	for col := col0; col < col1; col++ {
		b.setCell(col, row0, '-', c, sdi.Color{})
		b.setCell(col, row1-1, '-', c, sdi.Color{})
	}
	for row := row0; row < row1; row++ {
		b.setCell(col0, row, '|', c, sdi.Color{})
		b.setCell(col1-1, row, '|', c, sdi.Color{})
	}
}

// DrawShadow darkens nothing in the terminal backend: there is no
// under-layer compositing in a character grid. It's a documented no-op;
// backends are not required to be pixel-identical.
func (b *Backend) DrawShadow(x, y, w, h, radius, level int) {}

func (b *Backend) Blit(tex sdi.TextureID, x, y, w, h int) {
	t, ok := b.textures[tex]
	if !ok {
		return
	}
	col0, row0 := b.toCell(x, y)
	col1, row1 := b.toCell(x+w, y+h)
	cols := col1 - col0
	rows := row1 - row0
	if cols <= 0 || rows <= 0 {
		return
	}
	for row := 0; row < rows; row++ {
		sy := row * t.h / rows
		for col := 0; col < cols; col++ {
			sx := col * t.w / cols
			idx := (sy*t.w + sx) * 4
			if idx+3 >= len(t.rgba) {
				continue
			}
			c := sdi.Color{R: t.rgba[idx], G: t.rgba[idx+1], B: t.rgba[idx+2], A: t.rgba[idx+3]}
			b.setCell(col0+col, row0+row, ' ', c, c)
		}
	}
}

func (b *Backend) DrawText(text string, x, y, fontSize int, c sdi.Color) {
	col, row := b.toCell(x, y)
	for _, r := range text {
		b.setCell(col, row, r, c, sdi.Color{})
		col += runewidth.RuneWidth(r)
	}
}

func (b *Backend) MeasureText(text string, fontSize int) int {
	return runewidth.StringWidth(text) * cellW
}

func (b *Backend) MeasureTextHeight(fontSize int) int {
	return cellH
}

func (b *Backend) MeasureTextExtents(text string, fontSize int) backend.TextExtents {
	return backend.TextExtents{Width: b.MeasureText(text, fontSize), Height: cellH}
}

func (b *Backend) LoadTexture(w, h int, rgba []byte) (sdi.TextureID, error) {
	if len(rgba) < w*h*4 {
		return 0, oerr.New(oerr.KindBackend, "rgba buffer smaller than w*h*4")
	}
	b.nextTex++
	b.textures[b.nextTex] = texture{w: w, h: h, rgba: rgba}
	return b.nextTex, nil
}

func (b *Backend) DestroyTexture(tex sdi.TextureID) {
	delete(b.textures, tex)
}

func (b *Backend) PushClipRect(r backend.Rect) {
	b.clips = append(b.clips, clipFrame{rect: r})
}

func (b *Backend) PopClipRect() {
	if len(b.clips) > 0 {
		b.clips = b.clips[:len(b.clips)-1]
	}
}

func (b *Backend) PushRegion(r backend.Rect, dx, dy int) func() {
	b.clips = append(b.clips, clipFrame{rect: r, dx: dx, dy: dy})
	return b.PopClipRect
}

func (b *Backend) SwapBuffers() {}

func (b *Backend) ReadPixels() ([]byte, int, int, error) {
	return nil, 0, 0, backend.ErrUnsupported("read_pixels")
}

// Render renders the current grid to a styled string suitable for writing to
// a bubbletea View. Consecutive cells sharing style are merged into one
// lipgloss.Render call to avoid an escape sequence per character.
func (b *Backend) Render() string {
	var out strings.Builder
	for row := 0; row < b.rows; row++ {
		var lineBuf strings.Builder
		var runFg, runBg sdi.Color
		var runText strings.Builder
		haveRun := false

		flush := func() {
			if !haveRun {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(hexOf(runFg)).
				Background(hexOf(runBg))
			lineBuf.WriteString(style.Render(runText.String()))
			runText.Reset()
			haveRun = false
		}

		for col := 0; col < b.cols; col++ {
			c := b.grid[row][col]
			ch := c.ch
			if !c.set {
				ch = ' '
			}
			if haveRun && c.fg == runFg && c.bg == runBg {
				runText.WriteRune(ch)
				continue
			}
			flush()
			runFg, runBg = c.fg, c.bg
			runText.WriteRune(ch)
			haveRun = true
		}
		flush()
		out.WriteString(lineBuf.String())
		if row != b.rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func hexOf(c sdi.Color) lipgloss.Color {
	const hex = "0123456789abcdef"
	buf := [7]byte{'#'}
	put := func(i int, v uint8) {
		buf[i] = hex[v>>4]
		buf[i+1] = hex[v&0xf]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return lipgloss.Color(string(buf[:]))
}
