// Package backend defines the rendering backend abstraction every concrete
// renderer (terminal, software framebuffer) satisfies.
package backend

import (
	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/sdi"
)

// Rect is an axis-aligned integer rectangle used for clip regions.
type Rect struct {
	X, Y, W, H int
}

// TextExtents reports the measured size of a text run.
type TextExtents struct {
	Width, Height int
}

// Backend is the full rendering capability set a concrete renderer
// implements. sdi.Registry only needs the subset declared by
// sdi.Backend; every concrete Backend here satisfies that subset
// structurally.
type Backend interface {
	Init() error
	Shutdown()

	Clear()
	FillRect(x, y, w, h int, c sdi.Color)
	FillRoundedRect(x, y, w, h, radius int, c sdi.Color)
	FillGradientRect(x, y, w, h, radius int, g sdi.Gradient)
	StrokeRect(x, y, w, h, width int, c sdi.Color)
	StrokeRoundedRect(x, y, w, h, radius, width int, c sdi.Color)
	DrawShadow(x, y, w, h, radius, level int)

	Blit(tex sdi.TextureID, x, y, w, h int)
	DrawText(text string, x, y, fontSize int, c sdi.Color)
	MeasureText(text string, fontSize int) int
	MeasureTextHeight(fontSize int) int
	MeasureTextExtents(text string, fontSize int) TextExtents

	LoadTexture(w, h int, rgba []byte) (sdi.TextureID, error)
	DestroyTexture(tex sdi.TextureID)

	PushClipRect(r Rect)
	PopClipRect()
	// PushRegion translates subsequent draws by (dx, dy) and clips to r; the
	// returned func pops both the translation and the clip (RAII via defer).
	PushRegion(r Rect, dx, dy int) func()

	SwapBuffers()
	// ReadPixels is optional; backends that cannot read back return
	// oerr.KindBackend.
	ReadPixels() ([]byte, int, int, error)
}

// ErrUnsupported is returned by ReadPixels on backends with no read-back path.
func ErrUnsupported(op string) error {
	return oerr.Newf(oerr.KindBackend, "%s not supported by this backend", op)
}
