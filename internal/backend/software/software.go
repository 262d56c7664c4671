// Package software implements an embedded-style rendering backend: a
// software RGBA framebuffer with no external GPU dependency, suitable
// for a handheld/embedded target with no graphics hardware, through a
// simple display-list-like abstraction — here, direct framebuffer
// writes replay in object draw order. Texture decode supports BMP, the
// format the embedded toolchains in this space ship assets in, via
// golang.org/x/image/bmp.
package software

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/bmp"

	oasisbackend "github.com/oasis-os/oasis/internal/backend"
	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/sdi"
)

type texture struct {
	img *image.RGBA
}

type clipFrame struct {
	rect   oasisbackend.Rect
	dx, dy int
}

// Backend renders into an in-memory RGBA framebuffer.
type Backend struct {
	fb       *image.RGBA
	clips    []clipFrame
	textures map[sdi.TextureID]texture
	nextTex  sdi.TextureID
	glyphW   int // nominal glyph width; DrawText and MeasureText derive their advance from fontSize instead
}

// New creates a software framebuffer of the given pixel size.
func New(w, h int) *Backend {
	return &Backend{
		fb:       image.NewRGBA(image.Rect(0, 0, w, h)),
		textures: make(map[sdi.TextureID]texture),
		glyphW:   8,
	}
}

func (b *Backend) Init() error { return nil }
func (b *Backend) Shutdown()   {}

func (b *Backend) Clear() {
	draw.Draw(b.fb, b.fb.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func toNRGBA(c sdi.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (b *Backend) clipRect() image.Rectangle {
	r := b.fb.Bounds()
	ox, oy := 0, 0
	for _, c := range b.clips {
		cr := image.Rect(c.rect.X+ox, c.rect.Y+oy, c.rect.X+ox+c.rect.W, c.rect.Y+oy+c.rect.H)
		r = r.Intersect(cr)
		ox += c.dx
		oy += c.dy
	}
	return r
}

func (b *Backend) offset() (int, int) {
	ox, oy := 0, 0
	for _, c := range b.clips {
		ox += c.dx
		oy += c.dy
	}
	return ox, oy
}

func (b *Backend) fillRegion(x, y, w, h int, c color.NRGBA) {
	ox, oy := b.offset()
	rect := image.Rect(x+ox, y+oy, x+ox+w, y+oy+h).Intersect(b.clipRect())
	if rect.Empty() {
		return
	}
	draw.Draw(b.fb, rect, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func (b *Backend) FillRect(x, y, w, h int, c sdi.Color) {
	b.fillRegion(x, y, w, h, toNRGBA(c))
}

// FillRoundedRect clips the four corner squares of side radius to an
// approximate quarter-circle via per-pixel distance test.
func (b *Backend) FillRoundedRect(x, y, w, h, radius int, c sdi.Color) {
	nc := toNRGBA(c)
	if radius <= 0 {
		b.fillRegion(x, y, w, h, nc)
		return
	}
	ox, oy := b.offset()
	clip := b.clipRect()
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			if !insideRounded(px-x, py-y, w, h, radius) {
				continue
			}
			pt := image.Pt(px+ox, py+oy)
			if pt.In(clip) {
				b.fb.SetNRGBA(pt.X, pt.Y, nc)
			}
		}
	}
}

func insideRounded(x, y, w, h, r int) bool {
	if x >= r && x < w-r {
		return true
	}
	if y >= r && y < h-r {
		return true
	}
	var cx, cy int
	switch {
	case x < r && y < r:
		cx, cy = r, r
	case x >= w-r && y < r:
		cx, cy = w-r-1, r
	case x < r && y >= h-r:
		cx, cy = r, h-r-1
	default:
		cx, cy = w-r-1, h-r-1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

func (b *Backend) FillGradientRect(x, y, w, h, radius int, g sdi.Gradient) {
	ox, oy := b.offset()
	clip := b.clipRect()
	for row := 0; row < h; row++ {
		t := float64(row) / float64(max(h-1, 1))
		nc := mixNRGBA(toNRGBA(g.Top), toNRGBA(g.Bottom), t)
		for col := 0; col < w; col++ {
			if radius > 0 && !insideRounded(col, row, w, h, radius) {
				continue
			}
			pt := image.Pt(x+col+ox, y+row+oy)
			if pt.In(clip) {
				b.fb.SetNRGBA(pt.X, pt.Y, nc)
			}
		}
	}
}

func mixNRGBA(a, c color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: lerp(a.R, c.R), G: lerp(a.G, c.G), B: lerp(a.B, c.B), A: lerp(a.A, c.A)}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (b *Backend) StrokeRect(x, y, w, h, width int, c sdi.Color) {
	b.StrokeRoundedRect(x, y, w, h, 0, width, c)
}

func (b *Backend) StrokeRoundedRect(x, y, w, h, radius, width int, c sdi.Color) {
	b.FillRoundedRect(x, y, w, width, radius, c)
	b.FillRoundedRect(x, y+h-width, w, width, radius, c)
	b.FillRoundedRect(x, y, width, h, radius, c)
	b.FillRoundedRect(x+w-width, y, width, h, radius, c)
}

// DrawShadow paints a soft offset rectangle under the object's bounds; level
// scales both the offset and the alpha.
func (b *Backend) DrawShadow(x, y, w, h, radius, level int) {
	if level <= 0 {
		return
	}
	alpha := uint8(40 * level)
	offset := level
	b.FillRoundedRect(x+offset, y+offset, w, h, radius, sdi.Color{A: alpha})
}

func (b *Backend) Blit(tex sdi.TextureID, x, y, w, h int) {
	t, ok := b.textures[tex]
	if !ok {
		return
	}
	ox, oy := b.offset()
	dstRect := image.Rect(x+ox, y+oy, x+ox+w, y+oy+h).Intersect(b.clipRect())
	if dstRect.Empty() {
		return
	}
	// nearest-neighbor scale from t.img into dstRect
	sw, sh := t.img.Bounds().Dx(), t.img.Bounds().Dy()
	for py := dstRect.Min.Y; py < dstRect.Max.Y; py++ {
		sy := (py - (y + oy)) * sh / h
		for px := dstRect.Min.X; px < dstRect.Max.X; px++ {
			sx := (px - (x + ox)) * sw / w
			b.fb.Set(px, py, t.img.At(t.img.Bounds().Min.X+sx, t.img.Bounds().Min.Y+sy))
		}
	}
}

// DrawText draws a crude glyph-less text placeholder: each rune is a
// solid block fontSize/2 pixels wide and fontSize tall in the full color
// c, followed by a one-pixel gap (an advance of fontSize/2+1, the same
// advance MeasureText reports), so text can be measured and positioned
// without a font-rasterizer dependency.
func (b *Backend) DrawText(text string, x, y, fontSize int, c sdi.Color) {
	advance := fontSize/2 + 1
	nc := toNRGBA(c)
	cx := x
	for range text {
		b.fillRegion(cx, y, advance-1, fontSize, nc)
		cx += advance
	}
}

func (b *Backend) MeasureText(text string, fontSize int) int {
	advance := fontSize/2 + 1
	return advance * len([]rune(text))
}

func (b *Backend) MeasureTextHeight(fontSize int) int {
	return fontSize
}

func (b *Backend) MeasureTextExtents(text string, fontSize int) oasisbackend.TextExtents {
	return oasisbackend.TextExtents{Width: b.MeasureText(text, fontSize), Height: fontSize}
}

// LoadTexture decodes a BMP-encoded rgba argument if it carries a BMP magic
// header, otherwise treats rgba as raw tightly-packed RGBA8 of size w*h*4.
func (b *Backend) LoadTexture(w, h int, rgba []byte) (sdi.TextureID, error) {
	var img *image.RGBA
	if len(rgba) >= 2 && rgba[0] == 'B' && rgba[1] == 'M' {
		decoded, err := bmp.Decode(bytes.NewReader(rgba))
		if err != nil {
			return 0, oerr.Wrap(oerr.KindBackend, "decode bmp texture", err)
		}
		img = image.NewRGBA(decoded.Bounds())
		draw.Draw(img, img.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	} else {
		if len(rgba) < w*h*4 {
			return 0, oerr.New(oerr.KindBackend, "rgba buffer smaller than w*h*4")
		}
		img = &image.RGBA{Pix: rgba, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	}
	b.nextTex++
	b.textures[b.nextTex] = texture{img: img}
	return b.nextTex, nil
}

func (b *Backend) DestroyTexture(tex sdi.TextureID) {
	delete(b.textures, tex)
}

func (b *Backend) PushClipRect(r oasisbackend.Rect) {
	b.clips = append(b.clips, clipFrame{rect: r})
}

func (b *Backend) PopClipRect() {
	if len(b.clips) > 0 {
		b.clips = b.clips[:len(b.clips)-1]
	}
}

func (b *Backend) PushRegion(r oasisbackend.Rect, dx, dy int) func() {
	b.clips = append(b.clips, clipFrame{rect: r, dx: dx, dy: dy})
	return b.PopClipRect
}

func (b *Backend) SwapBuffers() {}

func (b *Backend) ReadPixels() ([]byte, int, int, error) {
	bounds := b.fb.Bounds()
	return b.fb.Pix, bounds.Dx(), bounds.Dy(), nil
}
