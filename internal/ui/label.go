package ui

import "github.com/oasis-os/oasis/internal/sdi"

// Label draws a single line of static text.
type Label struct {
	Text     string
	FontSize int
	Color    sdi.Color
}

func (l Label) Measure(ctx DrawContext, availW, availH int) (int, int) {
	ext := ctx.Backend.MeasureTextExtents(l.Text, l.FontSize)
	w, h := ext.Width, ext.Height
	if w > availW {
		w = availW
	}
	if h > availH {
		h = availH
	}
	return w, h
}

func (l Label) Draw(ctx DrawContext, x, y, w, h int) {
	c := l.Color
	if c == (sdi.Color{}) {
		c = ctx.Theme.TextPrimary
	}
	ctx.Backend.DrawText(l.Text, x, y, l.FontSize, c)
}
