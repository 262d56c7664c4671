package ui

import "strings"

// InputField is a single-line editable text widget with optional password
// masking and a selection range (SelStart <= SelEnd, rune offsets into
// Value).
type InputField struct {
	Value     string
	Masked    bool
	Focused   bool
	SelStart  int
	SelEnd    int
	FontSize  int
}

func (f InputField) display() string {
	if !f.Masked {
		return f.Value
	}
	return strings.Repeat("*", len([]rune(f.Value)))
}

func (f InputField) Measure(ctx DrawContext, availW, availH int) (int, int) {
	fontSize := f.fontSize()
	h := ctx.Backend.MeasureTextHeight(fontSize) + ctx.Theme.SpacingSM*2
	if h > availH {
		h = availH
	}
	return availW, h
}

func (f InputField) Draw(ctx DrawContext, x, y, w, h int) {
	border := ctx.Theme.InputBorder
	if f.Focused {
		border = ctx.Theme.InputBorderFocus
	}
	ctx.Backend.FillRoundedRect(x, y, w, h, ctx.Theme.BorderRadiusSM, ctx.Theme.InputBg)
	ctx.Backend.StrokeRoundedRect(x, y, w, h, ctx.Theme.BorderRadiusSM, 1, border)

	text := f.display()
	fontSize := f.fontSize()
	pad := ctx.Theme.SpacingSM

	if f.SelEnd > f.SelStart && f.SelEnd <= len([]rune(text)) {
		runes := []rune(text)
		pre := string(runes[:f.SelStart])
		sel := string(runes[f.SelStart:f.SelEnd])
		selX := x + pad + ctx.Backend.MeasureText(pre, fontSize)
		selW := ctx.Backend.MeasureText(sel, fontSize)
		ctx.Backend.FillRect(selX, y+pad, selW, h-pad*2, ctx.Theme.AccentSubtle)
	}

	ctx.Backend.DrawText(text, x+pad, y+pad, fontSize, ctx.Theme.TextPrimary)
}

func (f InputField) fontSize() int {
	if f.FontSize > 0 {
		return f.FontSize
	}
	return 16
}
