package ui

// ButtonStyle is one of the 4 visual button styles.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonGhost
	ButtonDanger
)

// ButtonState is one of the 4 interaction states crossed with ButtonStyle.
type ButtonState int

const (
	StateNormal ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button is a clickable label with a background matching style x state.
type Button struct {
	Label    string
	Style    ButtonStyle
	State    ButtonState
	FontSize int
	PaddingX int
}

func (b Button) Measure(ctx DrawContext, availW, availH int) (int, int) {
	fontSize := b.fontSize()
	ext := ctx.Backend.MeasureTextExtents(b.Label, fontSize)
	pad := b.paddingX()
	w := ext.Width + pad*2
	h := ext.Height + ctx.Theme.SpacingSM*2
	if w > availW {
		w = availW
	}
	if h > availH {
		h = availH
	}
	return w, h
}

func (b Button) Draw(ctx DrawContext, x, y, w, h int) {
	bg := ctx.ButtonBg(b.Style, b.State)
	ctx.Backend.FillRoundedRect(x, y, w, h, ctx.Theme.BorderRadiusSM, bg)

	fontSize := b.fontSize()
	textColor := ctx.Theme.TextOnAccent
	if b.Style == ButtonGhost || b.Style == ButtonSecondary {
		textColor = ctx.Theme.TextPrimary
	}
	if b.State == StateDisabled {
		textColor = ctx.Theme.TextDisabled
	}
	tx := x + b.paddingX()
	ty := y + ctx.Theme.SpacingSM
	ctx.Backend.DrawText(b.Label, tx, ty, fontSize, textColor)
}

func (b Button) fontSize() int {
	if b.FontSize > 0 {
		return b.FontSize
	}
	return 16
}

func (b Button) paddingX() int {
	if b.PaddingX > 0 {
		return b.PaddingX
	}
	return 8
}
