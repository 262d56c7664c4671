package ui

// Axis is the main axis a FlexLayout arranges children along.
type Axis int

const (
	Row Axis = iota
	Column
)

// Justify controls extra main-axis space distribution.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
)

// Align controls cross-axis placement.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// SizeMode selects how a flex child's main-axis size is computed.
type SizeMode int

const (
	SizeFixed   SizeMode = iota // Size is an absolute pixel value
	SizePercent                 // Size is a percent (0-100) of available main-axis space
	SizeFlex                    // Size is a flex weight sharing the remaining space
)

// FlexChild pairs a widget with its sizing mode along the main axis.
type FlexChild struct {
	Widget    Widget
	Mode      SizeMode
	Size      int // pixels (SizeFixed), percent 0-100 (SizePercent), or weight (SizeFlex)
	AlignSelf Align // overrides the layout's Align when non-zero (AlignStart is also the zero value, so treat AlignStart explicitly via HasAlignSelf)
	HasAlignSelf bool
}

// FlexLayout lays children out along Axis with fixed/percent/flex sizing:
// fixed and percent sizes are resolved first, the remainder is split
// among flex children proportional to weight.
type FlexLayout struct {
	Axis    Axis
	Gap     int
	Justify Justify
	Align   Align
}

// PositionedChild is one child's resolved rect after Layout.
type PositionedChild struct {
	Child      FlexChild
	X, Y, W, H int
}

// Layout resolves every child's rect within availW x availH. ctx is used
// only to measure children whose cross-axis Align is not AlignStretch.
func (f FlexLayout) Layout(ctx DrawContext, children []FlexChild, availW, availH int) []PositionedChild {
	if len(children) == 0 {
		return nil
	}
	mainAvail := availW
	if f.Axis == Column {
		mainAvail = availH
	}
	crossAvail := availH
	if f.Axis == Column {
		crossAvail = availW
	}

	totalGap := f.Gap * (len(children) - 1)
	remaining := mainAvail - totalGap
	if remaining < 0 {
		remaining = 0
	}

	mainSizes := make([]int, len(children))
	totalWeight := 0
	for i, c := range children {
		switch c.Mode {
		case SizeFixed:
			mainSizes[i] = c.Size
			remaining -= c.Size
		case SizePercent:
			size := mainAvail * c.Size / 100
			mainSizes[i] = size
			remaining -= size
		case SizeFlex:
			totalWeight += c.Size
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	for i, c := range children {
		if c.Mode == SizeFlex && totalWeight > 0 {
			mainSizes[i] = remaining * c.Size / totalWeight
		}
	}

	usedMain := totalGap
	for _, s := range mainSizes {
		usedMain += s
	}
	extra := mainAvail - usedMain
	if extra < 0 {
		extra = 0
	}

	startOffset, gapExtra := f.justifyOffsets(extra, len(children))

	out := make([]PositionedChild, len(children))
	cursor := startOffset
	for i, c := range children {
		align := f.Align
		if c.HasAlignSelf {
			align = c.AlignSelf
		}
		crossSize := crossAvail
		if align != AlignStretch && c.Widget != nil {
			mw, mh := c.Widget.Measure(ctx, crossAvail, crossAvail)
			if f.Axis == Row {
				crossSize = mh
			} else {
				crossSize = mw
			}
		}
		crossPos := f.crossOffset(align, crossAvail, crossSize)

		var x, y, w, h int
		if f.Axis == Row {
			x, y, w, h = cursor, crossPos, mainSizes[i], crossSize
		} else {
			x, y, w, h = crossPos, cursor, crossSize, mainSizes[i]
		}
		out[i] = PositionedChild{Child: c, X: x, Y: y, W: w, H: h}
		cursor += mainSizes[i] + f.Gap + gapExtra
	}
	return out
}

func (f FlexLayout) justifyOffsets(extra, n int) (start, gapExtra int) {
	switch f.Justify {
	case JustifyCenter:
		return extra / 2, 0
	case JustifyEnd:
		return extra, 0
	case JustifySpaceBetween:
		if n > 1 {
			return 0, extra / (n - 1)
		}
		return 0, 0
	default:
		return 0, 0
	}
}

func (f FlexLayout) crossOffset(align Align, crossAvail, crossSize int) int {
	switch align {
	case AlignCenter:
		return (crossAvail - crossSize) / 2
	case AlignEnd:
		return crossAvail - crossSize
	default:
		return 0
	}
}
