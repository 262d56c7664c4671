package layout

import (
	"strconv"
	"strings"

	"github.com/oasis-os/oasis/internal/browser/css"
)

// LayoutBlock positions box (previously built by BuildTree, or a fresh
// synthetic box such as an inline-block) and its subtree within a
// containing block of width containingWidth, with the box's margin-box
// top-left placed at (x, y). Follows the CSS 2.1 block layout
// algorithm: resolve horizontal margins/width against the containing
// width via the CSS constraint equation, stack children down the
// vertical cursor with adjacent-sibling margin collapsing, and either
// recurse into block children or hand inline-level children to
// LayoutInline. Floated and cleared children consult fc, a per-box
// float context scoped to the block box that establishes it.
func LayoutBlock(box *LayoutBox, containingWidth float64, x, y float64, measurer TextMeasurer) {
	resolveWidthAndMargins(box, containingWidth)
	box.Dimensions.Content.X = x + box.Dimensions.Margin.Left + box.Dimensions.Border.Left + box.Dimensions.Padding.Left
	box.Dimensions.Content.Y = y + box.Dimensions.Margin.Top + box.Dimensions.Border.Top + box.Dimensions.Padding.Top

	if box.Kind == BoxListItem {
		layoutMarker(box, measurer)
	}

	if isInlineFormattingContext(box) {
		LayoutInline(box, measurer, NewFloatContext())
		return
	}

	layoutBlockChildren(box, measurer)
}

// isInlineFormattingContext reports whether box's children should be
// handed to the inline line-packer rather than recursed into as block
// boxes. BuildTree's anonymous-block wrapping guarantees that whenever
// a parent mixes block and inline content, the inline runs are already
// isolated into anonymous boxes with only inline-level children, so
// "all children are inline-level" is sufficient to detect an IFC root
// at any level of the tree.
func isInlineFormattingContext(box *LayoutBox) bool {
	if len(box.Children) == 0 {
		return false
	}
	for _, c := range box.Children {
		if !c.IsInlineLevel() {
			return false
		}
	}
	return true
}

func layoutBlockChildren(box *LayoutBox, measurer TextMeasurer) {
	fc := NewFloatContext()
	cursorY := box.Dimensions.Content.Y
	var prevMarginBottom float64
	first := true

	for _, child := range box.Children {
		if side := clearOf(child.Style); side != "none" {
			cursorY = max(cursorY, fc.ClearY(clearSideFromString(side)))
		}

		if floatSide := floatOf(child.Style); floatSide == "left" || floatSide == "right" {
			layoutFloatedChild(child, box, fc, cursorY, floatSideFromString(floatSide), measurer)
			continue
		}

		resolveWidthAndMargins(child, box.Dimensions.Content.Width)
		collapsed := child.Dimensions.Margin.Top
		if !first {
			collapsed = collapseMargins(prevMarginBottom, child.Dimensions.Margin.Top)
		}
		childTop := cursorY + collapsed

		LayoutBlock(child, box.Dimensions.Content.Width, box.Dimensions.Content.X, childTop, measurer)

		// Advance by the border box only: margin-bottom is not part of
		// the flow position yet, it is folded into the next sibling's
		// collapsed margin (or the parent's used height) instead of
		// being counted twice.
		cursorY = childTop + child.Dimensions.BorderBox().Height
		prevMarginBottom = child.Dimensions.Margin.Bottom
		first = false
	}

	contentHeight := cursorY - box.Dimensions.Content.Y
	if h, ok := explicitHeight(box.Style); ok {
		contentHeight = h
	}
	box.Dimensions.Content.Height = contentHeight
}

// layoutFloatedChild lays the child out at its tentative in-flow
// position to discover its margin-box size, places it against fc, then
// shifts the already-built subtree to the float's resolved position.
// Floats do not advance the normal-flow cursor.
func layoutFloatedChild(child, parent *LayoutBox, fc *FloatContext, y float64, side FloatSide, measurer TextMeasurer) {
	resolveWidthAndMargins(child, parent.Dimensions.Content.Width)
	LayoutBlock(child, parent.Dimensions.Content.Width, parent.Dimensions.Content.X, y, measurer)

	mb := child.Dimensions.MarginBox()
	placed := fc.PlaceFloat(side, mb.Width, mb.Height, y, parent.Dimensions.Content.Width)
	shiftBoxTree(child, placed.Rect.X-mb.X, placed.Rect.Y-mb.Y)
}

func clearSideFromString(s string) ClearSide {
	switch s {
	case "left":
		return ClearLeft
	case "right":
		return ClearRight
	default:
		return ClearBoth
	}
}

func floatSideFromString(s string) FloatSide {
	if s == "right" {
		return FloatRight
	}
	return FloatLeft
}

// collapseMargins applies the CSS adjacent-sibling collapsing rule for
// the common case of two non-negative margins: the maximum wins. A
// negative operand (not produced by any current computed-style path)
// falls back to simple addition rather than the full positive/negative
// collapsing algorithm.
func collapseMargins(a, b float64) float64 {
	if a < 0 || b < 0 {
		return a + b
	}
	return max(a, b)
}

// shiftBoxTree translates box and every descendant's content rect by
// (dx, dy) in place. Used to reposition a subtree that was laid out at
// a placeholder origin (floats, inline-blocks) once its final position
// is known, since LayoutBlock writes absolute coordinates directly
// into each descendant rather than coordinates relative to a parent.
func shiftBoxTree(box *LayoutBox, dx, dy float64) {
	if box == nil || (dx == 0 && dy == 0) {
		return
	}
	box.Dimensions.Content.X += dx
	box.Dimensions.Content.Y += dy
	if box.MarkerBox != nil {
		shiftBoxTree(box.MarkerBox, dx, dy)
	}
	for _, c := range box.Children {
		shiftBoxTree(c, dx, dy)
	}
}

// resolveWidthAndMargins implements CSS 2.1's block-level, non-replaced
// width constraint equation: margin-left + border-left + padding-left +
// width + padding-right + border-right + margin-right == containingWidth.
// An auto width fills whatever space the margins/border/padding leave;
// when width is fixed, one or two auto margins absorb the remainder (two
// autos split it evenly, centering the box).
func resolveWidthAndMargins(box *LayoutBox, containingWidth float64) {
	style := box.Style

	padding := EdgeSizes{
		Top:    pxValue(style, "padding-top", 0),
		Right:  pxValue(style, "padding-right", 0),
		Bottom: pxValue(style, "padding-bottom", 0),
		Left:   pxValue(style, "padding-left", 0),
	}
	border := EdgeSizes{
		Top:    pxValue(style, "border-top-width", 0),
		Right:  pxValue(style, "border-right-width", 0),
		Bottom: pxValue(style, "border-bottom-width", 0),
		Left:   pxValue(style, "border-left-width", 0),
	}
	marginTop := pxValue(style, "margin-top", 0)
	marginBottom := pxValue(style, "margin-bottom", 0)

	marginLeftAuto := isAutoValue(style.Get("margin-left"))
	marginRightAuto := isAutoValue(style.Get("margin-right"))
	widthAuto := isAutoValue(style.Get("width"))

	var marginLeft, marginRight float64
	if !marginLeftAuto {
		marginLeft = pxValue(style, "margin-left", 0)
	}
	if !marginRightAuto {
		marginRight = pxValue(style, "margin-right", 0)
	}

	var width float64
	if !widthAuto {
		width = resolveLengthOrPercent(style.Get("width"), containingWidth)
	}

	if widthAuto {
		width = containingWidth - border.Horizontal() - padding.Horizontal() - marginLeft - marginRight
		if width < 0 {
			width = 0
		}
	} else {
		remaining := containingWidth - width - border.Horizontal() - padding.Horizontal()
		switch {
		case marginLeftAuto && marginRightAuto:
			half := remaining / 2
			if half < 0 {
				half = 0
			}
			marginLeft, marginRight = half, half
		case marginLeftAuto:
			marginLeft = remaining - marginRight
			if marginLeft < 0 {
				marginLeft = 0
			}
		case marginRightAuto:
			marginRight = remaining - marginLeft
			if marginRight < 0 {
				marginRight = 0
			}
		}
	}

	box.Dimensions.Margin = EdgeSizes{Top: marginTop, Right: marginRight, Bottom: marginBottom, Left: marginLeft}
	box.Dimensions.Border = border
	box.Dimensions.Padding = padding
	box.Dimensions.Content.Width = width
}

func isAutoValue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "auto"
}

func resolveLengthOrPercent(v string, containingWidth float64) float64 {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0
		}
		return containingWidth * n / 100
	}
	return parseLengthOr(v, 0)
}

// explicitHeight reports the style's used height in pixels, or false
// when height is unset/auto and should instead be derived from content.
func explicitHeight(style css.ComputedStyle) (float64, bool) {
	v := strings.TrimSpace(style.Get("height"))
	if isAutoValue(v) {
		return 0, false
	}
	return parseLengthOr(v, 0), true
}

// layoutMarker builds and positions a list item's marker box just left
// of its content rect. The marker is not a flow child: it never
// participates in block or inline layout of box's own children.
func layoutMarker(box *LayoutBox, measurer TextMeasurer) {
	if box.Marker.Kind == MarkerNone {
		return
	}
	glyph := markerGlyph(box.Marker)
	if glyph == "" {
		return
	}

	marker := NewBox(BoxInline, box.Style, NoNode)
	marker.Text = glyph
	fontSize := fontSizePx(box.Style)
	width := measurer.MeasureText(glyph, fontSize)

	const markerGap = 4
	marker.Dimensions.Content.Width = width
	marker.Dimensions.Content.Height = lineHeightPx(box.Style)
	marker.Dimensions.Content.X = box.Dimensions.Content.X - width - markerGap
	marker.Dimensions.Content.Y = box.Dimensions.Content.Y

	box.MarkerBox = marker
}

func markerGlyph(m ListMarker) string {
	switch m.Kind {
	case MarkerDisc:
		return "•"
	case MarkerCircle:
		return "◦"
	case MarkerSquare:
		return "▪"
	case MarkerDecimal:
		return strconv.Itoa(m.Decimal) + "."
	default:
		return ""
	}
}
