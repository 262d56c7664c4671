package layout

import "github.com/oasis-os/oasis/internal/browser/css"

// LayoutInline lays out parent's inline-level children into line boxes,
// wrapping around any floats active in fc, then positions fragments and
// sets parent's content height to the stacked line heights. fc may be
// nil when the containing block has no active floats.
func LayoutInline(parent *LayoutBox, measurer TextMeasurer, fc *FloatContext) []*LineBox {
	availableWidth := parent.Dimensions.Content.Width
	align := textAlignOf(parent.Style)
	whiteSpace := whiteSpaceOf(parent.Style)
	estimatedLineHeight := lineHeightPx(parent.Style)

	fragments := collectInlineFragments(parent.Children, availableWidth, measurer)

	newLineAt := func(y float64) *LineBox {
		leftOffset, width := 0.0, availableWidth
		if fc != nil {
			leftOffset, width = fc.AvailableWidth(y, estimatedLineHeight, availableWidth)
		}
		lb := NewLineBox(width)
		lb.LeftOffset = leftOffset
		return lb
	}

	var lines []*LineBox
	cursorY := parent.Dimensions.Content.Y
	current := newLineAt(cursorY)

	flush := func() {
		if current.IsEmpty() {
			return
		}
		current.Top = cursorY
		finalizeLineHeight(current, parent)
		lines = append(lines, current)
		cursorY += current.Height
	}

	for _, frag := range fragments {
		if whiteSpace != WhiteSpaceNoWrap && frag.Kind == FragText && frag.Text == "\n" {
			flush()
			current = newLineAt(cursorY)
			continue
		}
		if whiteSpace == WhiteSpaceNoWrap {
			current.Fragments = append(current.Fragments, frag)
			continue
		}
		if !current.TryAdd(frag) {
			flush()
			current = newLineAt(cursorY)
			current.TryAdd(frag)
		}
	}
	flush()

	lastIdx := len(lines) - 1
	for i, line := range lines {
		isLast := i == lastIdx
		contentX := parent.Dimensions.Content.X + line.LeftOffset
		positionFragmentsOnLine(line, align, isLast, contentX)
		alignInlineBoxesToLine(line)
	}

	parent.Children = lineBoxInlineChildren(lines)
	parent.Dimensions.Content.Height = cursorY - parent.Dimensions.Content.Y
	return lines
}

func finalizeLineHeight(line *LineBox, parent *LayoutBox) {
	var h float64
	for _, f := range line.Fragments {
		h = max(h, f.HeightOf())
	}
	if h <= 0 {
		h = lineHeightPx(parent.Style)
	}
	line.Height = h
	line.Baseline = h * 0.8
}

// collectInlineFragments walks inline-level children, splitting text
// leaves into word fragments and wrapping inline-block/replaced
// children as single fragments. Inline-block children are laid out
// immediately (shrink-to-fit approximated as the containing line's
// full width) so their margin-box dimensions are known before the
// line packer has to measure them; positionFragmentsOnLine later
// shifts the whole laid-out subtree into its final place on the line.
func collectInlineFragments(children []*LayoutBox, containingWidth float64, measurer TextMeasurer) []*InlineFragment {
	var out []*InlineFragment
	for _, child := range children {
		switch child.Kind {
		case BoxInline:
			if len(child.Children) == 0 {
				out = append(out, MakeTextFragments(child.Text, child.Style, child.Node, measurer)...)
			} else {
				out = append(out, collectInlineFragments(child.Children, containingWidth, measurer)...)
			}
		case BoxInlineBlock:
			LayoutBlock(child, containingWidth, 0, 0, measurer)
			out = append(out, &InlineFragment{Kind: FragInlineBox, Box: child, Style: child.Style, Node: child.Node})
		case BoxReplaced:
			w, h := replacedDimensions(child.Replaced)
			out = append(out, &InlineFragment{
				Kind: FragReplaced, Replaced: child.Replaced,
				Width: w, Height: h, Style: child.Style, Node: child.Node,
			})
		default:
			out = append(out, collectInlineFragments(child.Children, containingWidth, measurer)...)
		}
	}
	return out
}

// alignInlineBoxesToLine top-aligns any inline-block fragment's margin
// box with the line's top edge, now that the line's final position is
// known.
func alignInlineBoxesToLine(line *LineBox) {
	for _, f := range line.Fragments {
		if f.Kind != FragInlineBox {
			continue
		}
		dy := line.Top - f.Box.Dimensions.MarginBox().Y
		shiftBoxTree(f.Box, 0, dy)
	}
}

func replacedDimensions(r ReplacedContent) (float64, float64) {
	switch r.Kind {
	case ReplacedImage:
		return float64(r.Width), float64(r.Height)
	case ReplacedHorizontalRule:
		return 0, 2
	default: // ReplacedLineBreak
		return 0, 0
	}
}

// MakeTextFragments splits text into word-level fragments, applying
// text-transform and white-space collapsing before measurement.
func MakeTextFragments(text string, style css.ComputedStyle, node int, measurer TextMeasurer) []*InlineFragment {
	transformed := ApplyTextTransform(text, textTransformOf(style))
	ws := whiteSpaceOf(style)
	collapsed := CollapseWhitespace(transformed, ws)
	words := SplitIntoWords(collapsed, ws)

	fontSize := fontSizePx(style)
	spaceWidth := MeasureSpace(fontSize, measurer)

	var out []*InlineFragment
	for _, word := range words {
		if word.Text == "\n" {
			out = append(out, &InlineFragment{Kind: FragText, Text: "\n", Style: style, Node: node})
			continue
		}
		wordWidth := MeasureWord(word.Text, fontSize, measurer)
		totalWidth := wordWidth
		display := word.Text
		if word.TrailingSpace {
			totalWidth += spaceWidth
			display += " "
		}
		out = append(out, &InlineFragment{Kind: FragText, Text: display, Width: totalWidth, Style: style, Node: node})
	}
	return out
}

func positionFragmentsOnLine(line *LineBox, align TextAlign, isLastLine bool, contentX float64) {
	used := line.UsedWidth()
	extra := line.Width - used
	if extra < 0 {
		extra = 0
	}

	switch align {
	case AlignRight:
		x := contentX + extra
		for _, f := range line.Fragments {
			f.SetX(x)
			x += f.WidthOf()
		}
	case AlignCenter:
		x := contentX + extra/2
		for _, f := range line.Fragments {
			f.SetX(x)
			x += f.WidthOf()
		}
	case AlignJustify:
		if isLastLine || len(line.Fragments) <= 1 {
			x := contentX
			for _, f := range line.Fragments {
				f.SetX(x)
				x += f.WidthOf()
			}
		} else {
			gaps := len(line.Fragments) - 1
			gapExtra := extra / float64(gaps)
			x := contentX
			for i, f := range line.Fragments {
				f.SetX(x)
				x += f.WidthOf()
				if i < gaps {
					x += gapExtra
				}
			}
		}
	default: // AlignLeft
		x := contentX
		for _, f := range line.Fragments {
			f.SetX(x)
			x += f.WidthOf()
		}
	}
}

// lineBoxInlineChildren flattens placed inline-block boxes back into a
// child list so downstream painting/layout can walk them like any other
// block-level subtree; plain text/replaced fragments are paint-only and
// are not represented as layout-tree children.
func lineBoxInlineChildren(lines []*LineBox) []*LayoutBox {
	var children []*LayoutBox
	for _, line := range lines {
		for _, frag := range line.Fragments {
			if frag.Kind == FragInlineBox {
				children = append(children, frag.Box)
			}
		}
	}
	return children
}
