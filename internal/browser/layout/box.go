// Package layout implements OASIS's browser layout engine: it walks a
// styled DOM and a viewport width into a positioned LayoutBox tree,
// following CSS 2.1 block and inline formatting context rules. Modeled
// on oasis-core/src/browser/layout/box_model.rs.
package layout

import "github.com/oasis-os/oasis/internal/browser/css"

// Rect is an axis-aligned rectangle in layout-space pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) falls within the rect (top/left
// inclusive, bottom/right exclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// EdgeSizes holds the four edges of margin, padding, or border.
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns edges of equal width on all four sides.
func Uniform(v float64) EdgeSizes { return EdgeSizes{Top: v, Right: v, Bottom: v, Left: v} }

// Horizontal is the sum of the left and right edges.
func (e EdgeSizes) Horizontal() float64 { return e.Left + e.Right }

// Vertical is the sum of the top and bottom edges.
func (e EdgeSizes) Vertical() float64 { return e.Top + e.Bottom }

// Dimensions is a box's content rect plus its padding/border/margin.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox returns content expanded by padding.
func (d Dimensions) PaddingBox() Rect {
	return Rect{
		X:      d.Content.X - d.Padding.Left,
		Y:      d.Content.Y - d.Padding.Top,
		Width:  d.Content.Width + d.Padding.Horizontal(),
		Height: d.Content.Height + d.Padding.Vertical(),
	}
}

// BorderBox returns the padding box expanded by border.
func (d Dimensions) BorderBox() Rect {
	pb := d.PaddingBox()
	return Rect{
		X:      pb.X - d.Border.Left,
		Y:      pb.Y - d.Border.Top,
		Width:  pb.Width + d.Border.Horizontal(),
		Height: pb.Height + d.Border.Vertical(),
	}
}

// MarginBox returns the border box expanded by margin.
func (d Dimensions) MarginBox() Rect {
	bb := d.BorderBox()
	return Rect{
		X:      bb.X - d.Margin.Left,
		Y:      bb.Y - d.Margin.Top,
		Width:  bb.Width + d.Margin.Horizontal(),
		Height: bb.Height + d.Margin.Vertical(),
	}
}

// BoxKind is the type of a LayoutBox, derived from its computed display.
type BoxKind int

const (
	BoxBlock BoxKind = iota
	BoxInline
	BoxInlineBlock
	BoxTableWrapper
	BoxTableRow
	BoxTableCell
	BoxListItem
	BoxReplaced
	BoxAnonymous
)

// MarkerKind is the bullet/number style of a list-item marker.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerDisc
	MarkerCircle
	MarkerSquare
	MarkerDecimal
)

// ListMarker describes a list-item's marker box.
type ListMarker struct {
	Kind    MarkerKind
	Decimal int // ordinal value, valid when Kind == MarkerDecimal
}

// ReplacedKind distinguishes the flavor of a replaced element.
type ReplacedKind int

const (
	ReplacedImage ReplacedKind = iota
	ReplacedHorizontalRule
	ReplacedLineBreak
)

// ReplacedContent carries the intrinsic dimensions of a replaced element
// (img, hr, br): content whose box is not laid out from children.
type ReplacedContent struct {
	Kind          ReplacedKind
	Width, Height uint32
	Alt           string
}

// NoNode marks a LayoutBox with no backing DOM node (anonymous boxes,
// synthesized markers).
const NoNode = -1

// LayoutBox is one box in the positioned layout tree.
type LayoutBox struct {
	Kind       BoxKind
	Marker     ListMarker      // valid when Kind == BoxListItem
	Replaced   ReplacedContent // valid when Kind == BoxReplaced
	Dimensions Dimensions
	Children   []*LayoutBox
	Node       int // index into the source dom.Document, or NoNode
	Style      css.ComputedStyle
	Text       string      // text content for inline leaf boxes
	MarkerBox  *LayoutBox  // populated for BoxListItem, positioned left of content
}

// NewBox creates a box of the given kind with default (zero) dimensions.
func NewBox(kind BoxKind, style css.ComputedStyle, node int) *LayoutBox {
	return &LayoutBox{Kind: kind, Style: style, Node: node}
}

// IsBlockLevel reports whether this box participates in block layout.
// A horizontal rule is the one replaced element that is block-level;
// images and line breaks flow as inline content.
func (b *LayoutBox) IsBlockLevel() bool {
	if b.Kind == BoxReplaced {
		return b.Replaced.Kind == ReplacedHorizontalRule
	}
	switch b.Kind {
	case BoxBlock, BoxListItem, BoxTableWrapper, BoxAnonymous:
		return true
	default:
		return false
	}
}

// IsInlineLevel reports whether this box participates in inline layout.
func (b *LayoutBox) IsInlineLevel() bool {
	if b.Kind == BoxReplaced {
		return b.Replaced.Kind != ReplacedHorizontalRule
	}
	return b.Kind == BoxInline || b.Kind == BoxInlineBlock
}

// FragKind distinguishes the three InlineFragment variants.
type FragKind int

const (
	FragText FragKind = iota
	FragInlineBox
	FragReplaced
)

// InlineFragment is one piece of content packed into a LineBox.
type InlineFragment struct {
	Kind FragKind

	// FragText
	Text string

	// FragInlineBox
	Box *LayoutBox

	// FragReplaced
	Replaced ReplacedContent

	X, Width, Height float64
	Style            css.ComputedStyle
	Node             int
}

// WidthOf returns the fragment's layout width.
func (f *InlineFragment) WidthOf() float64 {
	switch f.Kind {
	case FragInlineBox:
		return f.Box.Dimensions.MarginBox().Width
	default:
		return f.Width
	}
}

// HeightOf returns the fragment's layout height.
func (f *InlineFragment) HeightOf() float64 {
	switch f.Kind {
	case FragText:
		return fontSizePx(f.Style)
	case FragInlineBox:
		return f.Box.Dimensions.MarginBox().Height
	default:
		return f.Height
	}
}

// SetX repositions the fragment horizontally. For an inline-block
// fragment the child box was already laid out (at x=0) by the time it
// reaches a line, so the whole subtree shifts by the delta rather than
// overwriting a single coordinate.
func (f *InlineFragment) SetX(x float64) {
	dx := x - f.X
	f.X = x
	if f.Kind == FragInlineBox {
		shiftBoxTree(f.Box, dx, 0)
	}
}

// LineBox is one line of packed inline fragments.
type LineBox struct {
	Fragments  []*InlineFragment
	Baseline   float64
	Height     float64
	Width      float64 // available width, not used width
	LeftOffset float64 // x offset imposed by an overlapping left float
	Top        float64 // y coordinate of the line's top edge
}

// NewLineBox creates an empty line with the given available width.
func NewLineBox(availableWidth float64) *LineBox {
	return &LineBox{Width: availableWidth}
}

// UsedWidth sums the widths of the line's fragments so far.
func (l *LineBox) UsedWidth() float64 {
	var sum float64
	for _, f := range l.Fragments {
		sum += f.WidthOf()
	}
	return sum
}

// IsEmpty reports whether the line has no fragments yet.
func (l *LineBox) IsEmpty() bool { return len(l.Fragments) == 0 }

// TryAdd appends fragment if it fits within the line's available width.
// The first fragment on a line always fits, preventing an infinite
// retry loop on a single word wider than the line.
func (l *LineBox) TryAdd(fragment *InlineFragment) bool {
	if len(l.Fragments) > 0 && l.UsedWidth()+fragment.WidthOf() > l.Width {
		return false
	}
	l.Fragments = append(l.Fragments, fragment)
	return true
}
