package layout

import (
	"strconv"
	"strings"

	"github.com/oasis-os/oasis/internal/browser/css"
	"github.com/oasis-os/oasis/internal/browser/dom"
)

// BuildTree walks doc's styled elements into an unpositioned LayoutBox
// tree: display-derived box types, text nodes as inline leaves, and
// anonymous block wrapping where a block parent mixes inline and block
// children. Call LayoutBlock on the result to position it, or use
// Layout to do both in one call.
func BuildTree(doc *dom.Document, sheet css.Stylesheet) *LayoutBox {
	merged := css.Merge(css.DefaultStylesheet(), sheet)
	return buildElement(doc, merged, doc.Root, nil)
}

// Layout builds and positions doc's full layout tree against a
// viewport of the given width, using measurer to size text runs.
func Layout(doc *dom.Document, sheet css.Stylesheet, viewportWidth float64, measurer TextMeasurer) *LayoutBox {
	root := BuildTree(doc, sheet)
	if root == nil {
		return nil
	}
	LayoutBlock(root, viewportWidth, 0, 0, measurer)
	return root
}

func buildElement(doc *dom.Document, sheet css.Stylesheet, nodeIdx int, parentStyle *css.ComputedStyle) *LayoutBox {
	n := doc.Node(nodeIdx)
	style := css.ResolveStyle(sheet, doc, nodeIdx, parentStyle)

	if displayOf(style) == "none" {
		return nil
	}

	if isReplacedTag(n.Tag) {
		return buildReplacedBox(nodeIdx, n, style)
	}

	kind := boxKindForDisplay(displayOf(style))
	box := NewBox(kind, style, nodeIdx)
	if kind == BoxListItem {
		box.Marker = markerForStyle(doc, nodeIdx, style)
	}

	children := buildChildren(doc, sheet, n.Children, &style)
	box.Children = wrapAnonymousBlocks(children)
	return box
}

func buildChildren(doc *dom.Document, sheet css.Stylesheet, childIdxs []int, parentStyle *css.ComputedStyle) []*LayoutBox {
	var out []*LayoutBox
	for _, idx := range childIdxs {
		n := doc.Node(idx)
		switch n.Kind {
		case dom.KindText:
			if n.Text == "" {
				continue
			}
			style := css.ResolveStyle(sheet, doc, idx, parentStyle)
			leaf := NewBox(BoxInline, style, idx)
			leaf.Text = n.Text
			out = append(out, leaf)
		case dom.KindElement:
			child := buildElement(doc, sheet, idx, parentStyle)
			if child != nil {
				out = append(out, child)
			}
		default: // comment, doctype: no box
			continue
		}
	}
	return out
}

func boxKindForDisplay(display string) BoxKind {
	switch display {
	case "block":
		return BoxBlock
	case "inline-block":
		return BoxInlineBlock
	case "list-item":
		return BoxListItem
	case "table":
		return BoxTableWrapper
	case "table-row":
		return BoxTableRow
	case "table-cell":
		return BoxTableCell
	default:
		return BoxInline
	}
}

func isReplacedTag(tag string) bool {
	return tag == "img" || tag == "hr" || tag == "br"
}

func buildReplacedBox(nodeIdx int, n *dom.Node, style css.ComputedStyle) *LayoutBox {
	var content ReplacedContent
	switch n.Tag {
	case "img":
		w, _ := n.Attr("width")
		h, _ := n.Attr("height")
		alt, _ := n.Attr("alt")
		content = ReplacedContent{
			Kind:   ReplacedImage,
			Width:  uint32(parseIntOr(w, 0)),
			Height: uint32(parseIntOr(h, 0)),
			Alt:    alt,
		}
	case "hr":
		content = ReplacedContent{Kind: ReplacedHorizontalRule}
	case "br":
		content = ReplacedContent{Kind: ReplacedLineBreak}
	}
	box := NewBox(BoxReplaced, style, nodeIdx)
	box.Replaced = content
	return box
}

func parseIntOr(s string, fallback int) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func markerForStyle(doc *dom.Document, nodeIdx int, style css.ComputedStyle) ListMarker {
	switch style.Get("list-style-type") {
	case "circle":
		return ListMarker{Kind: MarkerCircle}
	case "square":
		return ListMarker{Kind: MarkerSquare}
	case "none":
		return ListMarker{Kind: MarkerNone}
	case "decimal":
		return ListMarker{Kind: MarkerDecimal, Decimal: ordinalAmongListItemSiblings(doc, nodeIdx)}
	default:
		return ListMarker{Kind: MarkerDisc}
	}
}

// ordinalAmongListItemSiblings returns nodeIdx's 1-based position among
// its <li> siblings under the same parent list.
func ordinalAmongListItemSiblings(doc *dom.Document, nodeIdx int) int {
	n := doc.Node(nodeIdx)
	if n.Parent < 0 {
		return 1
	}
	count := 0
	for _, sib := range doc.Node(n.Parent).Children {
		sibNode := doc.Node(sib)
		if sibNode.Kind != dom.KindElement || sibNode.Tag != "li" {
			continue
		}
		count++
		if sib == nodeIdx {
			return count
		}
	}
	return 1
}

// wrapAnonymousBlocks groups consecutive inline-level children into
// anonymous block boxes when the full child list mixes block-level and
// inline-level content (the CSS anonymous-block rule). A run of purely
// inline or purely block children is left untouched.
func wrapAnonymousBlocks(children []*LayoutBox) []*LayoutBox {
	hasBlock, hasInline := false, false
	for _, c := range children {
		if c.IsBlockLevel() {
			hasBlock = true
		} else {
			hasInline = true
		}
	}
	if !hasBlock || !hasInline {
		return children
	}

	var out []*LayoutBox
	var run []*LayoutBox
	flush := func() {
		if len(run) == 0 {
			return
		}
		anon := NewBox(BoxAnonymous, css.ComputedStyle{Values: map[string]string{}}, NoNode)
		anon.Children = run
		out = append(out, anon)
		run = nil
	}
	for _, c := range children {
		if c.IsBlockLevel() {
			flush()
			out = append(out, c)
		} else {
			run = append(run, c)
		}
	}
	flush()
	return out
}
