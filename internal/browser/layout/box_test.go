package layout

import (
	"testing"

	"github.com/oasis-os/oasis/internal/browser/css"
)

func style(props map[string]string) css.ComputedStyle {
	return css.ComputedStyle{Values: props}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(15, 15) {
		t.Error("expected point inside rect to be contained")
	}
	if r.Contains(30, 15) {
		t.Error("right edge should be exclusive")
	}
	if r.Contains(9, 15) {
		t.Error("point left of rect should not be contained")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 15 || u.Height != 15 {
		t.Errorf("got %+v", u)
	}
}

func TestDimensionsBoxes(t *testing.T) {
	d := Dimensions{
		Content: Rect{X: 100, Y: 100, Width: 200, Height: 50},
		Padding: Uniform(10),
		Border:  Uniform(2),
		Margin:  Uniform(5),
	}
	pb := d.PaddingBox()
	if pb.X != 90 || pb.Y != 90 || pb.Width != 220 || pb.Height != 70 {
		t.Errorf("padding box: %+v", pb)
	}
	bb := d.BorderBox()
	if bb.X != 88 || bb.Width != 224 {
		t.Errorf("border box: %+v", bb)
	}
	mb := d.MarginBox()
	if mb.X != 83 || mb.Width != 234 {
		t.Errorf("margin box: %+v", mb)
	}
}

func TestIsBlockLevelHorizontalRuleException(t *testing.T) {
	hr := NewBox(BoxReplaced, style(nil), NoNode)
	hr.Replaced = ReplacedContent{Kind: ReplacedHorizontalRule}
	if !hr.IsBlockLevel() {
		t.Error("hr should be block-level")
	}
	if hr.IsInlineLevel() {
		t.Error("hr should not be inline-level")
	}

	img := NewBox(BoxReplaced, style(nil), NoNode)
	img.Replaced = ReplacedContent{Kind: ReplacedImage}
	if img.IsBlockLevel() {
		t.Error("img should not be block-level")
	}
	if !img.IsInlineLevel() {
		t.Error("img should be inline-level")
	}
}

func TestLineBoxTryAddFirstFragmentAlwaysFits(t *testing.T) {
	line := NewLineBox(10)
	wide := &InlineFragment{Kind: FragText, Text: "supercalifragilistic", Width: 1000}
	if !line.TryAdd(wide) {
		t.Fatal("first fragment on a line must always be accepted")
	}
	second := &InlineFragment{Kind: FragText, Text: "x", Width: 1}
	if line.TryAdd(second) {
		t.Error("second fragment should not fit once line is already over width")
	}
}

func TestLineBoxUsedWidth(t *testing.T) {
	line := NewLineBox(100)
	line.TryAdd(&InlineFragment{Kind: FragText, Width: 10})
	line.TryAdd(&InlineFragment{Kind: FragText, Width: 20})
	if got := line.UsedWidth(); got != 30 {
		t.Errorf("got %v", got)
	}
}

func TestInlineFragmentSetXShiftsInlineBoxSubtree(t *testing.T) {
	child := NewBox(BoxInlineBlock, style(nil), NoNode)
	child.Dimensions.Content = Rect{X: 0, Y: 0, Width: 10, Height: 10}
	grandchild := NewBox(BoxInline, style(nil), NoNode)
	grandchild.Dimensions.Content = Rect{X: 2, Y: 2, Width: 5, Height: 5}
	child.Children = []*LayoutBox{grandchild}

	f := &InlineFragment{Kind: FragInlineBox, Box: child, X: 0}
	f.SetX(50)
	if child.Dimensions.Content.X != 50 {
		t.Errorf("expected box shifted to 50, got %v", child.Dimensions.Content.X)
	}
	if grandchild.Dimensions.Content.X != 52 {
		t.Errorf("expected descendant shifted by same delta, got %v", grandchild.Dimensions.Content.X)
	}
}
