package layout

import (
	"testing"

	"github.com/oasis-os/oasis/internal/browser/css"
	"github.com/oasis-os/oasis/internal/browser/dom"
)

func TestResolveWidthAndMarginsAutoWidthFillsContainer(t *testing.T) {
	box := NewBox(BoxBlock, style(nil), NoNode)
	resolveWidthAndMargins(box, 300)
	if box.Dimensions.Content.Width != 300 {
		t.Errorf("expected auto width to fill containing width, got %v", box.Dimensions.Content.Width)
	}
}

func TestResolveWidthAndMarginsFixedWidthAutoMarginsCenter(t *testing.T) {
	box := NewBox(BoxBlock, style(map[string]string{
		"width": "100px", "margin-left": "auto", "margin-right": "auto",
	}), NoNode)
	resolveWidthAndMargins(box, 300)
	if box.Dimensions.Content.Width != 100 {
		t.Fatalf("expected fixed width honored, got %v", box.Dimensions.Content.Width)
	}
	if box.Dimensions.Margin.Left != 100 || box.Dimensions.Margin.Right != 100 {
		t.Errorf("expected centering margins of 100 each, got left=%v right=%v",
			box.Dimensions.Margin.Left, box.Dimensions.Margin.Right)
	}
}

func TestResolveWidthAndMarginsPercentWidth(t *testing.T) {
	box := NewBox(BoxBlock, style(map[string]string{"width": "50%"}), NoNode)
	resolveWidthAndMargins(box, 200)
	if box.Dimensions.Content.Width != 100 {
		t.Errorf("expected 50%% of 200 = 100, got %v", box.Dimensions.Content.Width)
	}
}

func TestCollapseMarginsTakesMax(t *testing.T) {
	if got := collapseMargins(10, 20); got != 20 {
		t.Errorf("got %v", got)
	}
	if got := collapseMargins(30, 5); got != 30 {
		t.Errorf("got %v", got)
	}
}

func TestLayoutBlockStacksChildrenVertically(t *testing.T) {
	parent := NewBox(BoxBlock, style(nil), NoNode)
	a := NewBox(BoxBlock, style(map[string]string{"height": "20px"}), NoNode)
	b := NewBox(BoxBlock, style(map[string]string{"height": "30px"}), NoNode)
	parent.Children = []*LayoutBox{a, b}

	LayoutBlock(parent, 100, 0, 0, RuneWidthMeasurer{})

	if a.Dimensions.Content.Y != 0 {
		t.Errorf("expected first child at y=0, got %v", a.Dimensions.Content.Y)
	}
	if b.Dimensions.Content.Y != 20 {
		t.Errorf("expected second child stacked below the first's height, got %v", b.Dimensions.Content.Y)
	}
	if parent.Dimensions.Content.Height != 50 {
		t.Errorf("expected parent height to sum children, got %v", parent.Dimensions.Content.Height)
	}
}

func TestLayoutBlockCollapsesAdjacentMargins(t *testing.T) {
	parent := NewBox(BoxBlock, style(nil), NoNode)
	a := NewBox(BoxBlock, style(map[string]string{"height": "10px", "margin-bottom": "20px"}), NoNode)
	b := NewBox(BoxBlock, style(map[string]string{"height": "10px", "margin-top": "10px"}), NoNode)
	parent.Children = []*LayoutBox{a, b}

	LayoutBlock(parent, 100, 0, 0, RuneWidthMeasurer{})

	if b.Dimensions.Content.Y != 30 {
		t.Errorf("expected collapsed margin max(20,10)=20 after a's 10px height, got %v", b.Dimensions.Content.Y)
	}
}

func TestLayoutBlockFloatDoesNotAdvanceCursor(t *testing.T) {
	parent := NewBox(BoxBlock, style(nil), NoNode)
	floated := NewBox(BoxBlock, style(map[string]string{
		"float": "left", "width": "30px", "height": "40px",
	}), NoNode)
	after := NewBox(BoxBlock, style(map[string]string{"height": "10px"}), NoNode)
	parent.Children = []*LayoutBox{floated, after}

	LayoutBlock(parent, 200, 0, 0, RuneWidthMeasurer{})

	if after.Dimensions.Content.Y != 0 {
		t.Errorf("expected in-flow sibling to ignore a float's height, got %v", after.Dimensions.Content.Y)
	}
	if floated.Dimensions.Content.X != 0 {
		t.Errorf("expected float placed at left edge, got %v", floated.Dimensions.Content.X)
	}
}

func TestLayoutBlockClearDropsBelowFloat(t *testing.T) {
	parent := NewBox(BoxBlock, style(nil), NoNode)
	floated := NewBox(BoxBlock, style(map[string]string{
		"float": "left", "width": "30px", "height": "40px",
	}), NoNode)
	cleared := NewBox(BoxBlock, style(map[string]string{"clear": "left", "height": "10px"}), NoNode)
	parent.Children = []*LayoutBox{floated, cleared}

	LayoutBlock(parent, 200, 0, 0, RuneWidthMeasurer{})

	if cleared.Dimensions.Content.Y < 40 {
		t.Errorf("expected cleared sibling to drop below the float's bottom, got %v", cleared.Dimensions.Content.Y)
	}
}

func TestLayoutBlockDelegatesPureInlineContentToInlineLayout(t *testing.T) {
	doc := dom.Parse(`<p>hello world</p>`)
	root := BuildTree(doc, css.Parse(""))
	p := root.Children[0].Children[0]

	LayoutBlock(root, 1000, 0, 0, fixedMeasurer{perChar: 1})

	if p.Dimensions.Content.Height <= 0 {
		t.Fatalf("expected paragraph to receive a positive height from inline layout, got %v", p.Dimensions.Content.Height)
	}
}

func TestLayoutBlockListItemGetsMarkerBox(t *testing.T) {
	doc := dom.Parse(`<ul><li>item</li></ul>`)
	root := BuildTree(doc, css.Parse(""))

	LayoutBlock(root, 500, 0, 0, fixedMeasurer{perChar: 1})

	ul := root.Children[0].Children[0]
	li := ul.Children[0]
	if li.MarkerBox == nil {
		t.Fatal("expected list item to receive a marker box")
	}
	if li.MarkerBox.Dimensions.Content.X >= li.Dimensions.Content.X {
		t.Errorf("expected marker positioned left of content, marker.X=%v content.X=%v",
			li.MarkerBox.Dimensions.Content.X, li.Dimensions.Content.X)
	}
}
