package ui

import "testing"

func TestFlexFixedAndFlexSplit(t *testing.T) {
	f := FlexLayout{Axis: Row, Align: AlignStretch}
	children := []FlexChild{
		{Mode: SizeFixed, Size: 20},
		{Mode: SizeFlex, Size: 1},
		{Mode: SizeFlex, Size: 3},
	}
	out := f.Layout(DrawContext{}, children, 100, 50)
	if len(out) != 3 {
		t.Fatalf("got %d children, want 3", len(out))
	}
	if out[0].W != 20 {
		t.Errorf("fixed child W = %d, want 20", out[0].W)
	}
	// remaining = 100 - 20 = 80, split 1:3 -> 20 and 60
	if out[1].W != 20 {
		t.Errorf("flex weight 1 child W = %d, want 20", out[1].W)
	}
	if out[2].W != 60 {
		t.Errorf("flex weight 3 child W = %d, want 60", out[2].W)
	}
}

func TestFlexGapReducesAvailable(t *testing.T) {
	f := FlexLayout{Axis: Row, Gap: 10, Align: AlignStretch}
	children := []FlexChild{
		{Mode: SizeFlex, Size: 1},
		{Mode: SizeFlex, Size: 1},
	}
	out := f.Layout(DrawContext{}, children, 100, 50)
	// 100 - 10 gap = 90, split evenly -> 45 each
	if out[0].W != 45 || out[1].W != 45 {
		t.Errorf("got widths %d, %d; want 45, 45", out[0].W, out[1].W)
	}
	if out[1].X != out[0].X+out[0].W+10 {
		t.Errorf("second child X = %d, want %d", out[1].X, out[0].X+out[0].W+10)
	}
}

func TestGridCellRectUniform(t *testing.T) {
	g := GridLayout{Columns: 2, RowGap: 0, ColGap: 0}
	x, y, w, h := g.CellRect(0, 0, 2, 100, 100)
	if x != 0 || y != 0 || w != 50 || h != 50 {
		t.Errorf("cell(0,0) = %d,%d,%d,%d", x, y, w, h)
	}
	x, y, _, _ = g.CellRect(1, 1, 2, 100, 100)
	if x != 50 || y != 50 {
		t.Errorf("cell(1,1) = %d,%d", x, y)
	}
}
