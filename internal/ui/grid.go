package ui

// GridLayout arranges children in uniform cells with row/column gaps and
// outer padding.
type GridLayout struct {
	Columns   int
	RowGap    int
	ColGap    int
	PaddingX  int
	PaddingY  int
}

// CellRect returns the cell at (row, col) within availW x availH, given
// totalRows. All cells are equal size.
func (g GridLayout) CellRect(row, col, totalRows, availW, availH int) (x, y, w, h int) {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	innerW := availW - g.PaddingX*2 - g.ColGap*(cols-1)
	innerH := availH - g.PaddingY*2 - g.RowGap*(totalRows-1)
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	cellW := innerW / cols
	cellH := innerH
	if totalRows > 0 {
		cellH = innerH / totalRows
	}
	x = g.PaddingX + col*(cellW+g.ColGap)
	y = g.PaddingY + row*(cellH+g.RowGap)
	return x, y, cellW, cellH
}

// IndexToCell converts a flat item index into (row, col) given Columns.
func (g GridLayout) IndexToCell(index int) (row, col int) {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	return index / cols, index % cols
}
