package ui

// ListView is a virtualized scrollable list: only rows intersecting the
// viewport are measured/drawn. The scroll math (visibleWindow) and the
// scrollbar-thumb sizing/positioning (scrollbarThumb) are generalized from
// a terminal dashboard's panel-scrolling helpers.
type ListView struct {
	Items      []string
	RowHeight  int
	Cursor     int
	ScrollOff  int
	FontSize   int
}

// visibleWindow returns the [start, end) row indices that fit within
// maxRows, scrolling to keep cursor on screen. Same algorithm as the
// dashboard's visible_window in layout.go, generalized to any item count.
func visibleWindow(total, cursor, maxRows int) (int, int) {
	if total <= maxRows {
		return 0, total
	}
	start := 0
	if cursor >= maxRows {
		start = cursor - maxRows + 1
	}
	end := start + maxRows
	if end > total {
		end = total
		start = end - maxRows
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// scrollbarThumb computes thumb height and position in track cells, same
// shape as OverlayScrollbar's thumb math in layout.go.
func scrollbarThumb(total, trackH, offset int) (thumbH, thumbPos int) {
	if total <= trackH || trackH <= 0 {
		return trackH, 0
	}
	thumbH = trackH * trackH / total
	if thumbH < 1 {
		thumbH = 1
	}
	maxOffset := total - trackH
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	if maxOffset > 0 {
		thumbPos = offset * (trackH - thumbH) / maxOffset
	}
	return thumbH, thumbPos
}

func (l ListView) rowHeight() int {
	if l.RowHeight > 0 {
		return l.RowHeight
	}
	return 20
}

func (l ListView) Measure(ctx DrawContext, availW, availH int) (int, int) {
	return availW, availH
}

func (l ListView) Draw(ctx DrawContext, x, y, w, h int) {
	rowH := l.rowHeight()
	maxRows := h / rowH
	if maxRows < 1 {
		maxRows = 1
	}
	start, end := visibleWindow(len(l.Items), l.Cursor, maxRows)

	fontSize := l.FontSize
	if fontSize == 0 {
		fontSize = 16
	}

	for i := start; i < end; i++ {
		rowY := y + (i-start)*rowH
		if i == l.Cursor {
			ctx.Backend.FillRect(x, rowY, w, rowH, ctx.Theme.AccentSubtle)
		}
		ctx.Backend.DrawText(l.Items[i], x+ctx.Theme.SpacingSM, rowY+ctx.Theme.SpacingXS, fontSize, ctx.Theme.TextPrimary)
	}

	if thumbH, thumbPos := scrollbarThumb(len(l.Items), maxRows, start); thumbH < maxRows {
		trackX := x + w - 1
		for i := 0; i < maxRows; i++ {
			c := ctx.Theme.ScrollbarTrack
			if i >= thumbPos && i < thumbPos+thumbH {
				c = ctx.Theme.ScrollbarThumb
			}
			ctx.Backend.FillRect(trackX, y+i*rowH, 1, rowH, c)
		}
	}
}
