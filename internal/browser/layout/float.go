package layout

// FloatSide is which edge a float anchors to.
type FloatSide int

const (
	FloatLeft FloatSide = iota
	FloatRight
)

// ClearSide is which float side(s) a `clear` value must drop below.
type ClearSide int

const (
	ClearLeft ClearSide = iota
	ClearRight
	ClearBoth
)

// FloatBox is a placed float: its side and margin-box rect in the
// containing block's coordinate space.
type FloatBox struct {
	Side FloatSide
	Rect Rect
}

// FloatContext tracks active floats within one block formatting context
// and answers the available-width queries inline layout needs to wrap
// around them. Left floats stack rightward from the left edge; right
// floats stack leftward from the right edge.
type FloatContext struct {
	left  []FloatBox
	right []FloatBox
}

// NewFloatContext returns an empty float context.
func NewFloatContext() *FloatContext {
	return &FloatContext{}
}

// PlaceFloat finds room for a float of the given side/size starting at
// or below y, records it, and returns its placed rect.
func (fc *FloatContext) PlaceFloat(side FloatSide, width, height, y, containingWidth float64) FloatBox {
	placedY := fc.findYForFloat(side, width, height, y, containingWidth)

	var rect Rect
	switch side {
	case FloatLeft:
		left := fc.leftEdgeAt(placedY, height)
		rect = Rect{X: left, Y: placedY, Width: width, Height: height}
	case FloatRight:
		right := fc.rightEdgeAt(placedY, height, containingWidth)
		rect = Rect{X: right - width, Y: placedY, Width: width, Height: height}
	}

	fb := FloatBox{Side: side, Rect: rect}
	switch side {
	case FloatLeft:
		fc.left = append(fc.left, fb)
	case FloatRight:
		fc.right = append(fc.right, fb)
	}
	return fb
}

// AvailableWidth returns (leftOffset, width) of the usable horizontal
// band at the vertical extent [y, y+height).
func (fc *FloatContext) AvailableWidth(y, height, containingWidth float64) (float64, float64) {
	left := fc.leftEdgeAt(y, height)
	right := fc.rightEdgeAt(y, height, containingWidth)
	width := right - left
	if width < 0 {
		width = 0
	}
	return left, width
}

// LeftOffset is the left-edge query alone, used by callers that already
// know the available width.
func (fc *FloatContext) LeftOffset(y, height float64) float64 {
	return fc.leftEdgeAt(y, height)
}

// ClearY returns the y coordinate at or below the bottom of every float
// on the side(s) named by clear.
func (fc *FloatContext) ClearY(clear ClearSide) float64 {
	var leftBottom, rightBottom float64
	if clear == ClearLeft || clear == ClearBoth {
		for _, f := range fc.left {
			leftBottom = max(leftBottom, f.Rect.Y+f.Rect.Height)
		}
	}
	if clear == ClearRight || clear == ClearBoth {
		for _, f := range fc.right {
			rightBottom = max(rightBottom, f.Rect.Y+f.Rect.Height)
		}
	}
	return max(leftBottom, rightBottom)
}

// RemoveExpired drops floats whose bottom edge is at or above y.
func (fc *FloatContext) RemoveExpired(y float64) {
	fc.left = filterFloats(fc.left, y)
	fc.right = filterFloats(fc.right, y)
}

func filterFloats(floats []FloatBox, y float64) []FloatBox {
	out := floats[:0]
	for _, f := range floats {
		if f.Rect.Y+f.Rect.Height > y {
			out = append(out, f)
		}
	}
	return out
}

// IsEmpty reports whether no floats are active.
func (fc *FloatContext) IsEmpty() bool { return len(fc.left) == 0 && len(fc.right) == 0 }

// Len is the total number of active floats.
func (fc *FloatContext) Len() int { return len(fc.left) + len(fc.right) }

func (fc *FloatContext) leftEdgeAt(y, height float64) float64 {
	var edge float64
	for _, f := range fc.left {
		if overlapsBand(f, y, y+height) {
			edge = max(edge, f.Rect.X+f.Rect.Width)
		}
	}
	return edge
}

func (fc *FloatContext) rightEdgeAt(y, height, containingWidth float64) float64 {
	edge := containingWidth
	for _, f := range fc.right {
		if overlapsBand(f, y, y+height) {
			edge = min(edge, f.Rect.X)
		}
	}
	return edge
}

// findYForFloat walks down the containing block looking for a vertical
// band with room for the float, bailing after 1000 iterations on
// degenerate input.
func (fc *FloatContext) findYForFloat(side FloatSide, width, height, startY, containingWidth float64) float64 {
	y := startY
	for i := 0; i < 1000; i++ {
		left := fc.leftEdgeAt(y, height)
		right := fc.rightEdgeAt(y, height, containingWidth)
		available := right - left

		switch side {
		case FloatLeft:
			if left+width <= right || available >= width {
				return y
			}
		case FloatRight:
			if available >= width {
				return y
			}
		}

		nextY := fc.nextClearYAfter(y, height)
		if nextY <= y {
			return y
		}
		y = nextY
	}
	return y
}

func (fc *FloatContext) nextClearYAfter(y, height float64) float64 {
	bottom := y
	for _, f := range fc.left {
		if overlapsBand(f, y, y+height) {
			bottom = max(bottom, f.Rect.Y+f.Rect.Height)
		}
	}
	for _, f := range fc.right {
		if overlapsBand(f, y, y+height) {
			bottom = max(bottom, f.Rect.Y+f.Rect.Height)
		}
	}
	return bottom
}

func overlapsBand(f FloatBox, bandTop, bandBottom float64) bool {
	floatTop := f.Rect.Y
	floatBottom := f.Rect.Y + f.Rect.Height
	return floatTop < bandBottom && floatBottom > bandTop
}
