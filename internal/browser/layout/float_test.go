package layout

import "testing"

func TestFloatContextPlaceLeftFloat(t *testing.T) {
	fc := NewFloatContext()
	fb := fc.PlaceFloat(FloatLeft, 50, 30, 0, 200)
	if fb.Rect.X != 0 || fb.Rect.Y != 0 {
		t.Errorf("first left float should anchor at origin, got %+v", fb.Rect)
	}

	left, width := fc.AvailableWidth(10, 10, 200)
	if left != 50 {
		t.Errorf("expected available band to start after float, got left=%v", left)
	}
	if width != 150 {
		t.Errorf("expected 150 remaining, got %v", width)
	}
}

func TestFloatContextPlaceRightFloat(t *testing.T) {
	fc := NewFloatContext()
	fb := fc.PlaceFloat(FloatRight, 40, 20, 0, 200)
	if fb.Rect.X != 160 {
		t.Errorf("right float should anchor at containingWidth-width, got %+v", fb.Rect)
	}
	_, width := fc.AvailableWidth(0, 20, 200)
	if width != 160 {
		t.Errorf("expected 160 remaining, got %v", width)
	}
}

func TestFloatContextStacksSameSideFloats(t *testing.T) {
	fc := NewFloatContext()
	fc.PlaceFloat(FloatLeft, 50, 30, 0, 200)
	second := fc.PlaceFloat(FloatLeft, 40, 30, 0, 200)
	if second.Rect.X != 50 {
		t.Errorf("second left float should stack after the first, got %+v", second.Rect)
	}
}

func TestFloatContextNonOverlappingBandIsUnaffected(t *testing.T) {
	fc := NewFloatContext()
	fc.PlaceFloat(FloatLeft, 50, 30, 0, 200)
	left, width := fc.AvailableWidth(100, 10, 200)
	if left != 0 || width != 200 {
		t.Errorf("band below float's extent should be unaffected, got left=%v width=%v", left, width)
	}
}

func TestFloatContextFindsRoomBelowWhenTooNarrow(t *testing.T) {
	fc := NewFloatContext()
	fc.PlaceFloat(FloatLeft, 190, 20, 0, 200)
	placed := fc.PlaceFloat(FloatLeft, 50, 10, 0, 200)
	if placed.Rect.Y < 20 {
		t.Errorf("second float should drop below the first once the band is too narrow, got %+v", placed.Rect)
	}
}

func TestFloatContextClearY(t *testing.T) {
	fc := NewFloatContext()
	fc.PlaceFloat(FloatLeft, 50, 30, 0, 200)
	fc.PlaceFloat(FloatRight, 50, 60, 0, 200)
	if got := fc.ClearY(ClearLeft); got != 30 {
		t.Errorf("clear:left should stop at 30, got %v", got)
	}
	if got := fc.ClearY(ClearBoth); got != 60 {
		t.Errorf("clear:both should stop at tallest float, got %v", got)
	}
}

func TestFloatContextRemoveExpired(t *testing.T) {
	fc := NewFloatContext()
	fc.PlaceFloat(FloatLeft, 50, 30, 0, 200)
	fc.RemoveExpired(31)
	if !fc.IsEmpty() {
		t.Error("float should be removed once its bottom edge has passed")
	}
}

func TestFloatContextIsEmptyAndLen(t *testing.T) {
	fc := NewFloatContext()
	if !fc.IsEmpty() || fc.Len() != 0 {
		t.Error("new context should be empty")
	}
	fc.PlaceFloat(FloatLeft, 10, 10, 0, 100)
	fc.PlaceFloat(FloatRight, 10, 10, 0, 100)
	if fc.IsEmpty() || fc.Len() != 2 {
		t.Errorf("expected 2 active floats, got %d", fc.Len())
	}
}
