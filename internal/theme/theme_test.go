package theme

import "testing"

func TestDeriveIsDeterministic(t *testing.T) {
	skin := DefaultSkin()
	a := Derive(skin)
	b := Derive(skin)
	if a != b {
		t.Error("Derive should be deterministic for the same skin")
	}
}

func TestAccentSubtleAlpha(t *testing.T) {
	th := Dark()
	if th.AccentSubtle.A != 30 {
		t.Errorf("AccentSubtle.A = %d, want 30", th.AccentSubtle.A)
	}
}

func TestHighContrastZeroesRadiiAndShadows(t *testing.T) {
	th := HighContrast()
	if th.BorderRadiusXL != 0 || th.ShadowModal != 0 {
		t.Errorf("HighContrast should zero radii/shadows, got radius=%d shadow=%d", th.BorderRadiusXL, th.ShadowModal)
	}
}

func TestElevationClampsToReferenceTable(t *testing.T) {
	skin := DefaultSkin()
	skin.ShadowIntensity = 99
	th := Derive(skin)
	if th.ShadowCard != 3 || th.ShadowDropdown != 3 {
		t.Errorf("shadow levels should clamp to 3, got card=%d dropdown=%d", th.ShadowCard, th.ShadowDropdown)
	}
}

func TestLightenDarkenRoundTrip(t *testing.T) {
	c := ParseHex("#808080")
	lighter := Lighten(c, 0.5)
	if lighter.R <= c.R {
		t.Errorf("Lighten should increase channel values, got %d <= %d", lighter.R, c.R)
	}
	darker := Darken(c, 0.5)
	if darker.R >= c.R {
		t.Errorf("Darken should decrease channel values, got %d >= %d", darker.R, c.R)
	}
}

func TestByNameResolvesKnownVariants(t *testing.T) {
	if ByName("light") != Light() {
		t.Error("ByName(\"light\") should match Light()")
	}
	if ByName("classic") != Classic() {
		t.Error("ByName(\"classic\") should match Classic()")
	}
	if ByName("high-contrast") != HighContrast() {
		t.Error("ByName(\"high-contrast\") should match HighContrast()")
	}
}

func TestByNameFallsBackToDarkForUnknown(t *testing.T) {
	if ByName("") != Dark() {
		t.Error("ByName(\"\") should fall back to Dark()")
	}
	if ByName("nonsense") != Dark() {
		t.Error("ByName(\"nonsense\") should fall back to Dark()")
	}
}
