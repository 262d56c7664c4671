// Package theme derives the semantic Theme a UI toolkit draws from, out
// of a 9-color skin palette. Field set and non-derived defaults (font
// sizes, spacing, radii) follow oasis-ui/src/theme.rs.
package theme

import "github.com/oasis-os/oasis/internal/sdi"

// Theme is every semantic slot a widget or the window manager reads from.
type Theme struct {
	Background     sdi.Color
	Surface        sdi.Color
	SurfaceVariant sdi.Color
	Overlay        sdi.Color

	TextPrimary  sdi.Color
	TextSecondary sdi.Color
	TextDisabled sdi.Color
	TextOnAccent sdi.Color

	Accent       sdi.Color
	AccentHover  sdi.Color
	AccentPressed sdi.Color
	AccentSubtle sdi.Color

	Success sdi.Color
	Warning sdi.Color
	Error   sdi.Color
	Info    sdi.Color

	Border       sdi.Color
	BorderSubtle sdi.Color
	BorderStrong sdi.Color

	ButtonBg       sdi.Color
	ButtonHover    sdi.Color
	ButtonPressed  sdi.Color
	ButtonDisabled sdi.Color

	InputBg          sdi.Color
	InputBorder      sdi.Color
	InputBorderFocus sdi.Color

	ScrollbarTrack      sdi.Color
	ScrollbarThumb      sdi.Color
	ScrollbarThumbHover sdi.Color

	TooltipBg   sdi.Color
	TooltipText sdi.Color

	// Terminal-specific slots the skin carries directly (prompt/output/
	// status-bar backdrop) rather than deriving them from the 4 core colors.
	StatusBar sdi.Color
	Prompt    sdi.Color
	Output    sdi.Color

	FontSizeXS, FontSizeSM, FontSizeMD, FontSizeLG, FontSizeXL, FontSizeXXL int

	SpacingXS, SpacingSM, SpacingMD, SpacingLG, SpacingXL int

	BorderRadiusSM, BorderRadiusMD, BorderRadiusLG, BorderRadiusXL int

	// Shadow* are elevation levels 0..3 consumed by Backend.DrawShadow.
	ShadowCard, ShadowDropdown, ShadowModal, ShadowTooltip int
}

// elevation clamps a requested shadow intensity into the fixed
// card/dropdown/modal/tooltip elevation table: {1,2,3,2}.
func elevation(intensity int) (card, dropdown, modal, tooltip int) {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 3 {
			return 3
		}
		return v
	}
	base := clamp(intensity)
	return base, clamp(base + 1), clamp(base + 2), clamp(base + 1)
}

// Derive builds the full Theme from a skin palette. Overrides in the
// skin file win over any derived value.
func Derive(skin SkinPalette) Theme {
	bg, primary, secondary, text, dim, statusBar, prompt, output, errc := skin.colors()

	t := Theme{
		Background:     bg,
		Surface:        Lighten(bg, 0.05),
		SurfaceVariant: Lighten(bg, 0.10),
		Overlay:        WithAlpha(sdi.Color{}, 160),

		TextPrimary:   text,
		TextSecondary: dim,
		TextDisabled:  Darken(dim, 0.6),
		TextOnAccent:  sdi.Opaque(255, 255, 255),

		Accent:        primary,
		AccentHover:   Lighten(primary, 0.15),
		AccentPressed: Darken(primary, 0.85),
		AccentSubtle:  WithAlpha(primary, 30),

		Success: sdi.Opaque(76, 175, 80),
		Warning: sdi.Opaque(255, 193, 7),
		Error:   errc,
		Info:    primary,

		Border:       secondary,
		BorderSubtle: WithAlpha(secondary, 120),
		BorderStrong: Darken(secondary, 0.7),

		ButtonBg:       secondary,
		ButtonHover:    Lighten(secondary, 0.12),
		ButtonPressed:  Darken(secondary, 0.8),
		ButtonDisabled: WithAlpha(secondary, 100),

		InputBg:          Lighten(bg, 0.03),
		InputBorder:      secondary,
		InputBorderFocus: primary,

		ScrollbarTrack:      Lighten(bg, 0.02),
		ScrollbarThumb:      secondary,
		ScrollbarThumbHover: Lighten(secondary, 0.1),

		TooltipBg:   Darken(bg, 0.9),
		TooltipText: text,

		StatusBar: statusBar,
		Prompt:    prompt,
		Output:    output,

		FontSizeXS: 8, FontSizeSM: 8, FontSizeMD: 8,
		FontSizeLG: 16, FontSizeXL: 16, FontSizeXXL: 24,

		SpacingXS: 2, SpacingSM: 4, SpacingMD: 8, SpacingLG: 12, SpacingXL: 16,

		BorderRadiusSM: 2, BorderRadiusMD: 4, BorderRadiusLG: 8, BorderRadiusXL: 12,
	}
	t.ShadowCard, t.ShadowDropdown, t.ShadowModal, t.ShadowTooltip = elevation(skin.ShadowIntensity)

	if skin.Overrides.Surface != "" {
		t.Surface = ParseHex(skin.Overrides.Surface)
	}
	if skin.Overrides.AccentHover != "" {
		t.AccentHover = ParseHex(skin.Overrides.AccentHover)
	}
	return t
}

// Dark is the reference default theme.
func Dark() Theme { return Derive(DefaultSkin()) }

// Light inverts the background/text pairing while keeping the same accent.
func Light() Theme {
	skin := DefaultSkin()
	skin.Background = "#F0F0F5"
	skin.Text = "#111118"
	skin.DimText = "#555566"
	skin.Secondary = "#C8C8D0"
	return Derive(skin)
}

// Classic uses an orange accent over the dark base, matching the legacy
// "classic" skin.
func Classic() Theme {
	skin := DefaultSkin()
	skin.Primary = "#E08020"
	return Derive(skin)
}

// HighContrast uses pure black/white and flattens every radius and shadow,
// per accessibility requirements carried over from active_theme.rs.
func HighContrast() Theme {
	skin := DefaultSkin()
	skin.Background = "#000000"
	skin.Text = "#FFFFFF"
	skin.DimText = "#FFFFFF"
	skin.Secondary = "#FFFFFF"
	skin.Primary = "#FFFF00"
	skin.ShadowIntensity = 0

	t := Derive(skin)
	t.BorderRadiusSM, t.BorderRadiusMD, t.BorderRadiusLG, t.BorderRadiusXL = 0, 0, 0, 0
	t.ShadowCard, t.ShadowDropdown, t.ShadowModal, t.ShadowTooltip = 0, 0, 0, 0
	return t
}

// ByName resolves one of the four built-in variants by name, falling
// back to Dark for an unrecognized or empty name.
func ByName(name string) Theme {
	switch name {
	case "light":
		return Light()
	case "classic":
		return Classic()
	case "high-contrast":
		return HighContrast()
	default:
		return Dark()
	}
}
