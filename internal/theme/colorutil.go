package theme

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/oasis-os/oasis/internal/sdi"
)

func toColorful(c sdi.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, alpha uint8) sdi.Color {
	r, g, b := c.Clamped().RGB255()
	return sdi.Color{R: r, G: g, B: b, A: alpha}
}

func mix(a, b sdi.Color, t float64) sdi.Color {
	blended := toColorful(a).BlendRgb(toColorful(b), t)
	return fromColorful(blended, a.A)
}

// Lighten mixes c toward white by t: lighten(c, t) = mix(c, white, t).
func Lighten(c sdi.Color, t float64) sdi.Color {
	white := sdi.Color{R: 255, G: 255, B: 255, A: c.A}
	return mix(c, white, t)
}

// Darken mixes c toward black by 1-t: darken(c, t) = mix(c, black, 1-t).
func Darken(c sdi.Color, t float64) sdi.Color {
	black := sdi.Color{A: c.A}
	return mix(c, black, 1-t)
}

// WithAlpha replaces c's alpha channel.
func WithAlpha(c sdi.Color, a uint8) sdi.Color {
	c.A = a
	return c
}

// ParseHex parses a "#RRGGBB" string into an opaque Color. Falls back to
// opaque black on malformed input so a bad skin file degrades rather than
// panics.
func ParseHex(hex string) sdi.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return sdi.Color{A: 255}
	}
	return fromColorful(c, 255)
}
