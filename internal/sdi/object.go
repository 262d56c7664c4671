// Package sdi implements the scene registry: a flat, retained-mode table of
// named drawable primitives consumed by a rendering backend. The registry
// itself is intentionally dumb: a name-keyed map without a lock, driven
// from a single UI/render loop, rather than any tree structure.
package sdi

// Color is RGBA8. Backends convert endianness as needed.
type Color struct {
	R, G, B, A uint8
}

// Opaque returns a fully opaque color with the given RGB.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Gradient is a vertical linear gradient from Top to Bottom.
type Gradient struct {
	Top, Bottom Color
}

// TextureID is an opaque handle issued by a backend's LoadTexture. The zero
// value means "no texture".
type TextureID uint64

// Object is one scene-registry entry. Zero value is the default a freshly
// Created object starts from: invisible fill, no text, no texture, z 0,
// visible, non-overlay.
type Object struct {
	X, Y int
	W, H int

	Z       int
	Visible bool
	Overlay bool

	Fill Color

	Text      string
	FontSize  int
	TextColor Color

	Texture TextureID

	CornerRadius int

	StrokeWidth int
	StrokeColor Color

	ShadowLevel int

	Gradient *Gradient

	// insertion records creation order for stable sort when Z and Overlay
	// both tie; set by the registry, never by callers.
	insertion uint64
}

func defaultObject(insertion uint64) Object {
	return Object{
		Visible:   true,
		TextColor: Opaque(255, 255, 255),
		insertion: insertion,
	}
}
