// Package ui is the OASIS widget toolkit: a DrawContext wrapping a backend
// and theme, a small set of provided widgets, and two layout helpers.
// ListView's virtualized scrolling math was generalized from a terminal
// dashboard's scroll-panel helpers into a widget any content can use.
package ui

import (
	"github.com/oasis-os/oasis/internal/backend"
	"github.com/oasis-os/oasis/internal/sdi"
	"github.com/oasis-os/oasis/internal/theme"
)

// DrawContext wraps a backend and the active theme, exposing thematic
// helpers widgets use instead of hand-rolling colors.
type DrawContext struct {
	Backend backend.Backend
	Theme   theme.Theme
}

func (dc DrawContext) Panel(x, y, w, h int) {
	dc.Backend.FillRoundedRect(x, y, w, h, dc.Theme.BorderRadiusMD, dc.Theme.Surface)
}

func (dc DrawContext) Label(text string, x, y, fontSize int, c sdi.Color) {
	dc.Backend.DrawText(text, x, y, fontSize, c)
}

func (dc DrawContext) Divider(x, y, w int) {
	dc.Backend.FillRect(x, y, w, 1, dc.Theme.BorderSubtle)
}

// ButtonBg picks the fill color for a button style/state pair: the 4
// styles (Primary/Secondary/Ghost/Danger) crossed with the 4 states
// (Normal/Hover/Pressed/Disabled).
func (dc DrawContext) ButtonBg(style ButtonStyle, state ButtonState) sdi.Color {
	base := dc.Theme.ButtonBg
	switch style {
	case ButtonPrimary:
		base = dc.Theme.Accent
	case ButtonDanger:
		base = dc.Theme.Error
	case ButtonGhost:
		base = sdi.Color{}
	}
	switch state {
	case StateHover:
		return theme.Lighten(base, 0.12)
	case StatePressed:
		return theme.Darken(base, 0.85)
	case StateDisabled:
		return theme.WithAlpha(base, 100)
	default:
		return base
	}
}

// Widget is anything the toolkit can measure and draw. avail_w/avail_h are
// the space offered by the parent; a widget may request less but never a
// negative size.
type Widget interface {
	Measure(ctx DrawContext, availW, availH int) (w, h int)
	Draw(ctx DrawContext, x, y, w, h int)
}
