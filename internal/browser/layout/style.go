package layout

import (
	"strconv"
	"strings"

	"github.com/oasis-os/oasis/internal/browser/css"
)

// pxValue parses a CSS length like "16px" or "1.5em" into pixels,
// ignoring the unit (the engine has a single fixed-DPI pixel space and
// does not resolve em/rem against an ancestor chain). Returns fallback
// when the property is unset or unparsable.
func pxValue(style css.ComputedStyle, prop string, fallback float64) float64 {
	v := strings.TrimSpace(style.Get(prop))
	if v == "" {
		return fallback
	}
	return parseLengthOr(v, fallback)
}

// parseLengthOr parses a raw CSS length string (with or without a unit
// suffix) into pixels, ignoring the unit. Returns fallback when v is
// empty or unparsable.
func parseLengthOr(v string, fallback float64) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	v = strings.TrimSuffix(v, "px")
	v = strings.TrimSuffix(v, "em")
	v = strings.TrimSuffix(v, "rem")
	v = strings.TrimSuffix(v, "%")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func fontSizePx(style css.ComputedStyle) float64 {
	return pxValue(style, "font-size", 16)
}

func lineHeightPx(style css.ComputedStyle) float64 {
	v := strings.TrimSpace(style.Get("line-height"))
	if v == "" {
		return fontSizePx(style) * 1.2
	}
	return pxValue(style, "line-height", fontSizePx(style)*1.2)
}

func displayOf(style css.ComputedStyle) string {
	d := style.Get("display")
	if d == "" {
		return "inline"
	}
	return d
}

func floatOf(style css.ComputedStyle) string {
	f := style.Get("float")
	if f == "" {
		return "none"
	}
	return f
}

func clearOf(style css.ComputedStyle) string {
	c := style.Get("clear")
	if c == "" {
		return "none"
	}
	return c
}

// TextAlign is the resolved value of the CSS text-align property.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignRight
	AlignCenter
	AlignJustify
)

func textAlignOf(style css.ComputedStyle) TextAlign {
	switch style.Get("text-align") {
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// WhiteSpace is the resolved value of the CSS white-space property.
type WhiteSpace int

const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpaceNoWrap
	WhiteSpacePre
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

func whiteSpaceOf(style css.ComputedStyle) WhiteSpace {
	switch style.Get("white-space") {
	case "nowrap":
		return WhiteSpaceNoWrap
	case "pre":
		return WhiteSpacePre
	case "pre-wrap":
		return WhiteSpacePreWrap
	case "pre-line":
		return WhiteSpacePreLine
	default:
		return WhiteSpaceNormal
	}
}

// TextTransform is the resolved value of the CSS text-transform property.
type TextTransform int

const (
	TransformNone TextTransform = iota
	TransformUppercase
	TransformLowercase
	TransformCapitalize
)

func textTransformOf(style css.ComputedStyle) TextTransform {
	switch style.Get("text-transform") {
	case "uppercase":
		return TransformUppercase
	case "lowercase":
		return TransformLowercase
	case "capitalize":
		return TransformCapitalize
	default:
		return TransformNone
	}
}
