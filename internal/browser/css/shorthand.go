package css

import "strings"

// ExpandShorthand expands margin/padding/border shorthand declarations
// into their longhand equivalents using CSS's 1/2/3/4-value convention
// (top/right/bottom/left, clockwise from top, missing sides mirror the
// opposite side already set).
func ExpandShorthand(d Declaration) []Declaration {
	switch d.Property {
	case "margin", "padding":
		return expandBoxSides(d.Property, d.Value, d.Important)
	case "border":
		return expandBorder(d.Value, d.Important)
	default:
		return []Declaration{d}
	}
}

func expandBoxSides(prop, value string, important bool) []Declaration {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, bottom = parts[0], parts[0]
		right, left = parts[1], parts[1]
	case 3:
		top, bottom = parts[0], parts[2]
		right, left = parts[1], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return []Declaration{{Property: prop, Value: value, Important: important}}
	}
	return []Declaration{
		{Property: prop + "-top", Value: top, Important: important},
		{Property: prop + "-right", Value: right, Important: important},
		{Property: prop + "-bottom", Value: bottom, Important: important},
		{Property: prop + "-left", Value: left, Important: important},
	}
}

// expandBorder expands "border: 1px solid red" into the three longhand
// axis properties (width/style/color), order-independent.
func expandBorder(value string, important bool) []Declaration {
	var width, style, color string
	for _, tok := range strings.Fields(value) {
		switch {
		case isBorderStyleKeyword(tok):
			style = tok
		case isLengthToken(tok):
			width = tok
		default:
			color = tok
		}
	}
	var out []Declaration
	if width != "" {
		out = append(out, Declaration{Property: "border-width", Value: width, Important: important})
	}
	if style != "" {
		out = append(out, Declaration{Property: "border-style", Value: style, Important: important})
	}
	if color != "" {
		out = append(out, Declaration{Property: "border-color", Value: color, Important: important})
	}
	return out
}

func isBorderStyleKeyword(s string) bool {
	switch s {
	case "none", "solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset":
		return true
	default:
		return false
	}
}

// isLengthToken reports whether s looks like a CSS length ("1px", "0",
// "2.5em"): it starts with a digit or a leading '.'.
func isLengthToken(s string) bool {
	if s == "" {
		return false
	}
	return s[0] == '.' || (s[0] >= '0' && s[0] <= '9')
}
