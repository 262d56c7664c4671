package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextMeasurer is the backend-supplied capability the layout engine
// consumes to stay renderer-agnostic.
type TextMeasurer interface {
	MeasureText(text string, fontSize float64) float64
}

// RuneWidthMeasurer approximates glyph width from terminal cell width,
// the same metric the desktop's own terminal backend renders against.
type RuneWidthMeasurer struct{}

// MeasureText estimates pixel width as cell-width * a fixed px-per-cell
// scale derived from fontSize (one cell ≈ half the font's em box).
func (RuneWidthMeasurer) MeasureText(text string, fontSize float64) float64 {
	cellWidth := fontSize / 2
	return float64(runewidth.StringWidth(text)) * cellWidth
}

// TextWord is one word extracted from a text run, carrying whether the
// source had trailing whitespace (needed to decide inter-word spacing).
type TextWord struct {
	Text          string
	TrailingSpace bool
}

// CollapseWhitespace applies the CSS white-space collapsing rules.
func CollapseWhitespace(text string, ws WhiteSpace) string {
	switch ws {
	case WhiteSpaceNormal, WhiteSpaceNoWrap:
		var b strings.Builder
		inSpace := true
		for _, ch := range text {
			if isASCIISpace(ch) {
				if !inSpace {
					b.WriteByte(' ')
					inSpace = true
				}
			} else {
				b.WriteRune(ch)
				inSpace = false
			}
		}
		out := b.String()
		return strings.TrimSuffix(out, " ")
	case WhiteSpacePre, WhiteSpacePreWrap:
		return text
	case WhiteSpacePreLine:
		var b strings.Builder
		inSpace := false
		for _, ch := range text {
			switch {
			case ch == '\n':
				s := b.String()
				if strings.HasSuffix(s, " ") {
					b.Reset()
					b.WriteString(strings.TrimSuffix(s, " "))
				}
				b.WriteByte('\n')
				inSpace = false
			case ch == ' ' || ch == '\t':
				if !inSpace {
					b.WriteByte(' ')
					inSpace = true
				}
			default:
				b.WriteRune(ch)
				inSpace = false
			}
		}
		return b.String()
	default:
		return text
	}
}

func isASCIISpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// SplitIntoWords splits text into line-breaking units per white-space
// semantics: Normal/NoWrap collapse then split on spaces; Pre/PreWrap
// split only on newlines, preserving interior spacing verbatim;
// PreLine collapses spaces but preserves newline boundaries.
func SplitIntoWords(text string, ws WhiteSpace) []TextWord {
	switch ws {
	case WhiteSpacePre, WhiteSpacePreWrap:
		var words []TextWord
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if i > 0 {
				words = append(words, TextWord{Text: "\n"})
			}
			if line != "" {
				words = append(words, TextWord{Text: line})
			}
		}
		return words
	case WhiteSpacePreLine:
		collapsed := CollapseWhitespace(text, WhiteSpacePreLine)
		var words []TextWord
		lines := strings.Split(collapsed, "\n")
		for i, line := range lines {
			if i > 0 {
				words = append(words, TextWord{Text: "\n"})
			}
			splitLineIntoWords(line, &words)
		}
		return words
	default:
		collapsed := CollapseWhitespace(text, WhiteSpaceNormal)
		var words []TextWord
		splitLineIntoWords(collapsed, &words)
		return words
	}
}

func splitLineIntoWords(line string, out *[]TextWord) {
	parts := strings.Split(line, " ")
	lastIdx := len(parts) - 1
	for i, part := range parts {
		if part == "" {
			continue
		}
		*out = append(*out, TextWord{Text: part, TrailingSpace: i < lastIdx})
	}
}

// MeasureWord measures a single word's pixel width.
func MeasureWord(word string, fontSize float64, m TextMeasurer) float64 {
	return m.MeasureText(word, fontSize)
}

// MeasureSpace measures the pixel width of one space at fontSize.
func MeasureSpace(fontSize float64, m TextMeasurer) float64 {
	return m.MeasureText(" ", fontSize)
}

// ApplyTextTransform applies the CSS text-transform property.
func ApplyTextTransform(text string, t TextTransform) string {
	switch t {
	case TransformUppercase:
		return strings.ToUpper(text)
	case TransformLowercase:
		return strings.ToLower(text)
	case TransformCapitalize:
		return capitalizeWords(text)
	default:
		return text
	}
}

func capitalizeWords(text string) string {
	var b strings.Builder
	capitalizeNext := true
	for _, ch := range text {
		switch {
		case isASCIISpace(ch):
			b.WriteRune(ch)
			capitalizeNext = true
		case capitalizeNext:
			b.WriteString(strings.ToUpper(string(ch)))
			capitalizeNext = false
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
