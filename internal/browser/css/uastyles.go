package css

// uaStylesheetSource is the engine's built-in default stylesheet: the
// minimal set of display/list-style rules real browsers apply before
// any author CSS cascades, so that plain markup (a bare <p> or <li>
// with no stylesheet at all) still lays out sensibly.
const uaStylesheetSource = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, dl, dt, dd,
blockquote, pre, form, fieldset, section, article, nav, aside,
header, footer, figure, figcaption, address, hr, table {
  display: block;
}
head, title, meta, link, base, style, script {
  display: none;
}
li { display: list-item; }
tr { display: table-row; }
td, th { display: table-cell; }
a, span, em, strong, b, i, u, small, sub, sup, code, label, img, br, input {
  display: inline;
}
ul { list-style-type: disc; }
ol { list-style-type: decimal; }
`

var uaStylesheet = Parse(uaStylesheetSource)

// DefaultStylesheet returns the engine's built-in UA stylesheet.
func DefaultStylesheet() Stylesheet {
	return uaStylesheet
}

// Merge concatenates stylesheets in precedence order (earlier sheets
// lose ties at equal specificity) by renumbering Order across the
// combined rule list, so a UA stylesheet reliably loses to an author
// stylesheet's equal-specificity rule.
func Merge(sheets ...Stylesheet) Stylesheet {
	var out Stylesheet
	order := 0
	for _, sheet := range sheets {
		for _, rule := range sheet.Rules {
			rule.Order = order
			out.Rules = append(out.Rules, rule)
			order++
		}
	}
	return out
}
