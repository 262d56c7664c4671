// Package reader implements OASIS's reader mode: a heuristic article
// extractor that scores every element of a parsed page and re-renders
// the highest-scoring one as simplified, sanitized HTML. Modeled on
// oasis-core/src/browser/reader.rs.
package reader

import (
	"strings"

	"github.com/oasis-os/oasis/internal/browser/dom"
)

// Article is the extracted, simplified page content.
type Article struct {
	Title       string
	ContentNode int
	HTML        string
}

var positiveKeywords = []string{
	"content", "article", "post", "entry", "story", "text", "body-content", "main",
}

var negativeKeywords = []string{
	"sidebar", "comment", "menu", "nav", "ad", "banner", "footer",
	"header", "widget", "social", "related", "popup", "modal",
}

var keepTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "pre": true, "code": true,
	"em": true, "strong": true, "b": true, "i": true, "a": true, "img": true,
	"br": true, "hr": true, "div": true, "span": true, "figure": true,
	"figcaption": true, "table": true, "tr": true, "td": true, "th": true,
}

const minScore = 10.0

// ExtractArticle scores doc's elements and, if the best one clears
// minScore, returns its simplified HTML. Returns nil when no element
// scores high enough to be considered an article.
func ExtractArticle(doc *dom.Document) *Article {
	title := extractTitle(doc)
	scores := scoreElements(doc)

	best := -1
	var bestScore float64
	for id, score := range scores {
		if best == -1 || score > bestScore {
			best = id
			bestScore = score
		}
	}
	if best == -1 || bestScore < minScore {
		return nil
	}

	var b strings.Builder
	buildReaderHTML(doc, best, &b)
	html := "<html><head><title>Reader Mode</title></head>" +
		`<body style="margin: 16px; font-size: 14px; line-height: 1.6; max-width: 440px;">` +
		b.String() + "</body></html>"

	return &Article{Title: title, ContentNode: best, HTML: html}
}

func extractTitle(doc *dom.Document) string {
	if idx := doc.FindFirst(doc.Root, "title"); idx >= 0 {
		if t := strings.TrimSpace(doc.TextContent(idx)); t != "" {
			return t
		}
	}
	if idx := doc.FindFirst(doc.Root, "h1", "h2"); idx >= 0 {
		return doc.TextContent(idx)
	}
	return ""
}

// scoreElements assigns every element an article-ness score, indexed by
// node id the same way the arena itself is indexed.
func scoreElements(doc *dom.Document) []float64 {
	scores := make([]float64, len(doc.Nodes))

	for id := range doc.Nodes {
		n := doc.Node(id)
		if n.Kind != dom.KindElement {
			continue
		}

		switch n.Tag {
		case "article", "main":
			scores[id] += 10
		case "section":
			scores[id] += 3
		case "div":
			scores[id] += 1
		case "p":
			if n.Parent >= 0 {
				text := strings.TrimSpace(doc.TextContent(id))
				if textLen := len(text); textLen >= 25 {
					boost := 1.0 + min(float64(textLen)/100.0, 3.0)
					scores[n.Parent] += boost
				}
			}
		case "nav", "aside", "footer", "header":
			scores[id] -= 10
		case "form":
			scores[id] -= 5
		}

		class, _ := n.Attr("class")
		idAttr, _ := n.Attr("id")
		combined := strings.ToLower(class + " " + idAttr)

		for _, kw := range positiveKeywords {
			if strings.Contains(combined, kw) {
				scores[id] += 5
			}
		}
		for _, kw := range negativeKeywords {
			if strings.Contains(combined, kw) {
				scores[id] -= 5
			}
		}

		if childCount := len(n.Children); childCount > 0 {
			density := float64(len(doc.TextContent(id))) / float64(childCount)
			if density > 50 {
				scores[id] += 2
			}
		}
	}

	return scores
}

// buildReaderHTML walks the subtree rooted at nodeIdx, emitting
// sanitized HTML: text is entity-escaped, whitelisted tags keep their
// href/src/alt attributes, and non-whitelisted tags are dropped while
// their children are still traversed so inner text survives.
func buildReaderHTML(doc *dom.Document, nodeIdx int, b *strings.Builder) {
	n := doc.Node(nodeIdx)
	if n == nil {
		return
	}

	switch n.Kind {
	case dom.KindText:
		escapeHTML(b, n.Text)
	case dom.KindElement:
		if keepTags[n.Tag] {
			b.WriteByte('<')
			b.WriteString(n.Tag)
			for _, attr := range []string{"href", "src", "alt"} {
				if v, ok := n.Attr(attr); ok {
					b.WriteByte(' ')
					b.WriteString(attr)
					b.WriteString(`="`)
					escapeHTML(b, v)
					b.WriteByte('"')
				}
			}
			b.WriteByte('>')
			for _, c := range n.Children {
				buildReaderHTML(doc, c, b)
			}
			if !dom.IsVoidElement(n.Tag) {
				b.WriteString("</")
				b.WriteString(n.Tag)
				b.WriteByte('>')
			}
		} else {
			for _, c := range n.Children {
				buildReaderHTML(doc, c, b)
			}
		}
	default: // comment, doctype
		for _, c := range n.Children {
			buildReaderHTML(doc, c, b)
		}
	}
}

func escapeHTML(b *strings.Builder, s string) {
	for _, ch := range s {
		switch ch {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(ch)
		}
	}
}

// Stylesheet returns the reader-mode CSS override applied on top of the
// page's own styles once an article has been extracted.
func Stylesheet() string {
	return `
body {
  margin: 16px;
  font-size: 14px;
  line-height: 1.6;
  max-width: 440px;
  color: #222;
  background-color: #fafafa;
}
img { max-width: 100%; height: auto; }
h1, h2, h3 { margin-top: 1em; margin-bottom: 0.5em; }
p { margin: 0.8em 0; }
a { color: #0066cc; }
blockquote {
  border-left: 3px solid #ccc;
  padding-left: 10px;
  color: #555;
  font-style: italic;
}
pre {
  background-color: #f0f0f0;
  padding: 8px;
  overflow: hidden;
  font-size: 11px;
}
`
}
