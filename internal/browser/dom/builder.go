package dom

import "strings"

// Parse tokenizes and tree-builds an HTML document, inserting implicit
// <html>/<head>/<body> the way common tolerant parsers do.
func Parse(input string) *Document {
	tokens := Tokenize(input)
	b := &builder{doc: NewDocument()}
	b.build(tokens)
	return b.doc
}

// builder implements the tolerant tree-construction rules: implicit
// html/head/body insertion, mismatched-end-tag recovery (closes the
// nearest matching open ancestor), and stray pre-body text relocation.
type builder struct {
	doc      *Document
	htmlIdx  int
	headIdx  int
	bodyIdx  int
	openTags []int // stack of open element indices, innermost last
}

// headElements decides whether an element default-belongs under <head>
// before <body> has been seen.
var headElements = map[string]bool{
	"title": true, "meta": true, "link": true, "style": true,
	"base": true, "script": true,
}

func (b *builder) build(tokens []Token) {
	b.htmlIdx = b.doc.addNode(Node{Kind: KindElement, Tag: "html", Parent: NoParent})
	b.doc.Root = b.htmlIdx
	b.openTags = []int{b.htmlIdx}

	b.headIdx = b.insertImplicit("head")
	b.openTags = append(b.openTags, b.headIdx)
	inHead := true

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenDoctype:
			// Doctype carries no DOM representation beyond being consumed.
		case TokenComment:
			b.appendLeaf(Node{Kind: KindComment, Text: tok.Text})
		case TokenText:
			if inHead && b.bodyIdx == 0 && b.currentParent() != b.headIdx {
				// Text inside an open head element such as <title> or <style>.
				b.appendLeaf(Node{Kind: KindText, Text: tok.Text})
				continue
			}
			if strings.TrimSpace(tok.Text) == "" && inHead && b.bodyIdx == 0 {
				continue
			}
			b.ensureBody(&inHead)
			b.appendLeaf(Node{Kind: KindText, Text: tok.Text})
		case TokenStartTag:
			switch tok.Tag {
			case "html":
				b.doc.Nodes[b.htmlIdx].Attrs = append(b.doc.Nodes[b.htmlIdx].Attrs, tok.Attrs...)
			case "head":
				inHead = true
			case "body":
				b.ensureBody(&inHead)
			default:
				if inHead && b.bodyIdx == 0 && headElements[tok.Tag] {
					b.openElement(tok)
				} else {
					b.ensureBody(&inHead)
					b.openElement(tok)
				}
			}
		case TokenEndTag:
			switch tok.Tag {
			case "html", "body":
				// ignore; implicit containers close only at EOF
			case "head":
				inHead = false
			default:
				b.closeMatching(tok.Tag)
			}
		}
	}
}

func (b *builder) insertImplicit(tag string) int {
	idx := b.doc.addNode(Node{Kind: KindElement, Tag: tag})
	b.doc.appendChild(b.htmlIdx, idx)
	return idx
}

// ensureBody makes sure <body> exists and is the current insertion
// point, moving out of an implicit <head> if necessary.
func (b *builder) ensureBody(inHead *bool) {
	*inHead = false
	if b.bodyIdx != 0 {
		return
	}
	b.bodyIdx = b.insertImplicit("body")
	b.openTags = []int{b.htmlIdx, b.bodyIdx}
}

func (b *builder) currentParent() int {
	return b.openTags[len(b.openTags)-1]
}

func (b *builder) appendLeaf(n Node) {
	idx := b.doc.addNode(n)
	b.doc.appendChild(b.currentParent(), idx)
}

func (b *builder) openElement(tok Token) {
	idx := b.doc.addNode(Node{Kind: KindElement, Tag: tok.Tag, Attrs: tok.Attrs})
	b.doc.appendChild(b.currentParent(), idx)
	if !tok.SelfClose && !IsVoidElement(tok.Tag) {
		b.openTags = append(b.openTags, idx)
	}
}

// closeMatching closes the nearest open ancestor with the given tag,
// popping (and discarding) any more-nested unclosed elements above it.
// If no matching ancestor is open, the end tag is ignored.
func (b *builder) closeMatching(tag string) {
	for i := len(b.openTags) - 1; i >= 0; i-- {
		if b.doc.Nodes[b.openTags[i]].Tag == tag {
			b.openTags = b.openTags[:i]
			if len(b.openTags) == 0 {
				b.openTags = []int{b.htmlIdx}
			}
			return
		}
	}
}
