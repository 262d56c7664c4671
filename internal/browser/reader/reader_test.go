package reader

import (
	"strings"
	"testing"

	"github.com/oasis-os/oasis/internal/browser/dom"
)

func articleDoc() *dom.Document {
	return dom.Parse(`<html><head><title>Test Article Title</title></head><body>` +
		`<article>` +
		`<p>This is the first paragraph with enough text to pass the minimum threshold for scoring.</p>` +
		`<p>And here is a second paragraph that also has plenty of text content for the reader mode.</p>` +
		`</article></body></html>`)
}

func TestExtractArticleFromSimpleHTML(t *testing.T) {
	doc := articleDoc()
	article := ExtractArticle(doc)
	if article == nil {
		t.Fatal("expected an article to be extracted")
	}
	if article.Title != "Test Article Title" {
		t.Errorf("got title %q", article.Title)
	}
	if !strings.Contains(article.HTML, "<p>") {
		t.Error("expected <p> tags preserved")
	}
	if !strings.Contains(article.HTML, "first paragraph") {
		t.Error("expected paragraph text preserved")
	}
}

func TestScoreArticleTagHigherThanNav(t *testing.T) {
	doc := dom.Parse(`<html><nav></nav><article></article></html>`)
	scores := scoreElements(doc)
	nav := doc.FindFirst(doc.Root, "nav")
	article := doc.FindFirst(doc.Root, "article")
	if !(scores[article] > scores[nav]) {
		t.Errorf("article score (%v) should exceed nav score (%v)", scores[article], scores[nav])
	}
}

func TestNegativeScoringForSidebarClasses(t *testing.T) {
	doc := dom.Parse(`<html><div class="sidebar widget-area"></div></html>`)
	scores := scoreElements(doc)
	div := doc.FindFirst(doc.Root, "div")
	// div base +1, "sidebar" -5, "widget" -5 => -9
	if scores[div] >= 0 {
		t.Errorf("sidebar score (%v) should be negative", scores[div])
	}
}

func TestExtractContentHTMLPreservesSafeTags(t *testing.T) {
	doc := articleDoc()
	article := ExtractArticle(doc)
	if article == nil {
		t.Fatal("expected an article to be extracted")
	}
	if !strings.Contains(article.HTML, "<p>") || !strings.Contains(article.HTML, "</p>") {
		t.Error("expected paragraph tags preserved with both open and close")
	}
}

func TestStripUnsafeNavTagsFromOutput(t *testing.T) {
	doc := dom.Parse(`<html><body><article>` +
		`<nav>Navigation links</nav>` +
		`<p>First paragraph of content that is long enough to meet the scoring threshold requirement here.</p>` +
		`<p>Second paragraph of content that is also long enough to boost the article element score too.</p>` +
		`</article></body></html>`)

	article := ExtractArticle(doc)
	if article == nil {
		t.Fatal("expected an article to be extracted")
	}
	if strings.Contains(article.HTML, "<nav>") {
		t.Error("reader HTML should not contain <nav>")
	}
	if !strings.Contains(article.HTML, "Navigation links") {
		t.Error("text inside a stripped tag should still survive")
	}
}

func TestTitleExtractionFromH1(t *testing.T) {
	doc := dom.Parse(`<html><body><h1>Heading Title</h1></body></html>`)
	title := extractTitle(doc)
	if title != "Heading Title" {
		t.Errorf("got %q", title)
	}
}

func TestExtractArticleReturnsNilBelowThreshold(t *testing.T) {
	doc := dom.Parse(`<html><body><div>too short</div></body></html>`)
	if article := ExtractArticle(doc); article != nil {
		t.Errorf("expected nil for a low-scoring page, got %+v", article)
	}
}

func TestEscapeHTMLEscapesReservedCharacters(t *testing.T) {
	var b strings.Builder
	escapeHTML(&b, `<script> & "quoted"`)
	got := b.String()
	if strings.ContainsAny(got, "<>") && !strings.Contains(got, "&lt;") {
		t.Errorf("expected reserved characters escaped, got %q", got)
	}
	if !strings.Contains(got, "&amp;") || !strings.Contains(got, "&quot;") {
		t.Errorf("expected & and \" escaped, got %q", got)
	}
}
