package loader

import "testing"

func TestParseFullHttpUrl(t *testing.T) {
	u, ok := ParseUrl("https://example.com:8080/path/page.html?q=1#frag")
	if !ok {
		t.Fatal("expected parse success")
	}
	if u.Scheme != "https" || u.Host != "example.com" || u.Port != 8080 {
		t.Errorf("got scheme=%q host=%q port=%d", u.Scheme, u.Host, u.Port)
	}
	if u.Path != "/path/page.html" || !u.HasQuery || u.Query != "q=1" || !u.HasFrag || u.Fragment != "frag" {
		t.Errorf("got path=%q query=%q frag=%q", u.Path, u.Query, u.Fragment)
	}
}

func TestParseVfsUrl(t *testing.T) {
	u, ok := ParseUrl("vfs://sites/example/index.html")
	if !ok {
		t.Fatal("expected parse success")
	}
	if u.Scheme != "vfs" || u.Host != "sites" || u.Path != "/example/index.html" {
		t.Errorf("got scheme=%q host=%q path=%q", u.Scheme, u.Host, u.Path)
	}
}

func TestParseUrlWithPort(t *testing.T) {
	u, ok := ParseUrl("gemini://localhost:1965/page")
	if !ok || u.Port != 1965 {
		t.Fatalf("got %+v ok=%v", u, ok)
	}
}

func TestParseUrlWithQueryAndFragment(t *testing.T) {
	u, ok := ParseUrl("http://a.com/b?x=1&y=2#top")
	if !ok {
		t.Fatal("expected parse success")
	}
	if u.Query != "x=1&y=2" || u.Fragment != "top" {
		t.Errorf("got query=%q frag=%q", u.Query, u.Fragment)
	}
}

func TestResolveRelativeUrl(t *testing.T) {
	base, _ := ParseUrl("http://example.com/dir/page.html")
	resolved, ok := base.Resolve("other.html")
	if !ok {
		t.Fatal("expected resolve success")
	}
	if resolved.Path != "/dir/other.html" {
		t.Errorf("got %q", resolved.Path)
	}
}

func TestResolveAbsolutePath(t *testing.T) {
	base, _ := ParseUrl("http://example.com/dir/page.html")
	resolved, ok := base.Resolve("/root.html")
	if !ok || resolved.Path != "/root.html" {
		t.Fatalf("got %+v ok=%v", resolved, ok)
	}
}

func TestResolveProtocolRelative(t *testing.T) {
	base, _ := ParseUrl("https://example.com/dir/page.html")
	resolved, ok := base.Resolve("//other.com/page")
	if !ok || resolved.Scheme != "https" || resolved.Host != "other.com" {
		t.Fatalf("got %+v ok=%v", resolved, ok)
	}
}

func TestResolveFragmentOnly(t *testing.T) {
	base, _ := ParseUrl("http://example.com/page.html?x=1")
	resolved, ok := base.Resolve("#section")
	if !ok || resolved.Fragment != "section" || resolved.Path != "/page.html" {
		t.Fatalf("got %+v ok=%v", resolved, ok)
	}
}

func TestResolveQueryOnly(t *testing.T) {
	base, _ := ParseUrl("http://example.com/page.html#old")
	resolved, ok := base.Resolve("?new=1")
	if !ok || resolved.Query != "new=1" || resolved.HasFrag {
		t.Fatalf("got %+v ok=%v", resolved, ok)
	}
}

func TestResolveDotDotInRelativePaths(t *testing.T) {
	base, _ := ParseUrl("http://example.com/a/b/page.html")
	resolved, ok := base.Resolve("../sibling.html")
	if !ok || resolved.Path != "/a/sibling.html" {
		t.Fatalf("got %+v ok=%v", resolved, ok)
	}
}

func TestResolveEmptyReturnsSelf(t *testing.T) {
	base, _ := ParseUrl("http://example.com/page.html")
	resolved, ok := base.Resolve("")
	if !ok || resolved.String() != base.String() {
		t.Fatalf("got %+v ok=%v", resolved, ok)
	}
}

func TestParseEmptyReturnsFalse(t *testing.T) {
	if _, ok := ParseUrl(""); ok {
		t.Error("expected parse failure for empty string")
	}
	if _, ok := ParseUrl("not a url"); ok {
		t.Error("expected parse failure for non-URL string")
	}
}

func TestContentTypeFromExtension(t *testing.T) {
	if ContentTypeFromExtension("HTML") != Html {
		t.Error("expected case-insensitive match")
	}
	if ContentTypeFromExtension("png") != Png {
		t.Error("expected png match")
	}
	if ContentTypeFromExtension("xyz") != Unknown {
		t.Error("expected unknown extension")
	}
}

func TestContentTypeFromMime(t *testing.T) {
	if ContentTypeFromMime("text/html; charset=utf-8") != Html {
		t.Error("expected charset parameter to be ignored")
	}
	if ContentTypeFromMime("image/png") != Png {
		t.Error("expected png match")
	}
}

func TestContentTypeIsImage(t *testing.T) {
	if !Jpeg.IsImage() || !Png.IsImage() || !Bmp.IsImage() || !Gif.IsImage() {
		t.Error("expected all raster types to report as images")
	}
	if Html.IsImage() || GeminiText.IsImage() {
		t.Error("expected non-image types to report false")
	}
}

func TestUrlDisplayRoundTrip(t *testing.T) {
	u, _ := ParseUrl("https://example.com:8080/path?q=1#frag")
	if got := u.String(); got != "https://example.com:8080/path?q=1#frag" {
		t.Errorf("got %q", got)
	}
}

func TestUrlExtension(t *testing.T) {
	u, _ := ParseUrl("http://example.com/dir/page.HTML")
	if u.Extension() != "HTML" {
		t.Errorf("got %q", u.Extension())
	}
}

func TestUrlDirectory(t *testing.T) {
	u, _ := ParseUrl("http://example.com/dir/page.html")
	if u.Directory() != "/dir/" {
		t.Errorf("got %q", u.Directory())
	}
}

func TestUrlOrigin(t *testing.T) {
	u, _ := ParseUrl("https://example.com:8080/page")
	if u.Origin() != "https://example.com:8080" {
		t.Errorf("got %q", u.Origin())
	}
}

func TestDetectContentTypeForHtml(t *testing.T) {
	u, _ := ParseUrl("http://example.com/index.html")
	if DetectContentType(u) != Html {
		t.Error("expected html detection")
	}
}

func TestDetectContentTypeDefaultsToHtml(t *testing.T) {
	u, _ := ParseUrl("http://example.com/no-extension")
	if DetectContentType(u) != Html {
		t.Error("expected html fallback")
	}
}

func TestParseGeminiUrl(t *testing.T) {
	u, ok := ParseUrl("gemini://example.com/page.gmi")
	if !ok || u.Scheme != "gemini" {
		t.Fatalf("got %+v ok=%v", u, ok)
	}
}
