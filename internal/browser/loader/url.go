// Package loader implements OASIS's browser resource loader: URL parsing
// and resolution, content-type detection, and scheme dispatch across the
// HTTP, Gemini, and VFS clients. Grounded on
// oasis-core/src/browser/loader/mod.rs and oasis-browser/src/loader/http.rs.
package loader

import (
	"fmt"
	"strconv"
	"strings"
)

// ContentType is a resource's detected payload kind.
type ContentType int

const (
	Unknown ContentType = iota
	Html
	Css
	Jpeg
	Png
	Bmp
	Gif
	GeminiText
	PlainText
)

// ContentTypeFromExtension maps a file extension (no leading dot) to a
// ContentType.
func ContentTypeFromExtension(ext string) ContentType {
	switch strings.ToLower(ext) {
	case "html", "htm":
		return Html
	case "css":
		return Css
	case "jpg", "jpeg":
		return Jpeg
	case "png":
		return Png
	case "bmp":
		return Bmp
	case "gif":
		return Gif
	case "gmi", "gemini":
		return GeminiText
	case "txt":
		return PlainText
	default:
		return Unknown
	}
}

// ContentTypeFromMime maps a Content-Type header value (ignoring any
// ";charset=..." parameter) to a ContentType.
func ContentTypeFromMime(mime string) ContentType {
	mime = strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	switch mime {
	case "text/html":
		return Html
	case "text/css":
		return Css
	case "image/jpeg":
		return Jpeg
	case "image/png":
		return Png
	case "image/bmp":
		return Bmp
	case "image/gif":
		return Gif
	case "text/gemini":
		return GeminiText
	case "text/plain":
		return PlainText
	default:
		return Unknown
	}
}

// IsImage reports whether c is one of the raster image content types.
func (c ContentType) IsImage() bool {
	return c == Jpeg || c == Png || c == Bmp || c == Gif
}

// Url is a parsed URL: scheme://host[:port]/path[?query][#fragment].
type Url struct {
	Scheme   string
	Host     string
	Port     int // 0 means unset
	Path     string
	Query    string
	HasQuery bool
	Fragment string
	HasFrag  bool
}

// ParseUrl parses a URL string: full scheme://… URLs, vfs:// and
// gemini:// URLs, protocol-relative //host/path, and fragment-only #frag.
func ParseUrl(raw string) (Url, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Url{}, false
	}

	if frag, ok := strings.CutPrefix(raw, "#"); ok {
		return Url{Fragment: frag, HasFrag: true}, true
	}

	if rest, ok := strings.CutPrefix(raw, "//"); ok {
		return parseAuthorityAndPath("", rest)
	}

	if idx := strings.Index(raw, "://"); idx >= 0 {
		scheme := raw[:idx]
		rest := raw[idx+3:]
		return parseAuthorityAndPath(scheme, rest)
	}

	return Url{}, false
}

func parseAuthorityAndPath(scheme, rest string) (Url, bool) {
	fragment := ""
	hasFrag := false
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		fragment = rest[i+1:]
		hasFrag = true
		rest = rest[:i]
	}

	query := ""
	hasQuery := false
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		query = rest[i+1:]
		hasQuery = true
		rest = rest[:i]
	}

	var authority, path string
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		authority, path = rest[:i], rest[i:]
	} else {
		authority, path = rest, "/"
	}

	host, port := authority, 0
	if i := strings.LastIndexByte(authority, ':'); i >= 0 {
		if p, err := strconv.Atoi(authority[i+1:]); err == nil {
			host, port = authority[:i], p
		}
	}

	if path == "" {
		path = "/"
	}

	return Url{
		Scheme:   strings.ToLower(scheme),
		Host:     host,
		Port:     port,
		Path:     path,
		Query:    query,
		HasQuery: hasQuery,
		Fragment: fragment,
		HasFrag:  hasFrag,
	}, true
}

// Resolve resolves a relative reference against u as the base URL, per
// RFC 3986 segment-merge + remove-dot-segments.
func (u Url) Resolve(relative string) (Url, bool) {
	relative = strings.TrimSpace(relative)
	if relative == "" {
		return u, true
	}

	if strings.Contains(relative, "://") {
		return ParseUrl(relative)
	}

	if rest, ok := strings.CutPrefix(relative, "//"); ok {
		return ParseUrl(u.Scheme + ":" + "//" + rest)
	}

	if frag, ok := strings.CutPrefix(relative, "#"); ok {
		resolved := u
		resolved.Fragment, resolved.HasFrag = frag, true
		return resolved, true
	}

	if query, ok := strings.CutPrefix(relative, "?"); ok {
		resolved := u
		resolved.Query, resolved.HasQuery = query, true
		resolved.Fragment, resolved.HasFrag = "", false
		return resolved, true
	}

	if strings.HasPrefix(relative, "/") {
		path, query, hasQuery, frag, hasFrag := splitPathQueryFragment(relative)
		return Url{Scheme: u.Scheme, Host: u.Host, Port: u.Port, Path: path,
			Query: query, HasQuery: hasQuery, Fragment: frag, HasFrag: hasFrag}, true
	}

	baseDir := u.Directory()
	relPath, query, hasQuery, frag, hasFrag := splitPathQueryFragment(relative)
	resolvedPath := resolvePathSegments(baseDir, relPath)
	return Url{Scheme: u.Scheme, Host: u.Host, Port: u.Port, Path: resolvedPath,
		Query: query, HasQuery: hasQuery, Fragment: frag, HasFrag: hasFrag}, true
}

func splitPathQueryFragment(s string) (path, query string, hasQuery bool, fragment string, hasFrag bool) {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		fragment, hasFrag = s[i+1:], true
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		query, hasQuery = s[i+1:], true
		path = s[:i]
		return
	}
	path = s
	return
}

func resolvePathSegments(baseDir, relative string) string {
	var segments []string
	for _, seg := range strings.Split(baseDir, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	for _, seg := range strings.Split(relative, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/")
}

// Extension returns the path's file extension (without the dot), or ""
// if the last path segment has none.
func (u Url) Extension() string {
	path := strings.SplitN(u.Path, "?", 2)[0]
	segs := strings.Split(path, "/")
	filename := segs[len(segs)-1]
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return filename[i+1:]
}

// Directory returns the path up to and including the last '/'.
func (u Url) Directory() string {
	if i := strings.LastIndexByte(u.Path, '/'); i >= 0 {
		return u.Path[:i+1]
	}
	return "/"
}

// Origin returns "scheme://host[:port]".
func (u Url) Origin() string {
	s := u.Scheme + "://" + u.Host
	if u.Port != 0 {
		s += fmt.Sprintf(":%d", u.Port)
	}
	return s
}

func (u Url) String() string {
	s := u.Origin() + u.Path
	if u.HasQuery {
		s += "?" + u.Query
	}
	if u.HasFrag {
		s += "#" + u.Fragment
	}
	return s
}

// DetectContentType detects content type from a URL's extension, falling
// back to Html when none is recognized.
func DetectContentType(u Url) ContentType {
	ext := u.Extension()
	if ext == "" {
		return Html
	}
	ct := ContentTypeFromExtension(ext)
	if ct == Unknown {
		return Html
	}
	return ct
}
