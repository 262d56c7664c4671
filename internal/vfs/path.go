package vfs

import "strings"

// Normalize puts a path into normal form: leading "/", no "//" runs, and no
// trailing "/" unless the path is exactly "/". Idempotent and allocation-free
// when the input is already normalized, mirroring the reference normalize()
// in oasis-vfs/src/memory.rs.
//
// "." and ".." segments are passed through unresolved; the VFS never
// resolves them.
func Normalize(path string) string {
	if isNormalized(path) {
		return path
	}

	var b strings.Builder
	b.Grow(len(path) + 1)
	if !strings.HasPrefix(path, "/") {
		b.WriteByte('/')
	}

	prevSlash := false
	for _, ch := range path {
		if ch == '/' {
			if !prevSlash {
				b.WriteByte('/')
			}
			prevSlash = true
		} else {
			b.WriteRune(ch)
			prevSlash = false
		}
	}

	result := b.String()
	if len(result) > 1 && strings.HasSuffix(result, "/") {
		result = result[:len(result)-1]
	}
	if result == "" {
		result = "/"
	}
	return result
}

func isNormalized(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return false
	}
	return !strings.Contains(path, "//")
}

// Parent returns the parent of a normalized path. Parent("/") is "/".
func Parent(path string) string {
	if path == "/" {
		return "/"
	}
	path = Normalize(path)
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// Base returns the final path segment, e.g. Base("/a/b/c") == "c".
func Base(path string) string {
	path = Normalize(path)
	if path == "/" {
		return "/"
	}
	idx := strings.LastIndexByte(path, '/')
	return path[idx+1:]
}

// Join normalizes parent and appends name as a new segment.
func Join(parent, name string) string {
	parent = Normalize(parent)
	if parent == "/" {
		return Normalize("/" + name)
	}
	return Normalize(parent + "/" + name)
}

// Segments splits a normalized path into its non-empty components.
// Segments("/") returns an empty slice.
func Segments(path string) []string {
	path = Normalize(path)
	if path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}
