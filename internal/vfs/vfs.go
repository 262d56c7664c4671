// Package vfs implements the OASIS virtual filesystem: a path-normalized
// tree of byte blobs and directories, backend-pluggable (in-memory or
// host-directory backed). Grounded on oasis-vfs/src/memory.rs.
package vfs

// Kind distinguishes a VFS node's type.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Entry is one child returned by Readdir.
type Entry struct {
	Name string
	Kind Kind
	Size int64
}

// Stat describes a single node.
type Stat struct {
	Kind Kind
	Size int64
}

// VFS is the contract every backend satisfies. All paths are normalized by
// the implementation before use; callers may pass unnormalized paths.
type VFS interface {
	// Readdir lists the direct children of path, sorted lexicographically
	// by name. Fails if path is missing or names a file.
	Readdir(path string) ([]Entry, error)
	// Read returns the full contents of the file at path. Fails if path is
	// missing or names a directory.
	Read(path string) ([]byte, error)
	// Write creates or replaces the file at path. Fails if the parent
	// directory does not exist. Atomic at single-file granularity: no
	// partial writes are observable by a concurrent Read/Stat.
	Write(path string, data []byte) error
	// Stat reports the kind and size of the node at path.
	Stat(path string) (Stat, error)
	// Mkdir creates path and any missing parent directories. Idempotent.
	Mkdir(path string) error
	// Remove deletes the node at path. Fails for non-empty directories and
	// for the root.
	Remove(path string) error
	// Exists reports whether a node exists at path.
	Exists(path string) bool
}
