package vfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oasis-os/oasis/internal/oerr"
)

// HostVFS roots a VFS at a real host directory. Every VFS path maps to
// root+path on disk; normalization happens before any filesystem call so the
// same invariants (leading "/", no "//", no trailing "/") hold regardless of
// backend. Normalize leaves ".." segments in place; when the host path is
// built they are resolved against the VFS root and never climb above it.
type HostVFS struct {
	root string
}

// NewHostVFS roots a VFS at dir, creating it if missing.
func NewHostVFS(dir string) (*HostVFS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, oerr.Wrap(oerr.KindIo, "resolve host root", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, oerr.Wrap(oerr.KindIo, "create host root", err)
	}
	return &HostVFS{root: abs}, nil
}

func (h *HostVFS) real(path string) string {
	path = Normalize(path)
	rel := filepath.Clean(string(filepath.Separator) + filepath.FromSlash(strings.TrimPrefix(path, "/")))
	return filepath.Join(h.root, rel)
}

func (h *HostVFS) Readdir(path string) ([]Entry, error) {
	real := h.real(path)
	infos, err := os.ReadDir(real)
	if err != nil {
		return nil, oerr.Wrap(oerr.KindVfs, "readdir "+path, err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		kind := KindFile
		var size int64
		if info.IsDir() {
			kind = KindDir
		} else if fi, err := info.Info(); err == nil {
			size = fi.Size()
		}
		entries = append(entries, Entry{Name: info.Name(), Kind: kind, Size: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (h *HostVFS) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(h.real(path))
	if err != nil {
		return nil, oerr.Wrap(oerr.KindVfs, "read "+path, err)
	}
	return data, nil
}

func (h *HostVFS) Write(path string, data []byte) error {
	real := h.real(path)
	parent := filepath.Dir(real)
	if _, err := os.Stat(parent); err != nil {
		return oerr.Newf(oerr.KindVfs, "parent directory does not exist: %s", Parent(Normalize(path)))
	}
	f, err := os.CreateTemp(parent, ".oasis-write-*")
	if err != nil {
		return oerr.Wrap(oerr.KindVfs, "write "+path, err)
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err == nil {
		err = os.Rename(tmp, real)
	}
	if err != nil {
		os.Remove(tmp)
		return oerr.Wrap(oerr.KindVfs, "write "+path, err)
	}
	return nil
}

func (h *HostVFS) Stat(path string) (Stat, error) {
	info, err := os.Stat(h.real(path))
	if err != nil {
		return Stat{}, oerr.Wrap(oerr.KindVfs, "stat "+path, err)
	}
	if info.IsDir() {
		return Stat{Kind: KindDir}, nil
	}
	return Stat{Kind: KindFile, Size: info.Size()}, nil
}

func (h *HostVFS) Mkdir(path string) error {
	if err := os.MkdirAll(h.real(path), 0o755); err != nil {
		return oerr.Wrap(oerr.KindVfs, "mkdir "+path, err)
	}
	return nil
}

func (h *HostVFS) Remove(path string) error {
	if Normalize(path) == "/" {
		return oerr.New(oerr.KindVfs, "cannot remove root")
	}
	real := h.real(path)
	entries, err := os.ReadDir(real)
	if err == nil && len(entries) > 0 {
		return oerr.Newf(oerr.KindVfs, "directory not empty: %s", path)
	}
	if err := os.Remove(real); err != nil {
		return oerr.Wrap(oerr.KindVfs, "remove "+path, err)
	}
	return nil
}

func (h *HostVFS) Exists(path string) bool {
	_, err := os.Stat(h.real(path))
	return err == nil
}
