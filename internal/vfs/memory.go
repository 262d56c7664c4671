package vfs

import (
	"sort"
	"strings"
	"sync"

	"github.com/oasis-os/oasis/internal/oerr"
)

type memNode struct {
	dir  bool
	data []byte
}

// MemVFS is a fully in-memory VFS. Useful for tests and ephemeral terminal
// environments. Adapted from oasis-vfs/src/memory.rs's BTreeMap<path,Node>
// design; Go has no ordered map so Readdir sorts its scan on demand.
type MemVFS struct {
	mu    sync.Mutex
	nodes map[string]memNode
}

// NewMemVFS creates an in-memory VFS containing only the root directory.
func NewMemVFS() *MemVFS {
	return &MemVFS{
		nodes: map[string]memNode{
			"/": {dir: true},
		},
	}
}

func (m *MemVFS) Readdir(path string) ([]Entry, error) {
	path = Normalize(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.nodes[path]
	if !ok {
		return nil, oerr.Newf(oerr.KindVfs, "no such directory: %s", path)
	}
	if !node.dir {
		return nil, oerr.Newf(oerr.KindVfs, "not a directory: %s", path)
	}

	prefix := path
	if prefix != "/" {
		prefix += "/"
	}

	var entries []Entry
	for key, n := range m.nodes {
		if !strings.HasPrefix(key, prefix) || key == path {
			continue
		}
		rest := key[len(prefix):]
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		size := int64(0)
		kind := KindDir
		if !n.dir {
			kind = KindFile
			size = int64(len(n.data))
		}
		entries = append(entries, Entry{Name: rest, Kind: kind, Size: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *MemVFS) Read(path string) ([]byte, error) {
	path = Normalize(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.nodes[path]
	if !ok {
		return nil, oerr.Newf(oerr.KindVfs, "no such file: %s", path)
	}
	if node.dir {
		return nil, oerr.Newf(oerr.KindVfs, "is a directory: %s", path)
	}
	out := make([]byte, len(node.data))
	copy(out, node.data)
	return out, nil
}

func (m *MemVFS) Write(path string, data []byte) error {
	path = Normalize(path)
	parent := Parent(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	parentNode, ok := m.nodes[parent]
	if !ok || !parentNode.dir {
		return oerr.Newf(oerr.KindVfs, "parent directory does not exist: %s", parent)
	}
	if existing, ok := m.nodes[path]; ok && existing.dir {
		return oerr.Newf(oerr.KindVfs, "is a directory: %s", path)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	m.nodes[path] = memNode{dir: false, data: buf}
	return nil
}

func (m *MemVFS) Stat(path string) (Stat, error) {
	path = Normalize(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.nodes[path]
	if !ok {
		return Stat{}, oerr.Newf(oerr.KindVfs, "no such path: %s", path)
	}
	if node.dir {
		return Stat{Kind: KindDir}, nil
	}
	return Stat{Kind: KindFile, Size: int64(len(node.data))}, nil
}

func (m *MemVFS) Mkdir(path string) error {
	path = Normalize(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirLocked(path)
}

func (m *MemVFS) mkdirLocked(path string) error {
	if existing, ok := m.nodes[path]; ok {
		if !existing.dir {
			return oerr.Newf(oerr.KindVfs, "not a directory: %s", path)
		}
		return nil // idempotent
	}
	if path != "/" {
		if err := m.mkdirLocked(Parent(path)); err != nil {
			return err
		}
	}
	m.nodes[path] = memNode{dir: true}
	return nil
}

func (m *MemVFS) Remove(path string) error {
	path = Normalize(path)
	if path == "/" {
		return oerr.New(oerr.KindVfs, "cannot remove root")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.nodes[path]
	if !ok {
		return oerr.Newf(oerr.KindVfs, "no such path: %s", path)
	}
	if node.dir {
		prefix := path + "/"
		for key := range m.nodes {
			if strings.HasPrefix(key, prefix) {
				return oerr.Newf(oerr.KindVfs, "directory not empty: %s", path)
			}
		}
	}
	delete(m.nodes, path)
	return nil
}

func (m *MemVFS) Exists(path string) bool {
	path = Normalize(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.nodes[path]
	return ok
}
