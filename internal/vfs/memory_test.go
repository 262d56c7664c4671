package vfs

import (
	"testing"

	"github.com/oasis-os/oasis/internal/oerr"
)

func TestMemVFSWriteReadRoundTrip(t *testing.T) {
	m := NewMemVFS()
	if err := m.Mkdir("/docs"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := m.Write("/docs/a.txt", []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := m.Read("/docs/a.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Read = %q, want hello", got)
	}
}

func TestMemVFSWriteMissingParentFails(t *testing.T) {
	m := NewMemVFS()
	err := m.Write("/missing/a.txt", []byte("x"))
	if !oerr.Is(err, oerr.KindVfs) {
		t.Fatalf("Write into missing parent: got %v, want KindVfs error", err)
	}
}

func TestMemVFSMkdirIdempotent(t *testing.T) {
	m := NewMemVFS()
	if err := m.Mkdir("/a/b/c"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := m.Mkdir("/a/b/c"); err != nil {
		t.Fatalf("Mkdir repeat: %v", err)
	}
	if !m.Exists("/a/b") {
		t.Error("parent /a/b should exist")
	}
}

func TestMemVFSReaddirSortedDirectChildrenOnly(t *testing.T) {
	m := NewMemVFS()
	_ = m.Mkdir("/x/y")
	_ = m.Write("/x/b.txt", []byte("1"))
	_ = m.Write("/x/a.txt", []byte("2"))

	entries, err := m.Readdir("/x")
	if err != nil {
		t.Fatalf("Readdir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Readdir(/x) = %v, want 3 entries", entries)
	}
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	want := []string{"a.txt", "b.txt", "y"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMemVFSRemoveNonEmptyDirFails(t *testing.T) {
	m := NewMemVFS()
	_ = m.Mkdir("/d")
	_ = m.Write("/d/f.txt", []byte("x"))
	if err := m.Remove("/d"); !oerr.Is(err, oerr.KindVfs) {
		t.Fatalf("Remove non-empty dir: got %v, want KindVfs error", err)
	}
	if err := m.Remove("/d/f.txt"); err != nil {
		t.Fatalf("Remove file: %v", err)
	}
	if err := m.Remove("/d"); err != nil {
		t.Fatalf("Remove now-empty dir: %v", err)
	}
}

func TestMemVFSRemoveRootFails(t *testing.T) {
	m := NewMemVFS()
	if err := m.Remove("/"); err == nil {
		t.Fatal("Remove(/) should fail")
	}
}

func TestMemVFSExists(t *testing.T) {
	m := NewMemVFS()
	if m.Exists("/nope") {
		t.Error("nope should not exist")
	}
	_ = m.Write("/f", []byte("x"))
	if !m.Exists("/f") {
		t.Error("/f should exist")
	}
}
