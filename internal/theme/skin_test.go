package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oasis-os/oasis/internal/vfs"
)

const testSkinYAML = `
primary: "#ABCDEF"
shadow_intensity: 3
`

func TestLoadSkinFillsDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skin.yaml")
	if err := os.WriteFile(path, []byte(testSkinYAML), 0o644); err != nil {
		t.Fatalf("write skin file: %v", err)
	}

	skin, err := LoadSkin(path)
	if err != nil {
		t.Fatalf("LoadSkin: %v", err)
	}
	if skin.Primary != "#ABCDEF" {
		t.Errorf("got primary %q", skin.Primary)
	}
	if skin.Background != DefaultSkin().Background {
		t.Errorf("expected unset background to fall back to default, got %q", skin.Background)
	}
	if skin.ShadowIntensity != 3 {
		t.Errorf("got shadow intensity %d, want 3", skin.ShadowIntensity)
	}
}

func TestLoadSkinMissingFileReturnsError(t *testing.T) {
	if _, err := LoadSkin("/nonexistent/skin.yaml"); err == nil {
		t.Fatal("expected error for missing skin file")
	}
}

func TestLoadSkinFromVFSReadsAndParses(t *testing.T) {
	fs := vfs.NewMemVFS()
	if err := fs.Write("/custom.yaml", []byte(testSkinYAML)); err != nil {
		t.Fatalf("write to vfs: %v", err)
	}

	skin, err := LoadSkinFromVFS(fs, "/custom.yaml")
	if err != nil {
		t.Fatalf("LoadSkinFromVFS: %v", err)
	}
	if skin.Primary != "#ABCDEF" {
		t.Errorf("got primary %q", skin.Primary)
	}
}

func TestLoadSkinFromVFSMissingPathReturnsError(t *testing.T) {
	fs := vfs.NewMemVFS()
	if _, err := LoadSkinFromVFS(fs, "/missing.yaml"); err == nil {
		t.Fatal("expected error for missing vfs path")
	}
}
