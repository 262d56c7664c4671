package runtime

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/vfs"
)

// fakeFS is a minimal in-memory vfs.VFS backing only what io.go exercises.
type fakeFS struct {
	files map[string][]byte
}

func (f *fakeFS) Readdir(string) ([]vfs.Entry, error) { return nil, nil }
func (f *fakeFS) Read(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, oerr.New(oerr.KindVfs, "not found: "+path)
	}
	return data, nil
}
func (f *fakeFS) Write(path string, data []byte) error { f.files[path] = data; return nil }
func (f *fakeFS) Stat(string) (vfs.Stat, error)         { return vfs.Stat{}, nil }
func (f *fakeFS) Mkdir(string) error                    { return nil }
func (f *fakeFS) Remove(string) error                   { return nil }
func (f *fakeFS) Exists(path string) bool               { _, ok := f.files[path]; return ok }

func testBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode test bmp: %v", err)
	}
	return buf.Bytes()
}

func TestReadFileSucceeds(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{"/a.txt": []byte("hello")}}
	resp := readFile(IoCmd{ID: 1, Path: "/a.txt"}, fs)
	if resp.Kind != IoFileReady || string(resp.Data) != "hello" {
		t.Fatalf("got %+v", resp)
	}
	if resp.ID != 1 {
		t.Errorf("got id %d, want 1", resp.ID)
	}
}

func TestReadFileMissingReturnsError(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{}}
	resp := readFile(IoCmd{ID: 2, Path: "/missing"}, fs)
	if resp.Kind != IoError || resp.Err == nil {
		t.Fatalf("got %+v", resp)
	}
}

func TestLoadTextureDecodesBMP(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{"/tex.bmp": testBMP(t, 4, 3)}}
	resp := loadTexture(IoCmd{ID: 3, Path: "/tex.bmp"}, fs)
	if resp.Kind != IoTextureReady {
		t.Fatalf("got %+v", resp)
	}
	if resp.Width != 4 || resp.Height != 3 {
		t.Errorf("got %dx%d, want 4x3", resp.Width, resp.Height)
	}
	if len(resp.RGBA) != 4*3*4 {
		t.Errorf("got %d bytes, want %d", len(resp.RGBA), 4*3*4)
	}
}

func TestLoadTextureUnsupportedFormatReturnsError(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{"/x.png": []byte{0x89, 'P', 'N', 'G'}}}
	resp := loadTexture(IoCmd{ID: 4, Path: "/x.png"}, fs)
	if resp.Kind != IoError {
		t.Fatalf("got %+v, want IoError", resp)
	}
}

type fakeHTTPClient struct {
	status int
	body   string
	err    error
}

func (c *fakeHTTPClient) Get(url string) (*http.Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func TestHttpGetSucceeds(t *testing.T) {
	client := &fakeHTTPClient{status: 200, body: "payload"}
	resp := httpGet(IoCmd{ID: 5, URL: "http://example/test"}, client)
	if resp.Kind != IoHttpDone || resp.StatusCode != 200 || string(resp.Data) != "payload" {
		t.Fatalf("got %+v", resp)
	}
}

func TestHttpGetTransportErrorReturnsIoError(t *testing.T) {
	client := &fakeHTTPClient{err: errors.New("connection refused")}
	resp := httpGet(IoCmd{ID: 6, URL: "http://example/test"}, client)
	if resp.Kind != IoError || resp.Err == nil {
		t.Fatalf("got %+v", resp)
	}
}

func TestHandleIoCmdDispatchesByKind(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{"/a": []byte("x")}}
	resp := handleIoCmd(IoCmd{Kind: IoReadFile, Path: "/a"}, fs, &fakeHTTPClient{})
	if resp.Kind != IoFileReady {
		t.Fatalf("got %+v", resp)
	}
}
