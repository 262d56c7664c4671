package runtime

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"io"
	"net/http"
	"time"

	"golang.org/x/image/bmp"

	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/vfs"
)

// IoCmdKind tags which IoCmd variant is populated.
type IoCmdKind int

const (
	IoLoadTexture IoCmdKind = iota
	IoReadFile
	IoHttpGet
	IoShutdown
)

// IoCmd is one request sent to the I/O worker. Only the fields relevant
// to Kind are populated.
type IoCmd struct {
	Kind IoCmdKind

	ID   uint64 // correlates the response back to the request
	Path string // IoLoadTexture, IoReadFile
	URL  string // IoHttpGet
}

// IoResponseKind tags which IoResponse variant is populated.
type IoResponseKind int

const (
	IoTextureReady IoResponseKind = iota
	IoFileReady
	IoHttpDone
	IoError
)

// IoResponse is one result sent back from the I/O worker to the main
// goroutine. Only the fields relevant to Kind are populated.
type IoResponse struct {
	Kind IoResponseKind

	ID uint64

	// IoTextureReady
	Width, Height int
	RGBA          []byte

	// IoFileReady, IoHttpDone (body)
	Data []byte

	// IoHttpDone
	StatusCode int

	// IoError
	Err error
}

// ioQueueCapacity matches the PSP original's SpscQueue<IoCmd, 8>.
const ioQueueCapacity = 8

// responseQueueCapacity matches the PSP original's response queue depth.
const responseQueueCapacity = 16

// httpTimeout bounds a single HttpGet request so a stalled remote host
// cannot wedge the I/O worker forever.
const httpTimeout = 15 * time.Second

// IoHandle is the main goroutine's view of the I/O worker: send
// requests, drain responses.
type IoHandle struct {
	cmdQueue  *Queue[IoCmd]
	respQueue *Queue[IoResponse]
}

// Send enqueues cmd for the I/O worker. Non-blocking; drops the command
// if the queue is momentarily full.
func (h *IoHandle) Send(cmd IoCmd) bool { return h.cmdQueue.Push(cmd) }

// TryRecv returns the next available response, if any, without blocking.
func (h *IoHandle) TryRecv() (IoResponse, bool) { return h.respQueue.Pop() }

// httpClient is the capability HttpGet uses; *http.Client satisfies it,
// tests substitute a fake.
type httpClient interface {
	Get(url string) (*http.Response, error)
}

// runIoWorker drains cmdQueue until IoShutdown, performing VFS reads,
// texture decodes, and HTTP fetches off the main goroutine and
// publishing one IoResponse per request onto respQueue.
func runIoWorker(ctx context.Context, cmdQueue *Queue[IoCmd], respQueue *Queue[IoResponse], fs vfs.VFS, client httpClient) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		cmd, ok := cmdQueue.Pop()
		if !ok {
			time.Sleep(idleSleep)
			continue
		}
		if cmd.Kind == IoShutdown {
			return
		}

		resp := handleIoCmd(cmd, fs, client)
		for !respQueue.Push(resp) {
			// response queue momentarily full: main goroutine is behind on
			// draining, give it a tick to catch up rather than drop a result
			// the caller is waiting on.
			time.Sleep(idleSleep)
		}
	}
}

func handleIoCmd(cmd IoCmd, fs vfs.VFS, client httpClient) IoResponse {
	switch cmd.Kind {
	case IoLoadTexture:
		return loadTexture(cmd, fs)
	case IoReadFile:
		return readFile(cmd, fs)
	case IoHttpGet:
		return httpGet(cmd, client)
	default:
		return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.Newf(oerr.KindIo, "unknown io command %d", cmd.Kind)}
	}
}

func readFile(cmd IoCmd, fs vfs.VFS) IoResponse {
	data, err := fs.Read(cmd.Path)
	if err != nil {
		return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.Wrap(oerr.KindIo, "read file "+cmd.Path, err)}
	}
	return IoResponse{Kind: IoFileReady, ID: cmd.ID, Data: data}
}

// loadTexture reads the file at cmd.Path from fs and decodes it into
// tightly-packed RGBA8. Only BMP data is accepted; anything else is
// returned as an unsupported-format IoError (unlike the software
// backend's LoadTexture, raw RGBA bytes are not passed through).
func loadTexture(cmd IoCmd, fs vfs.VFS) IoResponse {
	raw, err := fs.Read(cmd.Path)
	if err != nil {
		return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.Wrap(oerr.KindIo, "read texture "+cmd.Path, err)}
	}

	if len(raw) >= 2 && raw[0] == 'B' && raw[1] == 'M' {
		decoded, err := bmp.Decode(bytes.NewReader(raw))
		if err != nil {
			return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.Wrap(oerr.KindIo, "decode bmp texture "+cmd.Path, err)}
		}
		bounds := decoded.Bounds()
		img := image.NewRGBA(bounds)
		draw.Draw(img, bounds, decoded, bounds.Min, draw.Src)
		return IoResponse{Kind: IoTextureReady, ID: cmd.ID, Width: bounds.Dx(), Height: bounds.Dy(), RGBA: img.Pix}
	}

	return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.New(oerr.KindIo, "unsupported texture format: "+cmd.Path)}
}

func httpGet(cmd IoCmd, client httpClient) IoResponse {
	resp, err := client.Get(cmd.URL)
	if err != nil {
		return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.Wrap(oerr.KindIo, "http get "+cmd.URL, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return IoResponse{Kind: IoError, ID: cmd.ID, Err: oerr.Wrap(oerr.KindIo, "http read body "+cmd.URL, err)}
	}
	return IoResponse{Kind: IoHttpDone, ID: cmd.ID, StatusCode: resp.StatusCode, Data: body}
}

// newHttpClient builds the *http.Client used by the real I/O worker,
// bounded by httpTimeout.
func newHttpClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
