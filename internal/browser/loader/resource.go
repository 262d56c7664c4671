package loader

import (
	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/vfs"
)

// Source selects how a ResourceRequest is resolved.
type Source int

const (
	SourceVfs Source = iota
	SourceNetwork
	SourceVfsThenNetwork
)

// Request describes one resource fetch.
type Request struct {
	Url     string
	BaseUrl string
	Source  Source
}

// Response is a loaded resource.
type Response struct {
	Url         string
	ContentType ContentType
	Body        []byte
	Status      int
}

// Load resolves a Request per its Source, dispatching by URL scheme.
func Load(v vfs.VFS, req Request) (Response, error) {
	switch req.Source {
	case SourceVfs:
		return loadFromVfs(v, req)
	case SourceNetwork:
		return loadFromNetwork(req)
	default: // SourceVfsThenNetwork
		if resp, err := loadFromVfs(v, req); err == nil {
			return resp, nil
		}
		return loadFromNetwork(req)
	}
}

func loadFromNetwork(req Request) (Response, error) {
	u, ok := ParseUrl(req.Url)
	if !ok {
		return Response{}, oerr.Newf(oerr.KindBackend, "invalid URL: %s", req.Url)
	}
	switch u.Scheme {
	case "http", "https":
		return HttpGet(u)
	case "gemini":
		return GeminiGet(u)
	default:
		return Response{}, oerr.Newf(oerr.KindBackend, "unsupported network scheme: %s", u.Scheme)
	}
}

// loadFromVfs treats a vfs://host/path URL as the VFS path /host/path,
// matching Url.parse's authority-as-first-segment handling for vfs:// URLs.
func loadFromVfs(v vfs.VFS, req Request) (Response, error) {
	u, ok := ParseUrl(req.Url)
	if !ok || u.Scheme != "vfs" {
		return Response{}, oerr.Newf(oerr.KindBackend, "not a vfs:// URL: %s", req.Url)
	}
	path := "/" + u.Host + u.Path
	data, err := v.Read(path)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Url:         req.Url,
		ContentType: DetectContentType(u),
		Body:        data,
		Status:      200,
	}, nil
}
