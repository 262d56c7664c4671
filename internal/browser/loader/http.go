package loader

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/oasis-os/oasis/internal/oerr"
)

const (
	maxBodySize    = 8 * 1024 * 1024
	maxRedirects   = 5
	connectTimeout = 10 * time.Second
	readTimeout    = 15 * time.Second
)

// HttpGet performs an HTTP(S) GET, following 301/302/307/308 redirects up
// to maxRedirects hops. An https:// URL that this build cannot reach (no
// working TLS handshake) yields a synthetic "HTTPS Required" error page
// rather than failing the navigation outright.
func HttpGet(u Url) (Response, error) {
	if u.Scheme != "http" && u.Scheme != "https" {
		return Response{}, oerr.Newf(oerr.KindBackend, "unsupported scheme for HTTP client: %s", u.Scheme)
	}

	current := u
	for i := 0; i < maxRedirects; i++ {
		resp, err := doRequest(current)
		if err != nil {
			if current.Scheme == "https" {
				return httpsRequiredPage(u, current), nil
			}
			return Response{}, err
		}

		if isRedirect(resp.status) {
			if location, ok := findHeader(resp.headers, "location"); ok {
				next, ok := current.Resolve(location)
				if !ok {
					return Response{}, oerr.Newf(oerr.KindBackend, "bad redirect Location: %s", location)
				}
				current = next
				continue
			}
		}

		contentType := DetectContentType(current)
		if ctHeader, ok := findHeader(resp.headers, "content-type"); ok {
			contentType = ContentTypeFromMime(ctHeader)
		}
		return Response{
			Url:         current.String(),
			ContentType: contentType,
			Body:        resp.body,
			Status:      resp.status,
		}, nil
	}
	return Response{}, oerr.New(oerr.KindBackend, "too many redirects")
}

type rawHttpResponse struct {
	status  int
	headers [][2]string
	body    []byte
}

func doRequest(u Url) (rawHttpResponse, error) {
	isHttps := u.Scheme == "https"
	port := u.Port
	if port == 0 {
		if isHttps {
			port = 443
		} else {
			port = 80
		}
	}

	addr := net.JoinHostPort(u.Host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return rawHttpResponse{}, oerr.Newf(oerr.KindBackend, "TCP connect failed: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(readTimeout))

	var rw readWriter = conn
	if isHttps {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: u.Host})
		if err := tlsConn.Handshake(); err != nil {
			return rawHttpResponse{}, oerr.Newf(oerr.KindBackend, "TLS handshake failed: %v", err)
		}
		rw = tlsConn
	}

	if err := sendRequest(rw, u, isHttps); err != nil {
		return rawHttpResponse{}, err
	}
	raw, err := readResponse(rw)
	if err != nil {
		return rawHttpResponse{}, err
	}
	return parseResponse(raw)
}

type readWriter interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

func sendRequest(w readWriter, u Url, isHttps bool) error {
	defaultPort := 80
	if isHttps {
		defaultPort = 443
	}
	hostHeader := u.Host
	if u.Port != 0 && u.Port != defaultPort {
		hostHeader = fmt.Sprintf("%s:%d", u.Host, u.Port)
	}

	path := u.Path
	if u.HasQuery {
		path += "?" + u.Query
	}

	request := fmt.Sprintf(
		"GET %s HTTP/1.1\r\nHost: %s\r\nUser-Agent: OASIS/1.0\r\nAccept: */*\r\nConnection: close\r\n\r\n",
		path, hostHeader,
	)
	_, err := w.Write([]byte(request))
	if err != nil {
		return oerr.Newf(oerr.KindBackend, "send request: %v", err)
	}
	return nil
}

func readResponse(r readWriter) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 8192)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if buf.Len()+n > maxBodySize+4096 {
				return nil, oerr.New(oerr.KindBackend, "response too large")
			}
			buf.Write(chunk[:n])
		}
		if err != nil {
			break
		}
	}
	return buf.Bytes(), nil
}

func parseResponse(data []byte) (rawHttpResponse, error) {
	headerEnd := bytes.Index(data, []byte("\r\n\r\n"))
	if headerEnd < 0 {
		return rawHttpResponse{}, oerr.New(oerr.KindBackend, "malformed HTTP response: no header terminator")
	}
	headerStr := string(data[:headerEnd])
	bodyStart := headerEnd + 4

	lines := strings.Split(headerStr, "\r\n")
	if len(lines) == 0 {
		return rawHttpResponse{}, oerr.New(oerr.KindBackend, "empty response")
	}
	status, err := parseStatusLine(lines[0])
	if err != nil {
		return rawHttpResponse{}, err
	}

	var headers [][2]string
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		if i := strings.IndexByte(line, ':'); i >= 0 {
			name := strings.ToLower(strings.TrimSpace(line[:i]))
			value := strings.TrimSpace(line[i+1:])
			headers = append(headers, [2]string{name, value})
		}
	}

	rawBody := data[bodyStart:]
	var body []byte
	if te, ok := findHeader(headers, "transfer-encoding"); ok && strings.Contains(te, "chunked") {
		body, err = decodeChunked(rawBody)
		if err != nil {
			return rawHttpResponse{}, err
		}
	} else if cl, ok := findHeader(headers, "content-length"); ok {
		n, err := strconv.Atoi(cl)
		if err != nil {
			return rawHttpResponse{}, oerr.New(oerr.KindBackend, "bad Content-Length")
		}
		if n > maxBodySize {
			return rawHttpResponse{}, oerr.New(oerr.KindBackend, "response body exceeds 8 MiB limit")
		}
		if n > len(rawBody) {
			n = len(rawBody)
		}
		body = rawBody[:n]
	} else {
		body = rawBody
	}

	if len(body) > maxBodySize {
		return rawHttpResponse{}, oerr.New(oerr.KindBackend, "response body exceeds 8 MiB limit")
	}

	return rawHttpResponse{status: status, headers: headers, body: body}, nil
}

func parseStatusLine(line string) (int, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0, oerr.Newf(oerr.KindBackend, "bad status line: %s", line)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, oerr.Newf(oerr.KindBackend, "bad status code in: %s", line)
	}
	return n, nil
}

func findHeader(headers [][2]string, name string) (string, bool) {
	name = strings.ToLower(name)
	for _, h := range headers {
		if h[0] == name {
			return h[1], true
		}
	}
	return "", false
}

// decodeChunked decodes an HTTP chunked-transfer-encoded body: hex chunk
// size, optional ";extension", CRLF, that many bytes, CRLF; a 0-size
// chunk terminates the stream.
func decodeChunked(data []byte) ([]byte, error) {
	var result bytes.Buffer
	pos := 0
	for {
		lineEnd := bytes.Index(data[pos:], []byte("\r\n"))
		if lineEnd < 0 {
			break
		}
		lineEnd += pos
		sizeStr := strings.TrimSpace(string(data[pos:lineEnd]))
		sizeStr = strings.TrimSpace(strings.SplitN(sizeStr, ";", 2)[0])
		chunkSize, err := strconv.ParseInt(sizeStr, 16, 64)
		if err != nil {
			return nil, oerr.New(oerr.KindBackend, "bad chunk size")
		}
		if chunkSize == 0 {
			break
		}
		chunkStart := lineEnd + 2
		chunkEnd := chunkStart + int(chunkSize)
		if chunkEnd > len(data) {
			result.Write(data[chunkStart:])
			break
		}
		if result.Len()+int(chunkSize) > maxBodySize {
			return nil, oerr.New(oerr.KindBackend, "chunked body exceeds 8 MiB limit")
		}
		result.Write(data[chunkStart:chunkEnd])
		pos = chunkEnd + 2
	}
	return result.Bytes(), nil
}

func isRedirect(status int) bool {
	switch status {
	case 301, 302, 307, 308:
		return true
	default:
		return false
	}
}

// httpsRequiredPage synthesizes a navigable error page when a site needs
// HTTPS and the handshake could not be completed.
func httpsRequiredPage(originalUrl, httpsUrl Url) Response {
	html := fmt.Sprintf(
		`<html><body><h1>HTTPS Required</h1><p>This site redirected to a secure (HTTPS) connection:</p><p>%s</p><p>OASIS browser only supports plain HTTP when TLS is unavailable.</p><p>Try a site that serves plain HTTP, such as:</p><p>http://example.com</p></body></html>`,
		httpsUrl.String(),
	)
	return Response{
		Url:         originalUrl.String(),
		ContentType: Html,
		Body:        []byte(html),
		Status:      200,
	}
}
