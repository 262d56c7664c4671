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
	geminiMaxBodySize = 2 * 1024 * 1024
	geminiDefaultPort = 1965
)

// GeminiGet fetches a gemini:// resource. Gemini mandates TLS on every
// connection; a handshake failure yields a synthetic "TLS Required" page
// rather than a navigation error.
func GeminiGet(u Url) (Response, error) {
	current := u
	for i := 0; i < maxRedirects; i++ {
		status, meta, body, err := doGeminiRequest(current)
		if err != nil {
			return geminiTlsRequiredPage(u), nil
		}

		if isGeminiRedirect(status) {
			next, ok := current.Resolve(meta)
			if !ok {
				return Response{}, oerr.Newf(oerr.KindBackend, "bad Gemini redirect: %s", meta)
			}
			current = next
			continue
		}

		if !isGeminiSuccess(status) {
			html := fmt.Sprintf(
				"<html><body><h1>Gemini Error</h1><p>Status: %d</p><p>%s</p></body></html>",
				status, meta,
			)
			return Response{
				Url:         current.String(),
				ContentType: Html,
				Body:        []byte(html),
				Status:      200,
			}, nil
		}

		contentType := geminiContentTypeFromMeta(meta)
		return Response{
			Url:         current.String(),
			ContentType: contentType,
			Body:        body,
			Status:      200,
		}, nil
	}
	return Response{}, oerr.New(oerr.KindBackend, "too many Gemini redirects")
}

func doGeminiRequest(u Url) (status int, meta string, body []byte, err error) {
	port := u.Port
	if port == 0 {
		port = geminiDefaultPort
	}
	addr := net.JoinHostPort(u.Host, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: connectTimeout}
	conn, dialErr := tls.DialWithDialer(&dialer, "tcp", addr, &tls.Config{ServerName: u.Host})
	if dialErr != nil {
		return 0, "", nil, oerr.Newf(oerr.KindBackend, "Gemini TLS connect failed: %v", dialErr)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(readTimeout))

	request := u.String() + "\r\n"
	if _, writeErr := conn.Write([]byte(request)); writeErr != nil {
		return 0, "", nil, oerr.Newf(oerr.KindBackend, "Gemini send: %v", writeErr)
	}

	var buf bytes.Buffer
	chunk := make([]byte, 8192)
	for {
		n, readErr := conn.Read(chunk)
		if n > 0 {
			if buf.Len()+n > geminiMaxBodySize {
				return 0, "", nil, oerr.New(oerr.KindBackend, "Gemini response too large")
			}
			buf.Write(chunk[:n])
		}
		if readErr != nil {
			break
		}
	}

	return parseGeminiResponse(buf.Bytes())
}

// parseGeminiResponse splits a "STATUS META\r\n<body>" response.
func parseGeminiResponse(data []byte) (status int, meta string, body []byte, err error) {
	lineEnd := bytes.Index(data, []byte("\r\n"))
	if lineEnd < 0 {
		return 0, "", nil, oerr.New(oerr.KindBackend, "malformed Gemini response: no status line")
	}
	header := string(data[:lineEnd])
	parts := strings.SplitN(header, " ", 2)
	status, convErr := strconv.Atoi(parts[0])
	if convErr != nil {
		return 0, "", nil, oerr.Newf(oerr.KindBackend, "bad Gemini status: %s", header)
	}
	if len(parts) > 1 {
		meta = parts[1]
	}
	body = data[lineEnd+2:]
	return status, meta, body, nil
}

func isGeminiSuccess(status int) bool { return status >= 20 && status < 30 }
func isGeminiRedirect(status int) bool { return status >= 30 && status < 40 }

func geminiContentTypeFromMeta(meta string) ContentType {
	switch {
	case strings.HasPrefix(meta, "text/gemini"):
		return GeminiText
	case strings.HasPrefix(meta, "text/html"):
		return Html
	case strings.HasPrefix(meta, "text/"):
		return PlainText
	default:
		return Html
	}
}

func geminiTlsRequiredPage(u Url) Response {
	html := fmt.Sprintf(
		"<html><body><h1>TLS Required</h1><p>Gemini protocol requires TLS, which is not available.</p><p>Requested: %s</p></body></html>",
		u.String(),
	)
	return Response{
		Url:         u.String(),
		ContentType: Html,
		Body:        []byte(html),
		Status:      200,
	}
}
