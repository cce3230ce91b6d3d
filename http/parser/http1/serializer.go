package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/httpcore/config"
	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/valyala/bytebufferpool"
)

const (
	crlf            = "\r\n"
	defaultProtocol = "HTTP/1.1"
)

// Serializer renders messages into their wire representation. Every message is rendered
// into a pooled buffer first and written with a single Write call.
//
// Framing is chosen by the message's own headers: when Transfer-Encoding ends with chunked,
// the body is split into chunks of cfg.Body.ChunkSize bytes, otherwise Content-Length is
// added unless already present.
type Serializer struct {
	cfg *config.Config
}

func NewSerializer(cfg *config.Config) *Serializer {
	return &Serializer{cfg: cfg}
}

// Response writes the response. Default headers from the config are appended, except those
// the response overrides.
func (s *Serializer) Response(w io.Writer, response *http.Response) error {
	return s.response(w, response, true)
}

// HeadResponse writes the response as an answer to a HEAD request: the headers are the same
// as Response would write, including Content-Length, but the body is omitted.
func (s *Serializer) HeadResponse(w io.Writer, response *http.Response) error {
	return s.response(w, response, false)
}

func (s *Serializer) response(w io.Writer, response *http.Response, withBody bool) error {
	buff := bytebufferpool.Get()
	defer s.release(buff)

	b := append(buff.B, defaultProtocol...)
	b = append(b, ' ')
	b = strconv.AppendUint(b, uint64(response.Code), 10)
	b = append(b, ' ')

	reason := response.Status
	if len(reason) == 0 {
		reason = status.Text(response.Code)
	}

	b = append(b, reason...)
	b = append(b, crlf...)
	b = appendHeaders(b, response.Headers)

	for key, value := range s.cfg.Headers.Default {
		if !response.Headers.Has(key) {
			b = appendHeader(b, key, value)
		}
	}

	if withBody {
		buff.B = s.appendBody(b, response.Headers, response.Body)
	} else {
		buff.B = appendBodyless(b, response.Headers, len(response.Body))
	}

	_, err := w.Write(buff.B)

	return err
}

// Request writes the request. The raw target is preferred, so a parsed request is forwarded
// exactly as it was received; the URL is rendered otherwise.
func (s *Serializer) Request(w io.Writer, request *http.Request) error {
	if request.Method == method.Unknown {
		return status.ErrMethodNotImplemented
	}

	buff := bytebufferpool.Get()
	defer s.release(buff)

	b := append(buff.B, request.Method.String()...)
	b = append(b, ' ')

	if len(request.Target) > 0 {
		b = append(b, request.Target...)
	} else {
		b = append(b, request.URL.EncodeRequest()...)
	}

	b = append(b, ' ')
	protocol := request.Protocol
	if len(protocol) == 0 {
		protocol = defaultProtocol
	}

	b = append(b, protocol...)
	b = append(b, crlf...)

	if !request.Headers.Has("Host") && len(request.URL.Host) > 0 {
		b = appendHeader(b, "Host", hostHeader(request))
	}

	b = appendHeaders(b, request.Headers)
	buff.B = s.appendBody(b, request.Headers, request.Body)
	_, err := w.Write(buff.B)

	return err
}

// appendBody finishes the headers section and appends the framed body.
func (s *Serializer) appendBody(b []byte, headers *kv.Storage, body []byte) []byte {
	if te, found := headers.Get("Transfer-Encoding"); found && isChunked(te) {
		b = append(b, crlf...)
		return AppendChunked(b, body, s.cfg.Body.ChunkSize)
	}

	if !headers.Has("Content-Length") {
		b = append(b, "Content-Length: "...)
		b = strconv.AppendUint(b, uint64(len(body)), 10)
		b = append(b, crlf...)
	}

	b = append(b, crlf...)

	return append(b, body...)
}

func appendBodyless(b []byte, headers *kv.Storage, length int) []byte {
	if !headers.Has("Content-Length") && !headers.Has("Transfer-Encoding") {
		b = append(b, "Content-Length: "...)
		b = strconv.AppendUint(b, uint64(length), 10)
		b = append(b, crlf...)
	}

	return append(b, crlf...)
}

func (s *Serializer) release(buff *bytebufferpool.ByteBuffer) {
	// huge buffers aren't worth keeping around
	if buff.Len() > s.cfg.NET.WriteBufferSize.Maximal {
		return
	}

	bytebufferpool.Put(buff)
}

// AppendChunked frames the body with chunked transfer encoding, including the terminating
// zero-sized chunk without trailers. Non-positive chunk size writes the whole body as a
// single chunk.
func AppendChunked(dst, body []byte, chunkSize int) []byte {
	if chunkSize <= 0 {
		chunkSize = len(body)
	}

	for len(body) > 0 {
		n := min(chunkSize, len(body))
		dst = strconv.AppendUint(dst, uint64(n), 16)
		dst = append(dst, crlf...)
		dst = append(dst, body[:n]...)
		dst = append(dst, crlf...)
		body = body[n:]
	}

	return append(dst, "0\r\n\r\n"...)
}

func appendHeaders(b []byte, headers *kv.Storage) []byte {
	for key, value := range headers.Pairs() {
		b = appendHeader(b, key, value)
	}

	return b
}

func appendHeader(b []byte, key, value string) []byte {
	b = append(b, key...)
	b = append(b, ':', ' ')
	b = append(b, value...)

	return append(b, crlf...)
}

func hostHeader(request *http.Request) string {
	if request.URL.Port == 0 || isDefaultPort(request.URL.Protocol, request.URL.Port) {
		return request.URL.Host
	}

	return request.URL.Host + ":" + strconv.FormatUint(uint64(request.URL.Port), 10)
}

func isDefaultPort(protocol string, port uint16) bool {
	return (strcomp.EqualFold(protocol, "http") && port == 80) ||
		(strcomp.EqualFold(protocol, "https") && port == 443)
}
