package http1

import (
	"bytes"

	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/http/uri"
	"github.com/indigo-web/utils/uf"
)

type requestGrammar struct{}

// parseFirstLine parses e.g. "GET /index.html HTTP/1.1". The target spans from the first
// space to the last one.
func (requestGrammar) parseFirstLine(request *http.Request, line []byte) error {
	methodEnd := bytes.IndexByte(line, ' ')
	targetEnd := bytes.LastIndexByte(line, ' ')
	if methodEnd <= 0 || targetEnd == methodEnd {
		return status.ErrBadRequestLine
	}

	request.Method = method.Parse(uf.B2S(line[:methodEnd]))
	if request.Method == method.Unknown {
		return status.ErrMethodNotImplemented
	}

	request.Target = uf.B2S(line[methodEnd+1 : targetEnd])
	if len(request.Target) == 0 {
		return status.ErrBadRequestLine
	}

	protocol := line[targetEnd+1:]
	if !isHTTPVersion(protocol) {
		return status.ErrHTTPVersionNotSupported
	}

	request.Protocol = uf.B2S(protocol)

	var err error
	request.URL, err = uri.ParseRequestInto(request.Target, request.URL.Query)

	return err
}

func (requestGrammar) reset(request *http.Request) {
	request.Reset()
}

type responseGrammar struct{}

// parseFirstLine parses e.g. "HTTP/1.1 200 OK". The reason phrase may be empty or
// missing altogether.
func (responseGrammar) parseFirstLine(response *http.Response, line []byte) error {
	versionEnd := bytes.IndexByte(line, ' ')
	if versionEnd <= 0 {
		return status.ErrBadStatusLine
	}

	if !isHTTPVersion(line[:versionEnd]) {
		return status.ErrHTTPVersionNotSupported
	}

	response.Protocol = uf.B2S(line[:versionEnd])
	rest := line[versionEnd+1:]

	code, reason, _ := bytes.Cut(rest, []byte{' '})
	if len(code) != 3 {
		return status.ErrBadStatusCode
	}

	var value status.Code
	for _, c := range code {
		if c < '0' || c > '9' {
			return status.ErrBadStatusCode
		}

		value = value*10 + status.Code(c-'0')
	}

	response.Code = value
	response.Status = uf.B2S(reason)

	return nil
}

func (responseGrammar) reset(response *http.Response) {
	response.Reset()
}

func isHTTPVersion(token []byte) bool {
	return bytes.HasPrefix(token, []byte("HTTP/")) && len(token) > len("HTTP/")
}
