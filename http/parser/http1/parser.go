package http1

import (
	"bytes"
	"errors"
	"math"

	"github.com/indigo-web/httpcore/config"
	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/internal/buffer"
	"github.com/indigo-web/httpcore/internal/hexconv"
	"github.com/indigo-web/httpcore/kv"
	"github.com/indigo-web/utils/uf"
)

// ErrCompleted is returned when bytes are fed into a parser, which has already completed
// a message and wasn't reset since.
var ErrCompleted = errors.New("http1: message is already completed, parser must be reset")

// grammar is the part of the parser, which differs between requests and responses: the first
// line and the message it is stored into.
type grammar[M any] interface {
	parseFirstLine(msg *M, line []byte) error
	reset(msg *M)
}

// Parser is a resumable HTTP/1.x message parser. It is fed with arbitrary fragments of the
// stream and reconstructs exactly one message per cycle: once Completed() reports true,
// the message must be consumed and the parser reset before feeding the next one.
//
// Parser is not safe for concurrent use. A connection is expected to own one.
type Parser[M any] struct {
	cfg     *config.Config
	state   State
	grammar grammar[M]
	message *M
	headers *kv.Storage
	body    *[]byte
	// lines is an arena for the first line and header lines. Its current segment is the
	// pending (unterminated) line, finished segments are lines which are referenced by
	// the message and are therefore valid until Reset.
	lines        buffer.Buffer
	firstLineLen int
	headersCount int
	// expected is the total body length the current framing asks for. In chunked mode
	// it's the sum of all chunk sizes announced so far.
	expected uint64
}

// RequestParser parses requests, as a server does.
type RequestParser = Parser[http.Request]

// ResponseParser parses responses, as a client does.
type ResponseParser = Parser[http.Response]

// NewRequestParser returns a parser storing its result into a fresh http.Request.
func NewRequestParser(cfg *config.Config) *RequestParser {
	request := http.NewRequest()
	return newParser[http.Request](cfg, requestGrammar{}, request, request.Headers, &request.Body)
}

// NewResponseParser returns a parser storing its result into a fresh http.Response.
func NewResponseParser(cfg *config.Config) *ResponseParser {
	response := http.NewResponse()
	return newParser[http.Response](cfg, responseGrammar{}, response, response.Headers, &response.Body)
}

func newParser[M any](
	cfg *config.Config, g grammar[M], msg *M, headers *kv.Storage, body *[]byte,
) *Parser[M] {
	p := &Parser[M]{
		cfg:     cfg,
		grammar: g,
		message: msg,
		headers: headers,
		body:    body,
		lines:   buffer.New(cfg.URI.RequestLineSize.Default+cfg.Headers.Space.Default, math.MaxInt),
	}
	p.Reset()

	return p
}

// Reset returns the parser to NotStarted, discarding the partially built message, the
// pending line and the expected body length. Strings of the previous message must not be
// used afterward.
func (p *Parser[M]) Reset() {
	p.state = NotStarted
	p.lines.Clear()
	p.firstLineLen = 0
	p.headersCount = 0
	p.expected = 0
	p.grammar.reset(p.message)
}

// Completed reports whether the message is fully parsed.
func (p *Parser[M]) Completed() bool {
	return p.state == Completed
}

// State returns the current state of the parser.
func (p *Parser[M]) State() State {
	return p.state
}

// Message returns the message being built. Its fields are meaningful only up to the point
// the parser has reached, e.g. the body is partial until the message is completed.
func (p *Parser[M]) Message() *M {
	return p.message
}

// Feed advances the parser as far as data allows. It returns the number of bytes consumed,
// which is either len(data) or exactly the number of bytes needed to complete the message.
// Bytes belonging to a following message are never consumed.
//
// Any error is fatal to the current message: the parser must be reset or discarded.
func (p *Parser[M]) Feed(data []byte) (consumed int, err error) {
	if p.state == Completed {
		return 0, ErrCompleted
	}

	for len(data) > 0 && p.state != Completed {
		var n int

		switch p.state {
		case ReadingBody, ReadingChunkedBody:
			n = p.readBody(data)
		default:
			var found bool
			n, found, err = p.readLine(data)
			if err == nil && found {
				err = p.processLine(p.lines.Preview())
			}
		}

		consumed += n
		data = data[n:]

		if err != nil {
			return consumed, err
		}
	}

	return consumed, nil
}

// readLine extracts a CRLF-terminated line into the current segment of the arena. If no
// terminator is found, the whole data is appended to the segment and found is false.
func (p *Parser[M]) readLine(data []byte) (n int, found bool, err error) {
	// CR might be the last byte of the previous feed and LF the first one of this
	if last, ok := p.lines.Last(); ok && last == '\r' && data[0] == '\n' {
		p.lines.Trunc(1)
		return 1, true, nil
	}

	for offset := 0; offset < len(data)-1; {
		// the last byte is excluded, as CR there can't be followed by LF in this feed
		cr := bytes.IndexByte(data[offset:len(data)-1], '\r')
		if cr == -1 {
			break
		}

		cr += offset
		if data[cr+1] == '\n' {
			return cr + 2, true, p.appendLine(data[:cr])
		}

		// lone CR is a part of the line
		offset = cr + 1
	}

	return len(data), false, p.appendLine(data)
}

func (p *Parser[M]) appendLine(data []byte) error {
	if p.state == NotStarted {
		if len(data) > p.cfg.URI.RequestLineSize.Maximal-p.lines.SegmentLength() {
			return status.ErrTooLongRequestLine
		}
	} else if len(data) > p.cfg.Headers.Space.Maximal-(p.lines.Len()-p.firstLineLen) {
		return status.ErrHeaderFieldsTooLarge
	}

	p.lines.Append(data)
	return nil
}

// keepLine finishes the current segment, so the line stays intact until Reset.
func (p *Parser[M]) keepLine() []byte {
	return p.lines.Finish()
}

// dropLine discards the current segment, so lines which aren't referenced by the message
// (chunk sizes, terminators, empty lines) don't occupy the arena.
func (p *Parser[M]) dropLine() {
	p.lines.Trunc(p.lines.SegmentLength())
}

func (p *Parser[M]) processLine(line []byte) error {
	switch p.state {
	case NotStarted:
		line = p.keepLine()
		p.firstLineLen = p.lines.Len()
		if err := p.grammar.parseFirstLine(p.message, line); err != nil {
			return err
		}

		p.state = ReadingHeaders
	case ReadingHeaders:
		if len(line) == 0 {
			return p.endOfHeaders()
		}

		return p.addHeader()
	case ReadingChunkedLength:
		size, digits, ok := hexconv.ParseUint(line)
		p.dropLine()
		if !ok || digits == 0 {
			return status.ErrBadChunkSize
		}

		if size == 0 {
			p.state = ReadingTrailerHeaders
			return nil
		}

		if size > p.cfg.Body.MaxSize-p.expected {
			return status.ErrBodyTooLarge
		}

		p.expected += size
		p.state = ReadingChunkedBody
	case ReadingChunkedTerminator:
		nonEmpty := len(line) > 0
		p.dropLine()
		if nonEmpty {
			return status.ErrBadChunkTerminator
		}

		p.state = ReadingChunkedLength
	case ReadingTrailerHeaders:
		if len(line) == 0 {
			p.state = Completed
			return nil
		}

		return p.addHeader()
	default:
		panic("BUG: http1 parser: line in a non-line state")
	}

	return nil
}

// addHeader stores the current line as a header. The name is everything before the first
// colon, the value is the rest with leading spaces skipped.
func (p *Parser[M]) addHeader() error {
	line := p.keepLine()

	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return status.ErrBadHeader
	}

	if p.headersCount++; p.headersCount > p.cfg.Headers.Number.Maximal {
		return status.ErrTooManyHeaders
	}

	p.headers.Add(uf.B2S(line[:colon]), uf.B2S(trimPrefixSpaces(line[colon+1:])))
	return nil
}

func (p *Parser[M]) endOfHeaders() error {
	p.dropLine()

	if te, found := p.headers.Get("Transfer-Encoding"); found && isChunked(te) {
		p.expected = 0
		p.state = ReadingChunkedLength
		return nil
	}

	cl, found := p.headers.Get("Content-Length")
	if !found {
		p.state = Completed
		return nil
	}

	length, ok := parseContentLength(cl)
	if !ok {
		return status.ErrBadContentLength
	}

	if length > p.cfg.Body.MaxSize {
		return status.ErrBodyTooLarge
	}

	if length == 0 {
		p.state = Completed
		return nil
	}

	p.expected = length
	p.state = ReadingBody
	return nil
}

// readBody consumes up to the remaining body length. When the body is complete, the state
// advances: fixed-length messages are completed, chunks expect their terminator.
func (p *Parser[M]) readBody(data []byte) int {
	needed := p.expected - uint64(len(*p.body))
	if uint64(len(data)) < needed {
		*p.body = append(*p.body, data...)
		return len(data)
	}

	*p.body = append(*p.body, data[:needed]...)

	if p.state == ReadingBody {
		p.state = Completed
	} else {
		p.state = ReadingChunkedTerminator
	}

	return int(needed)
}
