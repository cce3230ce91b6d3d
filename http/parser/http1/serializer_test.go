package http1

import (
	"bufio"
	"bytes"
	"io"
	stdhttp "net/http"
	"strings"
	"testing"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/httpcore/config"
	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/http/uri"
	"github.com/stretchr/testify/require"
)

func BenchmarkSerializer(b *testing.B) {
	serializer := NewSerializer(config.Default())
	response := http.NewResponse().
		Header("Content-Type", "text/plain").
		String(strings.Repeat("a", 1024))

	b.SetBytes(1024)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = serializer.Response(io.Discard, response)
	}
}

func readResponse(t *testing.T, data []byte) (*stdhttp.Response, string) {
	stdreq, err := stdhttp.NewRequest(stdhttp.MethodGet, "/", nil)
	require.NoError(t, err)
	resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewReader(data)), stdreq)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, string(body)
}

func TestSerializer_Response(t *testing.T) {
	t.Run("default response", func(t *testing.T) {
		var buff bytes.Buffer
		require.NoError(t, NewSerializer(config.Default()).Response(&buff, http.NewResponse()))
		require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n", buff.String())
	})

	t.Run("headers and body", func(t *testing.T) {
		var buff bytes.Buffer
		response := http.Respond(status.Teapot).
			Header("Hello", "nether").
			Header("Something", "special", "here").
			String("Hello, world!")
		require.NoError(t, NewSerializer(config.Default()).Response(&buff, response))

		resp, body := readResponse(t, buff.Bytes())
		require.Equal(t, int(status.Teapot), resp.StatusCode)
		require.Equal(t, []string{"nether"}, resp.Header["Hello"])
		require.Equal(t, []string{"special", "here"}, resp.Header["Something"])
		require.Equal(t, int64(len("Hello, world!")), resp.ContentLength)
		require.Equal(t, "Hello, world!", body)
	})

	t.Run("custom status", func(t *testing.T) {
		var buff bytes.Buffer
		response := http.Respond(status.OK).WithStatus("Alright")
		require.NoError(t, NewSerializer(config.Default()).Response(&buff, response))
		require.True(t, strings.HasPrefix(buff.String(), "HTTP/1.1 200 Alright\r\n"))
	})

	t.Run("default headers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Headers.Default = map[string]string{
			"Server": "httpcore",
			"Lorem":  "ipsum, something else",
		}
		serializer := NewSerializer(cfg)

		for range 2 {
			var buff bytes.Buffer
			response := http.NewResponse().Header("lorem", "overridden")
			require.NoError(t, serializer.Response(&buff, response))

			resp, _ := readResponse(t, buff.Bytes())
			require.Equal(t, []string{"httpcore"}, resp.Header["Server"])
			require.Equal(t, []string{"overridden"}, resp.Header["Lorem"])
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var buff bytes.Buffer
		response := http.NewResponse().JSON(map[string]int{"answer": 42})
		require.NoError(t, NewSerializer(config.Default()).Response(&buff, response))

		resp, body := readResponse(t, buff.Bytes())
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.JSONEq(t, `{"answer": 42}`, body)
	})

	t.Run("chunked", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.ChunkSize = 7
		payload := strings.Repeat("abcdefgh", 100)
		response := http.NewResponse().
			Header("Transfer-Encoding", "chunked").
			String(payload)

		var buff bytes.Buffer
		require.NoError(t, NewSerializer(cfg).Response(&buff, response))
		require.NotContains(t, buff.String(), "Content-Length")

		resp, body := readResponse(t, buff.Bytes())
		require.Equal(t, []string{"chunked"}, resp.TransferEncoding)
		require.Equal(t, payload, body)
	})

	t.Run("round trip", func(t *testing.T) {
		var buff bytes.Buffer
		response := http.Respond(status.NotFound).
			Header("X-Reason", "missing").
			String("nothing here")
		require.NoError(t, NewSerializer(config.Default()).Response(&buff, response))

		parser := NewResponseParser(config.Default())
		n, err := parser.Feed(buff.Bytes())
		require.NoError(t, err)
		require.Equal(t, buff.Len(), n)
		require.True(t, parser.Completed())

		parsed := parser.Message()
		require.Equal(t, status.NotFound, parsed.Code)
		require.Equal(t, "Not Found", parsed.Status)
		require.Equal(t, "missing", parsed.Headers.Value("x-reason"))
		require.Equal(t, "nothing here", string(parsed.Body))
	})
}

func TestSerializer_Request(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		request := http.NewRequest()
		request.Method = method.POST
		request.Target = "/upload?name=a%20b"
		request.Headers.Add("Host", "localhost")
		request.Body = []byte("Hello, world!")

		var buff bytes.Buffer
		require.NoError(t, NewSerializer(config.Default()).Request(&buff, request))

		parser := NewRequestParser(config.Default())
		n, err := parser.Feed(buff.Bytes())
		require.NoError(t, err)
		require.Equal(t, buff.Len(), n)

		parsed := parser.Message()
		require.Equal(t, method.POST, parsed.Method)
		require.Equal(t, "HTTP/1.1", parsed.Protocol)
		require.Equal(t, "/upload", parsed.Path())
		require.Equal(t, "a b", parsed.URL.Query.Value("name"))
		require.Equal(t, "localhost", parsed.Headers.Value("host"))
		require.Equal(t, "Hello, world!", string(parsed.Body))
	})

	t.Run("from URL", func(t *testing.T) {
		u, err := uri.ParseRequest("http://example.com:8080/api?q=hello+world")
		require.NoError(t, err)

		request := http.NewRequest()
		request.Method = method.GET
		request.URL = u

		var buff bytes.Buffer
		require.NoError(t, NewSerializer(config.Default()).Request(&buff, request))

		stdreq, err := stdhttp.ReadRequest(bufio.NewReader(&buff))
		require.NoError(t, err)
		require.Equal(t, stdhttp.MethodGet, stdreq.Method)
		require.Equal(t, "example.com:8080", stdreq.Host)
		require.Equal(t, "/api", stdreq.URL.Path)
		require.Equal(t, "hello world", stdreq.URL.Query().Get("q"))
	})

	t.Run("unknown method", func(t *testing.T) {
		err := NewSerializer(config.Default()).Request(io.Discard, http.NewRequest())
		require.ErrorIs(t, err, status.ErrMethodNotImplemented)
	})
}

func TestAppendChunked(t *testing.T) {
	t.Run("single chunk", func(t *testing.T) {
		require.Equal(t, "d\r\nHello, world!\r\n0\r\n\r\n", string(AppendChunked(nil, []byte("Hello, world!"), 0)))
	})

	t.Run("empty body", func(t *testing.T) {
		require.Equal(t, "0\r\n\r\n", string(AppendChunked(nil, nil, 16)))
	})

	t.Run("many chunks", func(t *testing.T) {
		parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
		payload := strings.Repeat("abcdefgh", 640)
		data := AppendChunked(nil, []byte(payload), 64)

		var body []byte
		for len(data) > 0 {
			chunk, extra, err := parser.Parse(data, false)
			if err != nil {
				require.EqualError(t, err, io.EOF.Error())
				break
			}

			body = append(body, chunk...)
			data = extra
		}

		require.Equal(t, payload, string(body))
	})

	t.Run("parses back", func(t *testing.T) {
		payload := strings.Repeat("0123456789", 33)
		raw := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n" +
			string(AppendChunked(nil, []byte(payload), 16))
		parser := NewRequestParser(config.Default())

		for i := 1; i < len(raw); i += 5 {
			n, err := feedPartially(parser, raw, i)
			require.NoError(t, err)
			require.Equal(t, len(raw), n)
			require.Equal(t, payload, string(parser.Message().Body))
			parser.Reset()
		}
	})
}

func TestSerializer_HeadResponse(t *testing.T) {
	const body = "Hello, world!"
	var buff bytes.Buffer
	response := http.NewResponse().String(body)
	require.NoError(t, NewSerializer(config.Default()).HeadResponse(&buff, response))
	require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 13\r\n\r\n", buff.String())

	stdreq, err := stdhttp.NewRequest(stdhttp.MethodHead, "/", nil)
	require.NoError(t, err)
	resp, err := stdhttp.ReadResponse(bufio.NewReader(&buff), stdreq)
	require.NoError(t, err)
	require.Equal(t, int64(len(body)), resp.ContentLength)
}
