package config

import "math"

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}

	URIRequestLineSize struct {
		Default, Maximal int
	}

	NETWriteBufferSize struct {
		Default, Maximal int
	}
)

type (
	URI struct {
		// RequestLineSize limits the first line of a message, either a request or a status
		// line. The Default value is the initial capacity of the buffer holding it.
		RequestLineSize URIRequestLineSize
		// ParamsPrealloc is the initial capacity of the storages holding query and path
		// parameters.
		ParamsPrealloc int
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented, trailers
		// included.
		Number HeadersNumber
		// Space limits the amount of memory occupied by the headers section. Chunk-size
		// lines and trailers are accounted here, too.
		Space HeadersSpace
		// Default headers are included into every response written by the server, unless
		// explicitly overridden by the handler.
		Default map[string]string `test:"nullable"`
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. 0 will discard
		// any message with a body (status.ErrBodyTooLarge).
		// In order to disable the setting, use the math.MaxUint64 value.
		MaxSize uint64
		// ChunkSize is the size of the chunks the serializer splits bodies into when
		// writing them with chunked transfer encoding.
		ChunkSize int
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// WriteBufferSize is the initial size of the buffer a response is serialized into.
		// Responses bigger than Maximal are written without being pooled afterwards.
		WriteBufferSize NETWriteBufferSize
	}
)

// Config holds settings used across various parts of httpcore, mainly restrictions, limitations
// and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: URIRequestLineSize{
				Default: 2 * 1024,
				// allow at most 16kb of request line, which is effectively pretty much tolerant,
				// considering most web-entities limit it to 4-8kb.
				Maximal: 16 * 1024,
			},
			ParamsPrealloc: 5,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 100,
			},
			Space: HeadersSpace{
				Default: 1 * 1024,  // 1kb for headers must be fairly enough in most cases.
				Maximal: 64 * 1024, // However, there also might be extremely long cookies.
			},
			Default: make(map[string]string),
		},
		Body: Body{
			MaxSize:   512 * 1024 * 1024, // 512 megabytes
			ChunkSize: 4 * 1024,
		},
		NET: NET{
			ReadBufferSize: 4 * 1024,
			WriteBufferSize: NETWriteBufferSize{
				Default: 2 * 1024,
				Maximal: 64 * 1024,
			},
		},
	}
}

// Unlimited returns a config with every limit lifted. It is handy for clients parsing
// responses from trusted peers, and for tests.
func Unlimited() *Config {
	cfg := Default()
	cfg.URI.RequestLineSize.Maximal = math.MaxInt
	cfg.Headers.Number.Maximal = math.MaxInt
	cfg.Headers.Space.Maximal = math.MaxInt
	cfg.Body.MaxSize = math.MaxUint64

	return cfg
}
