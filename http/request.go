package http

import (
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/uri"
	"github.com/indigo-web/httpcore/kv"
	json "github.com/json-iterator/go"
)

// Request is a parsed HTTP request. Strings it holds (the target, header pairs, query
// parameters) may reference parser-owned memory, so they stay valid only until the
// parser is reset. Clone the request in order to keep it around for longer.
type Request struct {
	Method method.Method
	// Target is the request-target exactly as it appeared in the request line.
	Target string
	// Protocol is the version token, e.g. "HTTP/1.1".
	Protocol string
	URL      uri.URL
	Headers  *kv.Storage
	Body     []byte
}

// NewRequest returns a request with allocated headers storage.
func NewRequest() *Request {
	return &Request{
		Headers: kv.New(),
		URL:     uri.URL{Query: kv.New()},
	}
}

// Path returns the percent-encoded path of the request target.
func (r *Request) Path() string {
	return r.URL.Path
}

// JSON unmarshalls the body into the model.
func (r *Request) JSON(model any) error {
	return json.ConfigDefault.Unmarshal(r.Body, model)
}

// Clone returns a deep copy that doesn't share any memory with the original request.
func (r *Request) Clone() *Request {
	clone := &Request{
		Method:   r.Method,
		Target:   string([]byte(r.Target)),
		Protocol: string([]byte(r.Protocol)),
		URL:      r.URL,
		Headers:  cloneStorage(r.Headers),
		Body:     append([]byte(nil), r.Body...),
	}
	clone.URL.Path = string([]byte(r.URL.Path))
	clone.URL.Protocol = string([]byte(r.URL.Protocol))
	clone.URL.Host = string([]byte(r.URL.Host))
	clone.URL.Query = cloneStorage(r.URL.Query)

	return clone
}

// Reset brings the request back into its initial state, keeping allocated memory.
func (r *Request) Reset() {
	r.Method = method.Unknown
	r.Target = ""
	r.Protocol = ""
	r.Headers.Clear()
	if r.URL.Query == nil {
		r.URL.Query = kv.New()
	}

	r.URL = uri.URL{Query: r.URL.Query.Clear()}
	r.Body = r.Body[:0]
}

// cloneStorage copies the strings too, as they may point into a parser's arena.
func cloneStorage(s *kv.Storage) *kv.Storage {
	if s == nil {
		return kv.New()
	}

	clone := kv.NewPrealloc(s.Len())
	for key, value := range s.Pairs() {
		clone.Add(string([]byte(key)), string([]byte(value)))
	}

	return clone
}
