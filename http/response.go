package http

import (
	"errors"

	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/kv"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// why 7? There's no theory behind this number, just a guess of how many headers an
// average response carries.
const preallocRespHeaders = 7

// Response is either built by a handler or parsed from the wire. Its fields are plain,
// the methods are shortcuts for handlers building responses.
type Response struct {
	// Protocol is the version token of a parsed response. The serializer always writes
	// HTTP/1.1.
	Protocol string
	Code     status.Code
	// Status is the reason phrase. When empty, the serializer uses status.Text(Code).
	Status  string
	Headers *kv.Storage
	Body    []byte
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and pre-allocated space for response headers.
func NewResponse() *Response {
	return &Response{
		Code:    status.OK,
		Headers: kv.NewPrealloc(preallocRespHeaders),
	}
}

// Respond is a shortcut for NewResponse().WithCode(code).
func Respond(code status.Code) *Response {
	return NewResponse().WithCode(code)
}

// WithCode sets a Response code and resets a custom status text, if any.
func (r *Response) WithCode(code status.Code) *Response {
	r.Code = code
	r.Status = ""
	return r
}

// WithStatus sets a custom status text. This text does not matter at all, and usually
// totally ignored by client.
func (r *Response) WithStatus(text string) *Response {
	r.Status = text
	return r
}

// Header adds header values to a key. In case it already exists the values will
// be appended.
func (r *Response) Header(key string, values ...string) *Response {
	for _, value := range values {
		r.Headers.Add(key, value)
	}

	return r
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.Body = body
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.Body = append(r.Body, b...)
	return len(b), nil
}

// TryJSON receives a model (must be a pointer to the structure) and returns a new Response
// object and an error
func (r *Response) TryJSON(model any) (*Response, error) {
	// the body might be a string converted without copying, so must not be overwritten
	r.Body = nil
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.setContentType("application/json"), err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error returns the response with a code corresponding to the error. Errors, which aren't
// status.HTTPError, result in 500 Internal Server Error without leaking their text.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	r.Body = nil

	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		return r.WithCode(httpErr.Code).String(httpErr.Message)
	}

	return r.WithCode(status.InternalServerError)
}

// Reset brings the response back into its initial state, keeping the headers storage.
func (r *Response) Reset() {
	r.Protocol = ""
	r.Code = status.OK
	r.Status = ""
	r.Headers.Clear()
	r.Body = nil
}

func (r *Response) setContentType(value string) *Response {
	r.Headers.Set("Content-Type", value)
	return r
}
