package status

// HTTPError is an error carrying the status code a server should respond with when
// it surfaces. All the errors produced by the parser and the uri package are HTTPError
// values, so a transport can map any of them onto a response without a type switch.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf returns the code the error should be answered with. Errors that aren't
// HTTPError are considered internal.
func CodeOf(err error) Code {
	for err != nil {
		if httpErr, ok := err.(HTTPError); ok {
			return httpErr.Code
		}

		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}

		err = unwrapper.Unwrap()
	}

	return InternalServerError
}

// framing errors
var (
	ErrBadRequestLine          = NewError(BadRequest, "malformed request line")
	ErrBadStatusLine           = NewError(BadRequest, "malformed status line")
	ErrBadStatusCode           = NewError(BadRequest, "malformed status code")
	ErrBadHeader               = NewError(BadRequest, "malformed header line")
	ErrBadContentLength        = NewError(BadRequest, "Content-Length is not a valid unsigned integer")
	ErrBadChunkSize            = NewError(BadRequest, "chunk size is not a valid hexadecimal number")
	ErrBadChunkTerminator      = NewError(BadRequest, "expected CRLF after the chunk data")
	ErrTooLongRequestLine      = NewError(RequestURITooLong, "request line is too long")
	ErrHeaderFieldsTooLarge    = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders          = NewError(RequestHeaderFieldsTooLarge, "too many headers")
	ErrBodyTooLarge            = NewError(RequestEntityTooLarge, "request body is too large")
	ErrMethodNotImplemented    = NewError(NotImplemented, "request method is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)

// request target errors
var (
	ErrURLDecoding         = NewError(BadRequest, "invalid urlencoded sequence")
	ErrBadTarget           = NewError(BadRequest, "malformed request target")
	ErrBadPort             = NewError(BadRequest, "malformed port")
	ErrUnknownDefaultPort  = NewError(BadRequest, "no known default port for the protocol")
	ErrFragmentNotAllowed  = NewError(BadRequest, "fragments are not allowed in the request target")
	ErrProhibitedCharacter = NewError(BadRequest, "prohibited character in the request target")
)

// routing errors
var (
	ErrNotFound            = NewError(NotFound, "not found")
	ErrMethodNotAllowed    = NewError(MethodNotAllowed, "method not allowed")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
)
