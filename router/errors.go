package router

import (
	"errors"
	"strings"

	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/status"
)

var (
	ErrParamNameMismatch = errors.New("path parameter name differs from the one already bound at this position")
	ErrDuplicateRoute    = errors.New("route is already registered")
	ErrPrefixConflict    = errors.New("path is already covered by a prefix route")
	ErrPrefixOverlap     = errors.New("prefix route overlaps already registered routes")
	ErrNotLeafPrefix     = errors.New("wildcard is allowed only as the last segment")
	ErrBadPattern        = errors.New("malformed route pattern")
	ErrUnknownMethod     = errors.New("unknown method")
	ErrNilHandler        = errors.New("handler must not be nil")
	ErrFrozen            = errors.New("router is frozen, routes can't be added anymore")
)

// InvalidRouteError is returned by Add. The route table is left untouched.
type InvalidRouteError struct {
	Method  method.Method
	Pattern string
	Err     error
}

func (i *InvalidRouteError) Error() string {
	return "invalid route " + i.Method.String() + " " + i.Pattern + ": " + i.Err.Error()
}

func (i *InvalidRouteError) Unwrap() error {
	return i.Err
}

// MethodNotAllowedError is returned by Get when the path is registered, but not for the
// requested method. It unwraps into status.ErrMethodNotAllowed.
type MethodNotAllowedError struct {
	Method method.Method
	Path   string
	// Allow lists methods registered for the path, ordered as method.List is.
	Allow []method.Method
}

func (m *MethodNotAllowedError) Error() string {
	return "method " + m.Method.String() + " is not allowed for " + m.Path
}

func (m *MethodNotAllowedError) Unwrap() error {
	return status.ErrMethodNotAllowed
}

// AllowHeader renders Allow as the value of the Allow header.
func (m *MethodNotAllowedError) AllowHeader() string {
	var b strings.Builder
	for i, allowed := range m.Allow {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(allowed.String())
	}

	return b.String()
}
