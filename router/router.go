package router

import (
	"strings"

	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/uri"
	"github.com/indigo-web/httpcore/kv"
)

// MatchedRoute is the result of a lookup. The zero value means nothing was found.
type MatchedRoute struct {
	Handler http.Handler
	// Params holds decoded path parameters keyed by their names.
	Params *kv.Storage
}

// Found reports whether a route was matched.
func (m MatchedRoute) Found() bool {
	return m.Handler != nil
}

// Router is a trie of path segments, each of them holding handlers keyed by methods.
//
// Pattern segments are separated by slashes and percent-decoded. A segment starting with
// a colon is a path parameter, the rest of it being the name. A trailing "*" makes the route
// a prefix one, matching its own path and every path below it:
//
//	/                    the root
//	/assets/*            /assets, /assets/app.js, /assets/css/main.css, ...
//	/profiles/:id        /profiles/55, binding id=55
//
// Routes are added during a build phase, which isn't safe for concurrent use. Once built,
// Get may be called concurrently from any number of goroutines, as it doesn't mutate anything.
// Freeze makes the boundary explicit, rejecting further routes.
type Router struct {
	root   node
	frozen bool
}

func New() *Router {
	return new(Router)
}

// Add registers the handler. Neither the route is added nor the trie is modified in any
// way when an error is returned, which is always an *InvalidRouteError.
func (r *Router) Add(m method.Method, pattern string, handler http.Handler) error {
	segments, prefix, err := r.validate(m, pattern, handler)
	if err != nil {
		return &InvalidRouteError{
			Method:  m,
			Pattern: pattern,
			Err:     err,
		}
	}

	r.root.insert(segments, prefix).methods[m] = handler
	return nil
}

func (r *Router) validate(m method.Method, pattern string, handler http.Handler) ([]segment, bool, error) {
	switch {
	case r.frozen:
		return nil, false, ErrFrozen
	case m == method.Unknown || m > method.Count:
		return nil, false, ErrUnknownMethod
	case handler == nil:
		return nil, false, ErrNilHandler
	}

	segments, prefix, err := parsePattern(pattern)
	if err != nil {
		return nil, false, err
	}

	return segments, prefix, r.root.check(segments, m, prefix)
}

// MustAdd is like Add, but panics on error. Handy for route tables built at start-up.
func (r *Router) MustAdd(m method.Method, pattern string, handler http.Handler) *Router {
	if err := r.Add(m, pattern, handler); err != nil {
		panic(err)
	}

	return r
}

// Freeze ends the build phase. Every subsequent Add fails with ErrFrozen.
func (r *Router) Freeze() *Router {
	r.frozen = true
	return r
}

// Get looks the handler up. Nothing found results in the zero MatchedRoute and no error,
// while the path found but lacking the method results in *MethodNotAllowedError. A path
// which can't be percent-decoded results in status.ErrURLDecoding.
//
// Literal segments take precedence over the path parameter at the same position. There's
// no backtracking, so once a literal segment matched, the parameter sibling isn't tried.
func (r *Router) Get(m method.Method, path string) (MatchedRoute, error) {
	return r.GetInto(m, path, kv.New())
}

// GetInto is Get, adding path parameters into the passed storage instead of a new one.
func (r *Router) GetInto(m method.Method, path string, params *kv.Storage) (MatchedRoute, error) {
	if len(path) == 0 || path[0] != '/' {
		return MatchedRoute{}, nil
	}

	current := &r.root
	rest, more := path[1:], len(path) > 1

	for more && !current.prefix {
		var raw string
		raw, rest, more = strings.Cut(rest, "/")

		seg, err := uri.Decode(raw)
		if err != nil {
			return MatchedRoute{}, err
		}

		if child, found := current.children[seg]; found {
			current = child
		} else if current.param != nil && len(seg) > 0 {
			params.Add(current.param.name, seg)
			current = current.param.node
		} else {
			return MatchedRoute{}, nil
		}
	}

	if len(current.methods) == 0 {
		return MatchedRoute{}, nil
	}

	handler, found := current.methods[m]
	if !found {
		return MatchedRoute{}, &MethodNotAllowedError{
			Method: m,
			Path:   path,
			Allow:  current.allowed(),
		}
	}

	return MatchedRoute{
		Handler: handler,
		Params:  params,
	}, nil
}
