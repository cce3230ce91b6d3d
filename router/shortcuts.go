package router

import (
	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
)

// GET is a shortcut for registering GET-requests. Like MustAdd, it panics on invalid routes.
func (r *Router) GET(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.GET, pattern, handler)
}

// HEAD is a shortcut for registering HEAD-requests.
func (r *Router) HEAD(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.HEAD, pattern, handler)
}

// POST is a shortcut for registering POST-requests.
func (r *Router) POST(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.POST, pattern, handler)
}

// PUT is a shortcut for registering PUT-requests.
func (r *Router) PUT(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.PUT, pattern, handler)
}

// DELETE is a shortcut for registering DELETE-requests.
func (r *Router) DELETE(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.DELETE, pattern, handler)
}

// OPTIONS is a shortcut for registering OPTIONS-requests.
func (r *Router) OPTIONS(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.OPTIONS, pattern, handler)
}

// PATCH is a shortcut for registering PATCH-requests.
func (r *Router) PATCH(pattern string, handler http.Handler) *Router {
	return r.MustAdd(method.PATCH, pattern, handler)
}
