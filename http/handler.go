package http

import "github.com/indigo-web/httpcore/kv"

// Handler processes a request. Params holds the path parameters extracted by the router,
// keyed by their names; prefix routes and routes without parameters get an empty storage.
// A nil response is treated as an empty 200 OK.
type Handler func(request *Request, params *kv.Storage) *Response
