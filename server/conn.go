package server

import (
	"errors"
	"net"

	"github.com/google/uuid"
	"github.com/indigo-web/httpcore/http"
	"github.com/indigo-web/httpcore/http/method"
	"github.com/indigo-web/httpcore/http/parser/http1"
	"github.com/indigo-web/httpcore/http/status"
	"github.com/indigo-web/httpcore/kv"
	"github.com/indigo-web/httpcore/router"
	"github.com/indigo-web/utils/strcomp"
)

type connection struct {
	id     string
	server *Server
	conn   net.Conn
	parser *http1.RequestParser
	params *kv.Storage
	buff   []byte
	// pending is the part of the last read, which wasn't consumed by the parser yet. It's
	// non-empty when requests are pipelined.
	pending []byte
}

func newConnection(s *Server, conn net.Conn) *connection {
	return &connection{
		id:     uuid.NewString(),
		server: s,
		conn:   conn,
		parser: http1.NewRequestParser(s.cfg),
		params: kv.NewPrealloc(s.cfg.URI.ParamsPrealloc),
		buff:   make([]byte, s.cfg.NET.ReadBufferSize),
	}
}

func (c *connection) serve() {
	for c.handleRequest() {
	}
}

// handleRequest reads until a request is completed and answers it. False is returned when
// the connection must be closed.
func (c *connection) handleRequest() (ok bool) {
	data := c.pending
	if len(data) == 0 {
		n, err := c.conn.Read(c.buff)
		if n == 0 && err != nil {
			return false
		}

		data = c.buff[:n]
	}

	n, err := c.parser.Feed(data)
	c.pending = data[n:]
	request := c.parser.Message()

	if err != nil {
		// the connection is in an unknown state, so the only thing left is to tell why
		// and close it
		response := http.NewResponse().Error(err).Header("Connection", "close")
		c.log(request, response)
		_ = c.server.serializer.Response(c.conn, response)
		return false
	}

	if !c.parser.Completed() {
		return true
	}

	response := c.dispatch(request)
	keepAlive := isKeepAlive(request)
	if !keepAlive {
		response.Headers.Set("Connection", "close")
	}

	c.log(request, response)

	if request.Method == method.HEAD {
		err = c.server.serializer.HeadResponse(c.conn, response)
	} else {
		err = c.server.serializer.Response(c.conn, response)
	}

	if err != nil || !keepAlive {
		return false
	}

	c.parser.Reset()
	return true
}

func (c *connection) dispatch(request *http.Request) (response *http.Response) {
	route, err := c.server.router.GetInto(request.Method, request.Path(), c.params.Clear())
	switch {
	case err != nil:
		response = http.NewResponse().Error(err)

		var notAllowed *router.MethodNotAllowedError
		if errors.As(err, &notAllowed) {
			response.Header("Allow", notAllowed.AllowHeader())
		}

		return response
	case !route.Found():
		return http.NewResponse().Error(status.ErrNotFound)
	}

	defer func() {
		if r := recover(); r != nil {
			c.server.logger.Printf("%s panic while serving %s: %v", c.id, http.Escape(request.Path()), r)
			response = http.NewResponse().Error(status.ErrInternalServerError)
		}
	}()

	if response = route.Handler(request, route.Params); response == nil {
		response = http.NewResponse()
	}

	return response
}

func (c *connection) log(request *http.Request, response *http.Response) {
	c.server.logger.Printf(
		"%s %s %s %d", c.id, request.Method, http.Escape(request.Path()), response.Code,
	)
}

// isKeepAlive follows the defaults of the protocol: HTTP/1.1 keeps the connection alive
// unless asked to close, HTTP/1.0 closes it unless asked to keep alive.
func isKeepAlive(request *http.Request) bool {
	connection := request.Headers.Value("Connection")

	if request.Protocol == "HTTP/1.0" {
		return strcomp.EqualFold(connection, "keep-alive")
	}

	return !strcomp.EqualFold(connection, "close")
}
