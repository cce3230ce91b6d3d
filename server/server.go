package server

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"

	"github.com/indigo-web/httpcore/config"
	"github.com/indigo-web/httpcore/http/parser/http1"
	"github.com/indigo-web/httpcore/router"
	"golang.org/x/sync/errgroup"
)

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

type Option func(*Server)

// WithLogger replaces the default logger, which is log.Default(). Pass nil to disable
// logging.
func WithLogger(logger Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = nopLogger{}
		}

		s.logger = logger
	}
}

// Server is a minimal HTTP/1.1 server: every connection owns a request parser, requests are
// dispatched through the router and answered in order of arrival.
type Server struct {
	cfg        *config.Config
	router     *router.Router
	serializer *http1.Serializer
	logger     Logger
}

// New returns a server dispatching requests through the router. The router is frozen,
// as it's going to be read concurrently by the connections.
func New(cfg *config.Config, r *router.Router, opts ...Option) *Server {
	s := &Server{
		cfg:        cfg,
		router:     r.Freeze(),
		serializer: http1.NewSerializer(cfg),
		logger:     log.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Serve accepts connections until the context is done or the listener is closed, in which
// case all the open connections are closed and nil is returned once every connection is
// finished. Any other accept error stops the server in the same way, but is returned.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	conns := newConnSet()

	g.Go(func() error {
		<-ctx.Done()
		_ = listener.Close()
		conns.closeAll()
		return nil
	})

	g.Go(func() error {
		// the accept loop is over for whatever reason, so must be the connections
		defer cancel()

		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}

				return err
			}

			if !conns.add(conn) {
				_ = conn.Close()
				return nil
			}

			g.Go(func() error {
				defer conns.remove(conn)
				s.ServeConn(conn)
				return nil
			})
		}
	})

	return g.Wait()
}

// ServeConn serves a single connection until the peer closes it, an unrecoverable error
// occurs or the client asks for the connection to be closed. The connection is always
// closed upon return.
func (s *Server) ServeConn(conn net.Conn) {
	newConnection(s, conn).serve()
	_ = conn.Close()
}

type connSet struct {
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
}

func newConnSet() *connSet {
	return &connSet{conns: make(map[net.Conn]struct{})}
}

func (c *connSet) add(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	c.conns[conn] = struct{}{}
	return true
}

func (c *connSet) remove(conn net.Conn) {
	c.mu.Lock()
	delete(c.conns, conn)
	c.mu.Unlock()
}

func (c *connSet) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for conn := range c.conns {
		_ = conn.Close()
	}
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
