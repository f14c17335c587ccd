package http_reporter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// Server owns the listener and the serving loop for a payload handler.
// Start binds synchronously so startup failures surface to the caller,
// then serves in the background until the process exits or Shutdown is
// called.
type Server struct {
	ln     net.Listener
	srv    *http.Server
	logger *zap.Logger
}

// NewServer wraps handler in a Server. Transport-level errors raised by
// the serving loop are logged through logger and never stop the loop.
func NewServer(handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Handler:  handler,
			ErrorLog: zap.NewStdLog(logger),
		},
		logger: logger,
	}
}

// Start binds a TCP listener at addr and begins serving on a background
// goroutine. It returns before any request is accepted; a bind failure
// is reported synchronously and nothing is left running.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	s.ln = ln

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serving loop terminated", zap.Error(err))
		}
	}()

	return nil
}

// Addr reports the listener's bound address. Useful when Start was given
// an ephemeral port such as "127.0.0.1:0".
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Shutdown closes the listener and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
