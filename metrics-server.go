package metrics_server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/syscll/metrics-server/internal/ports/http_reporter"
	"github.com/syscll/metrics-server/storage/inmemory"
)

// DefaultMetricsPath is the request path answered with the payload unless
// overridden with WithMetricsPath.
const DefaultMetricsPath = "/metrics"

// ErrAlreadyServing is returned by Serve when the server is already
// bound to an address.
var ErrAlreadyServing = errors.New("metrics-server: already serving")

// Server holds the latest metrics payload and exposes it over HTTP. The
// payload is opaque to the server: producers publish whatever byte
// sequence they computed and scrapers receive it verbatim.
//
// A Server is safe for concurrent use by any number of producers and
// request handlers.
type Server struct {
	store  *inmemory.Store
	logger *zap.Logger
	path   string

	mu   sync.Mutex
	http *http_reporter.Server
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsPath overrides the request path the payload is served on.
func WithMetricsPath(path string) Option {
	return func(s *Server) { s.path = path }
}

// WithLogger overrides the logger used for per-request and serving loop
// errors. The default logs errors as JSON to stderr.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a Server with an empty payload. No backing storage is
// allocated until the first Update, and nothing is served until Serve.
func New(opts ...Option) *Server {
	s := &Server{
		store:  inmemory.NewStore(),
		logger: defaultLogger(),
		path:   DefaultMetricsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update replaces the stored payload wholesale with a copy of data and
// returns the new length. Readers observe either the previous payload or
// the new one in full, never a mix of the two.
func (s *Server) Update(data []byte) int {
	return s.store.Update(data)
}

// Handler returns the payload handler alone, for mounting on an existing
// mux instead of (or in addition to) calling Serve.
func (s *Server) Handler() http.Handler {
	return http_reporter.NewHandler(s.store, s.path, s.logger)
}

// Serve binds a listener at addr and serves the payload in the
// background until the process exits or Shutdown is called. The bind is
// synchronous: an unbindable address is reported here, before any
// request can be accepted. Serve itself does not block.
func (s *Server) Serve(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.http != nil {
		return ErrAlreadyServing
	}

	srv := http_reporter.NewServer(s.Handler(), s.logger)
	if err := srv.Start(addr); err != nil {
		return err
	}
	s.http = srv

	s.logger.Info("metrics server listening",
		zap.String("addr", srv.Addr().String()),
		zap.String("path", s.path),
	)
	return nil
}

// Addr reports the bound address after a successful Serve, or "" when
// the server is not serving.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.http == nil {
		return ""
	}
	return s.http.Addr().String()
}

// Shutdown stops the serving loop and drains in-flight requests. It is a
// no-op when the server is not serving. The payload itself survives a
// shutdown; a later Serve exposes it again.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.http = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// defaultLogger mirrors the reference behavior of writing errors to
// stderr: JSON encoded, error level and above only.
func defaultLogger() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		zapcore.ErrorLevel,
	)
	return zap.New(core)
}
