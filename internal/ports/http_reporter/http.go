package http_reporter

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/syscll/metrics-server/domain"
)

// NewHandler creates an HTTP handler that serves the current payload from
// the given store. Only GET requests for path are answered with the
// payload; any other method yields 405 and any other path 404, both with
// an empty body. No Content-Type is forced onto the response.
func NewHandler(store domain.PayloadReader, path string, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// The payload is copied out of the store before the write, so the
		// store lock is never held across a network write to a slow client.
		if _, err := w.Write(store.Payload()); err != nil {
			// The client went away mid-write. Nothing to retry.
			logger.Error("failed to write payload", zap.Error(err))
		}
	})
}
