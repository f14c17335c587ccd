package domain

import "net/http"

// PayloadReader defines the contract for reading the current metrics payload.
type PayloadReader interface {
	// Payload returns the most recently published payload. The returned
	// slice must be treated as read-only.
	Payload() []byte
}

// PayloadWriter defines the contract for publishing a new metrics payload.
type PayloadWriter interface {
	// Update replaces the stored payload wholesale and returns the new
	// length in bytes.
	Update(data []byte) int
}

// PayloadStore is the combined interface for a payload store.
type PayloadStore interface {
	PayloadReader
	PayloadWriter
}

// Reporter defines a component that can expose the payload, e.g. via an
// HTTP handler mounted on an existing mux.
type Reporter interface {
	Handler() http.Handler
}
