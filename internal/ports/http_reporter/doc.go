// Package http_reporter provides the HTTP surface for exposing the
// stored metrics payload. It's intended to be scraped by monitoring
// systems that collect the current snapshot on a fixed interval.
//
// The package implements the standard http.Handler interface and can be
// mounted on any HTTP router, or run standalone through Server which
// owns the listener and the serving loop.
package http_reporter
