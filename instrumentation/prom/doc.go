// Package prom bridges a Prometheus registry to the metrics server. It
// periodically gathers a prometheus.Gatherer, encodes the metric
// families in text exposition format and publishes the payload through
// the server's Update operation. The server core stays content-agnostic;
// this package is the canonical producer for it.
package prom
