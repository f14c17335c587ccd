package prom

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/syscll/metrics-server/domain"
)

// DefaultInterval is how often metrics are gathered and published unless
// overridden in Config.
const DefaultInterval = 10 * time.Second

// Config controls how the collector gathers metrics.
type Config struct {
	// Gatherer supplies the metric families. Defaults to
	// prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Interval between publishes. Defaults to DefaultInterval.
	Interval time.Duration
}

// collector bridges a Prometheus registry to a payload store: each cycle
// gathers the registry, encodes the families in text exposition format
// and publishes the result wholesale.
type collector struct {
	store    domain.PayloadWriter
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// Start launches a background goroutine that periodically gathers cfg's
// Gatherer and publishes the encoded payload to store. It returns a
// function that stops the goroutine; calling it more than once is safe.
func Start(store domain.PayloadWriter, cfg Config, logger *zap.Logger) (stop func()) {
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &collector{store: store, gatherer: cfg.Gatherer, logger: logger}

	done := make(chan struct{})
	var once sync.Once
	ticker := time.NewTicker(cfg.Interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.collect(); err != nil {
					c.logger.Error("metrics collection failed", zap.Error(err))
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

// Collect gathers g once and publishes the encoded payload to store. It
// is useful for an immediate publish before the first tick, and in tests.
func Collect(store domain.PayloadWriter, g prometheus.Gatherer) error {
	c := &collector{store: store, gatherer: g, logger: zap.NewNop()}
	return c.collect()
}

func (c *collector) collect() error {
	mfs, err := c.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}

	c.store.Update(buf.Bytes())
	return nil
}
