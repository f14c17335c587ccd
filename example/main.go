package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	metricsserver "github.com/syscll/metrics-server"
	"github.com/syscll/metrics-server/config"
	"github.com/syscll/metrics-server/instrumentation/prom"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	// A dedicated registry with the Go runtime collector plus one demo
	// counter that ticks once a second.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	ticks := promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "example_ticks_total",
		Help: "Number of times the demo loop has ticked.",
	})

	server := metricsserver.New(
		metricsserver.WithMetricsPath(cfg.MetricsPath),
		metricsserver.WithLogger(logger),
	)
	if err := server.Serve(cfg.Address); err != nil {
		logger.Fatal("failed to start metrics server", zap.Error(err))
	}
	logger.Info("scrape me",
		zap.String("url", fmt.Sprintf("http://%s%s", server.Addr(), cfg.MetricsPath)),
	)

	stop := prom.Start(server, prom.Config{
		Gatherer: registry,
		Interval: 5 * time.Second,
	}, logger)
	defer stop()

	go func() {
		for range time.Tick(time.Second) {
			ticks.Inc()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		lvl,
	)
	return zap.New(core)
}
