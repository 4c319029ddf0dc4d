// Package observability wires the logger, metrics registry and tracer that
// every module receives at construction time.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// NoOpLogger discards everything; tests pass it where a logger is required.
var NoOpLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Config controls logging and metrics behavior.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	// MetricsAddress is where the prometheus handler is served, e.g. ":9090".
	MetricsAddress string `yaml:"metrics_address"`
}

// Observability bundles the cross-cutting components handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer
}

// Init builds the shared observability components. The tracer comes from the
// global otel provider; when no SDK is installed it is a no-op, which is what
// tests and local runs want.
func Init(cfg Config, serviceName string) *Observability {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Tracer:   otel.Tracer(serviceName),
	}
}
