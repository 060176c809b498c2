// Package observability provides structured logging, OpenTelemetry tracing,
// and Prometheus-backed metrics for polyloc's CLI. It is adapted directly
// from Sumatoshi-tech-codefang's internal/observability package: the same
// Config shape, the same slog/otel/prometheus wiring, scaled down from
// codefang's CLI/MCP/server multi-mode split to the single CLI mode polyloc
// runs in.
package observability

import "log/slog"

const (
	defaultServiceName       = "polyloc"
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration for one polyloc invocation.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export; spans are still created but never exported.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// DebugTrace forces 100% trace sampling when true.
	DebugTrace bool

	// SampleRatio is the trace sampling ratio (0.0 to 1.0) when DebugTrace is
	// false. Zero uses the OTel SDK default.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output, for CI and scripted use.
	LogJSON bool

	// MetricsAddr is a /metrics listen address. Nothing in this package
	// reads it; `polyloc summary` takes its metrics address from its own
	// --serve-metrics flag.
	MetricsAddr string

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on exit.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with sensible defaults for zero-config
// startup: text logging at info level, tracing disabled until an
// OTLPEndpoint is configured.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
