package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog.Logger from cfg, choosing a JSON
// or text handler the same way codefang's CLI entrypoint does.
func NewLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
	)
}
