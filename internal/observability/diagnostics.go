package observability

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"go.opentelemetry.io/otel/metric"
)

// DiagnosticsServer exposes a Prometheus /metrics scrape endpoint for the
// lifetime of a long-running `polyloc summary --serve-metrics` invocation
// over a large tree, adapted from codefang's DiagnosticsServer (scaled
// down: polyloc is a one-shot CLI, so there is no /healthz or /readyz to
// serve — those exist to let an orchestrator probe a long-lived process).
type DiagnosticsServer struct {
	server   *http.Server
	listener net.Listener
}

// NewDiagnosticsServer starts an HTTP server at addr serving /metrics
// backed by the scan meter's Prometheus registry.
func NewDiagnosticsServer(addr string) (*DiagnosticsServer, metric.Meter, error) {
	handler, mp, err := PrometheusHandler()
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	var lc net.ListenConfig
	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &DiagnosticsServer{
		server:   &http.Server{Handler: mux},
		listener: listener,
	}

	go func() {
		_ = srv.server.Serve(listener)
	}()

	return srv, mp.Meter("polyloc"), nil
}

// Addr returns the server's bound address, useful when addr was passed as
// ":0" to pick an ephemeral port.
func (s *DiagnosticsServer) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops the server, closing its listener.
func (s *DiagnosticsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
