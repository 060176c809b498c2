package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	metricFilesScanned  = "polyloc.files.scanned"
	metricLinesCounted  = "polyloc.lines.counted"
	metricScanDuration  = "polyloc.scan.duration.seconds"
	metricScanErrors    = "polyloc.scan.errors.total"

	attrLang   = "lang"
	attrResult = "result"
)

// durationBucketBoundaries covers single-file scans (microseconds) up to
// whole-tree walks of large monorepos (minutes).
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300}

// ScanMetrics holds the OTel instruments recorded once per scanned file,
// mirroring the shape of codefang's REDMetrics but scoped to polyloc's
// count/detect pipeline instead of request handling.
type ScanMetrics struct {
	filesScanned metric.Int64Counter
	linesCounted metric.Int64Counter
	scanDuration metric.Float64Histogram
	scanErrors   metric.Int64Counter
}

// NewScanMetrics creates the scan instruments from mt.
func NewScanMetrics(mt metric.Meter) (*ScanMetrics, error) {
	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	filesScanned, err := mt.Int64Counter(metricFilesScanned, metric.WithDescription("Files scanned"), metric.WithUnit("{file}"))
	record(err)
	linesCounted, err := mt.Int64Counter(metricLinesCounted, metric.WithDescription("Lines counted"), metric.WithUnit("{line}"))
	record(err)
	scanDuration, err := mt.Float64Histogram(metricScanDuration, metric.WithDescription("Per-file scan duration"), metric.WithUnit("s"), metric.WithExplicitBucketBoundaries(durationBucketBoundaries...))
	record(err)
	scanErrors, err := mt.Int64Counter(metricScanErrors, metric.WithDescription("Scan errors"), metric.WithUnit("{error}"))
	record(err)

	if firstErr != nil {
		return nil, firstErr
	}

	return &ScanMetrics{
		filesScanned: filesScanned,
		linesCounted: linesCounted,
		scanDuration: scanDuration,
		scanErrors:   scanErrors,
	}, nil
}

// RecordFile records one completed file scan.
func (m *ScanMetrics) RecordFile(ctx context.Context, lang string, lines int64, seconds float64) {
	attrs := metric.WithAttributes(attribute.String(attrLang, lang))
	m.filesScanned.Add(ctx, 1, attrs)
	m.linesCounted.Add(ctx, lines, attrs)
	m.scanDuration.Record(ctx, seconds, attrs)
}

// RecordError records one failed file scan.
func (m *ScanMetrics) RecordError(ctx context.Context, reason string) {
	m.scanErrors.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, reason)))
}

// PrometheusHandler creates a Prometheus exporter backed by its own
// registry and a fresh OTel MeterProvider reading from it, returning the
// scrape handler and the MeterProvider so callers can derive a Meter for
// NewScanMetrics (adapted from codefang's observability.PrometheusHandler).
func PrometheusHandler() (http.Handler, *sdkmetric.MeterProvider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), mp, nil
}
