package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records graphstream metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordChunkEmitted records one chunk reaching the sink.
	// kind is "token" for partial emissions and "output" for whole messages.
	RecordChunkEmitted(ctx context.Context, kind string)

	// RecordChunkDeduped records a suppressed re-emission.
	RecordChunkDeduped(ctx context.Context)

	// RecordRunTracked records a run entering the registry.
	// kind is "model" or "node".
	RecordRunTracked(ctx context.Context, kind string)

	// RecordExtraction records one node-result traversal with its duration
	// and the number of messages it forwarded.
	RecordExtraction(ctx context.Context, duration time.Duration, found int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	chunksEmitted   metric.Int64Counter
	chunksDeduped   metric.Int64Counter
	runsTracked     metric.Int64Counter
	extractLatency  metric.Float64Histogram
	extractMessages metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("graphstream")

	chunksEmitted, err := meter.Int64Counter("graphstream.chunks.emitted",
		metric.WithDescription("Number of chunks forwarded to the sink"),
	)
	if err != nil {
		return nil, err
	}

	chunksDeduped, err := meter.Int64Counter("graphstream.chunks.deduped",
		metric.WithDescription("Number of re-emissions suppressed by the seen-set"),
	)
	if err != nil {
		return nil, err
	}

	runsTracked, err := meter.Int64Counter("graphstream.runs.tracked",
		metric.WithDescription("Number of runs registered for streaming"),
	)
	if err != nil {
		return nil, err
	}

	extractLatency, err := meter.Float64Histogram("graphstream.extract.latency_ms",
		metric.WithDescription("Node-result extraction latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	extractMessages, err := meter.Int64Histogram("graphstream.extract.messages",
		metric.WithDescription("Messages forwarded per node-result extraction"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		chunksEmitted:   chunksEmitted,
		chunksDeduped:   chunksDeduped,
		runsTracked:     runsTracked,
		extractLatency:  extractLatency,
		extractMessages: extractMessages,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordChunkEmitted records one chunk reaching the sink.
func (m *otelMetrics) RecordChunkEmitted(ctx context.Context, kind string) {
	m.chunksEmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordChunkDeduped records a suppressed re-emission.
func (m *otelMetrics) RecordChunkDeduped(ctx context.Context) {
	m.chunksDeduped.Add(ctx, 1)
}

// RecordRunTracked records a run entering the registry.
func (m *otelMetrics) RecordRunTracked(ctx context.Context, kind string) {
	m.runsTracked.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordExtraction records one node-result traversal.
func (m *otelMetrics) RecordExtraction(ctx context.Context, duration time.Duration, found int) {
	m.extractLatency.Record(ctx, float64(duration.Microseconds())/1000.0)
	m.extractMessages.Record(ctx, int64(found))
}
