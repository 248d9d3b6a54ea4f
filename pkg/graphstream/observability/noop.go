package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordChunkEmitted does nothing.
func (NoopMetrics) RecordChunkEmitted(_ context.Context, _ string) {}

// RecordChunkDeduped does nothing.
func (NoopMetrics) RecordChunkDeduped(_ context.Context) {}

// RecordRunTracked does nothing.
func (NoopMetrics) RecordRunTracked(_ context.Context, _ string) {}

// RecordExtraction does nothing.
func (NoopMetrics) RecordExtraction(_ context.Context, _ time.Duration, _ int) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartSessionSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartSessionSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartExtractSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartExtractSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddChunkEvent does nothing.
func (NoopSpanManager) AddChunkEvent(_ context.Context, _ string, _ []string) {}
