package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the graphstream tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("graphstream")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartSessionSpan starts a span covering one streaming session.
	StartSessionSpan(ctx context.Context, sessionID string) (context.Context, trace.Span)

	// StartExtractSpan starts a span for one node-result extraction.
	StartExtractSpan(ctx context.Context, runID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddChunkEvent records an emitted chunk on the span in context.
	AddChunkEvent(ctx context.Context, messageID string, namespace []string)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartSessionSpan starts a span covering one streaming session.
func (m *otelSpanManager) StartSessionSpan(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "graphstream.session",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartExtractSpan starts a span for one node-result extraction.
func (m *otelSpanManager) StartExtractSpan(ctx context.Context, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "graphstream.extract",
		trace.WithAttributes(
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddChunkEvent records an emitted chunk on the span in context.
func (m *otelSpanManager) AddChunkEvent(ctx context.Context, messageID string, namespace []string) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent("chunk", trace.WithAttributes(
		attribute.String("message.id", messageID),
		attribute.String("namespace", strings.Join(namespace, "/")),
	))
}
