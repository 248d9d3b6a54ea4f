package graphstream

import (
	"log/slog"

	"github.com/randalmurphal/graphstream/pkg/graphstream/observability"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the structured logger for the handler.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMetrics sets the metrics recorder for the handler.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(h *Handler) {
		if m != nil {
			h.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used to trace node-result extraction.
// Default: observability.NoopSpanManager.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(h *Handler) {
		if sm != nil {
			h.spans = sm
		}
	}
}

// WithMaxDepth sets the extraction depth cap.
// Default: 5
//
// The cap bounds traversal cost on deep or cyclic node results. Values are
// found at depths strictly below the cap; lowering it narrows discovery,
// raising it admits deeper nesting.
func WithMaxDepth(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxDepth = n
		}
	}
}

// WithNamespaceSeparator sets the separator used to split the checkpoint
// namespace metadata field into path segments.
// Default: NamespaceSep ("|")
func WithNamespaceSeparator(sep string) Option {
	return func(h *Handler) {
		if sep != "" {
			h.sep = sep
		}
	}
}
