// Package observability provides production-grade observability features
// for graphstream: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"strings"
)

// EnrichLogger adds streaming context to a logger.
// Returns a new logger with session_id and mode fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "session-123")
//	enriched.Info("streaming") // includes session_id, mode
func EnrichLogger(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("session_id", sessionID),
		slog.String("mode", "messages"),
	)
}

// LogRunRegistered logs a run entering the registry.
func LogRunRegistered(logger *slog.Logger, runID, kind string, namespace []string) {
	if logger == nil {
		return
	}
	logger.Debug("run registered",
		slog.String("run_id", runID),
		slog.String("kind", kind),
		slog.String("namespace", strings.Join(namespace, "/")),
	)
}

// LogRunDeregistered logs a run leaving the registry.
func LogRunDeregistered(logger *slog.Logger, runID, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("run deregistered",
		slog.String("run_id", runID),
		slog.String("kind", kind),
	)
}

// LogChunkEmitted logs a chunk reaching the sink.
func LogChunkEmitted(logger *slog.Logger, messageID, kind string, namespace []string) {
	if logger == nil {
		return
	}
	logger.Debug("chunk emitted",
		slog.String("message_id", messageID),
		slog.String("kind", kind),
		slog.String("namespace", strings.Join(namespace, "/")),
	)
}

// LogChunkDeduped logs a suppressed re-emission.
func LogChunkDeduped(logger *slog.Logger, messageID string) {
	if logger == nil {
		return
	}
	logger.Debug("chunk deduplicated",
		slog.String("message_id", messageID),
	)
}

// LogTokenSkipped logs a token event with an unrecognized chunk shape.
func LogTokenSkipped(logger *slog.Logger, runID string) {
	if logger == nil {
		return
	}
	logger.Debug("token skipped, unrecognized chunk shape",
		slog.String("run_id", runID),
	)
}

// LogHistoryError logs a failed chunk recording (non-fatal).
func LogHistoryError(logger *slog.Logger, sessionID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history append failed",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
}
