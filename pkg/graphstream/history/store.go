// Package history provides persistent recording and replay of emitted chunks.
//
// Recording is a sink-side concern: the Sink adapter wraps a Store so every
// chunk the handler emits is appended to a session's history, which can later
// be replayed in emission order (e.g. to re-render a conversation or debug a
// stream). Recording never perturbs the stream itself; append failures are
// logged and swallowed.
package history

import (
	"errors"
	"log/slog"
	"time"

	"github.com/randalmurphal/graphstream/pkg/graphstream"
	"github.com/randalmurphal/graphstream/pkg/graphstream/observability"
)

// Store persists emitted chunks per streaming session.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append records one chunk at the end of a session's history.
	Append(sessionID string, chunk graphstream.StreamChunk) error

	// Replay returns a session's chunks in emission order.
	// Returns ErrNotFound if the session has no history.
	Replay(sessionID string) ([]Record, error)

	// Sessions returns the IDs of all recorded sessions, sorted.
	Sessions() ([]string, error)

	// DeleteSession removes a session's history.
	// Returns nil if the session has no history.
	DeleteSession(sessionID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Record is one recorded chunk with its position in the session.
type Record struct {
	SessionID string
	Sequence  int
	Timestamp time.Time
	Chunk     graphstream.StreamChunk
}

// Sentinel errors for history operations.
var (
	// ErrNotFound indicates a session has no recorded history.
	ErrNotFound = errors.New("session history not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")
)

// Sink returns a graphstream.Sink that records every chunk into store under
// sessionID. Append failures are logged through logger (which may be nil) and
// never propagated: recording must not perturb the stream.
//
// Compose with the real sink when chunks should be both delivered and
// recorded:
//
//	recording := history.Sink(store, sessionID, logger)
//	handler, err := graphstream.NewHandler(func(c graphstream.StreamChunk) {
//	    deliver(c)
//	    recording(c)
//	})
func Sink(store Store, sessionID string, logger *slog.Logger) graphstream.Sink {
	return func(chunk graphstream.StreamChunk) {
		if err := store.Append(sessionID, chunk); err != nil {
			observability.LogHistoryError(logger, sessionID, err)
		}
	}
}
