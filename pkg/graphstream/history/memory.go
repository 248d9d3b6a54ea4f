package history

import (
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/graphstream/pkg/graphstream"
)

// MemoryStore is an in-memory history store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]Record // sessionID -> records in emission order
	closed bool
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]Record),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(sessionID string, chunk graphstream.StreamChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.data[sessionID] = append(m.data[sessionID], Record{
		SessionID: sessionID,
		Sequence:  len(m.data[sessionID]) + 1,
		Timestamp: time.Now().UTC(),
		Chunk:     chunk,
	})
	return nil
}

// Replay implements Store.
func (m *MemoryStore) Replay(sessionID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	records, ok := m.data[sessionID]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification
	result := make([]Record, len(records))
	copy(result, records)
	return result, nil
}

// Sessions implements Store.
func (m *MemoryStore) Sessions() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	sessions := make([]string, 0, len(m.data))
	for id := range m.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}

// DeleteSession implements Store.
func (m *MemoryStore) DeleteSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, sessionID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}
