package graphstream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/graphstream/pkg/graphstream/message"
)

// collector is a sink that records every chunk it receives.
// Safe for concurrent use so race-enabled tests can share it.
type collector struct {
	mu     sync.Mutex
	chunks []StreamChunk
}

func (c *collector) sink(chunk StreamChunk) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = append(c.chunks, chunk)
}

func (c *collector) all() []StreamChunk {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]StreamChunk(nil), c.chunks...)
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chunks)
}

// newTestHandler builds a handler wired to a fresh collector.
func newTestHandler(t *testing.T, opts ...Option) (*Handler, *collector) {
	t.Helper()
	c := &collector{}
	h, err := NewHandler(c.sink, opts...)
	require.NoError(t, err)
	return h, c
}

// Metadata helpers

func modelMeta(ns string) map[string]any {
	return map[string]any{MetaKeyCheckpointNS: ns}
}

func nodeMeta(ns, node string) map[string]any {
	return map[string]any{
		MetaKeyCheckpointNS: ns,
		MetaKeyNode:         node,
	}
}

// Message helpers

func msg(id, content string) *message.Message {
	return &message.Message{ID: id, Role: message.RoleAssistant, Content: content}
}

func tokenChunk(id, text string) *message.Chunk {
	return &message.Chunk{
		Message: &message.Message{ID: id, Role: message.RoleAssistant, Content: text},
		Text:    text,
	}
}
