// Package message defines the chat message data model streamed by graphstream.
//
// Messages are the artifacts this module discovers and forwards. They carry an
// optional identity: a message without one is assigned a fresh identity the
// first time it is emitted, so every message that leaves the system can be
// deduplicated downstream.
package message

import "encoding/json"

// Message is one conversation turn produced or consumed by a graph node.
type Message struct {
	// ID is the message identity. Optional on input; every emitted message
	// has a non-empty ID.
	ID string `json:"id,omitempty"`

	Role    Role   `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"` // For tool results

	// Tool use
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Role identifies the message sender.
type Role string

// Standard message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleSystem    Role = "system"
)

// ToolCall represents a tool invocation request from the model.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Chunk is a piece of a streaming model response. The engine hands one chunk
// per token callback; only chunks of this shape are streamed, anything else
// is silently skipped.
type Chunk struct {
	// Message is the partial message delta carried by this chunk.
	Message *Message `json:"message"`

	// Text is the delta text, duplicated from Message.Content for callers
	// that only want the raw token.
	Text string `json:"text,omitempty"`
}

// Clone returns a shallow copy of the message. ToolCalls are shared.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
