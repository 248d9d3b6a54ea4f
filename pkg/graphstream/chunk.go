package graphstream

import "github.com/randalmurphal/graphstream/pkg/graphstream/message"

// StreamMode identifies what kind of payload a StreamChunk carries.
type StreamMode string

// StreamModeMessages is the mode for chunks produced by this package.
const StreamModeMessages StreamMode = "messages"

// StreamChunk is the unit handed to the sink: one message plus the namespace
// and metadata of the run that produced it.
type StreamChunk struct {
	// Namespace locates the producing run within the nested graph
	// structure, outermost segment first.
	Namespace []string `json:"namespace"`

	Mode StreamMode `json:"mode"`

	Message *message.Message `json:"message"`

	// Metadata is the producing run's metadata snapshot. Its "tags" entry
	// may have been overwritten with the filtered tags of the latest token
	// event for the run.
	Metadata map[string]any `json:"metadata"`
}

// Sink receives emitted chunks. It is called synchronously from the event
// callbacks, in emission order.
type Sink func(StreamChunk)
