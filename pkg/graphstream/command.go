package graphstream

// Command is a pending state mutation returned by a node instead of (or
// alongside) a plain result. Only the Update payload is inspected for
// messages; routing fields are never descended into.
type Command struct {
	// Graph names the graph the command addresses, empty for the current one.
	Graph string `json:"graph,omitempty"`

	// Update is the state mutation to apply.
	Update any `json:"update,omitempty"`

	// Resume carries a value for a paused execution.
	Resume any `json:"resume,omitempty"`

	// Goto lists the nodes to execute next.
	Goto []string `json:"goto,omitempty"`
}
