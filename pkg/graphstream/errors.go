package graphstream

import (
	"errors"
	"fmt"
)

// ErrNilSink is returned by NewHandler when no sink is provided.
var ErrNilSink = errors.New("graphstream: sink must not be nil")

// ContractError indicates the engine registered a run with a metadata record
// that violates the handler's contract, e.g. a missing or non-string
// checkpoint namespace. It is returned to the caller rather than swallowed:
// the handler trusts the engine to supply well-formed metadata whenever
// metadata is present at all.
type ContractError struct {
	RunID string
	Key   string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("run %s: metadata key %q missing or not a string", e.RunID, e.Key)
}
