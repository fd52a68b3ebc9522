package executor

import (
	"errors"
	"fmt"

	"github.com/vk/nodeshop/internal/graph"
)

// ErrUnboundInput is returned when an executing node has an input
// endpoint with no incoming edge.
var ErrUnboundInput = errors.New("input endpoint unbound")

// ExecutionFailed reports a function invocation that failed. The run it
// occurred in is aborted and the prior cache stands.
type ExecutionFailed struct {
	Node  graph.NodeIndex
	Cause error
}

// Error implements the error interface.
func (e *ExecutionFailed) Error() string {
	return fmt.Sprintf("node %d failed: %v", e.Node, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ExecutionFailed) Unwrap() error {
	return e.Cause
}
