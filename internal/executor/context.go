package executor

import "github.com/vk/nodeshop/internal/registry"

// Context is the externally supplied bundle the executor consults to
// invoke functions. It is logically read-only during a run.
type Context struct {
	// Registry resolves node function names to their invocation handles.
	Registry *registry.Registry
}

// NewContext wraps a registry in an execution context.
func NewContext(r *registry.Registry) *Context {
	return &Context{Registry: r}
}
