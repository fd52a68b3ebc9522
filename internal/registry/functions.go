package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Slot is a typed input or output port declared by a function.
type Slot struct {
	Name string
	Type string
}

// Handler is the invocation handle of a function: it receives the ordered
// input payloads and returns the ordered output payloads, or an error.
type Handler func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error)

// Func is an immutable function descriptor. Nodes reference a Func for its
// slot shape; the executor resolves the name back through the registry to
// invoke the handler.
type Func struct {
	Name    string
	Inputs  []Slot
	Outputs []Slot
	Fn      Handler
}

// Registry is the catalog of value types and callable functions for a
// single engine instance.
type Registry struct {
	types     map[string]ValueType
	functions map[string]*Func
}

// Module is the interface built-in function packages implement to
// register themselves with an engine instance.
type Module interface {
	Register(r *Registry) error
}

// New creates a registry pre-populated with the built-in value types.
func New() *Registry {
	r := &Registry{
		types:     make(map[string]ValueType),
		functions: make(map[string]*Func),
	}
	r.registerBuiltinTypes()
	return r
}

// RegisterFunc adds a function descriptor to the catalog. Every slot's
// type name must already be registered (ErrUnknownType), and the function
// name must be unbound (ErrDuplicateName).
func (r *Registry) RegisterFunc(fn *Func) error {
	if _, exists := r.functions[fn.Name]; exists {
		return fmt.Errorf("function %q: %w", fn.Name, ErrDuplicateName)
	}
	for _, slot := range fn.Inputs {
		if _, err := r.LookupType(slot.Type); err != nil {
			return fmt.Errorf("function %q, input %q: %w", fn.Name, slot.Name, err)
		}
	}
	for _, slot := range fn.Outputs {
		if _, err := r.LookupType(slot.Type); err != nil {
			return fmt.Errorf("function %q, output %q: %w", fn.Name, slot.Name, err)
		}
	}
	slog.Debug("Registering function.", "name", fn.Name, "inputs", len(fn.Inputs), "outputs", len(fn.Outputs))
	r.functions[fn.Name] = fn
	return nil
}

// LookupFunc resolves a function name. It returns ErrUnknownFunction if
// the name has not been registered.
func (r *Registry) LookupFunc(name string) (*Func, error) {
	fn, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("function %q: %w", name, ErrUnknownFunction)
	}
	return fn, nil
}

// FuncNames returns the registered function names in sorted order.
func (r *Registry) FuncNames() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
