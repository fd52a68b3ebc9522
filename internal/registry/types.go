package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ValueType names a kind of value that can travel along an edge. Two
// endpoints agree only when their type names are equal; the backing cty
// type is used by function handlers, never by the engine itself.
type ValueType struct {
	Name string
	Cty  cty.Type
}

// Payload is the native type behind capsule-backed value types. The engine
// treats the boxed value as opaque; a function that cannot interpret it
// reports failure at invocation time.
type Payload struct {
	Value any
}

// RegisterType binds a name to a backing cty type. It returns
// ErrDuplicateName if the name is already bound.
func (r *Registry) RegisterType(name string, ct cty.Type) error {
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("type %q: %w", name, ErrDuplicateName)
	}
	slog.Debug("Registering value type.", "name", name, "cty", ct.FriendlyName())
	r.types[name] = ValueType{Name: name, Cty: ct}
	return nil
}

// RegisterOpaqueType binds a name to a fresh capsule type whose payloads
// the engine never inspects. This is how embedders introduce their own
// value kinds (images, buffers, handles).
func (r *Registry) RegisterOpaqueType(name string) error {
	return r.RegisterType(name, cty.Capsule(name, reflect.TypeOf(Payload{})))
}

// LookupType resolves a type name. It returns ErrUnknownType if the name
// has not been registered.
func (r *Registry) LookupType(name string) (ValueType, error) {
	vt, ok := r.types[name]
	if !ok {
		return ValueType{}, fmt.Errorf("type %q: %w", name, ErrUnknownType)
	}
	return vt, nil
}

// TypeNames returns the registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerBuiltinTypes installs the primitive type names every graph can
// rely on. Both numeric names, f64 and i64, are backed by cty.Number.
func (r *Registry) registerBuiltinTypes() {
	builtins := map[string]cty.Type{
		"f64":    cty.Number,
		"i64":    cty.Number,
		"string": cty.String,
		"bool":   cty.Bool,
	}
	for name, ct := range builtins {
		// The registry is empty at this point, so registration cannot fail.
		r.types[name] = ValueType{Name: name, Cty: ct}
	}
}
