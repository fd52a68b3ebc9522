// Package source registers constant-producing functions: zero-input
// nodes that feed fixed values into a graph.
package source

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/registry"
)

// Module registers one constant function under the given name.
type Module struct {
	Name  string
	Value cty.Value
}

// Constant builds a module emitting an f64 constant.
func Constant(name string, value float64) *Module {
	return &Module{Name: name, Value: cty.NumberFloatVal(value)}
}

// Register adds the constant function to the registry.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterFunc(&registry.Func{
		Name:    m.Name,
		Outputs: []registry.Slot{{Name: "value", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			return []cty.Value{m.Value}, nil
		},
	})
}
