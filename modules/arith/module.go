// Package arith registers the built-in numeric functions.
package arith

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds the arithmetic function set to the registry.
func (m *Module) Register(r *registry.Registry) error {
	binary := []registry.Slot{
		{Name: "a", Type: "f64"},
		{Name: "b", Type: "f64"},
	}
	result := []registry.Slot{{Name: "result", Type: "f64"}}

	funcs := []*registry.Func{
		{
			Name:    "sum",
			Inputs:  binary,
			Outputs: result,
			Fn:      binaryOp(func(a, b float64) float64 { return a + b }),
		},
		{
			Name:    "sub",
			Inputs:  binary,
			Outputs: result,
			Fn:      binaryOp(func(a, b float64) float64 { return a - b }),
		},
		{
			Name:    "mult",
			Inputs:  binary,
			Outputs: result,
			Fn:      binaryOp(func(a, b float64) float64 { return a * b }),
		},
		{
			Name:    "div",
			Inputs:  binary,
			Outputs: result,
			Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
				a, err := number(inputs[0])
				if err != nil {
					return nil, err
				}
				b, err := number(inputs[1])
				if err != nil {
					return nil, err
				}
				if b == 0 {
					return nil, fmt.Errorf("division by zero")
				}
				return []cty.Value{cty.NumberFloatVal(a / b)}, nil
			},
		},
	}

	for _, fn := range funcs {
		if err := r.RegisterFunc(fn); err != nil {
			return err
		}
	}
	return nil
}

// binaryOp adapts a plain float operation to the handler signature.
func binaryOp(op func(a, b float64) float64) registry.Handler {
	return func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
		a, err := number(inputs[0])
		if err != nil {
			return nil, err
		}
		b, err := number(inputs[1])
		if err != nil {
			return nil, err
		}
		return []cty.Value{cty.NumberFloatVal(op(a, b))}, nil
	}
}

// number unpacks an f64 payload, rejecting anything it cannot interpret.
func number(v cty.Value) (float64, error) {
	if v.Type() != cty.Number || v.IsNull() {
		return 0, fmt.Errorf("expected a number payload, got %s", v.Type().FriendlyName())
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}
