// Package print registers the built-in sink function that writes the
// value it receives to the module's writer.
package print

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/ctxlog"
	"github.com/vk/nodeshop/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives the printed values; defaults to stdout.
	Out io.Writer
}

// Register adds the print function to the registry.
func (m *Module) Register(r *registry.Registry) error {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}

	return r.RegisterFunc(&registry.Func{
		Name:   "print",
		Inputs: []registry.Slot{{Name: "value", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			ctxlog.FromContext(ctx).Info("Printing sink value.")
			v := inputs[0]
			if v.IsNull() {
				fmt.Fprintln(out, "(null)")
				return nil, nil
			}
			f, _ := v.AsBigFloat().Float64()
			fmt.Fprintf(out, "%g\n", f)
			return nil, nil
		},
	})
}
