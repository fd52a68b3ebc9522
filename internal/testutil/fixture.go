package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/graph"
	"github.com/vk/nodeshop/internal/registry"
)

// Fixture bundles the reference registry with its mutable knobs.
type Fixture struct {
	Registry *registry.Registry

	// Val0 and Val1 are the values the source functions emit; tests patch
	// them between runs.
	Val0 float64
	Val1 float64

	// Printed records every value the print function received, in order.
	Printed []float64
}

// Sink returns the last printed value.
func (f *Fixture) Sink(t *testing.T) float64 {
	t.Helper()
	require.NotEmpty(t, f.Printed, "print has not executed")
	return f.Printed[len(f.Printed)-1]
}

// NewFixture registers the reference function set: two patchable number
// sources, sum, mult, and a recording print.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	f := &Fixture{
		Registry: registry.New(),
		Val0:     2,
		Val1:     5,
	}

	num := func(v float64) []cty.Value {
		return []cty.Value{cty.NumberFloatVal(v)}
	}
	arg := func(v cty.Value) float64 {
		f, _ := v.AsBigFloat().Float64()
		return f
	}

	require.NoError(t, f.Registry.RegisterFunc(&registry.Func{
		Name:    "val0",
		Outputs: []registry.Slot{{Name: "value", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			return num(f.Val0), nil
		},
	}))
	require.NoError(t, f.Registry.RegisterFunc(&registry.Func{
		Name:    "val1",
		Outputs: []registry.Slot{{Name: "value", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			return num(f.Val1), nil
		},
	}))
	require.NoError(t, f.Registry.RegisterFunc(&registry.Func{
		Name: "sum",
		Inputs: []registry.Slot{
			{Name: "a", Type: "f64"},
			{Name: "b", Type: "f64"},
		},
		Outputs: []registry.Slot{{Name: "result", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			return num(arg(inputs[0]) + arg(inputs[1])), nil
		},
	}))
	require.NoError(t, f.Registry.RegisterFunc(&registry.Func{
		Name: "mult",
		Inputs: []registry.Slot{
			{Name: "a", Type: "f64"},
			{Name: "b", Type: "f64"},
		},
		Outputs: []registry.Slot{{Name: "result", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			return num(arg(inputs[0]) * arg(inputs[1])), nil
		},
	}))
	require.NoError(t, f.Registry.RegisterFunc(&registry.Func{
		Name:   "print",
		Inputs: []registry.Slot{{Name: "value", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			f.Printed = append(f.Printed, arg(inputs[0]))
			return nil, nil
		},
	}))

	return f
}

// ReferenceNodes names the indices of the reference graph.
type ReferenceNodes struct {
	Val0, Val1, Sum, Mult, Print graph.NodeIndex

	// SumA and SumB are sum's latched input edges; MultA and MultB feed
	// mult; PrintIn is the edge into the sink.
	SumA, SumB, MultA, MultB, PrintIn graph.EdgeIndex
}

// ReferenceGraph builds the five-node reference graph:
//
//	val0 --Once--> sum.a          sum --Always--> mult.a
//	val1 --Once--> sum.b          val1 --Always--> mult.b
//	                              mult --Always--> print.value
//
// All nodes are Passive. A cold run computes (2+5)*5 = 35 at the sink.
func ReferenceGraph(t *testing.T, f *Fixture) (*graph.Graph, *ReferenceNodes) {
	t.Helper()

	lookup := func(name string) *registry.Func {
		fn, err := f.Registry.LookupFunc(name)
		require.NoError(t, err)
		return fn
	}

	g := graph.New()
	n := &ReferenceNodes{}
	n.Val0 = g.AddNode(lookup("val0"), graph.Passive)
	n.Val1 = g.AddNode(lookup("val1"), graph.Passive)
	n.Sum = g.AddNode(lookup("sum"), graph.Passive)
	n.Mult = g.AddNode(lookup("mult"), graph.Passive)
	n.Print = g.AddNode(lookup("print"), graph.Passive)

	for idx, name := range map[graph.NodeIndex]string{
		n.Val0: "val0", n.Val1: "val1", n.Sum: "sum", n.Mult: "mult", n.Print: "print",
	} {
		require.NoError(t, g.SetNodeName(idx, name))
	}

	edge := func(src graph.NodeIndex, so int, dst graph.NodeIndex, di int, b graph.EdgeBehavior) graph.EdgeIndex {
		t.Helper()
		idx, err := g.AddEdge(src, so, dst, di, b)
		require.NoError(t, err)
		return idx
	}
	n.SumA = edge(n.Val0, 0, n.Sum, 0, graph.Once)
	n.SumB = edge(n.Val1, 0, n.Sum, 1, graph.Once)
	n.MultA = edge(n.Sum, 0, n.Mult, 0, graph.Always)
	n.MultB = edge(n.Val1, 0, n.Mult, 1, graph.Always)
	n.PrintIn = edge(n.Mult, 0, n.Print, 0, graph.Always)

	return g, n
}
