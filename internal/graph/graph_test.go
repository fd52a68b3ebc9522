package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/nodeshop/internal/registry"
)

// testFuncs registers a minimal function set for structural tests.
func testFuncs(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()

	require.NoError(t, r.RegisterFunc(&registry.Func{
		Name:    "val",
		Outputs: []registry.Slot{{Name: "value", Type: "f64"}},
	}))
	require.NoError(t, r.RegisterFunc(&registry.Func{
		Name: "sum",
		Inputs: []registry.Slot{
			{Name: "a", Type: "f64"},
			{Name: "b", Type: "f64"},
		},
		Outputs: []registry.Slot{{Name: "result", Type: "f64"}},
	}))
	require.NoError(t, r.RegisterFunc(&registry.Func{
		Name:   "show",
		Inputs: []registry.Slot{{Name: "text", Type: "string"}},
	}))
	return r
}

func mustFunc(t *testing.T, r *registry.Registry, name string) *registry.Func {
	t.Helper()
	fn, err := r.LookupFunc(name)
	require.NoError(t, err)
	return fn
}

func TestAddNode_DenseIndices(t *testing.T) {
	r := testFuncs(t)
	g := New()

	a := g.AddNode(mustFunc(t, r, "val"), Passive)
	b := g.AddNode(mustFunc(t, r, "val"), Active)

	assert.Equal(t, NodeIndex(0), a)
	assert.Equal(t, NodeIndex(1), b)

	nb, err := g.Node(b)
	require.NoError(t, err)
	assert.Equal(t, Active, nb.Behavior)
}

func TestAddEdge(t *testing.T) {
	r := testFuncs(t)
	g := New()

	src := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "sum"), Passive)

	idx, err := g.AddEdge(src, 0, dst, 0, Always)
	require.NoError(t, err)
	assert.Equal(t, EdgeIndex(0), idx)

	e := g.InEdgeTo(dst, 0)
	require.NotNil(t, e)
	assert.Equal(t, src, e.SrcNode)
	assert.Nil(t, g.InEdgeTo(dst, 1))
}

func TestAddEdge_TypeMismatch(t *testing.T) {
	r := testFuncs(t)
	g := New()

	src := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "show"), Passive)

	_, err := g.AddEdge(src, 0, dst, 0, Always)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Empty(t, g.Edges(), "rejected edit must not change the graph")
}

func TestAddEdge_InputAlreadyBound(t *testing.T) {
	r := testFuncs(t)
	g := New()

	a := g.AddNode(mustFunc(t, r, "val"), Passive)
	b := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "sum"), Passive)

	_, err := g.AddEdge(a, 0, dst, 0, Always)
	require.NoError(t, err)

	_, err = g.AddEdge(b, 0, dst, 0, Always)
	assert.ErrorIs(t, err, ErrInputAlreadyBound)

	// The other input is still free.
	_, err = g.AddEdge(b, 0, dst, 1, Always)
	assert.NoError(t, err)
}

func TestAddEdge_WouldCreateCycle(t *testing.T) {
	r := testFuncs(t)
	g := New()

	a := g.AddNode(mustFunc(t, r, "sum"), Passive)
	b := g.AddNode(mustFunc(t, r, "sum"), Passive)
	c := g.AddNode(mustFunc(t, r, "sum"), Passive)

	_, err := g.AddEdge(a, 0, b, 0, Always)
	require.NoError(t, err)
	_, err = g.AddEdge(b, 0, c, 0, Always)
	require.NoError(t, err)

	// c -> a closes a cycle through b.
	_, err = g.AddEdge(c, 0, a, 0, Always)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWouldCreateCycle)
	assert.Len(t, g.Edges(), 2, "rejected edit must not change the graph")

	// Self-edges are cycles too.
	_, err = g.AddEdge(a, 0, a, 1, Always)
	assert.ErrorIs(t, err, ErrWouldCreateCycle)
}

func TestAddEdge_NoSuchSlot(t *testing.T) {
	r := testFuncs(t)
	g := New()

	src := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "sum"), Passive)

	_, err := g.AddEdge(src, 3, dst, 0, Always)
	assert.ErrorIs(t, err, ErrNoSuchSlot)

	_, err = g.AddEdge(src, 0, dst, 7, Always)
	assert.ErrorIs(t, err, ErrNoSuchSlot)
}

func TestRemoveNode_DropsIncidentEdges(t *testing.T) {
	r := testFuncs(t)
	g := New()

	a := g.AddNode(mustFunc(t, r, "val"), Passive)
	b := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "sum"), Passive)

	_, err := g.AddEdge(a, 0, dst, 0, Always)
	require.NoError(t, err)
	_, err = g.AddEdge(b, 0, dst, 1, Always)
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode(dst))

	_, err = g.Node(dst)
	assert.ErrorIs(t, err, ErrNoSuchNode)
	assert.Empty(t, g.Edges())

	// Surviving indices stay valid.
	_, err = g.Node(a)
	assert.NoError(t, err)
	_, err = g.Node(b)
	assert.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount())
}

func TestRemoveEdge(t *testing.T) {
	r := testFuncs(t)
	g := New()

	src := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "sum"), Passive)

	idx, err := g.AddEdge(src, 0, dst, 0, Always)
	require.NoError(t, err)

	require.NoError(t, g.RemoveEdge(idx))
	_, err = g.Edge(idx)
	assert.ErrorIs(t, err, ErrNoSuchEdge)

	// The input endpoint is free again.
	_, err = g.AddEdge(src, 0, dst, 0, Once)
	assert.NoError(t, err)
}

func TestSetBehaviors(t *testing.T) {
	r := testFuncs(t)
	g := New()

	src := g.AddNode(mustFunc(t, r, "val"), Passive)
	dst := g.AddNode(mustFunc(t, r, "sum"), Passive)
	idx, err := g.AddEdge(src, 0, dst, 0, Always)
	require.NoError(t, err)

	require.NoError(t, g.SetNodeBehavior(src, Active))
	require.NoError(t, g.SetEdgeBehavior(idx, Once))

	n, err := g.Node(src)
	require.NoError(t, err)
	assert.Equal(t, Active, n.Behavior)

	e, err := g.Edge(idx)
	require.NoError(t, err)
	assert.Equal(t, Once, e.Behavior)

	assert.ErrorIs(t, g.SetNodeBehavior(99, Active), ErrNoSuchNode)
	assert.ErrorIs(t, g.SetEdgeBehavior(99, Once), ErrNoSuchEdge)
}

func TestNodeByName(t *testing.T) {
	r := testFuncs(t)
	g := New()

	idx := g.AddNode(mustFunc(t, r, "val"), Passive)
	require.NoError(t, g.SetNodeName(idx, "val0"))

	n, ok := g.NodeByName("val0")
	require.True(t, ok)
	assert.Equal(t, idx, n.Index)

	_, ok = g.NodeByName("val1")
	assert.False(t, ok)
}

func TestSinks(t *testing.T) {
	r := testFuncs(t)
	g := New()

	a := g.AddNode(mustFunc(t, r, "val"), Passive)
	b := g.AddNode(mustFunc(t, r, "val"), Passive)
	s := g.AddNode(mustFunc(t, r, "sum"), Passive)

	_, err := g.AddEdge(a, 0, s, 0, Always)
	require.NoError(t, err)

	// b and s have no outgoing edges.
	assert.Equal(t, []NodeIndex{b, s}, g.Sinks())
}

func TestParseBehaviors(t *testing.T) {
	nb, err := ParseNodeBehavior("Active")
	require.NoError(t, err)
	assert.Equal(t, Active, nb)

	_, err = ParseNodeBehavior("active")
	assert.Error(t, err)

	eb, err := ParseEdgeBehavior("Once")
	require.NoError(t, err)
	assert.Equal(t, Once, eb)

	_, err = ParseEdgeBehavior("Sometimes")
	assert.Error(t, err)
}
