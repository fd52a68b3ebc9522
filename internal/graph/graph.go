package graph

import (
	"fmt"

	"github.com/vk/nodeshop/internal/registry"
)

// NodeIndex identifies a node for the lifetime of its graph.
type NodeIndex int

// EdgeIndex identifies an edge for the lifetime of its graph.
type EdgeIndex int

// NodeBehavior controls whether a node may reuse its cached outputs.
type NodeBehavior int

const (
	// Passive nodes are skipped when none of their inputs changed through
	// an Always edge this run.
	Passive NodeBehavior = iota
	// Active nodes execute on every run they appear in.
	Active
)

// String returns the document spelling of the behavior.
func (b NodeBehavior) String() string {
	if b == Active {
		return "Active"
	}
	return "Passive"
}

// ParseNodeBehavior maps a document spelling back to a NodeBehavior.
func ParseNodeBehavior(s string) (NodeBehavior, error) {
	switch s {
	case "Passive":
		return Passive, nil
	case "Active":
		return Active, nil
	}
	return Passive, fmt.Errorf("invalid node behavior %q", s)
}

// EdgeBehavior controls whether upstream freshness propagates across an edge.
type EdgeBehavior int

const (
	// Always propagates the source's re-execution to the sink.
	Always EdgeBehavior = iota
	// Once latches the last value seen across the edge; a fresh source does
	// not by itself force the sink to execute.
	Once
)

// String returns the document spelling of the behavior.
func (b EdgeBehavior) String() string {
	if b == Once {
		return "Once"
	}
	return "Always"
}

// ParseEdgeBehavior maps a document spelling back to an EdgeBehavior.
func ParseEdgeBehavior(s string) (EdgeBehavior, error) {
	switch s {
	case "Always":
		return Always, nil
	case "Once":
		return Once, nil
	}
	return Always, fmt.Errorf("invalid edge behavior %q", s)
}

// Node is a graph vertex bound to a function. It has one input endpoint
// per function input slot and one output endpoint per output slot.
type Node struct {
	Index    NodeIndex
	Func     *registry.Func
	Name     string
	Behavior NodeBehavior
}

// Edge is a directed connection from an output endpoint of SrcNode to an
// input endpoint of DstNode.
type Edge struct {
	Index     EdgeIndex
	SrcNode   NodeIndex
	SrcOutput int
	DstNode   NodeIndex
	DstInput  int
	Behavior  EdgeBehavior
}

// Graph owns its nodes and edges. The zero value is not usable; call New.
type Graph struct {
	nodes []*Node // tombstoned slots are nil
	edges []*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node bound to the given function and returns its index.
func (g *Graph) AddNode(fn *registry.Func, behavior NodeBehavior) NodeIndex {
	idx := NodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		Index:    idx,
		Func:     fn,
		Behavior: behavior,
	})
	return idx
}

// RemoveNode tombstones a node and removes every edge incident to it.
func (g *Graph) RemoveNode(idx NodeIndex) error {
	if _, err := g.Node(idx); err != nil {
		return err
	}
	for i, e := range g.edges {
		if e == nil {
			continue
		}
		if e.SrcNode == idx || e.DstNode == idx {
			g.edges[i] = nil
		}
	}
	g.nodes[idx] = nil
	return nil
}

// AddEdge connects an output endpoint to an input endpoint. The edit is
// rejected without touching the graph if either endpoint is invalid, the
// endpoint types differ (ErrTypeMismatch), the input endpoint already has
// an incoming edge (ErrInputAlreadyBound), or the edge would make the
// graph cyclic (ErrWouldCreateCycle).
func (g *Graph) AddEdge(src NodeIndex, srcOutput int, dst NodeIndex, dstInput int, behavior EdgeBehavior) (EdgeIndex, error) {
	srcNode, err := g.Node(src)
	if err != nil {
		return 0, err
	}
	dstNode, err := g.Node(dst)
	if err != nil {
		return 0, err
	}
	if srcOutput < 0 || srcOutput >= len(srcNode.Func.Outputs) {
		return 0, fmt.Errorf("node %d output %d: %w", src, srcOutput, ErrNoSuchSlot)
	}
	if dstInput < 0 || dstInput >= len(dstNode.Func.Inputs) {
		return 0, fmt.Errorf("node %d input %d: %w", dst, dstInput, ErrNoSuchSlot)
	}

	outType := srcNode.Func.Outputs[srcOutput].Type
	inType := dstNode.Func.Inputs[dstInput].Type
	if outType != inType {
		return 0, fmt.Errorf("%d.%d (%s) -> %d.%d (%s): %w",
			src, srcOutput, outType, dst, dstInput, inType, ErrTypeMismatch)
	}

	if g.InEdgeTo(dst, dstInput) != nil {
		return 0, fmt.Errorf("node %d input %d: %w", dst, dstInput, ErrInputAlreadyBound)
	}

	if g.reachable(dst, src) || src == dst {
		return 0, fmt.Errorf("%d -> %d: %w", src, dst, ErrWouldCreateCycle)
	}

	idx := EdgeIndex(len(g.edges))
	g.edges = append(g.edges, &Edge{
		Index:     idx,
		SrcNode:   src,
		SrcOutput: srcOutput,
		DstNode:   dst,
		DstInput:  dstInput,
		Behavior:  behavior,
	})
	return idx, nil
}

// RemoveEdge tombstones an edge.
func (g *Graph) RemoveEdge(idx EdgeIndex) error {
	if _, err := g.Edge(idx); err != nil {
		return err
	}
	g.edges[idx] = nil
	return nil
}

// SetNodeBehavior updates a node's behavior annotation.
func (g *Graph) SetNodeBehavior(idx NodeIndex, behavior NodeBehavior) error {
	n, err := g.Node(idx)
	if err != nil {
		return err
	}
	n.Behavior = behavior
	return nil
}

// SetEdgeBehavior updates an edge's behavior annotation.
func (g *Graph) SetEdgeBehavior(idx EdgeIndex, behavior EdgeBehavior) error {
	e, err := g.Edge(idx)
	if err != nil {
		return err
	}
	e.Behavior = behavior
	return nil
}

// SetNodeName assigns a display name to a node. Names are optional and
// carried through the document format.
func (g *Graph) SetNodeName(idx NodeIndex, name string) error {
	n, err := g.Node(idx)
	if err != nil {
		return err
	}
	n.Name = name
	return nil
}

// Node returns the live node at idx.
func (g *Graph) Node(idx NodeIndex) (*Node, error) {
	if idx < 0 || int(idx) >= len(g.nodes) || g.nodes[idx] == nil {
		return nil, fmt.Errorf("node %d: %w", idx, ErrNoSuchNode)
	}
	return g.nodes[idx], nil
}

// Edge returns the live edge at idx.
func (g *Graph) Edge(idx EdgeIndex) (*Edge, error) {
	if idx < 0 || int(idx) >= len(g.edges) || g.edges[idx] == nil {
		return nil, fmt.Errorf("edge %d: %w", idx, ErrNoSuchEdge)
	}
	return g.edges[idx], nil
}

// NodeByName finds a live node by display name.
func (g *Graph) NodeByName(name string) (*Node, bool) {
	for _, n := range g.nodes {
		if n != nil && n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Nodes returns the live nodes in index order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Edges returns the live edges in index order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e != nil {
			edges = append(edges, e)
		}
	}
	return edges
}

// NodeCount returns the number of node slots, tombstones included, so it
// does not shrink when nodes are removed.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// InEdges returns the live edges terminating at the given node.
func (g *Graph) InEdges(idx NodeIndex) []*Edge {
	var edges []*Edge
	for _, e := range g.edges {
		if e != nil && e.DstNode == idx {
			edges = append(edges, e)
		}
	}
	return edges
}

// OutEdges returns the live edges originating at the given node.
func (g *Graph) OutEdges(idx NodeIndex) []*Edge {
	var edges []*Edge
	for _, e := range g.edges {
		if e != nil && e.SrcNode == idx {
			edges = append(edges, e)
		}
	}
	return edges
}

// InEdgeTo returns the unique edge terminating at the given input
// endpoint, or nil when the endpoint is unbound.
func (g *Graph) InEdgeTo(idx NodeIndex, input int) *Edge {
	for _, e := range g.edges {
		if e != nil && e.DstNode == idx && e.DstInput == input {
			return e
		}
	}
	return nil
}

// Sinks returns the live nodes with no outgoing edges, in index order.
func (g *Graph) Sinks() []NodeIndex {
	hasOut := make(map[NodeIndex]bool)
	for _, e := range g.edges {
		if e != nil {
			hasOut[e.SrcNode] = true
		}
	}
	var sinks []NodeIndex
	for _, n := range g.nodes {
		if n != nil && !hasOut[n.Index] {
			sinks = append(sinks, n.Index)
		}
	}
	return sinks
}
