package plan

import (
	"fmt"
	"sort"

	"github.com/vk/nodeshop/internal/graph"
)

// Plan is the schedule for a single run.
type Plan struct {
	// Order lists the nodes to consider, every predecessor before every
	// successor.
	Order []graph.NodeIndex
	// Requested is the set the plan was built for. The executor treats
	// requested nodes as Active for the run.
	Requested map[graph.NodeIndex]bool
}

// InCone reports whether the node is considered by this run.
func (p *Plan) InCone(idx graph.NodeIndex) bool {
	for _, n := range p.Order {
		if n == idx {
			return true
		}
	}
	return false
}

// Build computes the plan for the given requested nodes. An empty
// requested set defaults to the graph's sinks. Nodes outside the backward
// cone of the requested set do not appear in the plan.
func Build(g *graph.Graph, requested []graph.NodeIndex) (*Plan, error) {
	if len(requested) == 0 {
		requested = g.Sinks()
	}

	reqSet := make(map[graph.NodeIndex]bool, len(requested))
	for _, idx := range requested {
		if _, err := g.Node(idx); err != nil {
			return nil, fmt.Errorf("requested node: %w", err)
		}
		reqSet[idx] = true
	}

	// Collect the backward cone by walking input edges from the requested set.
	cone := make(map[graph.NodeIndex]bool)
	stack := make([]graph.NodeIndex, 0, len(reqSet))
	for idx := range reqSet {
		stack = append(stack, idx)
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cone[idx] {
			continue
		}
		cone[idx] = true
		for _, e := range g.InEdges(idx) {
			if !cone[e.SrcNode] {
				stack = append(stack, e.SrcNode)
			}
		}
	}

	// Kahn's algorithm restricted to the cone. The ready set is kept
	// sorted and drained smallest-index-first, which fixes the order of
	// independent nodes.
	inDegree := make(map[graph.NodeIndex]int, len(cone))
	for idx := range cone {
		inDegree[idx] = 0
	}
	for idx := range cone {
		for _, e := range g.InEdges(idx) {
			if cone[e.SrcNode] {
				inDegree[idx]++
			}
		}
	}

	var ready []graph.NodeIndex
	for idx, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, idx)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	order := make([]graph.NodeIndex, 0, len(cone))
	for len(ready) > 0 {
		idx := ready[0]
		ready = ready[1:]
		order = append(order, idx)

		released := false
		for _, e := range g.OutEdges(idx) {
			if !cone[e.DstNode] {
				continue
			}
			inDegree[e.DstNode]--
			if inDegree[e.DstNode] == 0 {
				ready = append(ready, e.DstNode)
				released = true
			}
		}
		if released {
			sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		}
	}

	if len(order) != len(cone) {
		// AddEdge rejects cycles, so this indicates graph corruption.
		return nil, fmt.Errorf("plan: %d of %d cone nodes unschedulable, graph contains a cycle", len(cone)-len(order), len(cone))
	}

	return &Plan{Order: order, Requested: reqSet}, nil
}
