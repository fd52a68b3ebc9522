package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/cache"
	"github.com/vk/nodeshop/internal/ctxlog"
	"github.com/vk/nodeshop/internal/graph"
	"github.com/vk/nodeshop/internal/plan"
)

// NodeState is the per-run state of a considered node.
type NodeState int

const (
	// Pending means the node has not been decided yet.
	Pending NodeState = iota
	// Executed means the node's function was invoked this run.
	Executed
	// Skipped means the node's cached outputs were reused.
	Skipped
)

// String returns a log-friendly spelling.
func (s NodeState) String() string {
	switch s {
	case Executed:
		return "Executed"
	case Skipped:
		return "Skipped"
	}
	return "Pending"
}

// run carries the working state of a single execution.
type run struct {
	graph *graph.Graph
	plan  *plan.Plan
	ectx  *Context
	next  *cache.Cache
	state map[graph.NodeIndex]NodeState
}

// Run evaluates the graph for the requested nodes and returns the updated
// cache. An empty requested set targets the graph's sinks. Nodes are
// driven strictly in plan order, one at a time; the prior cache is never
// mutated, and on any error it is returned unchanged alongside the error.
func Run(ctx context.Context, g *graph.Graph, requested []graph.NodeIndex, ectx *Context, prior *cache.Cache) (*cache.Cache, error) {
	logger := ctxlog.FromContext(ctx).With("run_id", uuid.NewString())

	p, err := plan.Build(g, requested)
	if err != nil {
		return prior, err
	}
	logger.Debug("Plan built.", "considered", len(p.Order), "requested", len(p.Requested))

	r := &run{
		graph: g,
		plan:  p,
		ectx:  ectx,
		next:  prior.Clone(),
		state: make(map[graph.NodeIndex]NodeState, len(p.Order)),
	}
	ordinal := r.next.BeginRun()
	logger.Debug("Run started.", "ordinal", ordinal)

	for _, idx := range p.Order {
		node, err := g.Node(idx)
		if err != nil {
			return prior, err
		}

		if !r.mustExecute(node) {
			r.state[idx] = Skipped
			logger.Debug("Node skipped, cached outputs reused.", "node", idx)
			continue
		}

		if err := r.execute(ctx, node, ordinal); err != nil {
			logger.Error("Run aborted.", "node", idx, "error", err)
			return prior, err
		}
		r.state[idx] = Executed
	}

	executed := 0
	for _, state := range r.state {
		if state == Executed {
			executed++
		}
	}
	logger.Info("Run complete.", "ordinal", ordinal, "executed", executed, "skipped", len(p.Order)-executed)
	return r.next, nil
}

// mustExecute applies the per-node decision rule:
//
//  1. a node with no cached outputs executes;
//  2. an Active node executes, and requested nodes count as Active for
//     the run;
//  3. otherwise the node executes iff some upstream node was executed
//     this run and reaches it through an Always edge. Once edges latch:
//     a fresh source behind a Once edge does not by itself force the sink.
func (r *run) mustExecute(n *graph.Node) bool {
	if _, ok := r.next.Outputs(n.Index, len(n.Func.Outputs)); !ok {
		return true
	}
	if n.Behavior == graph.Active || r.plan.Requested[n.Index] {
		return true
	}
	for _, e := range r.graph.InEdges(n.Index) {
		if e.Behavior == graph.Always && r.next.WasExecutedThisRun(e.SrcNode) {
			return true
		}
	}
	return false
}

// execute gathers the node's inputs, invokes its function, and commits
// the outputs to the working cache.
func (r *run) execute(ctx context.Context, n *graph.Node, ordinal uint64) error {
	logger := ctxlog.FromContext(ctx)

	inputs := make([]cty.Value, len(n.Func.Inputs))
	for i := range n.Func.Inputs {
		e := r.graph.InEdgeTo(n.Index, i)
		if e == nil {
			return fmt.Errorf("node %d input %d (%s): %w", n.Index, i, n.Func.Inputs[i].Name, ErrUnboundInput)
		}
		src, err := r.graph.Node(e.SrcNode)
		if err != nil {
			return err
		}
		// The source precedes n in the plan, so it either executed this
		// run or carried outputs in from a prior run.
		outputs, ok := r.next.Outputs(e.SrcNode, len(src.Func.Outputs))
		if !ok {
			return fmt.Errorf("node %d input %d: source node %d has no cached outputs", n.Index, i, e.SrcNode)
		}
		inputs[i] = outputs[e.SrcOutput]
	}

	fn, err := r.ectx.Registry.LookupFunc(n.Func.Name)
	if err != nil {
		return err
	}

	logger.Debug("Invoking node function.", "node", n.Index, "function", fn.Name)
	outputs, err := fn.Fn(ctx, inputs)
	if err != nil {
		return &ExecutionFailed{Node: n.Index, Cause: err}
	}
	if len(outputs) != len(fn.Outputs) {
		return &ExecutionFailed{
			Node:  n.Index,
			Cause: fmt.Errorf("function %q returned %d outputs, declared %d", fn.Name, len(outputs), len(fn.Outputs)),
		}
	}

	r.next.Put(n.Index, outputs, ordinal)
	return nil
}
