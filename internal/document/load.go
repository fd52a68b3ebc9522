package document

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/ctxlog"
	"github.com/vk/nodeshop/internal/graph"
	"github.com/vk/nodeshop/internal/registry"
)

// nodeAttrs and edgeAttrs define the accepted fields per block type;
// required fields are marked true.
var nodeAttrs = map[string]bool{
	"index":    true,
	"function": true,
	"name":     false,
	"behavior": false,
}

var edgeAttrs = map[string]bool{
	"index":      true,
	"src_node":   true,
	"src_output": true,
	"dst_node":   true,
	"dst_input":  true,
	"behavior":   false,
}

// Load parses an HCL graph document and rebuilds the graph through its
// mutators, resolving function names against the registry. Structural
// problems abort the load with the graph unchanged (a fresh graph is
// only returned on full success).
func Load(ctx context.Context, src []byte, filename string, reg *registry.Registry) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected body type", ErrMalformedDocument)
	}
	if len(body.Attributes) > 0 {
		for name := range body.Attributes {
			return nil, fmt.Errorf("top-level attribute %q: %w", name, ErrUnknownField)
		}
	}

	var nodeBlocks, edgeBlocks []*hclsyntax.Block
	for _, block := range body.Blocks {
		switch block.Type {
		case "node":
			nodeBlocks = append(nodeBlocks, block)
		case "edge":
			edgeBlocks = append(edgeBlocks, block)
		default:
			return nil, fmt.Errorf("block %q: %w", block.Type, ErrUnknownField)
		}
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("%w: %s block must not carry labels", ErrMalformedDocument, block.Type)
		}
	}

	g := graph.New()
	for pos, block := range nodeBlocks {
		if err := loadNode(g, reg, block, pos); err != nil {
			return nil, err
		}
	}
	for pos, block := range edgeBlocks {
		if err := loadEdge(g, block, pos); err != nil {
			return nil, err
		}
	}

	logger.Debug("Graph document loaded.", "file", filename, "nodes", len(nodeBlocks), "edges", len(edgeBlocks))
	return g, nil
}

func loadNode(g *graph.Graph, reg *registry.Registry, block *hclsyntax.Block, pos int) error {
	attrs, err := blockAttrs(block, nodeAttrs)
	if err != nil {
		return err
	}

	index, err := intAttr(attrs, "index")
	if err != nil {
		return err
	}
	if index != pos {
		return fmt.Errorf("%w: node index %d out of sequence (expected %d)", ErrMalformedDocument, index, pos)
	}

	funcName, err := stringAttr(attrs, "function")
	if err != nil {
		return err
	}
	fn, err := reg.LookupFunc(funcName)
	if err != nil {
		return err
	}

	behavior := graph.Passive
	if _, ok := attrs["behavior"]; ok {
		spelling, err := stringAttr(attrs, "behavior")
		if err != nil {
			return err
		}
		behavior, err = graph.ParseNodeBehavior(spelling)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
	}

	idx := g.AddNode(fn, behavior)
	if _, ok := attrs["name"]; ok {
		name, err := stringAttr(attrs, "name")
		if err != nil {
			return err
		}
		if err := g.SetNodeName(idx, name); err != nil {
			return err
		}
	}
	return nil
}

func loadEdge(g *graph.Graph, block *hclsyntax.Block, pos int) error {
	attrs, err := blockAttrs(block, edgeAttrs)
	if err != nil {
		return err
	}

	index, err := intAttr(attrs, "index")
	if err != nil {
		return err
	}
	if index != pos {
		return fmt.Errorf("%w: edge index %d out of sequence (expected %d)", ErrMalformedDocument, index, pos)
	}

	srcNode, err := intAttr(attrs, "src_node")
	if err != nil {
		return err
	}
	srcOutput, err := intAttr(attrs, "src_output")
	if err != nil {
		return err
	}
	dstNode, err := intAttr(attrs, "dst_node")
	if err != nil {
		return err
	}
	dstInput, err := intAttr(attrs, "dst_input")
	if err != nil {
		return err
	}

	behavior := graph.Always
	if _, ok := attrs["behavior"]; ok {
		spelling, err := stringAttr(attrs, "behavior")
		if err != nil {
			return err
		}
		behavior, err = graph.ParseEdgeBehavior(spelling)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
	}

	_, err = g.AddEdge(graph.NodeIndex(srcNode), srcOutput, graph.NodeIndex(dstNode), dstInput, behavior)
	return err
}

// blockAttrs validates a block against its accepted field set and checks
// required fields are present.
func blockAttrs(block *hclsyntax.Block, accepted map[string]bool) (map[string]*hclsyntax.Attribute, error) {
	for name := range block.Body.Attributes {
		if _, ok := accepted[name]; !ok {
			return nil, fmt.Errorf("%s attribute %q: %w", block.Type, name, ErrUnknownField)
		}
	}
	for _, nested := range block.Body.Blocks {
		return nil, fmt.Errorf("%s block %q: %w", block.Type, nested.Type, ErrUnknownField)
	}
	for name, required := range accepted {
		if !required {
			continue
		}
		if _, ok := block.Body.Attributes[name]; !ok {
			return nil, fmt.Errorf("%w: %s block missing required attribute %q", ErrMalformedDocument, block.Type, name)
		}
	}
	return block.Body.Attributes, nil
}

func attrValue(attrs map[string]*hclsyntax.Attribute, name string) (cty.Value, error) {
	attr := attrs[name]
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%w: attribute %q: %s", ErrMalformedDocument, name, diags.Error())
	}
	return val, nil
}

func intAttr(attrs map[string]*hclsyntax.Attribute, name string) (int, error) {
	val, err := attrValue(attrs, name)
	if err != nil {
		return 0, err
	}
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("%w: attribute %q must be a number", ErrMalformedDocument, name)
	}
	n, _ := val.AsBigFloat().Int64()
	return int(n), nil
}

func stringAttr(attrs map[string]*hclsyntax.Attribute, name string) (string, error) {
	val, err := attrValue(attrs, name)
	if err != nil {
		return "", err
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("%w: attribute %q must be a string", ErrMalformedDocument, name)
	}
	return val.AsString(), nil
}
