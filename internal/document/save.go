package document

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/graph"
)

// Save serializes a graph to its canonical HCL document. Saving is a
// commit point: tombstoned slots are compacted away, and surviving nodes
// and edges are renumbered densely in their original order.
func Save(g *graph.Graph) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	remap := make(map[graph.NodeIndex]int)
	for pos, node := range g.Nodes() {
		remap[node.Index] = pos
	}

	for pos, node := range g.Nodes() {
		if pos > 0 {
			body.AppendNewline()
		}
		blockBody := body.AppendNewBlock("node", nil).Body()
		blockBody.SetAttributeValue("index", cty.NumberIntVal(int64(pos)))
		if node.Name != "" {
			blockBody.SetAttributeValue("name", cty.StringVal(node.Name))
		}
		blockBody.SetAttributeValue("function", cty.StringVal(node.Func.Name))
		blockBody.SetAttributeValue("behavior", cty.StringVal(node.Behavior.String()))
	}

	for pos, edge := range g.Edges() {
		src, okSrc := remap[edge.SrcNode]
		dst, okDst := remap[edge.DstNode]
		if !okSrc || !okDst {
			return nil, fmt.Errorf("edge %d references a removed node", edge.Index)
		}

		body.AppendNewline()
		blockBody := body.AppendNewBlock("edge", nil).Body()
		blockBody.SetAttributeValue("index", cty.NumberIntVal(int64(pos)))
		blockBody.SetAttributeValue("src_node", cty.NumberIntVal(int64(src)))
		blockBody.SetAttributeValue("src_output", cty.NumberIntVal(int64(edge.SrcOutput)))
		blockBody.SetAttributeValue("dst_node", cty.NumberIntVal(int64(dst)))
		blockBody.SetAttributeValue("dst_input", cty.NumberIntVal(int64(edge.DstInput)))
		blockBody.SetAttributeValue("behavior", cty.StringVal(edge.Behavior.String()))
	}

	return file.Bytes(), nil
}
