package graph

// reachable reports whether `to` can be reached from `from` by walking
// edges forward. AddEdge uses it to reject cycles before committing: a
// new edge src->dst is safe only if src is not reachable from dst.
func (g *Graph) reachable(from, to NodeIndex) bool {
	visited := make(map[NodeIndex]bool)

	var visit func(idx NodeIndex) bool
	visit = func(idx NodeIndex) bool {
		if idx == to {
			return true
		}
		if visited[idx] {
			return false
		}
		visited[idx] = true
		for _, e := range g.OutEdges(idx) {
			if visit(e.DstNode) {
				return true
			}
		}
		return false
	}

	return visit(from)
}
