package graph

// Componetize splits the graph into its weakly-connected components, each
// returned as its own Graph, preserving vertex id identity so that
// per-component PVSTs can later be recombined under the original ids.
func (g *Graph) Componetize() []*Graph {
	n := len(g.vertices)
	visited := make([]bool, n)
	var components []*Graph

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		members := g.bfsComponent(start, visited)
		components = append(components, g.buildSubgraph(members))
	}
	return components
}

func (g *Graph) bfsComponent(start Idx, visited []bool) []Idx {
	var order []Idx
	queue := []Idx{start}
	visited[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		v := g.vertices[cur]
		for _, end := range [2]End{EndL, EndR} {
			for eIdx := range v.EdgesAt(end) {
				other := g.edges[eIdx].OtherEnd(cur, end)
				if visited[other.Idx] {
					continue
				}
				visited[other.Idx] = true
				queue = append(queue, other.Idx)
			}
		}
	}
	return order
}

// buildSubgraph materializes a new Graph containing exactly the member
// vertices (by original index), all edges between them, and the refs/steps
// that touch them. Vertex ids are preserved.
func (g *Graph) buildSubgraph(members []Idx) *Graph {
	memberSet := make(map[Idx]struct{}, len(members))
	for _, idx := range members {
		memberSet[idx] = struct{}{}
	}

	sub := New(len(members), 0, 0)
	for _, idx := range members {
		v := g.vertices[idx]
		sub.AddVertex(v.id, v.label)
	}

	seenEdge := make(map[Idx]struct{})
	for _, idx := range members {
		v := g.vertices[idx]
		for _, end := range [2]End{EndL, EndR} {
			for eIdx := range v.EdgesAt(end) {
				if _, done := seenEdge[eIdx]; done {
					continue
				}
				e := g.edges[eIdx]
				if _, ok1 := memberSet[e.V1Idx]; !ok1 {
					continue
				}
				if _, ok2 := memberSet[e.V2Idx]; !ok2 {
					continue
				}
				seenEdge[eIdx] = struct{}{}
				id1, _ := g.ids.IDOf(e.V1Idx)
				id2, _ := g.ids.IDOf(e.V2Idx)
				sub.AddEdge(id1, e.V1End, id2, e.V2End)
			}
		}
	}

	for sideID := range g.tips {
		if idx, ok := g.ids.IdxOf(sideID.ID); ok {
			if _, inMember := memberSet[idx]; inMember {
				sub.AddTip(sideID.ID, sideID.End)
			}
		}
	}

	for _, r := range g.refs.All() {
		touchesComponent := false
		for _, step := range r.steps {
			if idx, ok := g.ids.IdxOf(step.VertexID); ok {
				if _, inMember := memberSet[idx]; inMember {
					touchesComponent = true
					break
				}
			}
		}
		if touchesComponent {
			sub.refs.Add(r)
		}
	}

	return sub
}
