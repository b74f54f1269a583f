package graph

// PruneShortTips removes every tip vertex (one with a free L or R end) whose
// label is shorter than minLen, returning a new Graph with those vertices
// and their incident edges dropped. Applied once before decomposition it
// keeps degenerate short dangling ends out of the PVST.
func (g *Graph) PruneShortTips(minLen int) *Graph {
	drop := make(map[Idx]struct{})
	for sideID := range g.Tips() {
		idx, ok := g.ids.IdxOf(sideID.ID)
		if !ok {
			continue
		}
		if g.vertices[idx].Length() < minLen {
			drop[idx] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return g
	}

	var keep []Idx
	for idx := range g.vertices {
		if _, pruned := drop[idx]; !pruned {
			keep = append(keep, idx)
		}
	}
	return g.buildSubgraph(keep)
}
