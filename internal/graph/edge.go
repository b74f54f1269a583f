package graph

// Edge is an undirected bidirected-graph edge (v1, end1, v2, end2); self-loops
// are allowed and an edge never repeats. Vertices are stored by dense index,
// not stable id.
type Edge struct {
	V1Idx Idx
	V1End End
	V2Idx Idx
	V2End End
}

// SideIdx pairs a graph end with a vertex's dense index (as opposed to
// SideID, which carries its stable id).
type SideIdx struct {
	End End
	Idx Idx
}

// OtherEnd follows this edge from the (vIdx, end) side to the opposite side.
// For a self-loop (V1Idx == V2Idx) entered on end V1End, it returns the V2
// side so a traversal always advances; entering on V2End returns the V1 side.
func (e Edge) OtherEnd(vIdx Idx, end End) SideIdx {
	if e.V1Idx == e.V2Idx {
		if end == e.V1End {
			return SideIdx{End: e.V2End, Idx: e.V2Idx}
		}
		return SideIdx{End: e.V1End, Idx: e.V1Idx}
	}
	if vIdx == e.V1Idx {
		return SideIdx{End: e.V2End, Idx: e.V2Idx}
	}
	return SideIdx{End: e.V1End, Idx: e.V1Idx}
}
