package rov

import "github.com/povu/povu/internal/graph"

// frame is one level of the explicit DFS stack used by enumerateWalks: the
// side currently being explored, the path taken to reach it, and the set
// of vertices already on that path (a Johnson-style block set scoped to
// the current walk rather than the whole enumeration).
type frame struct {
	side    graph.SideID
	path    graph.Walk
	blocked map[uint64]bool
}

// enumerateWalks performs a modified iterative-Johnson simple-path
// enumeration from left to right: every simple walk (no repeated vertex)
// between the two endpoints, explored with an explicit stack rather than
// recursion. It stops a walk once it exceeds MaxSteps edges, and stops the
// whole enumeration once MaxUnblockCtr stack frames have been pushed, in
// which case the result is marked truncated rather than
// silently incomplete.
func (gen *Generator) enumerateWalks(left, right graph.IDOr) ([]graph.Walk, bool) {
	g := gen.Graph
	startIdx, ok := g.IdxOf(left.ID)
	if !ok {
		return nil, false
	}
	targetID := right.ID

	// A frame's side is the end a vertex was entered on, so the start side
	// is the end opposite the one a left.Or traversal leaves by.
	startEnd := graph.StepOrEnd(graph.EndL, left.Or).Complement()
	startSide := graph.SideID{End: startEnd, ID: left.ID}

	var walks []graph.Walk
	framesPushed := 0
	truncated := false

	stack := []frame{{
		side:    startSide,
		path:    graph.Walk{left},
		blocked: map[uint64]bool{left.ID: true},
	}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.side.ID == targetID && len(cur.path) > 1 {
			walks = append(walks, cur.path)
			continue
		}
		if len(cur.path) > gen.MaxSteps {
			continue
		}

		vIdx, ok := g.IdxOf(cur.side.ID)
		if !ok {
			continue
		}
		exitEnd := cur.side.End.Complement()
		v := g.VertexByIdx(vIdx)
		for eIdx := range v.EdgesAt(exitEnd) {
			if framesPushed >= gen.MaxUnblockCtr {
				truncated = true
				break
			}
			peer := g.GetOtherVtx(eIdx, vIdx, exitEnd)
			if peer.ID != targetID && cur.blocked[peer.ID] {
				continue
			}

			or := graph.Forward
			if peer.End == graph.EndR {
				or = graph.Reverse
			}
			step := graph.IDOr{ID: peer.ID, Or: or}

			newPath := make(graph.Walk, len(cur.path), len(cur.path)+1)
			copy(newPath, cur.path)
			newPath = append(newPath, step)

			newBlocked := make(map[uint64]bool, len(cur.blocked)+1)
			for k := range cur.blocked {
				newBlocked[k] = true
			}
			newBlocked[peer.ID] = true

			stack = append(stack, frame{side: peer, path: newPath, blocked: newBlocked})
			framesPushed++
		}
		if truncated {
			break
		}
	}

	return walks, truncated
}
