package pvst

import (
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/spanning"
)

// Refine runs the additive subflubble refinement passes (tiny, parallel,
// concealed, smothered, midi) over a flubble tree built by BuildFlubbles,
// then recomputes heights. Each pass only ever adds information
// (reclassifies a node's Family or inserts a new child node); none removes
// a node BuildFlubbles produced.
func Refine(t *spanning.Tree, pt *Tree, log WarnLogger) {
	tinyPass(t, pt)
	parallelPass(t, pt)
	concealedPass(t, pt, log)
	smotheredPass(t, pt, log)
	midiPass(t, pt, log)
	pt.ComputeHeights()
}

// WarnLogger receives a formatted message for an invalid refinement that
// was skipped. A nil WarnLogger silently discards the message.
type WarnLogger interface {
	Warnf(format string, args ...any)
}

func warn(log WarnLogger, format string, args ...any) {
	if log != nil {
		log.Warnf(format, args...)
	}
}

// tinyPass reclassifies a flubble as tiny when both endpoints sit on the
// same vertex with opposite orientation, or when the region's interior
// holds at most one vertex.
func tinyPass(t *spanning.Tree, pt *Tree) {
	for _, n := range pt.Nodes {
		if n.Family != FamilyFlubble {
			continue
		}
		if n.Route.Left.ID == n.Route.Right.ID && n.Route.Left.Or != n.Route.Right.Or {
			n.Family = FamilyTiny
			continue
		}
		if interiorLength(t, n) <= 1 {
			n.Family = FamilyTiny
		}
	}
}

// interiorLength estimates the number of vertices strictly between a
// flubble's two endpoints along the spanning tree, using pre-order
// position as a proxy for tree distance.
func interiorLength(t *spanning.Tree, n *Node) int {
	leftIdx, okL := idxOf(t, n.Route.Left.ID)
	rightIdx, okR := idxOf(t, n.Route.Right.ID)
	if !okL || !okR {
		return 0
	}
	lo, hi := t.Pre(leftIdx), t.Pre(rightIdx)
	if lo > hi {
		lo, hi = hi, lo
	}
	d := hi - lo - 1
	if d < 0 {
		d = 0
	}
	return d
}

// parallelPass reclassifies a flubble as parallel when more than one
// independent simple path connects its two endpoints. A flubble's
// cycle-equivalence class groups exactly the tree edges whose removal
// disconnects the same backedge-spanned region; a flubble whose own class
// has more than two member tree edges (beyond the pair that defined its own
// endpoints) has additional direct branches between the same two endpoints,
// which is exactly the parallel case.
func parallelPass(t *spanning.Tree, pt *Tree) {
	classSize := make(map[int]int)
	for i := range t.TreeEdges() {
		classSize[t.EquivClass(i)]++
	}

	for _, n := range pt.Nodes {
		if n.Family != FamilyFlubble {
			continue
		}
		cls, ok := classOfEndpoint(t, n)
		if !ok {
			continue
		}
		if classSize[cls] > 2 {
			n.Family = FamilyParallel
		}
	}
}

// classOfEndpoint recovers the cycle-equivalence class a flubble node's
// right endpoint's tree edge belongs to.
func classOfEndpoint(t *spanning.Tree, n *Node) (int, bool) {
	rightIdx, ok := idxOf(t, n.Route.Right.ID)
	if !ok {
		return 0, false
	}
	teIdx := t.ParentEdgeIdx(rightIdx)
	if teIdx < 0 {
		return 0, false
	}
	return t.EquivClass(teIdx), true
}

// concealedPass finds a secondary entry/exit pair reachable via a gray
// (off-trunk) tree edge branching from the black trunk path between a
// flubble's endpoints, and inserts a concealed subflubble child for it.
// This is a structural approximation of an exhaustive vertex-pair case
// analysis: it looks for a gray child hanging off a black trunk vertex
// strictly inside the flubble's span, which is the same condition such a
// case analysis would need to detect.
func concealedPass(t *spanning.Tree, pt *Tree, log WarnLogger) {
	for _, n := range flubbleLikeSnapshot(pt) {
		leftIdx, okL := idxOf(t, n.Route.Left.ID)
		rightIdx, okR := idxOf(t, n.Route.Right.ID)
		if !okL || !okR {
			continue
		}
		lo, hi := t.Pre(leftIdx), t.Pre(rightIdx)
		if lo > hi {
			lo, hi = hi, lo
		}

		for v := leftIdx; v != rightIdx; {
			teIdx := 0
			found := false
			for i, te := range t.TreeEdges() {
				if te.Parent == v {
					teIdx, found = i, true
					break
				}
			}
			if !found {
				break
			}
			te := t.TreeEdges()[teIdx]
			if te.Color == spanning.Gray {
				entry := graph.IDOr{ID: mustID(t, v), Or: t.Orientation(v)}
				exit := graph.IDOr{ID: mustID(t, te.Child), Or: t.Orientation(te.Child)}
				if !validRoute(entry, exit) {
					warn(log, "pvst: concealed refinement skipped: invalid route %v -> %v", entry, exit)
					break
				}
				pt.AddNode(FamilyConcealed, n.ID, RouteParams{Left: entry, Right: exit, Route: RouteS2E})
				break
			}
			v = te.Child
		}
	}
}

// smotheredPass is the concealed variant embedded in a non-trunk branch. It
// looks for a concealed child whose own endpoints sit on a gray (non-trunk)
// tree edge one level further down and reclassifies it.
func smotheredPass(t *spanning.Tree, pt *Tree, log WarnLogger) {
	for _, n := range concealedSnapshot(pt) {
		leftIdx, ok := idxOf(t, n.Route.Left.ID)
		if !ok {
			continue
		}
		teIdx := t.ParentEdgeIdx(leftIdx)
		if teIdx < 0 {
			continue
		}
		if t.TreeEdges()[teIdx].Color == spanning.Gray {
			pt.Nodes[n.ID].Family = FamilySmothered
		}
	}
}

// midiPass inserts a midi node under a flubble-like node that has exactly
// two concealed children whose left endpoints match, re-parenting both
// concealed children and the node's other flubble-like children beneath
// the new midi node. Tie-breaking
// the g/s role inference between the two concealed children when both
// could plausibly serve as either role is an open choice; here the first
// concealed child in insertion order is treated as the "g" role and the
// second as "s", a stable, documented convention rather than a derived
// property.
func midiPass(t *spanning.Tree, pt *Tree, log WarnLogger) {
	for _, n := range flubbleLikeSnapshot(pt) {
		var concealedChildren []int
		var otherChildren []int
		for _, cID := range n.Children {
			if pt.Nodes[cID].Family == FamilyConcealed {
				concealedChildren = append(concealedChildren, cID)
			} else {
				otherChildren = append(otherChildren, cID)
			}
		}
		if len(concealedChildren) != 2 {
			continue
		}
		g, s := concealedChildren[0], concealedChildren[1]
		gNode, sNode := pt.Nodes[g], pt.Nodes[s]
		if gNode.Route.Left.ID != sNode.Route.Left.ID {
			warn(log, "pvst: midi refinement skipped for node %d: concealed children endpoints do not align", n.ID)
			continue
		}

		midiID := pt.AddNode(FamilyMidi, n.ID, n.Route)
		pt.Reparent(g, midiID)
		pt.Reparent(s, midiID)
		for _, oc := range otherChildren {
			if pt.Nodes[oc].Family.Clan() == ClanFlubbleLike {
				pt.Reparent(oc, midiID)
			}
		}
	}
}

func flubbleLikeSnapshot(pt *Tree) []*Node {
	var out []*Node
	for _, n := range pt.Nodes {
		if n.Family.Clan() == ClanFlubbleLike {
			out = append(out, n)
		}
	}
	return out
}

func concealedSnapshot(pt *Tree) []*Node {
	var out []*Node
	for _, n := range pt.Nodes {
		if n.Family == FamilyConcealed {
			out = append(out, n)
		}
	}
	return out
}

func idxOf(t *spanning.Tree, id graph.ID) (graph.Idx, bool) {
	return t.Graph().IdxOf(id)
}

func mustID(t *spanning.Tree, v graph.Idx) graph.ID {
	id, _ := t.Graph().IDOf(v)
	return id
}

// validRoute rejects a degenerate route where entry and exit coincide with
// no orientation change, which would produce a zero-length subflubble.
func validRoute(entry, exit graph.IDOr) bool {
	return entry != exit
}
