package pvst

import (
	"sort"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/spanning"
)

// classGroup collects the tree-edge indices sharing one cycle-equivalence
// class, in DFS pre-order of their child vertex.
type classGroup struct {
	class    int
	teIdxs   []int
	selfLoop bool
}

// BuildFlubbles runs the flubble finder over a spanning tree, returning a
// fresh Tree whose only nodes are the dummy root and the
// flubble-like nodes (Flubble/Tiny) nested per cycle-equivalence class.
// Subflubble refinement (tiny/parallel/concealed/smothered/midi) runs on
// top of this tree in later passes.
func BuildFlubbles(t *spanning.Tree) *Tree {
	pt := NewTree()

	groups := groupByClass(t)

	// Self-loop backedges each seed a degenerate length-1 flubble, emitted
	// directly as tiny.
	for _, be := range t.BackEdges() {
		if be.Src != be.Tgt {
			continue
		}
		v := be.Src
		or := t.Orientation(v)
		id, _ := idOf(t, v)
		endpoint := graph.IDOr{ID: id, Or: or}
		pt.AddNode(FamilyTiny, pt.Root, RouteParams{
			Left:  endpoint,
			Right: endpoint,
			Route: RouteS2E,
		})
	}

	// Only classes with cardinality >= 2 produce a flubble node: the
	// outermost pair forms a flubble, and nested pairs become children.
	for _, grp := range groups {
		if len(grp.teIdxs) < 2 {
			continue
		}
		buildNestedFlubbles(t, pt, pt.Root, grp.teIdxs)
	}

	pt.ComputeHeights()
	return pt
}

// groupByClass buckets tree-edge indices by cycle-equivalence class,
// preserving DFS pre-order of each edge's child vertex within a class.
func groupByClass(t *spanning.Tree) []classGroup {
	byClass := make(map[int][]int)
	for i := range t.TreeEdges() {
		cls := t.EquivClass(i)
		byClass[cls] = append(byClass[cls], i)
	}

	var classes []int
	for cls := range byClass {
		classes = append(classes, cls)
	}
	sort.Ints(classes)

	groups := make([]classGroup, 0, len(classes))
	for _, cls := range classes {
		teIdxs := byClass[cls]
		sort.Slice(teIdxs, func(i, j int) bool {
			return t.Pre(t.TreeEdges()[teIdxs[i]].Child) < t.Pre(t.TreeEdges()[teIdxs[j]].Child)
		})
		groups = append(groups, classGroup{class: cls, teIdxs: teIdxs})
	}
	return groups
}

// buildNestedFlubbles takes a DFS-pre-order-sorted run of cycle-equivalent
// tree edges and emits the outermost flubble spanning the first edge's
// parent to the last edge's child, pairing up whatever interior members
// remain into nested flubbles the same way. A single leftover interior edge
// yields no node of its own, mirroring the single-edge-class rule applied
// locally.
func buildNestedFlubbles(t *spanning.Tree, pt *Tree, parentID int, teIdxs []int) int {
	outer := teIdxs[0]
	inner := teIdxs[len(teIdxs)-1]

	left := parentEndpointOf(t, outer)
	right := childEndpointOf(t, inner)

	nodeID := pt.AddNode(FamilyFlubble, parentID, RouteParams{
		Left:  left,
		Right: right,
		Route: RouteS2E,
	})

	interior := teIdxs[1 : len(teIdxs)-1]
	if len(interior) >= 2 {
		buildNestedFlubbles(t, pt, nodeID, interior)
	}

	return nodeID
}

// parentEndpointOf derives a flubble endpoint from the parent vertex of a
// tree edge: the side the region's boundary enters on.
func parentEndpointOf(t *spanning.Tree, teIdx int) graph.IDOr {
	parent := t.TreeEdges()[teIdx].Parent
	id, _ := idOf(t, parent)
	return graph.IDOr{ID: id, Or: t.Orientation(parent)}
}

// childEndpointOf derives a flubble endpoint from the child vertex of a
// tree edge: the side the region's boundary exits on.
func childEndpointOf(t *spanning.Tree, teIdx int) graph.IDOr {
	child := t.TreeEdges()[teIdx].Child
	id, _ := idOf(t, child)
	return graph.IDOr{ID: id, Or: t.Orientation(child)}
}

func idOf(t *spanning.Tree, v graph.Idx) (graph.ID, bool) {
	return t.Graph().IDOf(v)
}
