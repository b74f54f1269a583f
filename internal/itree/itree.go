// Package itree implements the per-reference-haplotype interval tree that
// overlays inversion alternates onto a reference's coordinate space. Nodes
// live in an arena (a slice indexed by int) rather than being linked by
// pointer, so a delete can unlink and tombstone a slot without invalidating
// any index still held elsewhere; Compact reclaims tombstoned slots in one
// pass when a caller chooses to pay for it.
package itree

import "github.com/povu/povu/internal/graph"

const none = -1

// Outcome reports which case an Insert call took.
type Outcome int

const (
	InsertLeaf Outcome = iota
	InsertAlt
	ReplaceAlt
	MergeExtend
	MergeReplace
	ExtendAlt
	DoNothing
)

func (o Outcome) String() string {
	switch o {
	case InsertLeaf:
		return "INSERT_LEAF"
	case InsertAlt:
		return "INSERT_ALT"
	case ReplaceAlt:
		return "REPLACE_ALT"
	case MergeExtend:
		return "MERGE_EXTEND"
	case MergeReplace:
		return "MERGE_REPLACE"
	case ExtendAlt:
		return "EXTEND_ALT"
	case DoNothing:
		return "DO_NOTHING"
	default:
		return "UNKNOWN"
	}
}

// Alt is one alternate interval recorded at a ref-start node: the alt
// haplotype's ref id, its own start coordinate, and the interval length.
type Alt struct {
	AltRefID graph.ID
	AltStart int
	Len      int
}

func (a Alt) end() int { return a.AltStart + a.Len }

func (a Alt) identical(b Alt) bool {
	return a.AltStart == b.AltStart && a.Len == b.Len
}

// contains reports whether a fully contains b.
func (a Alt) contains(b Alt) bool {
	return a.AltStart <= b.AltStart && b.end() <= a.end()
}

type node struct {
	refHStart   int
	alts        []Alt
	left, right int
	deleted     bool
}

// Tree is one reference haplotype's interval tree, keyed by ref_h_start.
type Tree struct {
	nodes []node
	root  int
}

func NewTree() *Tree {
	return &Tree{root: none}
}

func (t *Tree) newNode(refHStart int, a Alt) int {
	t.nodes = append(t.nodes, node{refHStart: refHStart, alts: []Alt{a}, left: none, right: none})
	return len(t.nodes) - 1
}

// Insert descends by ref_h_start to find or create the node for refHStart,
// then runs the alt-interval case analysis against whatever is already
// recorded there for altRefID.
func (t *Tree) Insert(refHStart int, altRefID graph.ID, altStart, length int) Outcome {
	incoming := Alt{AltRefID: altRefID, AltStart: altStart, Len: length}

	if t.root == none {
		t.root = t.newNode(refHStart, incoming)
		return InsertLeaf
	}

	cur := t.root
	for {
		switch {
		case refHStart < t.nodes[cur].refHStart:
			if t.nodes[cur].left == none {
				idx := t.newNode(refHStart, incoming)
				t.nodes[cur].left = idx
				return InsertLeaf
			}
			cur = t.nodes[cur].left
		case refHStart > t.nodes[cur].refHStart:
			if t.nodes[cur].right == none {
				idx := t.newNode(refHStart, incoming)
				t.nodes[cur].right = idx
				return InsertLeaf
			}
			cur = t.nodes[cur].right
		default:
			return t.insertAtNode(cur, incoming)
		}
	}
}

// insertAtNode runs the case analysis against the alts already recorded at
// nodes[idx] for incoming.AltRefID: identical intervals do nothing; an
// incoming interval contained in an existing one is already subsumed and
// does nothing; an existing interval contained in the incoming one is
// replaced outright; a one-sided overlap merges in the direction it
// overlaps; a same-hap, non-overlapping interval is appended as a second
// entry; an absent hap is appended as a new entry.
func (t *Tree) insertAtNode(idx int, incoming Alt) Outcome {
	n := &t.nodes[idx]
	for i, existing := range n.alts {
		if existing.AltRefID != incoming.AltRefID {
			continue
		}
		switch {
		case existing.identical(incoming):
			return DoNothing
		case existing.contains(incoming):
			return DoNothing
		case incoming.contains(existing):
			n.alts[i] = incoming
			return ReplaceAlt
		case existing.AltStart <= incoming.AltStart && incoming.AltStart < existing.end() && existing.end() < incoming.end():
			n.alts[i] = Alt{AltRefID: incoming.AltRefID, AltStart: existing.AltStart, Len: incoming.end() - existing.AltStart}
			return MergeExtend
		case incoming.AltStart < existing.AltStart && existing.AltStart < incoming.end() && incoming.end() <= existing.end():
			n.alts[i] = Alt{AltRefID: incoming.AltRefID, AltStart: incoming.AltStart, Len: existing.end() - incoming.AltStart}
			return MergeReplace
		default:
			n.alts = append(n.alts, incoming)
			return ExtendAlt
		}
	}
	n.alts = append(n.alts, incoming)
	return InsertAlt
}

// Lookup returns the alt set recorded at refHStart, if any node exists there.
func (t *Tree) Lookup(refHStart int) ([]Alt, bool) {
	idx, _, _, ok := t.find(refHStart)
	if !ok {
		return nil, false
	}
	return t.nodes[idx].alts, true
}

func (t *Tree) find(refHStart int) (idx, parent int, isLeft bool, ok bool) {
	idx, parent = t.root, none
	for idx != none {
		switch {
		case refHStart < t.nodes[idx].refHStart:
			parent, isLeft = idx, true
			idx = t.nodes[idx].left
		case refHStart > t.nodes[idx].refHStart:
			parent, isLeft = idx, false
			idx = t.nodes[idx].right
		default:
			return idx, parent, isLeft, true
		}
	}
	return none, none, false, false
}

// Delete removes the node at refHStart, if present. A node with two
// children is deleted by copying in the leftmost leaf of its right subtree
// and removing that leaf's original slot instead.
func (t *Tree) Delete(refHStart int) bool {
	idx, parent, isLeft, ok := t.find(refHStart)
	if !ok {
		return false
	}
	t.deleteNode(idx, parent, isLeft)
	return true
}

func (t *Tree) deleteNode(idx, parent int, isLeft bool) {
	n := t.nodes[idx]
	switch {
	case n.left == none && n.right == none:
		t.replaceChild(parent, isLeft, none)
		t.tombstone(idx)
	case n.left == none:
		t.replaceChild(parent, isLeft, n.right)
		t.tombstone(idx)
	case n.right == none:
		t.replaceChild(parent, isLeft, n.left)
		t.tombstone(idx)
	default:
		succIdx, succParent := t.leftmost(n.right, idx)
		succ := t.nodes[succIdx]
		t.nodes[idx].refHStart = succ.refHStart
		t.nodes[idx].alts = succ.alts
		if succParent == idx {
			t.nodes[idx].right = succ.right
		} else {
			t.nodes[succParent].left = succ.right
		}
		t.tombstone(succIdx)
	}
}

func (t *Tree) leftmost(start, parent int) (idx, parentIdx int) {
	idx, parentIdx = start, parent
	for t.nodes[idx].left != none {
		parentIdx = idx
		idx = t.nodes[idx].left
	}
	return idx, parentIdx
}

func (t *Tree) replaceChild(parent int, isLeft bool, child int) {
	if parent == none {
		t.root = child
		return
	}
	if isLeft {
		t.nodes[parent].left = child
	} else {
		t.nodes[parent].right = child
	}
}

func (t *Tree) tombstone(idx int) {
	t.nodes[idx].deleted = true
	t.nodes[idx].left = none
	t.nodes[idx].right = none
	t.nodes[idx].alts = nil
}

// Compact rebuilds the arena without tombstoned slots, remapping every
// surviving index. Callers hold no indices across a Compact call.
func (t *Tree) Compact() {
	remap := make([]int, len(t.nodes))
	var live []node
	for i, n := range t.nodes {
		if n.deleted {
			remap[i] = none
			continue
		}
		remap[i] = len(live)
		live = append(live, n)
	}
	for i := range live {
		if live[i].left != none {
			live[i].left = remap[live[i].left]
		}
		if live[i].right != none {
			live[i].right = remap[live[i].right]
		}
	}
	if t.root != none {
		t.root = remap[t.root]
	}
	t.nodes = live
}

// Len returns the number of live (non-tombstoned) nodes.
func (t *Tree) Len() int {
	n := 0
	for _, nd := range t.nodes {
		if !nd.deleted {
			n++
		}
	}
	return n
}
