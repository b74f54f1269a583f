// Package pvst builds and represents the Pangenome Variation Structure Tree:
// a rooted tree of flubble-like and subflubble regions, assembled from a
// spanning.Tree's cycle-equivalence classes and then refined by the
// tiny/parallel/concealed/smothered/midi passes.
package pvst

import "github.com/povu/povu/internal/graph"

// Family is the PVST node's region kind.
type Family int

const (
	FamilyDummy Family = iota
	FamilyFlubble
	FamilyTiny
	FamilyParallel
	FamilyConcealed
	FamilySmothered
	FamilyMidi
)

func (f Family) String() string {
	switch f {
	case FamilyDummy:
		return "dummy"
	case FamilyFlubble:
		return "flubble"
	case FamilyTiny:
		return "tiny"
	case FamilyParallel:
		return "parallel"
	case FamilyConcealed:
		return "concealed"
	case FamilySmothered:
		return "smothered"
	case FamilyMidi:
		return "midi"
	default:
		return "unknown"
	}
}

// TypeChar is the single-character code used in the .pvst file format.
func (f Family) TypeChar() byte {
	switch f {
	case FamilyDummy:
		return 'D'
	case FamilyFlubble:
		return 'F'
	case FamilyTiny:
		return 'T'
	case FamilyParallel:
		return 'O'
	case FamilyConcealed:
		return 'C'
	case FamilySmothered:
		return 'S'
	case FamilyMidi:
		return 'M'
	default:
		return '?'
	}
}

// Clan groups families by the refinement stage they belong to.
type Clan int

const (
	ClanNone Clan = iota
	ClanFlubbleLike
	ClanSubflubble
)

func (f Family) Clan() Clan {
	switch f {
	case FamilyFlubble, FamilyTiny, FamilyParallel:
		return ClanFlubbleLike
	case FamilyConcealed, FamilySmothered, FamilyMidi:
		return ClanSubflubble
	default:
		return ClanNone
	}
}

// Route is the walk-enumeration direction for a node's region.
type Route int

const (
	RouteS2E Route = iota // enumerate left endpoint -> right endpoint
	RouteE2S               // enumerate right endpoint -> left endpoint
)

// RouteParams names a node's two flanking endpoints and the direction walks
// are enumerated in.
type RouteParams struct {
	Left  graph.IDOr
	Right graph.IDOr
	Route Route
}

// Node is one PVST vertex. All non-dummy nodes carry RouteParams; Height is
// set by the bottom-up pass after construction.
type Node struct {
	ID       int // index into Tree.Nodes
	Family   Family
	Parent   int // -1 for the dummy root
	Children []int
	Route    RouteParams
	Height   int

	// Label is an optional display label for diagnostics; BuildFlubbles,
	// Refine and pvstio.Read leave it empty.
	Label string

	// Hairpin is set by MarkHairpins when either endpoint sits on a
	// self-referential hi-depth backedge, gated behind --hairpins.
	Hairpin bool
}

// Tree is the PVST: a single dummy root plus the forest of regions beneath
// it. The parent-child relation is a forest of exactly one tree rooted at
// the dummy node.
type Tree struct {
	Nodes []*Node
	Root  int
}

// NewTree creates a PVST containing only the dummy root.
func NewTree() *Tree {
	dummy := &Node{ID: 0, Family: FamilyDummy, Parent: -1}
	return &Tree{Nodes: []*Node{dummy}, Root: 0}
}

// AddNode appends a new node parented to parentID and returns its id.
func (t *Tree) AddNode(family Family, parentID int, route RouteParams) int {
	id := len(t.Nodes)
	n := &Node{ID: id, Family: family, Parent: parentID, Route: route}
	t.Nodes = append(t.Nodes, n)
	t.Nodes[parentID].Children = append(t.Nodes[parentID].Children, id)
	return id
}

// Reparent moves childID to be a child of newParentID, removing it from its
// current parent's child list (used by the midi refinement).
func (t *Tree) Reparent(childID, newParentID int) {
	oldParentID := t.Nodes[childID].Parent
	old := t.Nodes[oldParentID]
	for i, c := range old.Children {
		if c == childID {
			old.Children = append(old.Children[:i], old.Children[i+1:]...)
			break
		}
	}
	t.Nodes[childID].Parent = newParentID
	t.Nodes[newParentID].Children = append(t.Nodes[newParentID].Children, childID)
}

// IsLeaf reports whether a node has no children: no subflubble refinement
// was produced for it.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsFlubbleLeaf reports whether n is a flubble-like node with no
// flubble-like children.
func (t *Tree) IsFlubbleLeaf(id int) bool {
	n := t.Nodes[id]
	if n.Family.Clan() != ClanFlubbleLike {
		return false
	}
	for _, cID := range n.Children {
		if t.Nodes[cID].Family.Clan() == ClanFlubbleLike {
			return false
		}
	}
	return true
}

// ComputeHeights runs the bottom-up height pass: height is a node's distance
// from its deepest descendant. Leaves get height 1 (every non-root node's
// height must be >= 1); the dummy root is left at 0.
func (t *Tree) ComputeHeights() {
	var visit func(id int) int
	memo := make(map[int]int)
	visit = func(id int) int {
		if h, ok := memo[id]; ok {
			return h
		}
		n := t.Nodes[id]
		if len(n.Children) == 0 {
			if id == t.Root {
				memo[id] = 0
			} else {
				memo[id] = 1
			}
			n.Height = memo[id]
			return memo[id]
		}
		maxChild := 0
		for _, c := range n.Children {
			h := visit(c)
			if h > maxChild {
				maxChild = h
			}
		}
		h := maxChild + 1
		if id == t.Root {
			h = maxChild
		}
		memo[id] = h
		n.Height = h
		return h
	}
	visit(t.Root)
}

// Validate checks the PVST well-formedness invariants: exactly one dummy
// root, and every other node's height within (0, maxDepth].
func (t *Tree) Validate(maxDepth int) error {
	dummyCount := 0
	for _, n := range t.Nodes {
		if n.Family == FamilyDummy {
			dummyCount++
		}
	}
	if dummyCount != 1 {
		return errInvalidPVST("expected exactly one dummy root, found %d", dummyCount)
	}
	for _, n := range t.Nodes {
		if n.ID == t.Root {
			continue
		}
		if n.Height < 1 {
			return errInvalidPVST("node %d has height %d, want >= 1", n.ID, n.Height)
		}
		if n.Height > maxDepth {
			return errInvalidPVST("node %d has height %d exceeding tree depth %d", n.ID, n.Height, maxDepth)
		}
	}
	return nil
}
