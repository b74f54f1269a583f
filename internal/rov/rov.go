// Package rov builds regions of variation (RoVs) from flubble-leaf PVST
// nodes: the set of simple walks between a region's two endpoints, a
// BFS-topological ordering of the vertices inside it, and its flanking
// context for non-planar overlays.
package rov

import (
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/pvst"
	"github.com/povu/povu/internal/spanning"
)

// Region of Variation caps (tunable per Generator through its MaxSteps and
// MaxUnblockCtr fields).
const (
	// MaxFlubbleSteps bounds how many edges a single enumerated walk may
	// take before it is abandoned as pathological.
	MaxFlubbleSteps = 20
	// DefaultMaxUnblockCounter bounds how many stack frames in total the
	// walk enumerator may push for one region before giving up on it as
	// too combinatorially large.
	DefaultMaxUnblockCounter = 1024
)

// RoV is one region of variation: a leaf or flubble-leaf PVST node plus its
// enumerated walks and vertex ordering.
type RoV struct {
	NodeID         int
	Left           graph.IDOr
	Right          graph.IDOr
	Walks          []graph.Walk
	SortedVertices []graph.Idx
	Flanks         []FlankPair
	Truncated      bool // walk enumeration hit a cap and was cut short
}

// Generator enumerates RoVs from a PVST's flubble-leaf nodes.
type Generator struct {
	Graph            *graph.Graph
	Tree             *spanning.Tree
	MaxSteps         int
	MaxUnblockCtr    int
}

// NewGenerator constructs a Generator with the default caps.
func NewGenerator(g *graph.Graph, t *spanning.Tree) *Generator {
	return &Generator{Graph: g, Tree: t, MaxSteps: MaxFlubbleSteps, MaxUnblockCtr: DefaultMaxUnblockCounter}
}

// Generate produces one RoV per flubble-leaf node in pt. A region whose
// walk set ends up empty is discarded rather than emitted (an empty
// region carries no variant information).
func (gen *Generator) Generate(pt *pvst.Tree) []*RoV {
	var out []*RoV
	for _, n := range pt.Nodes {
		if n.Family == pvst.FamilyDummy {
			continue
		}
		if !pt.IsFlubbleLeaf(n.ID) {
			continue
		}

		walks, truncated := gen.enumerateWalks(n.Route.Left, n.Route.Right)
		if len(walks) == 0 {
			continue
		}

		r := &RoV{
			NodeID:    n.ID,
			Left:      n.Route.Left,
			Right:     n.Route.Right,
			Walks:     walks,
			Truncated: truncated,
		}
		r.SortedVertices = SortedVertices(gen.Graph, gen.Tree, walks)
		r.Flanks = DetectFlanks(walks)
		out = append(out, r)
	}
	return out
}
