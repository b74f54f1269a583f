// Package graph implements a bidirected variation graph: vertices with two
// ends (L/R), undirected edges between specific ends, and the reference
// (haplotype) walks that traverse them.
package graph

import "fmt"

// End identifies one of a vertex's two ends: L (5') or R (3').
type End int

const (
	EndL End = iota
	EndR
)

// Complement returns the opposite end.
func (e End) Complement() End {
	if e == EndL {
		return EndR
	}
	return EndL
}

func (e End) String() string {
	if e == EndL {
		return "L"
	}
	return "R"
}

// Orientation is the strand a reference traverses a vertex on.
type Orientation int

const (
	Forward Orientation = iota
	Reverse
)

func (o Orientation) String() string {
	if o == Forward {
		return ">"
	}
	return "<"
}

// Complement flips the orientation.
func (o Orientation) Complement() Orientation {
	if o == Forward {
		return Reverse
	}
	return Forward
}

// StepOrEnd derives the end a traversal leaves a vertex by, given the end it
// entered on and its orientation. This is the deterministic
// function walk enumeration uses to pick a traversal direction without
// needing a separate directed-graph representation.
func StepOrEnd(entry End, o Orientation) End {
	// Entering on L while forward exits on R (and vice versa); reverse
	// orientation swaps the exit side.
	exit := entry.Complement()
	if o == Reverse {
		exit = entry
	}
	return exit
}

// SideID pairs a graph end with a vertex id or index; used both for tips
// (vertex_id, end) and for directed traversal bookkeeping.
type SideID struct {
	End End
	ID  uint64
}

func (s SideID) Complement() SideID {
	return SideID{End: s.End.Complement(), ID: s.ID}
}

func (s SideID) String() string {
	return fmt.Sprintf("%s%d", s.End, s.ID)
}

// IDOr is a (vertex id, orientation) pair: one step of a walk.
type IDOr struct {
	ID ID
	Or Orientation
}

func (x IDOr) String() string {
	return fmt.Sprintf("%s%d", x.Or, x.ID)
}

// Walk is an ordered sequence of steps through the graph.
type Walk []IDOr

func (w Walk) String() string {
	s := ""
	for _, step := range w {
		s += step.String()
	}
	return s
}

// ID is a stable, positive, caller-assigned vertex identifier (readGFA
// numbers GFA segments from 1 in order of first appearance). Idx is the
// graph's internal dense index for that vertex.
type ID = uint64
type Idx = int
