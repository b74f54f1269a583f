// Package depth builds the per-RoV depth matrix and, when haplotypes
// tangle, reconstructs and aligns their "races" through the region.
package depth

import (
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/rov"
)

// Matrix is the depth matrix for one RoV: rows are reference haplotypes
// (graph.Ref, one row per reference whose walk actually touches the
// region), columns are the RoV's sorted vertices. At(row, col) is 0
// (absent), 1 (forward), or 2 (reverse) for a single visit; VisitCount(row,
// col) carries the raw visit count for multi-visit columns. RefIDs[row]
// gives the graph.ID a row was built from.
type Matrix struct {
	Columns []graph.Idx
	RefIDs  []graph.ID

	cells   [][]int
	visits  [][]int
	Tangled bool
}

// Build constructs the depth matrix for r over g: rows are the graph's
// reference haplotypes whose walk touches r's region, columns are
// r.SortedVertices. Rows are built by walking each reference's full,
// genome-wide step sequence rather than r.Walks: r.Walks are enumerated
// simple paths local to the region (no repeated vertex within a single
// walk, by construction of the walk enumerator), so they can never by
// themselves exhibit the repeated boundary visit a tangle is. A tangle is
// a property of a haplotype's real path looping back through this
// region's flank a second time somewhere else in the graph, which only
// shows up when a row is that haplotype's actual full walk. A boundary
// column (the first or last column) visited more than once by the same
// reference flags the matrix tangled, since untangling pivots on the
// flank vertices.
func Build(g *graph.Graph, r *rov.RoV) *Matrix {
	m := &Matrix{Columns: r.SortedVertices}

	colPos := make(map[graph.Idx]int, len(m.Columns))
	for i, v := range m.Columns {
		colPos[v] = i
	}

	var rows []*graph.Ref
	for _, ref := range g.Refs().All() {
		if touchesRegion(g, ref, colPos) {
			rows = append(rows, ref)
		}
	}

	m.RefIDs = make([]graph.ID, len(rows))
	m.cells = make([][]int, len(rows))
	m.visits = make([][]int, len(rows))
	for row, ref := range rows {
		m.RefIDs[row] = ref.ID()
		m.cells[row] = make([]int, len(m.Columns))
		m.visits[row] = make([]int, len(m.Columns))
		for _, step := range ref.Steps() {
			idx, ok := g.IdxOf(step.VertexID)
			if !ok {
				continue
			}
			col, ok := colPos[idx]
			if !ok {
				continue
			}
			m.visits[row][col]++
			if step.Or == graph.Forward {
				m.cells[row][col] = 1
			} else {
				m.cells[row][col] = 2
			}
		}
	}

	if len(m.Columns) > 0 {
		last := len(m.Columns) - 1
		for row := range rows {
			if m.visits[row][0] > 1 || m.visits[row][last] > 1 {
				m.Tangled = true
				break
			}
		}
	}

	return m
}

// touchesRegion reports whether ref's walk visits at least one of the
// region's columns anywhere along its full, genome-wide step sequence.
func touchesRegion(g *graph.Graph, ref *graph.Ref, colPos map[graph.Idx]int) bool {
	for _, step := range ref.Steps() {
		idx, ok := g.IdxOf(step.VertexID)
		if !ok {
			continue
		}
		if _, in := colPos[idx]; in {
			return true
		}
	}
	return false
}

// RowCount is the number of haplotype-walk rows in the matrix.
func (m *Matrix) RowCount() int { return len(m.cells) }

// At returns the cell value (0 absent, 1 forward, 2 reverse) for a row/col.
func (m *Matrix) At(row, col int) int { return m.cells[row][col] }

// VisitCount returns how many times row visits col.
func (m *Matrix) VisitCount(row, col int) int { return m.visits[row][col] }
