package depth

// Untangled is one unrolled depth matrix produced from a tangled region:
// the subset of rows that belong to a single pass (loop iteration) through
// the flanks, plus the alignment that singled it out.
type Untangled struct {
	RefRow  int
	AltRow  int
	LoopNum int
	Matrix  *Matrix
	Ops     []Op
}

// Untangle pairwise-aligns every alt race against every reference race and,
// for each reference column with a mismatch relative to an alt across loop
// numbers, builds one unrolled matrix keeping only the rows for that loop.
// Callers pass refRows as the row indices of reference haplotypes (the
// walks whose ref enters this RoV); every other row is treated as an alt.
func Untangle(m *Matrix, refRows []int) []*Untangled {
	if !m.Tangled {
		return nil
	}

	races := BuildRaces(m)
	refSet := make(map[int]bool, len(refRows))
	for _, r := range refRows {
		refSet[r] = true
	}

	var out []*Untangled
	for _, refRow := range refRows {
		ref := races[refRow]
		refTokens := ref.Flatten()

		for altRow := range races {
			if refSet[altRow] {
				continue
			}
			alt := races[altRow]
			altTokens := alt.Flatten()

			_, ops := Align(refTokens, altTokens)
			if !hasMismatch(ops) {
				continue
			}

			for loop := range ref.Laps {
				if loop >= len(alt.Laps) {
					continue
				}
				sub := unroll(m, refRow, altRow, loop)
				out = append(out, &Untangled{
					RefRow:  refRow,
					AltRow:  altRow,
					LoopNum: loop,
					Matrix:  sub,
					Ops:     ops,
				})
			}
		}
	}
	return out
}

func hasMismatch(ops []Op) bool {
	for _, op := range ops {
		if op.Kind != OpMatch {
			return true
		}
	}
	return false
}

// unroll builds a depth matrix containing only refRow and altRow, restricted
// to the columns touched by the loop-th lap of either race.
func unroll(m *Matrix, refRow, altRow, loop int) *Matrix {
	races := BuildRaces(m)
	cols := make(map[int]bool)
	markLapCols(m, races[refRow], loop, cols)
	markLapCols(m, races[altRow], loop, cols)

	var colIdx []int
	for c := range cols {
		colIdx = append(colIdx, c)
	}
	sortInts(colIdx)

	sub := &Matrix{
		Columns: selectIdx(m.Columns, colIdx),
		cells:   [][]int{selectCol(m.cells[refRow], colIdx), selectCol(m.cells[altRow], colIdx)},
		visits:  [][]int{selectCol(m.visits[refRow], colIdx), selectCol(m.visits[altRow], colIdx)},
		Tangled: true,
	}
	return sub
}

func markLapCols(m *Matrix, race Race, loop int, cols map[int]bool) {
	if loop >= len(race.Laps) {
		return
	}
	lapSet := make(map[int]bool, len(race.Laps[loop]))
	for _, v := range race.Laps[loop] {
		lapSet[int(v)] = true
	}
	for col, v := range m.Columns {
		if lapSet[int(v)] {
			cols[col] = true
		}
	}
}

func selectIdx[T any](s []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, c := range idx {
		out[i] = s[c]
	}
	return out
}

func selectCol(row []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, c := range idx {
		out[i] = row[c]
	}
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
