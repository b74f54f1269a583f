package depth

import "github.com/povu/povu/internal/graph"

// Race is one haplotype's sequence of laps through an RoV's sorted vertices.
// Laps are read off the depth matrix in column order, and the matrix keeps
// per-column orientation and visit counts but not the order of visits, so
// every race has a single lap holding each column its row visits; a
// haplotype that loops back through the region is not split into laps.
type Race struct {
	Row  int
	Laps [][]graph.Idx
}

// BuildRaces reconstructs the race for every row of m.
func BuildRaces(m *Matrix) []Race {
	races := make([]Race, m.RowCount())
	for row := range races {
		races[row] = Race{Row: row, Laps: buildLaps(m, row)}
	}
	return races
}

func buildLaps(m *Matrix, row int) [][]graph.Idx {
	var laps [][]graph.Idx
	var cur []graph.Idx
	lastCol := -1
	for col, v := range m.Columns {
		if m.At(row, col) == 0 {
			continue
		}
		if col <= lastCol && len(cur) > 0 {
			laps = append(laps, cur)
			cur = nil
		}
		cur = append(cur, v)
		lastCol = col
	}
	if len(cur) > 0 {
		laps = append(laps, cur)
	}
	return laps
}

// Flatten concatenates every lap of a race into one token sequence, for
// pairwise alignment against a reference race.
func (r Race) Flatten() []graph.Idx {
	var out []graph.Idx
	for _, lap := range r.Laps {
		out = append(out, lap...)
	}
	return out
}
