package rov

import "github.com/povu/povu/internal/graph"

// FlankPair is a pair of RoV-internal vertex ids observed together across
// more than one walk, where neither vertex nests inside a tighter pair
// carrying the same walk support nor sits immediately adjacent to the other
// on every walk that carries both. Such a pair marks a non-planar region
// boundary: the overlay pass slices each shared walk between U and V and
// re-runs the allele query across that bounded sub-span (see
// overlay.FindAlleleSlices), independently of the RoV's own left/right
// endpoints.
type FlankPair struct {
	U, V graph.ID
}

// DetectFlanks runs the non-planar flank test: find vertices with
// in-degree >= 2 over the walk multiset (more than one distinct predecessor
// across all walks), then test every pair of such candidates that shares at
// least two walks for nesting and adjacency over a shared vertex order. A pair that is neither nested
// nor adjacent is reported as a flank.
func DetectFlanks(walks []graph.Walk) []FlankPair {
	if len(walks) < 2 {
		return nil
	}

	ordered := vertexOrder(walks)
	candidates := candidateVertices(walks)
	if len(candidates) < 2 {
		return nil
	}

	support := make(map[graph.ID]map[int]bool, len(candidates))
	for id := range candidates {
		support[id] = supportingWalks(walks, id)
	}

	var out []FlankPair
	for i, u := range ordered {
		if !candidates[u] {
			continue
		}
		for j := i + 1; j < len(ordered); j++ {
			v := ordered[j]
			if !candidates[v] {
				continue
			}
			shared := intersectWalkSets(support[u], support[v])
			if len(shared) < 2 {
				continue
			}
			if adjacentOnAllShared(walks, shared, u, v) {
				continue
			}
			if nestsTighter(ordered, candidates, support, i, j, shared) {
				continue
			}
			out = append(out, FlankPair{U: u, V: v})
		}
	}
	return out
}

// vertexOrder returns every vertex touched by walks, ordered by first
// appearance, the shared ordering the bit-matrix tests below walk over.
func vertexOrder(walks []graph.Walk) []graph.ID {
	seen := make(map[graph.ID]bool)
	var ordered []graph.ID
	for _, w := range walks {
		for _, step := range w {
			if !seen[step.ID] {
				seen[step.ID] = true
				ordered = append(ordered, step.ID)
			}
		}
	}
	return ordered
}

// candidateVertices finds every vertex with in-degree >= 2 over the walk
// multiset: a vertex reached from more than one distinct predecessor,
// counting each walk's own internal step-to-step edges.
func candidateVertices(walks []graph.Walk) map[graph.ID]bool {
	preds := make(map[graph.ID]map[graph.ID]bool)
	for _, w := range walks {
		for i := 1; i < len(w); i++ {
			v, u := w[i].ID, w[i-1].ID
			if preds[v] == nil {
				preds[v] = make(map[graph.ID]bool)
			}
			preds[v][u] = true
		}
	}
	out := make(map[graph.ID]bool)
	for v, ps := range preds {
		if len(ps) >= 2 {
			out[v] = true
		}
	}
	return out
}

// supportingWalks returns the set of walk indices (by position in walks)
// that visit id at least once.
func supportingWalks(walks []graph.Walk, id graph.ID) map[int]bool {
	out := make(map[int]bool)
	for i, w := range walks {
		for _, step := range w {
			if step.ID == id {
				out[i] = true
				break
			}
		}
	}
	return out
}

func intersectWalkSets(a, b map[int]bool) map[int]bool {
	out := make(map[int]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

// adjacentOnAllShared reports whether, on every walk that carries both u and
// v, the two sit back to back with nothing between them.
func adjacentOnAllShared(walks []graph.Walk, shared map[int]bool, u, v graph.ID) bool {
	for walkIdx := range shared {
		w := walks[walkIdx]
		pu, pv := -1, -1
		for i, step := range w {
			if step.ID == u {
				pu = i
			}
			if step.ID == v {
				pv = i
			}
		}
		if pu < 0 || pv < 0 {
			return false
		}
		lo, hi := pu, pv
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo != 1 {
			return false
		}
	}
	return true
}

// nestsTighter reports whether some other candidate strictly between u and v
// in the shared vertex order carries exactly the walk support the (u, v)
// pair shares: when one does, that tighter candidate is the real boundary
// and (u, v) itself is a redundant, wider copy of it, so it is dropped.
func nestsTighter(ordered []graph.ID, candidates map[graph.ID]bool, support map[graph.ID]map[int]bool, i, j int, shared map[int]bool) bool {
	for k := i + 1; k < j; k++ {
		w := ordered[k]
		if !candidates[w] {
			continue
		}
		if sameWalkSet(support[w], shared) {
			return true
		}
	}
	return false
}

func sameWalkSet(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
