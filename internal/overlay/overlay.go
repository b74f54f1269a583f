// Package overlay precomputes per-(walk, reference) mismatch prefix sums
// over an RoV's enumerated walks, then uses them to find allele slices: the
// windows where a walk exactly matches a reference in one orientation.
package overlay

import (
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/rov"
)

// Overlay is the precomputed mismatch index for one (walk, reference) pair.
// Starts holds every ref step index where the reference's step matches the
// walk's first step, i.e. every place this walk could plausibly align.
// Fwd[i] and Rev[i] are prefix-sum arrays (length len(walk)+1) of per-step
// mismatch counts scanning the walk against the reference from Starts[i],
// comparing in the reference's own orientation (Fwd) or its complement
// (Rev, for inverted matches).
type Overlay struct {
	WalkIdx int
	RefID   graph.ID

	Starts []int
	Fwd    [][]int
	Rev    [][]int
}

// Build computes the overlay for every (walk, ref) pair in r where ref
// visits both the RoV walk's first and last vertex (a necessary condition
// for the ref to plausibly traverse the region at all).
func Build(g *graph.Graph, r *rov.RoV) []*Overlay {
	var out []*Overlay
	for walkIdx, walk := range r.Walks {
		if len(walk) == 0 {
			continue
		}
		for _, ref := range g.Refs().All() {
			if !entersWalk(ref, walk) {
				continue
			}
			ov := buildOne(walkIdx, ref, walk)
			if ov != nil {
				out = append(out, ov)
			}
		}
	}
	return out
}

func entersWalk(ref *graph.Ref, walk graph.Walk) bool {
	if len(walk) == 0 {
		return false
	}
	first, last := walk[0].ID, walk[len(walk)-1].ID
	var seenFirst, seenLast bool
	for _, s := range ref.Steps() {
		if s.VertexID == first {
			seenFirst = true
		}
		if s.VertexID == last {
			seenLast = true
		}
	}
	return seenFirst && seenLast
}

func buildOne(walkIdx int, ref *graph.Ref, walk graph.Walk) *Overlay {
	steps := ref.Steps()
	ov := &Overlay{WalkIdx: walkIdx, RefID: ref.ID()}

	for start, s := range steps {
		if s.VertexID != walk[0].ID {
			continue
		}
		if start+len(walk) > len(steps) {
			continue
		}
		ov.Starts = append(ov.Starts, start)
		ov.Fwd = append(ov.Fwd, prefixSum(walk, steps[start:start+len(walk)], false))
		ov.Rev = append(ov.Rev, prefixSum(walk, steps[start:start+len(walk)], true))
	}

	if len(ov.Starts) == 0 {
		return nil
	}
	return ov
}

// prefixSum builds a cumulative-mismatch array of length len(walk)+1 for
// walk against the aligned reference window win; complement compares each
// walk step's orientation against the reference step's complement, the
// condition for an inverted match.
func prefixSum(walk graph.Walk, win []graph.RefStep, complement bool) []int {
	sums := make([]int, len(walk)+1)
	for i, step := range walk {
		mismatch := 0
		refOr := win[i].Or
		if complement {
			refOr = refOr.Complement()
		}
		if step.ID != win[i].VertexID || step.Or != refOr {
			mismatch = 1
		}
		sums[i+1] = sums[i] + mismatch
	}
	return sums
}

// Mismatches returns the mismatch count for the half-open window [a, b) of
// walk positions, starting from Starts[startIdx], in the given orientation:
// reverse=false queries Fwd, reverse=true queries Rev.
func (ov *Overlay) Mismatches(startIdx, a, b int, reverse bool) int {
	prefix := ov.Fwd[startIdx]
	if reverse {
		prefix = ov.Rev[startIdx]
	}
	return prefix[b] - prefix[a]
}
