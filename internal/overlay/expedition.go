package overlay

import (
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/rov"
)

// Itinerary is the ordered list of allele slices one reference takes through
// an RoV. A length greater than one means that reference's walk loops back
// through the region, i.e. the RoV is tangled for that reference.
type Itinerary []AlleleSlice

// Expedition is one reference's full path through an RoV: its itinerary,
// whether that itinerary is tangled, and which walks its slices come from.
// No pairwise alignments against other references' itineraries are stored.
type Expedition struct {
	RefID      graph.ID
	Itinerary  Itinerary
	Tangled    bool
	WalkRefs   map[int][]graph.ID // walk index -> refs whose itinerary includes a slice of that walk
}

// Trek groups every reference's Expedition for one RoV.
type Trek struct {
	RoVNodeID   int
	Expeditions map[graph.ID]*Expedition
}

// FindAlleleSlices locates, for every walk that visits both u and v, the
// allele slice each reference traversing that span would produce: an exact
// match (SUB/INV, confirmed via the overlay's mismatch query) when the
// walk's u..v span is the same length as the reference's own u..v span, or
// an unconditional INS/DEL slice when the lengths differ (a length
// mismatch alone rules out a position-wise match against this reference).
func FindAlleleSlices(g *graph.Graph, overlays []*Overlay, r *rov.RoV, u, v graph.ID) []AlleleSlice {
	var out []AlleleSlice

	byWalk := make(map[int][]*Overlay)
	for _, ov := range overlays {
		byWalk[ov.WalkIdx] = append(byWalk[ov.WalkIdx], ov)
	}

	for walkIdx, walk := range r.Walks {
		a, okA := indexOf(walk, u)
		b, okB := indexOf(walk, v)
		if !okA || !okB || b <= a {
			continue
		}
		walkLen := b - a

		for _, ref := range g.Refs().All() {
			refA, okRA := refStepIndex(ref, u)
			refB, okRB := refStepIndex(ref, v)
			if !okRA || !okRB || refB <= refA {
				continue
			}
			refLen := refB - refA

			if walkLen != refLen {
				out = append(out, AlleleSlice{
					WalkIdx:   walkIdx,
					WalkStart: a,
					RefID:     ref.ID(),
					RefStart:  refA,
					Length:    walkLen,
					Or:        graph.Forward,
					VarType:   classifyVariant(walkLen, refLen, false),
				})
				continue
			}

			ov := findOverlay(byWalk[walkIdx], ref.ID())
			if ov == nil {
				continue
			}
			startIdx := findStart(ov, refA)
			if startIdx < 0 {
				continue
			}
			if ov.Mismatches(startIdx, a, b, false) == 0 {
				out = append(out, AlleleSlice{
					WalkIdx: walkIdx, WalkStart: a, RefID: ref.ID(), RefStart: refA,
					Length: walkLen, Or: graph.Forward, VarType: VarSub,
				})
			} else if ov.Mismatches(startIdx, a, b, true) == 0 {
				out = append(out, AlleleSlice{
					WalkIdx: walkIdx, WalkStart: a, RefID: ref.ID(), RefStart: refA,
					Length: walkLen, Or: graph.Reverse, VarType: VarInv,
				})
			}
		}
	}
	return out
}

func indexOf(walk graph.Walk, id graph.ID) (int, bool) {
	for i, s := range walk {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

func refStepIndex(ref *graph.Ref, id graph.ID) (int, bool) {
	for i, s := range ref.Steps() {
		if s.VertexID == id {
			return i, true
		}
	}
	return 0, false
}

func findOverlay(ovs []*Overlay, refID graph.ID) *Overlay {
	for _, ov := range ovs {
		if ov.RefID == refID {
			return ov
		}
	}
	return nil
}

func findStart(ov *Overlay, refA int) int {
	for i, s := range ov.Starts {
		if s == refA {
			return i
		}
	}
	return -1
}

// BuildExpeditions groups allele slices into per-reference itineraries and
// flags each reference's expedition as tangled when it visits more than one
// slice.
func BuildExpeditions(slices []AlleleSlice) map[graph.ID]*Expedition {
	exps := make(map[graph.ID]*Expedition)
	for _, s := range slices {
		e, ok := exps[s.RefID]
		if !ok {
			e = &Expedition{RefID: s.RefID, WalkRefs: make(map[int][]graph.ID)}
			exps[s.RefID] = e
		}
		e.Itinerary = append(e.Itinerary, s)
		e.WalkRefs[s.WalkIdx] = append(e.WalkRefs[s.WalkIdx], s.RefID)
	}
	for _, e := range exps {
		e.Tangled = len(e.Itinerary) > 1
	}
	return exps
}
