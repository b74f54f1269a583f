package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/povu/povu/internal/depth"
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/itree"
	"github.com/povu/povu/internal/overlay"
	"github.com/povu/povu/internal/pvst"
	"github.com/povu/povu/internal/rov"
	"github.com/povu/povu/internal/vcfout"
)

// InversionIndex holds one interval tree per reference haplotype, overlaying
// the inversion alternates recorded against it across every RoV in a run. A
// duplicate or already-subsumed inversion alt allele (an Insert outcome of
// DoNothing) is dropped from the emitted record rather than re-reported.
type InversionIndex map[graph.ID]*itree.Tree

// NewInversionIndex creates an empty index.
func NewInversionIndex() InversionIndex {
	return make(InversionIndex)
}

func (idx InversionIndex) treeFor(refID graph.ID) *itree.Tree {
	t, ok := idx[refID]
	if !ok {
		t = itree.NewTree()
		idx[refID] = t
	}
	return t
}

// registerInversion records alt's interval against ref's tree and reports
// whether it is new information worth keeping in the record.
func (idx InversionIndex) registerInversion(refID graph.ID, refStart int, alt vcfout.AltAllele) bool {
	t := idx.treeFor(refID)
	for _, hap := range alt.Haps {
		outcome := t.Insert(refStart, hap, alt.Slice.RefStart, alt.Slice.Length)
		if outcome != itree.DoNothing {
			return true
		}
	}
	return false
}

// BuildRoVRecords turns one RoV into at most one VCF record: it slices
// allele candidates between the region's flank vertices, takes the
// lowest-indexed walk carrying a reference haplotype (refIDs) as the
// reference allele, and merges the slices of every other walk into alt
// alleles by normalized allele content. The record is flagged tangled when
// the region's depth matrix is. Slices on other walks become alts even when
// they belong to a reference haplotype; no second record is built when
// reference haps disagree on the reference allele.
func BuildRoVRecords(g *graph.Graph, pt *pvst.Tree, r *rov.RoV, refIDs map[graph.ID]bool, invIdx InversionIndex) []*vcfout.Record {
	if len(r.Walks) == 0 {
		return nil
	}

	overlays := overlay.Build(g, r)
	slices := overlay.FindAlleleSlices(g, overlays, r, r.Left.ID, r.Right.ID)

	// Non-planar regions carry extra flank pairs (rov.DetectFlanks):
	// vertex pairs observed together on more than one walk that neither
	// nest nor sit adjacent. For each one, slice every shared walk
	// between the pair and re-run the allele query over that bounded
	// span, the same way the full left/right span is queried above. A
	// walk that failed to match across the whole region can still match
	// a ref within one of these narrower flank windows, which is exactly
	// the case a non-planar crossing structure produces.
	for _, fp := range r.Flanks {
		slices = append(slices, overlay.FindAlleleSlices(g, overlays, r, fp.U, fp.V)...)
	}
	if len(slices) == 0 {
		return nil
	}

	dm := depth.Build(g, r)
	tangled := dm.Tangled

	byWalk := make(map[int][]overlay.AlleleSlice)
	for _, s := range slices {
		byWalk[s.WalkIdx] = append(byWalk[s.WalkIdx], s)
	}
	walkIdxs := make([]int, 0, len(byWalk))
	for walkIdx := range byWalk {
		walkIdxs = append(walkIdxs, walkIdx)
	}
	sort.Ints(walkIdxs)

	var refWalkIdx = -1
	var refHaps []graph.ID
	var refSlice overlay.AlleleSlice
	for _, walkIdx := range walkIdxs {
		group := byWalk[walkIdx]
		var haps []graph.ID
		for _, s := range group {
			if refIDs[s.RefID] {
				haps = append(haps, s.RefID)
			}
		}
		if len(haps) > 0 {
			refWalkIdx, refHaps, refSlice = walkIdx, haps, group[0]
			break
		}
	}
	if refWalkIdx == -1 {
		return nil
	}

	// Alt alleles are grouped by normalized allele content, not raw walk
	// index: two distinct RoV walks that happen to carry an identical
	// slice (same vertex/orientation span, same variant type and
	// reference anchor) are the same allele and must merge into one ALT,
	// with haplotypes from every contributing walk pooled together.
	type altGroup struct {
		slice overlay.AlleleSlice
		walk  graph.Walk
		haps  []graph.ID
	}
	byKey := make(map[string]*altGroup)
	var order []string
	for _, walkIdx := range walkIdxs {
		if walkIdx == refWalkIdx {
			continue
		}
		group := byWalk[walkIdx]
		var haps []graph.ID
		for _, s := range group {
			haps = append(haps, s.RefID)
		}
		if len(haps) == 0 {
			continue
		}
		slice := group[0]
		key := normalizedAlleleKey(r.Walks[walkIdx], slice)
		grp, ok := byKey[key]
		if !ok {
			grp = &altGroup{slice: slice, walk: r.Walks[walkIdx]}
			byKey[key] = grp
			order = append(order, key)
		}
		grp.haps = append(grp.haps, haps...)
	}

	var altAlleles []vcfout.AltAllele
	var altWalks []graph.Walk
	for _, key := range order {
		grp := byKey[key]
		alt := vcfout.AltAllele{Slice: grp.slice, Haps: grp.haps}
		if alt.Slice.VarType == overlay.VarInv && invIdx != nil {
			if !invIdx.registerInversion(refSlice.RefID, refSlice.RefStart, alt) {
				continue
			}
		}
		altAlleles = append(altAlleles, alt)
		altWalks = append(altWalks, grp.walk)
	}
	if len(altAlleles) == 0 {
		return nil
	}

	node := pt.Nodes[r.NodeID]
	variantID := nodeLabel(node)
	enclosing := "."
	if node.Parent >= 0 && node.Parent != pt.Root {
		enclosing = nodeLabel(pt.Nodes[node.Parent])
	}

	rec := vcfout.BuildRecord(g, variantID, enclosing, node.Height, tangled,
		r.Walks[refWalkIdx], refSlice, refHaps, altWalks, altAlleles)
	return []*vcfout.Record{rec}
}

// normalizedAlleleKey identifies an allele slice by its actual content
// rather than which candidate RoV walk it happened to be cut from: the
// variant type, its reference anchor, and the vertex/orientation sequence
// of the span itself. Two slices with the same key are the same allele.
func normalizedAlleleKey(walk graph.Walk, s overlay.AlleleSlice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d:%d:", s.VarType, s.RefStart, s.Length)
	if s.Length <= 0 || s.WalkStart+s.Length > len(walk) {
		return b.String()
	}
	for _, step := range walk[s.WalkStart : s.WalkStart+s.Length] {
		fmt.Fprintf(&b, "%d%s,", step.ID, step.Or.String())
	}
	return b.String()
}

func nodeLabel(n *pvst.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.Route.Left.String() + n.Route.Right.String()
}
