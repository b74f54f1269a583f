// Package vcfout renders per-RoV variant calls into VCFv4.2 records and
// writes them to per-reference files or a single combined stream.
package vcfout

import (
	"strings"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/overlay"
)

// AltAllele is one distinct alt allele sequence plus the set of haplotypes
// that carry it.
type AltAllele struct {
	Slice overlay.AlleleSlice
	Haps  []graph.ID
}

// Record is one VCF data line's worth of variant-calling output.
type Record struct {
	RefID          graph.ID
	Pos            int
	VariantID      string
	EnclosingLabel string
	RefAllele      overlay.AlleleSlice
	RefHaps        []graph.ID
	AltAlleles     []AltAllele
	NS             int
	Height         int
	VarType        overlay.VariantType
	Tangled        bool
	Genotype       []string

	refDNA  string
	altDNAs []string
}

// BuildRecord assembles a Record from a region's reference allele slice and
// its alt allele groups. walk is the RoV walk the reference slice was cut
// from; altWalks holds the walk each alt allele's slice was cut from,
// indexed the same as altAlleles.
func BuildRecord(g *graph.Graph, variantID, enclosingLabel string, height int, tangled bool,
	refWalk graph.Walk, refAllele overlay.AlleleSlice, refHaps []graph.ID,
	altWalks []graph.Walk, altAlleles []AltAllele) *Record {

	r := &Record{
		RefID:          refAllele.RefID,
		VariantID:      variantID,
		EnclosingLabel: enclosingLabel,
		RefAllele:      refAllele,
		RefHaps:        refHaps,
		AltAlleles:     altAlleles,
		Height:         height,
		VarType:        refAllele.VarType,
		Tangled:        tangled,
	}
	r.Pos = anchorPosition(g, refAllele)
	r.NS = len(refHaps)
	for _, a := range altAlleles {
		r.NS += len(a.Haps)
	}

	r.refDNA = renderDNA(g, refWalk, refAllele)
	for i, a := range altAlleles {
		r.altDNAs = append(r.altDNAs, renderDNA(g, altWalks[i], a.Slice))
	}

	if cols, ok := genotypeColumns(g, r); ok {
		r.Genotype = cols
	} else {
		r.Genotype = g.BlankGenotypeCols()
	}
	return r
}

// anchorPosition applies the DEL/INS vs SUB/INV position rule: del/ins
// sit one base before the anchor locus; sub/inv sit at the anchor locus.
func anchorPosition(g *graph.Graph, a overlay.AlleleSlice) int {
	anchor := anchorLocus(g, a)
	if a.VarType == overlay.VarDel || a.VarType == overlay.VarIns {
		return anchor - 1
	}
	return anchor
}

// anchorLocus is the genomic locus of the reference step right after the
// slice's left flank: step RefStart+1 of the slice's reference walk. When
// the reference or that step is missing it falls back to RefStart+1.
func anchorLocus(g *graph.Graph, a overlay.AlleleSlice) int {
	ref, ok := g.Refs().ByID(a.RefID)
	if !ok || a.RefStart+1 >= ref.StepCount() {
		return a.RefStart + 1
	}
	return ref.Steps()[a.RefStart+1].Locus
}

// renderDNA concatenates vertex labels across a slice, except sub/inv
// variants render only their interior (flanks excluded) and del/ins render
// only the anchor vertex's full label.
func renderDNA(g *graph.Graph, walk graph.Walk, a overlay.AlleleSlice) string {
	if a.Length <= 0 || a.WalkStart+a.Length > len(walk) {
		return ""
	}
	span := walk[a.WalkStart : a.WalkStart+a.Length]

	switch a.VarType {
	case overlay.VarDel, overlay.VarIns:
		return vertexLabel(g, span[0])
	case overlay.VarSub, overlay.VarInv:
		if len(span) <= 2 {
			return ""
		}
		interior := span[1 : len(span)-1]
		return concatLabels(g, interior)
	default:
		return concatLabels(g, span)
	}
}

func concatLabels(g *graph.Graph, steps []graph.IDOr) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(vertexLabel(g, s))
	}
	return b.String()
}

func vertexLabel(g *graph.Graph, s graph.IDOr) string {
	v := g.VertexByID(s.ID)
	if v == nil {
		return ""
	}
	if s.Or == graph.Reverse {
		return v.RCLabel()
	}
	return v.Label()
}

// genotypeColumns places "0" at the reference hap's column, the 1-based alt
// index at each alt hap's column, and "." everywhere else.
func genotypeColumns(g *graph.Graph, r *Record) ([]string, bool) {
	cols := g.BlankGenotypeCols()
	if len(cols) == 0 {
		return cols, false
	}
	for _, hap := range r.RefHaps {
		if col, ok := g.RefGTColIdx(hap); ok && col < len(cols) {
			cols[col] = "0"
		}
	}
	for altIdx, alt := range r.AltAlleles {
		for _, hap := range alt.Haps {
			if col, ok := g.RefGTColIdx(hap); ok && col < len(cols) {
				cols[col] = altIndexString(altIdx + 1)
			}
		}
	}
	return cols, true
}

func altIndexString(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// AC returns the per-alt allele count, AN the total allele number, and AF the
// derived allele frequencies, in alt-allele order.
func (r *Record) AC() []int {
	ac := make([]int, len(r.AltAlleles))
	for i, a := range r.AltAlleles {
		ac[i] = len(a.Haps)
	}
	return ac
}

func (r *Record) AN() int {
	an := len(r.RefHaps)
	for _, a := range r.AltAlleles {
		an += len(a.Haps)
	}
	return an
}

func (r *Record) AF() []float64 {
	an := r.AN()
	af := make([]float64, len(r.AltAlleles))
	if an == 0 {
		return af
	}
	for i, c := range r.AC() {
		af[i] = float64(c) / float64(an)
	}
	return af
}

// RefDNA and AltDNAs expose the rendered allele strings for the writer.
func (r *Record) RefDNA() string    { return r.refDNA }
func (r *Record) AltDNAs() []string { return r.altDNAs }
