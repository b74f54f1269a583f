package vcfout

import (
	"testing"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/overlay"
)

func buildSNPBubbleGraph() *graph.Graph {
	g := graph.New(4, 4, 1)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddVertex(3, "G")
	g.AddVertex(4, "T")
	g.AddEdge(1, graph.EndR, 2, graph.EndL)
	g.AddEdge(1, graph.EndR, 3, graph.EndL)
	g.AddEdge(2, graph.EndR, 4, graph.EndL)
	g.AddEdge(3, graph.EndR, 4, graph.EndL)

	ref := graph.NewRef(1, "R#0#chr")
	ref.AppendStep(graph.RefStep{VertexID: 1, Or: graph.Forward, Locus: 1})
	ref.AppendStep(graph.RefStep{VertexID: 2, Or: graph.Forward, Locus: 2})
	ref.AppendStep(graph.RefStep{VertexID: 4, Or: graph.Forward, Locus: 3})
	g.Refs().Add(ref)
	g.GenGenotypeMetadata()
	return g
}

func TestBuildRecordSNPBubble(t *testing.T) {
	g := buildSNPBubbleGraph()
	walk := graph.Walk{{ID: 1, Or: graph.Forward}, {ID: 2, Or: graph.Forward}, {ID: 4, Or: graph.Forward}}

	refSlice := overlay.AlleleSlice{
		WalkIdx: 0, WalkStart: 0, RefID: 1, RefStart: 0, Length: 3,
		Or: graph.Forward, VarType: overlay.VarSub,
	}

	rec := BuildRecord(g, "F1", ".", 1, false, walk, refSlice, []graph.ID{1}, nil, nil)

	if rec.Pos != 2 {
		t.Fatalf("expected SUB position to equal anchor locus 2, got %d", rec.Pos)
	}
	if rec.RefDNA() != "C" {
		t.Fatalf("expected interior-only REF allele 'C', got %q", rec.RefDNA())
	}
	if rec.AN() != 1 {
		t.Fatalf("expected AN=1, got %d", rec.AN())
	}
}

func TestRecordAlleleCountsConsistency(t *testing.T) {
	g := buildSNPBubbleGraph()
	walk := graph.Walk{{ID: 1, Or: graph.Forward}, {ID: 2, Or: graph.Forward}, {ID: 4, Or: graph.Forward}}
	altWalk := graph.Walk{{ID: 1, Or: graph.Forward}, {ID: 3, Or: graph.Forward}, {ID: 4, Or: graph.Forward}}

	refSlice := overlay.AlleleSlice{WalkIdx: 0, WalkStart: 0, RefID: 1, RefStart: 0, Length: 3, VarType: overlay.VarSub}
	altSlice := overlay.AlleleSlice{WalkIdx: 1, WalkStart: 0, RefID: 2, RefStart: 0, Length: 3, VarType: overlay.VarSub}

	rec := BuildRecord(g, "F1", ".", 1, false, walk, refSlice, []graph.ID{1},
		[]graph.Walk{altWalk}, []AltAllele{{Slice: altSlice, Haps: []graph.ID{2}}})

	an := rec.AN()
	total := len(rec.RefHaps)
	for _, a := range rec.AC() {
		total += a
	}
	if an != total {
		t.Fatalf("expected AN to equal ref haps + sum(AC), got AN=%d total=%d", an, total)
	}
	af := rec.AF()
	if len(af) != 1 || af[0] != 0.5 {
		t.Fatalf("expected AF=[0.5] for 1 alt hap out of AN=2, got %v", af)
	}
}

func TestRenderDNADelUsesAnchorBaseOnly(t *testing.T) {
	g := buildSNPBubbleGraph()
	walk := graph.Walk{{ID: 1, Or: graph.Forward}, {ID: 4, Or: graph.Forward}}
	slice := overlay.AlleleSlice{WalkStart: 0, Length: 2, VarType: overlay.VarDel}

	got := renderDNA(g, walk, slice)
	if got != "A" {
		t.Fatalf("expected anchor-only DEL rendering 'A', got %q", got)
	}
}
