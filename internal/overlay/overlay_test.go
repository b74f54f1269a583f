package overlay

import (
	"testing"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/rov"
)

func buildSNPGraph() *graph.Graph {
	g := graph.New(4, 4, 2)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddVertex(3, "G")
	g.AddVertex(4, "T")
	g.AddEdge(1, graph.EndR, 2, graph.EndL)
	g.AddEdge(1, graph.EndR, 3, graph.EndL)
	g.AddEdge(2, graph.EndR, 4, graph.EndL)
	g.AddEdge(3, graph.EndR, 4, graph.EndL)

	refs := g.Refs()
	ref1 := graph.NewRef(1, "sampleA#0#chr1")
	ref1.AppendStep(graph.RefStep{VertexID: 1, Or: graph.Forward, Locus: 1})
	ref1.AppendStep(graph.RefStep{VertexID: 2, Or: graph.Forward, Locus: 2})
	ref1.AppendStep(graph.RefStep{VertexID: 4, Or: graph.Forward, Locus: 3})
	refs.Add(ref1)

	ref2 := graph.NewRef(2, "sampleB#0#chr1")
	ref2.AppendStep(graph.RefStep{VertexID: 1, Or: graph.Forward, Locus: 1})
	ref2.AppendStep(graph.RefStep{VertexID: 3, Or: graph.Forward, Locus: 2})
	ref2.AppendStep(graph.RefStep{VertexID: 4, Or: graph.Forward, Locus: 3})
	refs.Add(ref2)

	return g
}

func buildSNPRoV(g *graph.Graph) *rov.RoV {
	idx1, _ := g.IdxOf(1)
	idx2, _ := g.IdxOf(2)
	idx3, _ := g.IdxOf(3)
	idx4, _ := g.IdxOf(4)

	return &rov.RoV{
		Walks: []graph.Walk{
			{{ID: 1, Or: graph.Forward}, {ID: 2, Or: graph.Forward}, {ID: 4, Or: graph.Forward}},
			{{ID: 1, Or: graph.Forward}, {ID: 3, Or: graph.Forward}, {ID: 4, Or: graph.Forward}},
		},
		SortedVertices: []graph.Idx{idx1, idx2, idx3, idx4},
	}
}

func TestBuildOverlayFindsBothWalksEnteringAtBothRefs(t *testing.T) {
	g := buildSNPGraph()
	r := buildSNPRoV(g)

	overlays := Build(g, r)
	if len(overlays) != 4 {
		t.Fatalf("expected one overlay per (walk, ref) pair, 2 walks x 2 refs, got %d", len(overlays))
	}
	for _, ov := range overlays {
		if len(ov.Starts) != 1 {
			t.Fatalf("expected exactly one alignment start per overlay, got %d", len(ov.Starts))
		}
	}
}

func TestOverlayMismatchesIsIdempotent(t *testing.T) {
	g := buildSNPGraph()
	r := buildSNPRoV(g)

	overlays := Build(g, r)
	var matched *Overlay
	for _, ov := range overlays {
		if ov.WalkIdx == 0 && ov.RefID == 1 {
			matched = ov
		}
	}
	if matched == nil {
		t.Fatalf("expected an overlay for walk 0 against its matching ref")
	}
	first := matched.Mismatches(0, 0, 3, false)
	second := matched.Mismatches(0, 0, 3, false)
	if first != second || first != 0 {
		t.Fatalf("expected idempotent zero-mismatch query, got %d then %d", first, second)
	}
}

func TestFindAlleleSlicesClassifiesSNP(t *testing.T) {
	g := buildSNPGraph()
	r := buildSNPRoV(g)
	overlays := Build(g, r)

	slices := FindAlleleSlices(g, overlays, r, 1, 4)
	if len(slices) == 0 {
		t.Fatalf("expected at least one allele slice spanning the bubble's flanks")
	}
	for _, s := range slices {
		if s.VarType != VarSub {
			t.Fatalf("expected a same-length SNP bubble to classify as SUB, got %s", s.VarType)
		}
	}
}

func TestBuildExpeditionsFlagsTangleOnMultipleSlices(t *testing.T) {
	slices := []AlleleSlice{
		{WalkIdx: 0, RefID: 1, VarType: VarSub},
		{WalkIdx: 1, RefID: 1, VarType: VarSub},
	}
	exps := BuildExpeditions(slices)
	e, ok := exps[1]
	if !ok {
		t.Fatalf("expected an expedition for ref 1")
	}
	if !e.Tangled {
		t.Fatalf("expected expedition with two itinerary entries to be flagged tangled")
	}
}
