package rov

import (
	"testing"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/pvst"
	"github.com/povu/povu/internal/spanning"
)

func buildSNPGraph() *graph.Graph {
	g := graph.New(4, 4, 1)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddVertex(3, "G")
	g.AddVertex(4, "T")
	g.AddEdge(1, graph.EndR, 2, graph.EndL)
	g.AddEdge(1, graph.EndR, 3, graph.EndL)
	g.AddEdge(2, graph.EndR, 4, graph.EndL)
	g.AddEdge(3, graph.EndR, 4, graph.EndL)
	return g
}

func TestGenerateFindsTwoWalksInSNPBubble(t *testing.T) {
	g := buildSNPGraph()
	tr := spanning.Build(g, nil)
	pt := pvst.BuildFlubbles(tr)
	pvst.Refine(tr, pt, nil)

	gen := NewGenerator(g, tr)
	rovs := gen.Generate(pt)

	if len(rovs) != 1 {
		t.Fatalf("expected 1 RoV in the SNP bubble, got %d", len(rovs))
	}
	if len(rovs[0].Walks) != 2 {
		t.Fatalf("expected 2 walks (via vertex 2 and via vertex 3), got %d", len(rovs[0].Walks))
	}
}
