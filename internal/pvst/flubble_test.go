package pvst

import (
	"testing"

	"github.com/povu/povu/internal/graph"
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

func TestBuildFlubblesFindsOneFlubbleInSNPBubble(t *testing.T) {
	g := buildSNPGraph()
	tr := spanning.Build(g, nil)
	pt := BuildFlubbles(tr)

	var flubbleCount int
	for _, n := range pt.Nodes {
		if n.Family == FamilyFlubble {
			flubbleCount++
		}
	}
	if flubbleCount != 1 {
		t.Fatalf("expected exactly 1 flubble in the SNP bubble, got %d", flubbleCount)
	}
	if err := pt.Validate(pt.Nodes[0].Height + len(pt.Nodes)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
