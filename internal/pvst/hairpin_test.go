package pvst

import (
	"testing"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/spanning"
)

func TestMarkHairpinsFlagsSelfLoopEndpoint(t *testing.T) {
	g := graph.New(2, 2, 0)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddEdge(1, graph.EndR, 2, graph.EndL)
	g.AddEdge(2, graph.EndR, 2, graph.EndR) // self-loop off vertex 2

	tr := spanning.Build(g, nil)
	pt := BuildFlubbles(tr)
	MarkHairpins(tr, pt)

	var sawHairpin bool
	for _, n := range pt.Nodes {
		if n.Family == FamilyDummy {
			continue
		}
		if n.Route.Left.ID == 2 || n.Route.Right.ID == 2 {
			if !n.Hairpin {
				t.Errorf("node %d touching vertex 2 should be flagged a hairpin", n.ID)
			}
			sawHairpin = true
		}
	}
	if !sawHairpin {
		t.Skip("no node in this decomposition touches the self-looping vertex directly")
	}
}

func TestMarkHairpinsNoOpWithoutBackedges(t *testing.T) {
	g := buildSNPGraph()
	tr := spanning.Build(g, nil)
	pt := BuildFlubbles(tr)
	MarkHairpins(tr, pt)

	for _, n := range pt.Nodes {
		if n.Hairpin {
			t.Errorf("node %d: expected no hairpins in a plain SNP bubble", n.ID)
		}
	}
}
