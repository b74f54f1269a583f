package graph

import "testing"

func TestPruneShortTipsDropsBelowThreshold(t *testing.T) {
	g := New(3, 2, 0)
	g.AddVertex(1, "AC")     // short tip, L end free
	g.AddVertex(2, "ACGTACGT") // interior
	g.AddVertex(3, "G")      // short tip, R end free
	g.AddEdge(1, EndR, 2, EndL)
	g.AddEdge(2, EndR, 3, EndL)

	pruned := g.PruneShortTips(4)
	if pruned.VtxCount() != 1 {
		t.Fatalf("expected 1 surviving vertex, got %d", pruned.VtxCount())
	}
	if pruned.VertexByID(2) == nil {
		t.Fatalf("expected vertex 2 to survive pruning")
	}
}

func TestPruneShortTipsNoOpWhenNothingBelowThreshold(t *testing.T) {
	g := New(1, 0, 0)
	g.AddVertex(1, "ACGTACGT")

	pruned := g.PruneShortTips(1)
	if pruned.VtxCount() != 1 {
		t.Fatalf("expected vertex to survive, got %d vertices", pruned.VtxCount())
	}
}
