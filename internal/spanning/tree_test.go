package spanning

import (
	"testing"

	"github.com/povu/povu/internal/graph"
)

// buildSNPGraph builds a simple SNP bubble: vertices 1:A, 2:C, 3:G, 4:T;
// edges 1-2, 1-3, 2-4, 3-4.
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

func TestEveryEdgeClassifiedExactlyOnce(t *testing.T) {
	g := buildSNPGraph()
	tr := Build(g, nil)

	if len(tr.TreeEdges())+len(tr.BackEdges()) != g.EdgeCount() {
		t.Fatalf("tree edges (%d) + backedges (%d) != edge count (%d)",
			len(tr.TreeEdges()), len(tr.BackEdges()), g.EdgeCount())
	}
}

func TestPreOrderIsPermutation(t *testing.T) {
	g := buildSNPGraph()
	tr := Build(g, nil)

	seen := make(map[int]bool)
	for v := 0; v < g.VtxCount(); v++ {
		p := tr.Pre(v)
		if p < 0 || p >= g.VtxCount() {
			t.Fatalf("pre[%d] = %d out of range", v, p)
		}
		if seen[p] {
			t.Fatalf("pre-order value %d repeated", p)
		}
		seen[p] = true
	}
}

func TestFirstIsValidEulerIndex(t *testing.T) {
	g := buildSNPGraph()
	tr := Build(g, nil)

	for v := 0; v < g.VtxCount(); v++ {
		f := tr.First(v)
		if f < 0 || f >= len(tr.Euler()) {
			t.Fatalf("first[%d] = %d not a valid index into E (len %d)", v, f, len(tr.Euler()))
		}
		if tr.Euler()[f] != v {
			t.Fatalf("E[first[%d]] = %d, want %d", v, tr.Euler()[f], v)
		}
	}
}

func TestCycleEquivalenceOfTwoBranchesInSNPBubble(t *testing.T) {
	g := buildSNPGraph()
	tr := Build(g, nil)

	// The two internal tree edges of the diamond (entering vertex 2's
	// branch and vertex 3's branch) must be cycle-equivalent: removing
	// either one disconnects the same backedge-spanned region.
	classByChild := make(map[graph.Idx]int)
	for i, te := range tr.TreeEdges() {
		classByChild[te.Child] = tr.EquivClass(i)
	}

	idx2, _ := g.IdxOf(2)
	idx3, _ := g.IdxOf(3)
	if classByChild[idx2] != classByChild[idx3] {
		t.Errorf("expected vertex-2 and vertex-3 tree edges to share a cycle-equivalence class, got %d vs %d",
			classByChild[idx2], classByChild[idx3])
	}
}
