package spanning

import "github.com/povu/povu/internal/graph"

// buildEulerTour walks the DFS tree (not the variation graph itself) to
// produce the Euler tour sequence E[], matching depths D[], and first
// occurrence index first[v] that back the RMQ-based LCA.
func (t *Tree) buildEulerTour() {
	n := len(t.children)
	if n == 0 {
		return
	}

	var walk func(v graph.Idx)
	walk = func(v graph.Idx) {
		t.first[v] = len(t.euler)
		t.euler = append(t.euler, v)
		t.eulerDepth = append(t.eulerDepth, t.depth[v])
		for _, c := range t.children[v] {
			walk(c)
			t.euler = append(t.euler, v)
			t.eulerDepth = append(t.eulerDepth, t.depth[v])
		}
	}
	walk(t.root)
}

// LCA returns the lowest common ancestor of u and v via a linear RMQ scan
// over the Euler tour's depth array between their first occurrences. A
// sparse table would make this O(1) per query; at flubble-refinement scale
// (bounded RoVs) a direct scan keeps the implementation simple and correct.
func (t *Tree) LCA(u, v graph.Idx) graph.Idx {
	lo, hi := t.first[u], t.first[v]
	if lo > hi {
		lo, hi = hi, lo
	}
	best := lo
	for i := lo; i <= hi; i++ {
		if t.eulerDepth[i] < t.eulerDepth[best] {
			best = i
		}
	}
	return t.euler[best]
}

// LCAOf returns the common ancestor of a set of vertices.
func (t *Tree) LCAOf(vs []graph.Idx) graph.Idx {
	if len(vs) == 0 {
		return t.root
	}
	cur := vs[0]
	for _, v := range vs[1:] {
		cur = t.LCA(cur, v)
	}
	return cur
}

// computeLoHiD computes, for each vertex, the lowest and highest depth
// reachable via backedges from the subtree rooted at that vertex (lo[v],
// hiD[v]), via a bottom-up pass in post order.
func (t *Tree) computeLoHiD() {
	n := len(t.depth)
	for i := 0; i < n; i++ {
		t.lo[i] = t.depth[i]
		t.hiD[i] = t.depth[i]
	}

	// Incorporate backedges touching each vertex directly.
	touch := make([][]graph.Idx, n)
	for _, be := range t.backEdges {
		touch[be.Src] = append(touch[be.Src], be.Tgt)
		touch[be.Tgt] = append(touch[be.Tgt], be.Src)
	}
	for v := 0; v < n; v++ {
		for _, other := range touch[v] {
			if t.depth[other] < t.lo[v] {
				t.lo[v] = t.depth[other]
			}
			if t.depth[other] > t.hiD[v] {
				t.hiD[v] = t.depth[other]
			}
		}
	}

	for _, v := range t.postOrder {
		for _, c := range t.children[v] {
			if t.lo[c] < t.lo[v] {
				t.lo[v] = t.lo[c]
			}
			if t.hiD[c] > t.hiD[v] {
				t.hiD[v] = t.hiD[c]
			}
		}
	}
}

func (t *Tree) Lo(v graph.Idx) int  { return t.lo[v] }
func (t *Tree) HiD(v graph.Idx) int { return t.hiD[v] }

// Euler exposes the raw tour, for callers building their own RMQ index.
func (t *Tree) Euler() []graph.Idx  { return t.euler }
func (t *Tree) EulerD() []int       { return t.eulerDepth }
func (t *Tree) First(v graph.Idx) int { return t.first[v] }
