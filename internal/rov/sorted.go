package rov

import (
	"sort"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/spanning"
)

// SortedVertices orders the vertices touched by a region's walks for
// depth-matrix construction: primarily via a BFS topological sort (Kahn's
// algorithm) over the tree edges plus non-self cross edges restricted to
// the region, falling back to a lap-based merge sort by pre-order when the
// induced subgraph isn't a DAG (e.g. it contains a residual backedge
// entirely inside the region).
func SortedVertices(g *graph.Graph, t *spanning.Tree, walks []graph.Walk) []graph.Idx {
	members := make(map[graph.Idx]bool)
	for _, w := range walks {
		for _, step := range w {
			if idx, ok := g.IdxOf(step.ID); ok {
				members[idx] = true
			}
		}
	}

	if order, ok := kahnTopoSort(g, t, members); ok {
		return order
	}
	return lapMergeSort(t, members)
}

// kahnTopoSort runs Kahn's algorithm over tree edges union non-self cross
// (back) edges, both endpoints restricted to members. Returns ok=false if
// a cycle remains (not all members could be emitted).
func kahnTopoSort(g *graph.Graph, t *spanning.Tree, members map[graph.Idx]bool) ([]graph.Idx, bool) {
	indegree := make(map[graph.Idx]int)
	adj := make(map[graph.Idx][]graph.Idx)
	for v := range members {
		indegree[v] = 0
	}

	addEdge := func(from, to graph.Idx) {
		if !members[from] || !members[to] || from == to {
			return
		}
		adj[from] = append(adj[from], to)
		indegree[to]++
	}

	for _, te := range t.TreeEdges() {
		addEdge(te.Parent, te.Child)
	}
	for _, be := range t.BackEdges() {
		if be.Src == be.Tgt {
			continue
		}
		// orient the crossing edge from shallower to deeper depth, same
		// convention the bracket pass uses.
		if t.Depth(be.Src) <= t.Depth(be.Tgt) {
			addEdge(be.Src, be.Tgt)
		} else {
			addEdge(be.Tgt, be.Src)
		}
	}

	var queue []graph.Idx
	for v := range members {
		if indegree[v] == 0 {
			queue = append(queue, v)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return t.Pre(queue[i]) < t.Pre(queue[j]) })

	var order []graph.Idx
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		var next []graph.Idx
		for _, w := range adj[v] {
			indegree[w]--
			if indegree[w] == 0 {
				next = append(next, w)
			}
		}
		sort.Slice(next, func(i, j int) bool { return t.Pre(next[i]) < t.Pre(next[j]) })
		queue = append(queue, next...)
		sort.Slice(queue, func(i, j int) bool { return t.Pre(queue[i]) < t.Pre(queue[j]) })
	}

	return order, len(order) == len(members)
}

// lapMergeSort is the fallback ordering: a stable merge sort keyed on
// DFS pre-order ("lap" = the pre-order traversal pass), used when the
// region's induced edges don't form a DAG.
func lapMergeSort(t *spanning.Tree, members map[graph.Idx]bool) []graph.Idx {
	out := make([]graph.Idx, 0, len(members))
	for v := range members {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return t.Pre(out[i]) < t.Pre(out[j]) })
	return out
}
