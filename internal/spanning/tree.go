// Package spanning builds a DFS spanning tree over a bidirected.Graph and
// derives the cycle-equivalence classes that seed flubble detection.
package spanning

import (
	"sort"

	"github.com/povu/povu/internal/graph"
)

// Color marks whether a tree edge lies on a single haplotype's walk (black)
// or not (gray).
type Color int

const (
	Gray Color = iota
	Black
)

// TreeEdge is a parent->child DFS tree edge.
type TreeEdge struct {
	Parent   graph.Idx
	Child    graph.Idx
	Color    Color
	ChildEnd graph.End // the end of Child this tree edge attaches to
}

// BackEdge is a non-tree edge, including self-loops (src == tgt).
type BackEdge struct {
	Src   graph.Idx
	Tgt   graph.Idx
	Class int // cycle-equivalence class, assigned during the bracket pass
}

// Tree is the DFS spanning tree plus the per-vertex pre/post numbering that
// the rest of the decomposition subsystem queries.
type Tree struct {
	g *graph.Graph

	root    graph.Idx
	rootEnd graph.End

	treeEdges []TreeEdge
	backEdges []BackEdge

	// index of the tree edge whose child is vIdx, or -1 for the root.
	parentEdge []int
	children   [][]graph.Idx

	pre  []int
	post []int
	// idx of vertex visited at pre-order/post-order position i
	preOrder  []graph.Idx
	postOrder []graph.Idx

	depth []int

	// Euler tour metadata
	euler     []graph.Idx
	eulerDepth []int
	first     []int

	lo  []int
	hiD []int

	// flattened per-vertex bracket lists with prefix offsets
	brackets    [][]int // brackets[v] = list of backedge indices on v's bracket stack at v (post-order snapshot)
	equivClass  []int   // equivClass[treeEdgeIdx] = cycle equivalence class
}

// Build runs the DFS spanning tree construction over a single connected
// component. trunk, if non-nil, lists the ordered vertex
// indices of the designated reference haplotype's walk; tree edges that
// follow it are coloured black, everything else gray.
func Build(g *graph.Graph, trunk []graph.Idx) *Tree {
	n := g.VtxCount()
	t := &Tree{
		g:           g,
		parentEdge:  make([]int, n),
		children:    make([][]graph.Idx, n),
		pre:         make([]int, n),
		post:        make([]int, n),
		depth:       make([]int, n),
		first:       make([]int, n),
		lo:          make([]int, n),
		hiD:         make([]int, n),
		brackets:    make([][]int, n),
	}
	for i := range t.parentEdge {
		t.parentEdge[i] = -1
		t.pre[i] = -1
		t.post[i] = -1
		t.first[i] = -1
	}

	if n == 0 {
		return t
	}

	root := chooseRoot(g)
	t.root = root

	trunkSet := make(map[[2]graph.Idx]bool)
	for i := 0; i+1 < len(trunk); i++ {
		trunkSet[[2]graph.Idx{trunk[i], trunk[i+1]}] = true
		trunkSet[[2]graph.Idx{trunk[i+1], trunk[i]}] = true
	}

	t.dfs(root, trunkSet)
	t.buildEulerTour()
	t.computeLoHiD()
	t.assignCycleEquivalence()

	return t
}

// chooseRoot picks the smallest vertex id in the component; ids are unique,
// so there is no tie to break. Because component ids are dense local indices here, "smallest vertex
// id" resolves to smallest stable id, mapped back to its index.
func chooseRoot(g *graph.Graph) graph.Idx {
	best := graph.Idx(0)
	bestID := ^graph.ID(0)
	for idx := 0; idx < g.VtxCount(); idx++ {
		id, _ := g.IDOf(idx)
		if id < bestID {
			bestID = id
			best = idx
		}
	}
	return best
}

// dfs performs the iterative DFS with an explicit stack, classifying
// non-tree edges as backedges (self-loops become backedges from v to v).
func (t *Tree) dfs(root graph.Idx, trunkSet map[[2]graph.Idx]bool) {
	g := t.g
	n := g.VtxCount()
	visited := make([]bool, n)
	visitedEdge := make([]bool, g.EdgeCount())

	preCounter := 0
	postCounter := 0

	t.parentEdge[root] = -1

	type stackItem struct {
		vIdx     graph.Idx
		nbrs     []graph.Idx
		nbrEdges []int
		nbrEnds  []graph.End
		pos      int
	}

	neighbors := func(vIdx graph.Idx) ([]graph.Idx, []int, []graph.End) {
		var nbrs []graph.Idx
		var edges []int
		var ends []graph.End
		v := g.VertexByIdx(vIdx)
		for _, end := range [2]graph.End{graph.EndL, graph.EndR} {
			eIdxs := sortedKeys(v.EdgesAt(end))
			for _, eIdx := range eIdxs {
				side := g.GetOtherVtxIdx(eIdx, vIdx, end)
				nbrs = append(nbrs, side.Idx)
				edges = append(edges, eIdx)
				ends = append(ends, side.End)
			}
		}
		return nbrs, edges, ends
	}

	visited[root] = true
	t.pre[root] = preCounter
	t.preOrder = append(t.preOrder, root)
	preCounter++
	t.rootEnd = graph.EndL

	nbrs, edges, ends := neighbors(root)
	stack := []stackItem{{vIdx: root, nbrs: nbrs, nbrEdges: edges, nbrEnds: ends}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.nbrs) {
			t.post[top.vIdx] = postCounter
			t.postOrder = append(t.postOrder, top.vIdx)
			postCounter++
			stack = stack[:len(stack)-1]
			continue
		}

		nbrIdx := top.nbrs[top.pos]
		eIdx := top.nbrEdges[top.pos]
		nbrEnd := top.nbrEnds[top.pos]
		top.pos++

		if visitedEdge[eIdx] {
			continue
		}

		if !visited[nbrIdx] {
			visitedEdge[eIdx] = true
			visited[nbrIdx] = true
			color := Gray
			if trunkSet[[2]graph.Idx{top.vIdx, nbrIdx}] {
				color = Black
			}
			teIdx := len(t.treeEdges)
			t.treeEdges = append(t.treeEdges, TreeEdge{Parent: top.vIdx, Child: nbrIdx, Color: color, ChildEnd: nbrEnd})
			t.parentEdge[nbrIdx] = teIdx
			t.children[top.vIdx] = append(t.children[top.vIdx], nbrIdx)
			t.depth[nbrIdx] = t.depth[top.vIdx] + 1

			t.pre[nbrIdx] = preCounter
			t.preOrder = append(t.preOrder, nbrIdx)
			preCounter++

			childNbrs, childEdges, childEnds := neighbors(nbrIdx)
			stack = append(stack, stackItem{vIdx: nbrIdx, nbrs: childNbrs, nbrEdges: childEdges, nbrEnds: childEnds})
			continue
		}

		// non-tree edge: self-loop or backedge; record once.
		visitedEdge[eIdx] = true
		t.backEdges = append(t.backEdges, BackEdge{Src: top.vIdx, Tgt: nbrIdx, Class: -1})
	}
}

func sortedKeys(m map[graph.Idx]struct{}) []graph.Idx {
	out := make([]graph.Idx, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Graph returns the graph this tree was built over.
func (t *Tree) Graph() *graph.Graph { return t.g }

func (t *Tree) Root() graph.Idx           { return t.root }
func (t *Tree) TreeEdges() []TreeEdge     { return t.treeEdges }
func (t *Tree) BackEdges() []BackEdge     { return t.backEdges }
func (t *Tree) Pre(v graph.Idx) int       { return t.pre[v] }
func (t *Tree) Post(v graph.Idx) int      { return t.post[v] }
func (t *Tree) Depth(v graph.Idx) int     { return t.depth[v] }
func (t *Tree) Children(v graph.Idx) []graph.Idx { return t.children[v] }
func (t *Tree) Parent(v graph.Idx) (graph.Idx, bool) {
	ei := t.parentEdge[v]
	if ei < 0 {
		return 0, false
	}
	return t.treeEdges[ei].Parent, true
}

// ParentEdgeIdx returns the index into TreeEdges() of the tree edge whose
// child is v, or -1 if v is the root.
func (t *Tree) ParentEdgeIdx(v graph.Idx) int { return t.parentEdge[v] }

// EquivClass returns the cycle-equivalence class of the tree edge at index
// teIdx.
func (t *Tree) EquivClass(teIdx int) int { return t.equivClass[teIdx] }

// PostOrder returns vertex indices in DFS post-order.
func (t *Tree) PostOrder() []graph.Idx { return t.postOrder }

// OutBackedgeTargets returns the set of backedge target indices whose source
// is v.
func (t *Tree) OutBackedgeTargets(v graph.Idx) []graph.Idx {
	var out []graph.Idx
	for _, be := range t.backEdges {
		if be.Src == v {
			out = append(out, be.Tgt)
		}
	}
	return out
}

// InBackedgeSources returns the set of backedge source indices whose target
// is v.
func (t *Tree) InBackedgeSources(v graph.Idx) []graph.Idx {
	var out []graph.Idx
	for _, be := range t.backEdges {
		if be.Tgt == v {
			out = append(out, be.Src)
		}
	}
	return out
}

// Hairpins reports self-referential backedges: a self-loop (src == tgt)
// recorded off a single vertex, surfaced via --hairpins.
func (t *Tree) Hairpins() []graph.Idx {
	var out []graph.Idx
	for _, be := range t.backEdges {
		if be.Src == be.Tgt {
			out = append(out, be.Src)
		}
	}
	return out
}

// EntryEnd returns the end of v that the DFS entered it through: the root
// is entered on rootEnd by convention, every other vertex on its parent
// tree edge's ChildEnd.
func (t *Tree) EntryEnd(v graph.Idx) graph.End {
	if v == t.root {
		return t.rootEnd
	}
	return t.treeEdges[t.parentEdge[v]].ChildEnd
}

// Orientation derives v's traversal orientation from its entry end: Forward
// if the DFS entered on the L end, Reverse if on the R end. This is the
// only place that information is recorded during the tree build, and it is
// what RouteParams needs to label a region's endpoints.
func (t *Tree) Orientation(v graph.Idx) graph.Orientation {
	if t.EntryEnd(v) == graph.EndL {
		return graph.Forward
	}
	return graph.Reverse
}
