package spanning

// bracketEntry is one live backedge on a vertex's bracket stack, carrying
// enough to compute the Johnson/Pearson/Pingali "top-of-stack / size"
// signature.
type bracketEntry struct {
	backedgeIdx int
	recEquivAt  int // recalibrated size snapshot for two-backedges-in-a-class merging
}

// assignCycleEquivalence implements the bracket-stack algorithm: process the
// DFS in post order, each vertex keeps the bracket set of backedges that
// cross it (pushed when the backedge's deeper endpoint is visited, popped
// when its shallower endpoint is visited); two tree edges are
// cycle-equivalent iff they share the same (top-of-stack id, stack size)
// signature at the moment their child vertex is processed.
func (t *Tree) assignCycleEquivalence() {
	n := len(t.depth)
	if n == 0 {
		return
	}

	// For each vertex, the backedges incident on it, tagged by whether the
	// vertex is the deeper (push) or shallower (pop) end.
	pushAt := make([][]int, n)
	popAt := make([][]int, n)
	selfAt := make([][]int, n)
	for bi, be := range t.backEdges {
		if be.Src == be.Tgt {
			// self-loop: push and pop at the same vertex, contributing its
			// own singleton bracket; the pvst package later emits these as
			// a degenerate "tiny" flubble.
			pushAt[be.Src] = append(pushAt[be.Src], bi)
			selfAt[be.Src] = append(selfAt[be.Src], bi)
			continue
		}
		deep, shallow := be.Src, be.Tgt
		if t.depth[deep] < t.depth[shallow] {
			deep, shallow = shallow, deep
		}
		pushAt[deep] = append(pushAt[deep], bi)
		popAt[shallow] = append(popAt[shallow], bi)
	}

	stack := make([]bracketEntry, 0, n)
	// position of each backedge's entry in `stack`, -1 once popped.
	posOf := make(map[int]int)

	// signature recorded for each tree edge when its child is processed.
	type sig struct {
		topID int
		size  int
	}
	sigs := make([]sig, len(t.treeEdges))

	removeFromStack := func(bi int) {
		pos, ok := posOf[bi]
		if !ok {
			return
		}
		stack = append(stack[:pos], stack[pos+1:]...)
		delete(posOf, bi)
		for i := pos; i < len(stack); i++ {
			posOf[stack[i].backedgeIdx] = i
		}
	}

	for _, v := range t.postOrder {
		// pop backedges whose shallow end is v (they no longer cross above v)
		for _, bi := range popAt[v] {
			removeFromStack(bi)
		}
		// children's tree-edge brackets merge into v: nothing extra to do
		// since child brackets were pushed directly onto the shared stack.

		// push backedges whose deep end is v
		for _, bi := range pushAt[v] {
			stack = append(stack, bracketEntry{backedgeIdx: bi})
			posOf[bi] = len(stack) - 1
		}

		t.brackets[v] = bracketIndices(stack)
		// a self-loop crosses no tree edge: pop it right after v's
		// snapshot so it stays out of every tree-edge signature.
		for _, bi := range selfAt[v] {
			removeFromStack(bi)
		}

		if teIdx := t.parentEdge[v]; teIdx >= 0 {
			if len(stack) == 0 {
				sigs[teIdx] = sig{topID: -1, size: 0}
			} else {
				top := stack[len(stack)-1]
				sigs[teIdx] = sig{topID: top.backedgeIdx, size: len(stack)}
			}
		}
	}

	// Assign class ids: tree edges sharing the same signature are
	// cycle-equivalent.
	t.equivClass = make([]int, len(t.treeEdges))
	classOf := make(map[sig]int)
	next := 0
	for i, s := range sigs {
		if s.size == 0 && s.topID == -1 {
			// no brackets at all: its own singleton class
			t.equivClass[i] = next
			next++
			continue
		}
		cls, ok := classOf[s]
		if !ok {
			cls = next
			next++
			classOf[s] = cls
		}
		t.equivClass[i] = cls
	}
}

func bracketIndices(stack []bracketEntry) []int {
	out := make([]int, len(stack))
	for i, e := range stack {
		out[i] = e.backedgeIdx
	}
	return out
}

// Brackets returns the bracket set (backedge indices) live at vertex v at
// the moment it was processed during the bracket pass.
func (t *Tree) Brackets(v int) []int { return t.brackets[v] }
