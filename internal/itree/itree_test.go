package itree

import "testing"

func TestInsertCaseTable(t *testing.T) {
	tr := NewTree()

	steps := []struct {
		refHStart          int
		altRefID           uint64
		altStart, len      int
		expected           Outcome
	}{
		{10, 1, 100, 5, InsertLeaf},
		{10, 1, 100, 5, DoNothing},
		{10, 2, 200, 5, InsertAlt},
		{10, 1, 98, 9, ReplaceAlt},
		{20, 1, 300, 5, InsertLeaf},
		{5, 1, 80, 5, InsertLeaf},
	}

	for i, s := range steps {
		got := tr.Insert(s.refHStart, s.altRefID, s.altStart, s.len)
		if got != s.expected {
			t.Fatalf("step %d: expected %s, got %s", i+1, s.expected, got)
		}
	}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 nodes (refHStart 5, 10, 20), got %d", tr.Len())
	}

	alts, ok := tr.Lookup(10)
	if !ok || len(alts) != 2 {
		t.Fatalf("expected node at refHStart 10 to carry 2 alt entries, got %v", alts)
	}
	var hap1 Alt
	for _, a := range alts {
		if a.AltRefID == 1 {
			hap1 = a
		}
	}
	if hap1.AltStart != 98 || hap1.Len != 9 {
		t.Fatalf("expected hap1's entry to have been replaced to (98, 9), got %+v", hap1)
	}
}

func TestMergeExtendAndMergeReplace(t *testing.T) {
	tr := NewTree()
	tr.Insert(10, 1, 100, 10) // [100, 110)

	got := tr.Insert(10, 1, 105, 10) // [105, 115), overlaps on the right
	if got != MergeExtend {
		t.Fatalf("expected MERGE_EXTEND, got %s", got)
	}
	alts, _ := tr.Lookup(10)
	if alts[0].AltStart != 100 || alts[0].Len != 15 {
		t.Fatalf("expected merged interval [100, 115), got start=%d len=%d", alts[0].AltStart, alts[0].Len)
	}

	got = tr.Insert(10, 1, 90, 15) // [90, 105), overlaps the merged interval on the left
	if got != MergeReplace {
		t.Fatalf("expected MERGE_REPLACE, got %s", got)
	}
	alts, _ = tr.Lookup(10)
	if alts[0].AltStart != 90 || alts[0].Len != 25 {
		t.Fatalf("expected merged interval [90, 115), got start=%d len=%d", alts[0].AltStart, alts[0].Len)
	}
}

func TestExtendAltAppendsDisjointSameHapInterval(t *testing.T) {
	tr := NewTree()
	tr.Insert(10, 1, 100, 5)
	got := tr.Insert(10, 1, 200, 5)
	if got != ExtendAlt {
		t.Fatalf("expected EXTEND_ALT for a disjoint same-hap interval, got %s", got)
	}
	alts, _ := tr.Lookup(10)
	if len(alts) != 2 {
		t.Fatalf("expected 2 entries for hap1 after extend, got %d", len(alts))
	}
}

func TestDeleteLeafAndTwoChildNode(t *testing.T) {
	tr := NewTree()
	tr.Insert(10, 1, 100, 5)
	tr.Insert(5, 1, 80, 5)
	tr.Insert(20, 1, 300, 5)
	tr.Insert(15, 1, 150, 5) // leftmost leaf of root's right subtree

	if !tr.Delete(10) {
		t.Fatalf("expected delete of root with two children to succeed")
	}
	if _, ok := tr.Lookup(10); ok {
		t.Fatalf("expected refHStart 10 no longer present")
	}
	// the successor (15) should now be reachable as the new root's key
	if _, ok := tr.Lookup(15); !ok {
		t.Fatalf("expected successor key 15 to be promoted into the tree")
	}
	if _, ok := tr.Lookup(5); !ok {
		t.Fatalf("expected left child 5 to survive the deletion")
	}
	if _, ok := tr.Lookup(20); !ok {
		t.Fatalf("expected right child 20 to survive the deletion")
	}

	if !tr.Delete(5) {
		t.Fatalf("expected delete of leaf 5 to succeed")
	}
	if tr.Delete(999) {
		t.Fatalf("expected delete of absent key to report false")
	}
}

func TestCompactReclaimsTombstonedSlots(t *testing.T) {
	tr := NewTree()
	tr.Insert(10, 1, 100, 5)
	tr.Insert(5, 1, 80, 5)
	tr.Delete(5)

	before := len(tr.nodes)
	tr.Compact()
	if len(tr.nodes) >= before {
		t.Fatalf("expected compact to shrink the arena, before=%d after=%d", before, len(tr.nodes))
	}
	if _, ok := tr.Lookup(10); !ok {
		t.Fatalf("expected surviving node to remain reachable after compact")
	}
}
