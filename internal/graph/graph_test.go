package graph

import "testing"

func TestAddVertexIdempotent(t *testing.T) {
	g := New(4, 4, 0)
	idx1 := g.AddVertex(7, "ACGT")
	idx2 := g.AddVertex(7, "ACGT")
	if idx1 != idx2 {
		t.Fatalf("add_vertex not idempotent: %d != %d", idx1, idx2)
	}
	if g.VtxCount() != 1 {
		t.Fatalf("expected 1 vertex, got %d", g.VtxCount())
	}
}

func TestGetOtherVtxSelfLoop(t *testing.T) {
	g := New(1, 1, 0)
	g.AddVertex(1, "A")
	eIdx := g.AddEdge(1, EndR, 1, EndL)

	other := g.GetOtherVtx(eIdx, 0, EndR)
	if other.ID != 1 || other.End != EndL {
		t.Fatalf("self-loop traversal from R should land on L of same vertex, got %+v", other)
	}
	back := g.GetOtherVtx(eIdx, 0, EndL)
	if back.ID != 1 || back.End != EndR {
		t.Fatalf("self-loop traversal from L should land on R of same vertex, got %+v", back)
	}
}

func TestTips(t *testing.T) {
	g := New(2, 1, 0)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddEdge(1, EndR, 2, EndL)

	tips := g.Tips()
	want := []SideID{{End: EndL, ID: 1}, {End: EndR, ID: 2}}
	for _, w := range want {
		if _, ok := tips[w]; !ok {
			t.Errorf("expected tip %v", w)
		}
	}
	if len(tips) != 2 {
		t.Errorf("expected exactly 2 tips, got %d: %v", len(tips), tips)
	}
}

func TestComponetizeRoundTrip(t *testing.T) {
	g := New(4, 2, 0)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddEdge(1, EndR, 2, EndL)
	g.AddVertex(10, "G")
	g.AddVertex(11, "T")
	g.AddEdge(10, EndR, 11, EndL)

	comps := g.Componetize()
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}

	gotVertices := make(map[ID]string)
	gotEdges := make(map[[4]any]struct{})
	for _, c := range comps {
		for idx := 0; idx < c.VtxCount(); idx++ {
			v := c.VertexByIdx(idx)
			gotVertices[v.ID()] = v.Label()
		}
		for eIdx := 0; eIdx < c.EdgeCount(); eIdx++ {
			e := c.Edge(eIdx)
			id1, _ := c.IDOf(e.V1Idx)
			id2, _ := c.IDOf(e.V2Idx)
			gotEdges[[4]any{id1, e.V1End, id2, e.V2End}] = struct{}{}
		}
	}

	wantVertices := map[ID]string{1: "A", 2: "C", 10: "G", 11: "T"}
	for id, label := range wantVertices {
		if gotVertices[id] != label {
			t.Errorf("vertex %d: want label %q got %q", id, label, gotVertices[id])
		}
	}
	if len(gotVertices) != len(wantVertices) {
		t.Errorf("vertex count mismatch: got %d want %d", len(gotVertices), len(wantVertices))
	}
	if len(gotEdges) != 2 {
		t.Errorf("expected 2 edges across components, got %d", len(gotEdges))
	}
}

func TestParseTagPanSN(t *testing.T) {
	tests := []struct {
		tag        string
		wantDialect TagDialect
		wantSample string
		wantHapID  int
		wantContig string
	}{
		{"HG002#1#chr1", DialectPanSN, "HG002", 1, "chr1"},
		{"HG002#0#chr1", DialectPanSN, "HG002", 0, "chr1"},
		{"chr1", DialectUndefined, "", 0, ""},
		{"HG002##chr1", DialectUndefined, "", 0, ""},
		{"HG002#x#chr1", DialectUndefined, "", 0, ""},
		{"a#1#b#c", DialectUndefined, "", 0, ""},
	}
	for _, tt := range tests {
		dialect, sample, hapID, contig := ParseTag(tt.tag)
		if dialect != tt.wantDialect || sample != tt.wantSample || hapID != tt.wantHapID || contig != tt.wantContig {
			t.Errorf("ParseTag(%q) = (%v,%q,%d,%q), want (%v,%q,%d,%q)",
				tt.tag, dialect, sample, hapID, contig, tt.wantDialect, tt.wantSample, tt.wantHapID, tt.wantContig)
		}
	}
}

func TestSharedSamplePanSN(t *testing.T) {
	g := New(0, 0, 2)
	r1 := NewRef(1, "HG002#1#chr1")
	r2 := NewRef(2, "HG002#2#chr1")
	r3 := NewRef(3, "HG003#1#chr1")
	g.AddAllRefs([]*Ref{r1, r2, r3})

	shared := g.Refs().SharedSample(1)
	if _, ok := shared[2]; !ok {
		t.Errorf("expected ref 2 to share sample with ref 1")
	}
	if _, ok := shared[3]; ok {
		t.Errorf("did not expect ref 3 to share sample with ref 1")
	}
}

func TestReverseComplement(t *testing.T) {
	if got := ReverseComplement("ACGT"); got != "ACGT" {
		t.Errorf("ReverseComplement(ACGT) = %q, want ACGT", got)
	}
	if got := ReverseComplement("AATTCC"); got != "GGAATT" {
		t.Errorf("ReverseComplement(AATTCC) = %q, want GGAATT", got)
	}
}
