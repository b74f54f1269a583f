package graph

import (
	"strings"
	"testing"
)

func TestWriteGFARoundTripsVerticesAndLinks(t *testing.T) {
	g := New(2, 1, 0)
	g.AddVertex(1, "ACGT")
	g.AddVertex(2, "TT")
	g.AddEdge(1, EndR, 2, EndL)

	var buf strings.Builder
	if err := g.WriteGFA(&buf); err != nil {
		t.Fatalf("WriteGFA: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "S\t1\tACGT") {
		t.Errorf("missing segment line for vertex 1: %s", out)
	}
	if !strings.Contains(out, "S\t2\tTT") {
		t.Errorf("missing segment line for vertex 2: %s", out)
	}
	if !strings.Contains(out, "L\t1\t+\t2\t+\t0M") {
		t.Errorf("missing link line, got: %s", out)
	}
}

func TestWriteDOTBoldsTips(t *testing.T) {
	g := New(2, 1, 0)
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddEdge(1, EndR, 2, EndL)

	var buf strings.Builder
	if err := g.WriteDOT(&buf); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "graph povu {") {
		t.Errorf("missing graph header: %s", out)
	}
	if !strings.Contains(out, "1 [style=bold]") {
		t.Errorf("expected vertex 1 (tip on L) bolded: %s", out)
	}
	if !strings.Contains(out, "2 [style=bold]") {
		t.Errorf("expected vertex 2 (tip on R) bolded: %s", out)
	}
}
