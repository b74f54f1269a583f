package pvstio

import (
	"bytes"
	"testing"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/pvst"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tr := pvst.NewTree()
	tr.AddNode(pvst.FamilyFlubble, tr.Root, pvst.RouteParams{
		Left:  graph.IDOr{ID: 1, Or: graph.Forward},
		Right: graph.IDOr{ID: 4, Or: graph.Forward},
		Route: pvst.RouteS2E,
	})
	tr.ComputeHeights()

	var buf bytes.Buffer
	if err := Write(&buf, tr); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Nodes) != len(tr.Nodes) {
		t.Fatalf("node count mismatch: got %d, want %d", len(got.Nodes), len(tr.Nodes))
	}
	if got.Nodes[1].Family != pvst.FamilyFlubble {
		t.Fatalf("expected flubble family, got %v", got.Nodes[1].Family)
	}
	if got.Nodes[1].Route.Left.ID != 1 || got.Nodes[1].Route.Right.ID != 4 {
		t.Fatalf("endpoint ids not preserved: %+v", got.Nodes[1].Route)
	}
}

func TestParseLabel(t *testing.T) {
	left, right, err := parseLabel(">1<2")
	if err != nil {
		t.Fatalf("parseLabel: %v", err)
	}
	if left.ID != 1 || right.ID != 2 {
		t.Fatalf("got left=%d right=%d", left.ID, right.ID)
	}
}
