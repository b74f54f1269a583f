package pipeline

import (
	"testing"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/overlay"
)

// Two distinct RoV walks, structurally different outside the matched
// region, that coincide exactly on the slice span itself. The grouping fix
// in BuildRoVRecords relies on normalizedAlleleKey treating these as the
// same allele so their haplotypes merge into one ALT rather than two.
func TestNormalizedAlleleKeyMatchesAcrossDistinctWalks(t *testing.T) {
	walkA := graph.Walk{
		{ID: 1, Or: graph.Forward},
		{ID: 3, Or: graph.Forward},
		{ID: 4, Or: graph.Forward},
	}
	walkB := graph.Walk{
		{ID: 9, Or: graph.Forward}, // a divergent vertex outside the slice
		{ID: 1, Or: graph.Forward},
		{ID: 3, Or: graph.Forward},
		{ID: 4, Or: graph.Forward},
	}

	sliceA := overlay.AlleleSlice{WalkStart: 0, Length: 3, RefStart: 10, VarType: overlay.VarSub}
	sliceB := overlay.AlleleSlice{WalkStart: 1, Length: 3, RefStart: 10, VarType: overlay.VarSub}

	keyA := normalizedAlleleKey(walkA, sliceA)
	keyB := normalizedAlleleKey(walkB, sliceB)
	if keyA != keyB {
		t.Fatalf("expected identical allele content from distinct walks to produce the same key, got %q != %q", keyA, keyB)
	}
}

func TestNormalizedAlleleKeyDiffersOnVariantTypeOrPosition(t *testing.T) {
	walk := graph.Walk{
		{ID: 1, Or: graph.Forward},
		{ID: 3, Or: graph.Forward},
		{ID: 4, Or: graph.Forward},
	}
	base := overlay.AlleleSlice{WalkStart: 0, Length: 3, RefStart: 10, VarType: overlay.VarSub}
	diffType := overlay.AlleleSlice{WalkStart: 0, Length: 3, RefStart: 10, VarType: overlay.VarDel}
	diffPos := overlay.AlleleSlice{WalkStart: 0, Length: 3, RefStart: 11, VarType: overlay.VarSub}

	baseKey := normalizedAlleleKey(walk, base)
	if baseKey == normalizedAlleleKey(walk, diffType) {
		t.Fatalf("expected a differing variant type to change the key")
	}
	if baseKey == normalizedAlleleKey(walk, diffPos) {
		t.Fatalf("expected a differing reference anchor to change the key")
	}
}

func TestNormalizedAlleleKeyDiffersOnSequenceContent(t *testing.T) {
	walkA := graph.Walk{
		{ID: 1, Or: graph.Forward},
		{ID: 3, Or: graph.Forward},
		{ID: 4, Or: graph.Forward},
	}
	walkB := graph.Walk{
		{ID: 1, Or: graph.Forward},
		{ID: 2, Or: graph.Forward},
		{ID: 4, Or: graph.Forward},
	}
	slice := overlay.AlleleSlice{WalkStart: 0, Length: 3, RefStart: 10, VarType: overlay.VarSub}

	if normalizedAlleleKey(walkA, slice) == normalizedAlleleKey(walkB, slice) {
		t.Fatalf("expected different vertex sequences to produce different keys")
	}
}
