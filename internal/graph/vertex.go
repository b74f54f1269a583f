package graph

import "strings"

// Vertex is a graph node carrying a stable id and a DNA sequence label. Its
// two ends each hold the set of incident edge indices.
type Vertex struct {
	id    ID
	label string

	edgesL map[Idx]struct{}
	edgesR map[Idx]struct{}
}

func newVertex(id ID, label string) *Vertex {
	return &Vertex{
		id:     id,
		label:  label,
		edgesL: make(map[Idx]struct{}),
		edgesR: make(map[Idx]struct{}),
	}
}

func (v *Vertex) ID() ID          { return v.id }
func (v *Vertex) Label() string   { return v.label }
func (v *Vertex) Length() int     { return len(v.label) }

// RCLabel returns the reverse complement of the vertex's sequence label.
func (v *Vertex) RCLabel() string {
	return ReverseComplement(v.label)
}

// EdgesAt returns the (deduplicated) set of edge indices incident on end.
func (v *Vertex) EdgesAt(end End) map[Idx]struct{} {
	if end == EndL {
		return v.edgesL
	}
	return v.edgesR
}

func (v *Vertex) addEdge(end End, eIdx Idx) {
	v.EdgesAt(end)[eIdx] = struct{}{}
}

// complementBase maps each IUPAC/DNA base to its complement; unrecognized
// bytes pass through unchanged (graphs may carry 'N' or lowercase bases).
var complementBase = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
		'a': 't', 't': 'a', 'c': 'g', 'g': 'c',
		'N': 'N', 'n': 'n',
	}
	for a, b := range pairs {
		t[a] = b
	}
	return t
}()

// ReverseComplement returns the usual DNA reverse complement of seq.
func ReverseComplement(seq string) string {
	var b strings.Builder
	b.Grow(len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		b.WriteByte(complementBase[seq[i]])
	}
	return b.String()
}
