package pvst

import "github.com/povu/povu/internal/spanning"

// MarkHairpins flags every non-dummy node whose left or right endpoint
// vertex appears in t.Hairpins(): a self-referential backedge the spanning
// tree detected off that vertex. Gated behind the --hairpins CLI flag since
// it costs an O(hairpins) pass over the tree.
func MarkHairpins(t *spanning.Tree, pt *Tree) {
	hairpins := t.Hairpins()
	if len(hairpins) == 0 {
		return
	}
	set := make(map[uint64]struct{}, len(hairpins))
	for _, v := range hairpins {
		if id, ok := t.Graph().IDOf(v); ok {
			set[id] = struct{}{}
		}
	}
	for _, n := range pt.Nodes {
		if n.Family == FamilyDummy {
			continue
		}
		_, leftHairpin := set[n.Route.Left.ID]
		_, rightHairpin := set[n.Route.Right.ID]
		n.Hairpin = leftHairpin || rightHairpin
	}
}
