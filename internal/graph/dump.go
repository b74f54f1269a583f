package graph

import (
	"fmt"
	"io"
)

// WriteGFA dumps the graph back out as GFA1 text: one S line per vertex, one
// L line per edge. Strand characters follow the usual GFA convention ('+'
// for a link leaving a vertex's R end or entering its L end, '-' otherwise).
// This is a debug aid (`povu info --gfa`), not a round-trippable persistence
// format: ref walks are not re-emitted as GFA P lines.
func (g *Graph) WriteGFA(w io.Writer) error {
	for idx, v := range g.vertices {
		id, _ := g.IDOf(idx)
		if _, err := fmt.Fprintf(w, "S\t%d\t%s\n", id, v.Label()); err != nil {
			return err
		}
	}
	for _, e := range g.edges {
		id1, _ := g.IDOf(e.V1Idx)
		id2, _ := g.IDOf(e.V2Idx)
		if _, err := fmt.Fprintf(w, "L\t%d\t%s\t%d\t%s\t0M\n",
			id1, strandChar(e.V1End), id2, strandChar(e.V2End.Complement())); err != nil {
			return err
		}
	}
	return nil
}

func strandChar(end End) string {
	if end == EndR {
		return "+"
	}
	return "-"
}

// WriteDOT dumps the graph as Graphviz DOT for visual inspection
// (`povu info --dot`). Tips get a bold border so truncated walks stand out.
func (g *Graph) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "graph povu {"); err != nil {
		return err
	}
	tips := g.Tips()
	for idx := range g.vertices {
		id, _ := g.IDOf(idx)
		style := ""
		if _, ok := tips[SideID{End: EndL, ID: id}]; ok {
			style = " [style=bold]"
		} else if _, ok := tips[SideID{End: EndR, ID: id}]; ok {
			style = " [style=bold]"
		}
		if _, err := fmt.Fprintf(w, "  %d%s;\n", id, style); err != nil {
			return err
		}
	}
	for _, e := range g.edges {
		id1, _ := g.IDOf(e.V1Idx)
		id2, _ := g.IDOf(e.V2Idx)
		if _, err := fmt.Fprintf(w, "  %d -- %d [taillabel=%q, headlabel=%q];\n",
			id1, id2, e.V1End.String(), e.V2End.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
