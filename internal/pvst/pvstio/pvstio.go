// Package pvstio reads and writes the tab-separated .pvst file format: a
// header line followed by one line per PVST node, each carrying a type
// character, the node's file-local id, an endpoint label, and a
// comma-separated child-id list.
package pvstio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/pvst"
)

const (
	version = "0.0.3"
	noValue = "."
	colSep  = '\t'
)

func typeChar(f pvst.Family) byte { return f.TypeChar() }

func familyFromChar(c byte) (pvst.Family, bool) {
	switch c {
	case 'D':
		return pvst.FamilyDummy, true
	case 'F':
		return pvst.FamilyFlubble, true
	case 'T':
		return pvst.FamilyTiny, true
	case 'O':
		return pvst.FamilyParallel, true
	case 'C':
		return pvst.FamilyConcealed, true
	case 'S':
		return pvst.FamilySmothered, true
	case 'M':
		return pvst.FamilyMidi, true
	default:
		return 0, false
	}
}

// Write serializes t in .pvst format: a header line, then one line per
// node in Tree.Nodes order.
func Write(w io.Writer, t *pvst.Tree) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "H\t%s\t.\t.\t.\n", version); err != nil {
		return err
	}
	for _, n := range t.Nodes {
		label := noValue
		route := noValue
		if n.Family != pvst.FamilyDummy {
			label = fmt.Sprintf("%s%s", endpointStr(n.Route.Left), endpointStr(n.Route.Right))
			if n.Route.Route == pvst.RouteS2E {
				route = "L"
			} else {
				route = "R"
			}
		}
		children := noValue
		if len(n.Children) > 0 {
			parts := make([]string, len(n.Children))
			for i, c := range n.Children {
				parts[i] = strconv.Itoa(c)
			}
			children = strings.Join(parts, ",")
		}
		if _, err := fmt.Fprintf(bw, "%c\t%d\t%s\t%s\t%s\n", typeChar(n.Family), n.ID, label, children, route); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func endpointStr(x graph.IDOr) string {
	return fmt.Sprintf("%s%d", x.Or, x.ID)
}

// Read parses a .pvst stream into a pvst.Tree, reconstructing the parent-
// child edges from each line's child-id column.
func Read(r io.Reader) (*pvst.Tree, error) {
	scanner := bufio.NewScanner(r)
	var lines [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, strings.Split(line, string(colSep)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("pvstio: empty .pvst input")
	}

	header := lines[0]
	if len(header) < 2 || header[0] != "H" {
		return nil, fmt.Errorf("pvstio: missing header line")
	}

	t := &pvst.Tree{}
	fileIDToNodeID := make(map[int]int)
	childrenOf := make(map[int][]int)

	for _, tokens := range lines[1:] {
		if len(tokens) != 5 {
			return nil, fmt.Errorf("pvstio: expected 5 columns, got %d", len(tokens))
		}
		typ := tokens[0][0]
		fileID, err := strconv.Atoi(tokens[1])
		if err != nil {
			return nil, fmt.Errorf("pvstio: invalid id %q: %w", tokens[1], err)
		}

		if typ == 'D' {
			t.Nodes = append(t.Nodes, &pvst.Node{ID: len(t.Nodes), Family: pvst.FamilyDummy, Parent: -1})
			t.Root = t.Nodes[len(t.Nodes)-1].ID
			fileIDToNodeID[fileID] = t.Root
			if tokens[3] != noValue {
				childrenOf[t.Root] = parseIntList(tokens[3])
			}
			continue
		}

		family, ok := familyFromChar(typ)
		if !ok {
			return nil, fmt.Errorf("pvstio: unknown type char %q", typ)
		}

		left, right, err := parseLabel(tokens[2])
		if err != nil {
			return nil, fmt.Errorf("pvstio: %w", err)
		}

		route := pvst.RouteS2E
		if tokens[4] == "R" {
			route = pvst.RouteE2S
		}

		id := len(t.Nodes)
		n := &pvst.Node{ID: id, Family: family, Parent: -1, Route: pvst.RouteParams{Left: left, Right: right, Route: route}}
		t.Nodes = append(t.Nodes, n)
		fileIDToNodeID[fileID] = id

		if tokens[3] != noValue {
			childrenOf[id] = parseIntList(tokens[3])
		}
	}

	for parentID, fileChildIDs := range childrenOf {
		for _, fcID := range fileChildIDs {
			childID, ok := fileIDToNodeID[fcID]
			if !ok {
				return nil, fmt.Errorf("pvstio: child id %d references unknown node", fcID)
			}
			t.Nodes[parentID].Children = append(t.Nodes[parentID].Children, childID)
			t.Nodes[childID].Parent = parentID
		}
	}

	return t, nil
}

func parseIntList(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}

// parseLabel parses a ">1<2"-style endpoint label into its two (id,
// orientation) steps: split on the first and last '>'/'<' markers in the
// string.
func parseLabel(s string) (graph.IDOr, graph.IDOr, error) {
	first := strings.IndexAny(s, "><")
	last := strings.LastIndexAny(s, "><")
	if first < 0 || last < 0 || first == last {
		return graph.IDOr{}, graph.IDOr{}, fmt.Errorf("invalid endpoint label %q", s)
	}

	leftID, err := strconv.ParseUint(s[first+1:last], 10, 64)
	if err != nil {
		return graph.IDOr{}, graph.IDOr{}, fmt.Errorf("invalid left endpoint in %q: %w", s, err)
	}
	rightID, err := strconv.ParseUint(s[last+1:], 10, 64)
	if err != nil {
		return graph.IDOr{}, graph.IDOr{}, fmt.Errorf("invalid right endpoint in %q: %w", s, err)
	}

	left := graph.IDOr{ID: leftID, Or: orientationOf(s[first])}
	right := graph.IDOr{ID: rightID, Or: orientationOf(s[last])}
	return left, right, nil
}

func orientationOf(c byte) graph.Orientation {
	if c == '>' {
		return graph.Forward
	}
	return graph.Reverse
}
