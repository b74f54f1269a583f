package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/povu/povu/internal/gfaingest"
	"github.com/povu/povu/internal/graph"
)

// readGFA parses a GFA1/GFA1.1 file into the ingest tuple gfaingest.Build
// expects. Segment (S), link (L), path (P), and walk (W) lines are
// supported; everything else (headers, containments, jump links, comments)
// is skipped. GFA parsing itself carries no domain logic worth a library:
// it is a thin, line-oriented scan that exists only to drive the CLI
// end-to-end.
func readGFA(path string) (*gfaingest.IngestGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	segIDs := make(map[string]graph.ID)
	var nextID graph.ID = 1
	idOf := func(name string) graph.ID {
		if id, ok := segIDs[name]; ok {
			return id
		}
		id := nextID
		nextID++
		segIDs[name] = id
		return id
	}

	in := &gfaingest.IngestGraph{}
	segLen := make(map[graph.ID]int)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "S":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed S line: %q", line)
			}
			id := idOf(fields[1])
			seq := fields[2]
			in.Vertices = append(in.Vertices, gfaingest.VertexRecord{ID: id, Sequence: seq})
			segLen[id] = len(seq)
		case "L":
			if len(fields) < 5 {
				return nil, fmt.Errorf("malformed L line: %q", line)
			}
			v1, end1 := idOf(fields[1]), endFor(fields[2], true)
			v2, end2 := idOf(fields[3]), endFor(fields[4], false)
			in.Edges = append(in.Edges, gfaingest.EdgeRecord{V1ID: v1, V1End: end1, V2ID: v2, V2End: end2})
		case "P":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed P line: %q", line)
			}
			rr, err := parsePathLine(fields[1], fields[2], idOf, segLen)
			if err != nil {
				return nil, err
			}
			in.Refs = append(in.Refs, rr)
		case "W":
			if len(fields) < 7 {
				return nil, fmt.Errorf("malformed W line: %q", line)
			}
			rr, err := parseWalkLine(fields, idOf, segLen)
			if err != nil {
				return nil, err
			}
			in.Refs = append(in.Refs, rr)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return in, nil
}

func endFor(orient string, isFrom bool) graph.End {
	forward := orient == "+"
	switch {
	case isFrom && forward, !isFrom && !forward:
		return graph.EndR
	default:
		return graph.EndL
	}
}

func parsePathLine(name, segList string, idOf func(string) graph.ID, segLen map[graph.ID]int) (gfaingest.RefRecord, error) {
	rr := gfaingest.RefRecord{Tag: name}
	locus := 0
	for _, tok := range strings.Split(segList, ",") {
		if len(tok) < 2 {
			return rr, fmt.Errorf("path %s: malformed segment token %q", name, tok)
		}
		strand := tok[len(tok)-1:]
		segName := tok[:len(tok)-1]
		id := idOf(segName)
		or := graph.Forward
		if strand == "-" {
			or = graph.Reverse
		}
		rr.Steps = append(rr.Steps, gfaingest.StepRecord{VertexID: id, Strand: or, Locus: locus})
		locus += segLen[id]
	}
	return rr, nil
}

func parseWalkLine(fields []string, idOf func(string) graph.ID, segLen map[graph.ID]int) (gfaingest.RefRecord, error) {
	sample, hapIdx, seqID := fields[1], fields[2], fields[3]
	tag := fmt.Sprintf("%s#%s#%s", sample, hapIdx, seqID)
	rr := gfaingest.RefRecord{Tag: tag}

	walk := fields[6]
	locus := 0
	start := 0
	for i := 1; i <= len(walk); i++ {
		if i < len(walk) && walk[i] != '>' && walk[i] != '<' {
			continue
		}
		tok := walk[start:i]
		if tok == "" {
			start = i
			continue
		}
		or := graph.Forward
		if tok[0] == '<' {
			or = graph.Reverse
		}
		id := idOf(tok[1:])
		rr.Steps = append(rr.Steps, gfaingest.StepRecord{VertexID: id, Strand: or, Locus: locus})
		locus += segLen[id]
		start = i
	}
	return rr, nil
}
