package graph

import "fmt"

// Graph is the bidirected variation graph: the exclusive owner of vertices,
// edges, refs, and the per-vertex ref-step index.
type Graph struct {
	vertices []*Vertex
	ids      *TwoWayMap
	edges    []Edge
	tips     map[SideID]struct{}
	refs     *Refs

	// vertexRefIdx[vIdx][refID] -> step indices of that ref at that vertex.
	vertexRefIdx map[Idx]map[ID][]int

	gtColNames []string
	refGTCol   map[ID]int // ref id -> genotype column index
}

// New creates an empty graph sized for the given expected vertex/edge/ref
// counts (a pure capacity hint; the graph grows as needed).
func New(vtxCount, edgeCount, refCount int) *Graph {
	return &Graph{
		vertices:     make([]*Vertex, 0, vtxCount),
		ids:          newTwoWayMap(),
		edges:        make([]Edge, 0, edgeCount),
		tips:         make(map[SideID]struct{}),
		refs:         NewRefs(),
		vertexRefIdx: make(map[Idx]map[ID][]int),
		refGTCol:     make(map[ID]int),
	}
}

// AddVertex idempotently maps id to a dense index, creating the vertex on
// first sight. A repeat add_vertex for the same id is a no-op returning the
// existing index.
func (g *Graph) AddVertex(id ID, label string) Idx {
	if idx, ok := g.ids.IdxOf(id); ok {
		return idx
	}
	idx := len(g.vertices)
	g.vertices = append(g.vertices, newVertex(id, label))
	g.ids.put(id, idx)
	return idx
}

// AddEdge records an edge between two existing vertex ends. Adding an edge
// to an absent vertex is fatal: the caller is expected to have validated ids
// via IdxOf first, so this panics rather than returning an error that would
// routinely be ignored by GFA ingest code.
func (g *Graph) AddEdge(v1ID ID, e1 End, v2ID ID, e2 End) Idx {
	v1Idx, ok1 := g.ids.IdxOf(v1ID)
	v2Idx, ok2 := g.ids.IdxOf(v2ID)
	if !ok1 || !ok2 {
		panic(fmt.Sprintf("graph: add_edge to absent vertex (v1=%d ok=%v, v2=%d ok=%v)", v1ID, ok1, v2ID, ok2))
	}
	eIdx := len(g.edges)
	g.edges = append(g.edges, Edge{V1Idx: v1Idx, V1End: e1, V2Idx: v2Idx, V2End: e2})
	g.vertices[v1Idx].addEdge(e1, eIdx)
	g.vertices[v2Idx].addEdge(e2, eIdx)
	return eIdx
}

func (g *Graph) VtxCount() int  { return len(g.vertices) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

func (g *Graph) IdxOf(id ID) (Idx, bool) { return g.ids.IdxOf(id) }
func (g *Graph) IDOf(idx Idx) (ID, bool) { return g.ids.IDOf(idx) }

func (g *Graph) VertexByIdx(idx Idx) *Vertex { return g.vertices[idx] }
func (g *Graph) VertexByID(id ID) *Vertex {
	idx, ok := g.ids.IdxOf(id)
	if !ok {
		return nil
	}
	return g.vertices[idx]
}

func (g *Graph) Edge(eIdx Idx) Edge { return g.edges[eIdx] }

// GetOtherVtx follows the edge at eIdx from (vIdx, end) to its peer side,
// correctly returning the same vertex for a self-loop.
func (g *Graph) GetOtherVtx(eIdx Idx, vIdx Idx, end End) SideID {
	side := g.edges[eIdx].OtherEnd(vIdx, end)
	id, _ := g.ids.IDOf(side.Idx)
	return SideID{End: side.End, ID: id}
}

// GetOtherVtxIdx is like GetOtherVtx but returns the peer's dense index
// directly, avoiding an id round-trip for callers that only need the index
// (e.g. spanning-tree traversal).
func (g *Graph) GetOtherVtxIdx(eIdx Idx, vIdx Idx, end End) SideIdx {
	return g.edges[eIdx].OtherEnd(vIdx, end)
}

// AddTip records a (vertex_id, end) pair whose end has zero incident edges.
func (g *Graph) AddTip(id ID, end End) {
	g.tips[SideID{End: end, ID: id}] = struct{}{}
}

// Tips returns the full tip set. Tips are recomputed lazily from vertex
// degree if none were explicitly recorded by the ingest step.
func (g *Graph) Tips() map[SideID]struct{} {
	if len(g.tips) == 0 {
		g.recomputeTips()
	}
	return g.tips
}

func (g *Graph) recomputeTips() {
	for idx, v := range g.vertices {
		id, _ := g.ids.IDOf(idx)
		if len(v.EdgesAt(EndL)) == 0 {
			g.tips[SideID{End: EndL, ID: id}] = struct{}{}
		}
		if len(v.EdgesAt(EndR)) == 0 {
			g.tips[SideID{End: EndR, ID: id}] = struct{}{}
		}
	}
}

func (g *Graph) Refs() *Refs { return g.refs }

// AddAllRefs attaches a batch of references built elsewhere (e.g. by GFA
// ingest) en masse.
func (g *Graph) AddAllRefs(refs []*Ref) {
	for _, r := range refs {
		g.refs.Add(r)
	}
}

// SetVtxRefIdx records that ref refID visits vertex vID at step stepIdx,
// maintaining the per-vertex (vertex_idx, ref_id) -> [step_indices] index.
func (g *Graph) SetVtxRefIdx(vID ID, refID ID, stepIdx int) {
	vIdx, ok := g.ids.IdxOf(vID)
	if !ok {
		return
	}
	if g.vertexRefIdx[vIdx] == nil {
		g.vertexRefIdx[vIdx] = make(map[ID][]int)
	}
	g.vertexRefIdx[vIdx][refID] = append(g.vertexRefIdx[vIdx][refID], stepIdx)
}

// GetVertexRefIdxs returns the step indices ref refID visits vertex vIdx at.
func (g *Graph) GetVertexRefIdxs(vIdx Idx, refID ID) []int {
	return g.vertexRefIdx[vIdx][refID]
}

// GetVertexRefs returns, for a vertex, the map of every ref id that visits it
// to its step indices there.
func (g *Graph) GetVertexRefs(vIdx Idx) map[ID][]int {
	return g.vertexRefIdx[vIdx]
}

// GenGenotypeMetadata builds the per-haplotype genotype column layout used by
// VCF output: one column per reference haplotype, ordered by ref id. Columns
// are ploidy-free, matching the PanSN-haplotype model rather than per-sample
// diploid columns.
func (g *Graph) GenGenotypeMetadata() {
	g.refGTCol = make(map[ID]int)
	g.gtColNames = nil
	for i, r := range g.refs.All() {
		g.refGTCol[r.id] = i
		g.gtColNames = append(g.gtColNames, r.tag)
	}
}

func (g *Graph) GenotypeColNames() []string { return g.gtColNames }

// RefGTColIdx returns the genotype column index assigned to refID.
func (g *Graph) RefGTColIdx(refID ID) (int, bool) {
	idx, ok := g.refGTCol[refID]
	return idx, ok
}

// BlankGenotypeCols returns one "." per genotype column, the default value
// for samples with no data for a given record.
func (g *Graph) BlankGenotypeCols() []string {
	cols := make([]string, len(g.gtColNames))
	for i := range cols {
		cols[i] = "."
	}
	return cols
}
