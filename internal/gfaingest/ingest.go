// Package gfaingest defines the data contract a GFA parser (an external
// collaborator) must satisfy to feed the decomposition and variant-calling
// subsystems. Parsing GFA text itself is out of scope; this package only
// shapes the ingest tuple and builds a graph.Graph from it.
package gfaingest

import "github.com/povu/povu/internal/graph"

// VertexRecord is one ingested segment.
type VertexRecord struct {
	ID       graph.ID
	Sequence string
}

// EdgeRecord is one ingested link between two vertex ends.
type EdgeRecord struct {
	V1ID  graph.ID
	V1End graph.End
	V2ID  graph.ID
	V2End graph.End
}

// StepRecord is one step of a reference walk.
type StepRecord struct {
	VertexID graph.ID
	Strand   graph.Orientation
	Locus    int
}

// RefRecord is one ingested reference (haplotype) walk.
type RefRecord struct {
	Tag   string
	Steps []StepRecord
}

// IngestGraph is the full tuple the external GFA parser is contracted to
// produce.
type IngestGraph struct {
	Vertices []VertexRecord
	Edges    []EdgeRecord
	Refs     []RefRecord
}

// Build materializes a graph.Graph from an already-parsed ingest tuple.
func Build(in *IngestGraph) *graph.Graph {
	g := graph.New(len(in.Vertices), len(in.Edges), len(in.Refs))

	for _, v := range in.Vertices {
		g.AddVertex(v.ID, v.Sequence)
	}
	for _, e := range in.Edges {
		g.AddEdge(e.V1ID, e.V1End, e.V2ID, e.V2End)
	}

	refID := graph.ID(1)
	var refs []*graph.Ref
	for _, rr := range in.Refs {
		r := graph.NewRef(refID, rr.Tag)
		for stepIdx, step := range rr.Steps {
			r.AppendStep(graph.RefStep{VertexID: step.VertexID, Or: step.Strand, Locus: step.Locus})
			g.SetVtxRefIdx(step.VertexID, refID, stepIdx)
		}
		refs = append(refs, r)
		refID++
	}
	g.AddAllRefs(refs)
	g.GenGenotypeMetadata()

	return g
}
