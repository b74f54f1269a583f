package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/povu/povu/internal/config"
	"github.com/povu/povu/internal/gfaingest"
	"github.com/povu/povu/internal/graph"
	"github.com/povu/povu/internal/pipeline"
	"github.com/povu/povu/internal/plog"
	"github.com/povu/povu/internal/pvst"
	"github.com/povu/povu/internal/pvst/pvstio"
	"github.com/povu/povu/internal/rov"
	"github.com/povu/povu/internal/spanning"
	"github.com/povu/povu/internal/statsdb"
	"github.com/povu/povu/internal/vcfout"
)

// component bundles one connected component's graph together with the
// spanning tree and PVST built over it: everything downstream (RoV
// generation, record synthesis) is scoped to a single component's own
// vertex index space.
type component struct {
	g  *graph.Graph
	t  *spanning.Tree
	pt *pvst.Tree
}

// buildComponents ingests GFA, splits it into connected components, and runs
// the decomposition subsystem (spanning tree, flubble finder, optional
// subflubble refinement and hairpin marking) over each one.
func buildComponents(cfg *config.Config, log *plog.Logger) (*graph.Graph, []*component, error) {
	in, err := readGFA(cfg.InputGFA)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest %s: %w", cfg.InputGFA, err)
	}
	g := gfaingest.Build(in)
	g.GenGenotypeMetadata()

	var comps []*component
	for _, cg := range g.Componetize() {
		t := spanning.Build(cg, nil)
		pt := pvst.BuildFlubbles(t)
		if cfg.Subflubbles {
			pvst.Refine(t, pt, log)
		} else {
			pt.ComputeHeights()
		}
		if cfg.Hairpins {
			pvst.MarkHairpins(t, pt)
		}
		comps = append(comps, &component{g: cg, t: t, pt: pt})
	}
	return g, comps, nil
}

// loadComponents ingests GFA, rebuilds each component's spanning tree (a
// cheap, deterministic recomputation from the graph alone), and pairs it
// with the matching .pvst file decompose already wrote under
// cfg.ForestDir. Pairing relies on Componetize producing the same
// component order both times, since the forest only ever holds PVSTs, not
// the spanning trees they were built from.
func loadComponents(cfg *config.Config) (*graph.Graph, []*component, error) {
	in, err := readGFA(cfg.InputGFA)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest %s: %w", cfg.InputGFA, err)
	}
	g := gfaingest.Build(in)
	g.GenGenotypeMetadata()

	files, err := filepath.Glob(filepath.Join(cfg.ForestDir, "component-*.pvst"))
	if err != nil {
		return nil, nil, fmt.Errorf("list forest dir %s: %w", cfg.ForestDir, err)
	}
	sort.Strings(files)

	cgs := g.Componetize()
	if len(files) != len(cgs) {
		return nil, nil, fmt.Errorf("forest dir %s has %d PVST files, graph has %d components", cfg.ForestDir, len(files), len(cgs))
	}

	var comps []*component
	for i, cg := range cgs {
		f, err := os.Open(files[i])
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", files[i], err)
		}
		pt, err := pvstio.Read(f)
		f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", files[i], err)
		}
		t := spanning.Build(cg, nil)
		comps = append(comps, &component{g: cg, t: t, pt: pt})
	}
	return g, comps, nil
}

// resolveRefIDs turns the config's chosen reference source into the set of
// ref ids the variant-calling subsystem should treat as reference
// haplotypes, matched by tag prefix against the full graph's refs.
func resolveRefIDs(cfg *config.Config, g *graph.Graph) (map[graph.ID]bool, error) {
	kind, err := cfg.RefSource()
	if err != nil {
		return nil, err
	}

	var prefixes []string
	switch kind {
	case config.RefSourcePrefixList:
		prefixes, err = cfg.PrefixListTags()
		if err != nil {
			return nil, err
		}
	case config.RefSourcePathPrefixes:
		prefixes = cfg.PathPrefixes
	case config.RefSourcePositionalTags:
		prefixes = cfg.RefTags
	}

	refIDs := make(map[graph.ID]bool)
	for _, ref := range g.Refs().All() {
		for _, prefix := range prefixes {
			if len(ref.Tag()) >= len(prefix) && ref.Tag()[:len(prefix)] == prefix {
				refIDs[ref.ID()] = true
				break
			}
		}
	}
	if len(refIDs) == 0 {
		return nil, fmt.Errorf("config: no reference haplotype matched the given prefixes")
	}
	return refIDs, nil
}

// outputSink routes BuildRoVRecords batches to either one combined stream
// or one file per reference haplotype.
type outputSink struct {
	combined *vcfout.Writer
	perRef   map[graph.ID]*vcfout.Writer
	refName  map[graph.ID]string
	g        *graph.Graph

	recordCount  int
	tangledCount int
}

func newOutputSink(cfg *config.Config, g *graph.Graph) (*outputSink, error) {
	sink := &outputSink{g: g, refName: make(map[graph.ID]string)}
	for _, ref := range g.Refs().All() {
		name := ref.Contig()
		if name == "" {
			name = ref.Tag()
		}
		sink.refName[ref.ID()] = name
	}

	if cfg.Stdout {
		w := vcfout.NewCombinedWriter(os.Stdout)
		if err := w.WriteHeader(g, g.GenotypeColNames()); err != nil {
			return nil, fmt.Errorf("write combined header: %w", err)
		}
		sink.combined = w
		return sink, nil
	}

	sink.perRef = make(map[graph.ID]*vcfout.Writer)
	for _, ref := range g.Refs().All() {
		w, err := vcfout.NewFileWriter(cfg.OutputDir, ref.Tag())
		if err != nil {
			return nil, err
		}
		if err := w.WriteHeader(g, g.GenotypeColNames()); err != nil {
			return nil, fmt.Errorf("write header for %s: %w", ref.Tag(), err)
		}
		sink.perRef[ref.ID()] = w
	}
	return sink, nil
}

func (s *outputSink) consume(records []*vcfout.Record) error {
	for _, r := range records {
		s.recordCount++
		if r.Tangled {
			s.tangledCount++
		}
		if s.combined != nil {
			if err := s.combined.WriteRecord(s.refName[r.RefID], r); err != nil {
				return err
			}
			continue
		}
		for _, refID := range touchedRefs(r) {
			w, ok := s.perRef[refID]
			if !ok {
				continue
			}
			if err := w.WriteRecord(s.refName[refID], r); err != nil {
				return err
			}
		}
	}
	return nil
}

func touchedRefs(r *vcfout.Record) []graph.ID {
	seen := make(map[graph.ID]bool)
	var out []graph.ID
	add := func(id graph.ID) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range r.RefHaps {
		add(id)
	}
	for _, alt := range r.AltAlleles {
		for _, id := range alt.Haps {
			add(id)
		}
	}
	return out
}

func (s *outputSink) close() error {
	if s.combined != nil {
		return s.combined.Close()
	}
	for _, w := range s.perRef {
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}

// callAll runs the variant-calling subsystem over every component's RoVs in
// turn, sharing one output sink across all of them. Components are
// disconnected by construction, so a per-component InversionIndex (built
// fresh inside each pipeline.Run call) already dedups every inversion a
// single region can produce; nothing crosses component boundaries.
func callAll(comps []*component, refIDs map[graph.ID]bool, cfg pipeline.Config, sink *outputSink, log *plog.Logger) (int, error) {
	var rovCount int
	for _, c := range comps {
		gen := rov.NewGenerator(c.g, c.t)
		rovs := gen.Generate(c.pt)
		rovCount += len(rovs)
		for _, r := range rovs {
			if r.Truncated {
				log.Warnf("RoV %d: walk enumeration hit its cap (MaxUnblockCtr=%d) and was cut short; some walks may be missing", r.NodeID, gen.MaxUnblockCtr)
			}
		}
		if len(rovs) == 0 {
			continue
		}
		if err := pipeline.Run(c.g, c.pt, rovs, refIDs, cfg, sink.consume); err != nil {
			log.Errorf("component decomposition failed: %v", err)
			return rovCount, err
		}
	}
	return rovCount, nil
}

// recordRunStats stamps one row into the local run-stats cache, keyed by
// the input GFA path so povu info --history can list prior runs over the
// same graph. A failed stats write never fails the calling command; it
// only gets logged.
func recordRunStats(cfg *config.Config, g *graph.Graph, rovCount int, sink *outputSink, start time.Time, log *plog.Logger) {
	path := filepath.Join(os.Getenv("HOME"), ".povu-stats.duckdb")
	db, err := statsdb.Open(path)
	if err != nil {
		log.Warnf("run stats: %v", err)
		return
	}
	defer db.Close()

	stats := statsdb.RunStats{
		StartedAt:    start,
		InputGFA:     cfg.InputGFA,
		VertexCount:  g.VtxCount(),
		EdgeCount:    g.EdgeCount(),
		RefCount:     g.Refs().Len(),
		RoVCount:     rovCount,
		TangledCount: sink.tangledCount,
		RecordCount:  sink.recordCount,
		Duration:     time.Since(start),
	}
	if err := db.RecordRun(stats); err != nil {
		log.Warnf("run stats: %v", err)
	}
}

// newRunID is a stable per-invocation identifier, logged alongside the
// stats row so separate runs over the same graph in the same second can
// still be told apart.
func newRunID() string {
	return uuid.NewString()
}
