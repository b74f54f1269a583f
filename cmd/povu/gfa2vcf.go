package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/povu/povu/internal/config"
	"github.com/povu/povu/internal/pipeline"
)

// newGfa2VCFCmd wires decompose and call back to back in one process,
// skipping the PVST round trip through disk entirely.
func newGfa2VCFCmd(gf *globalFlags, v *viper.Viper) *cobra.Command {
	cfg := &config.Config{}
	cmd := &cobra.Command{
		Use:   "gfa2vcf [refs...]",
		Short: "Decompose a GFA graph and call variants in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.RefTags = args
			return runGfa2VCF(gf, cfg)
		},
	}
	bindInputFlag(cmd, cfg)
	bindOutputFlags(cmd, cfg)
	bindPipelineFlags(cmd, cfg)
	bindDecompositionFlags(cmd, cfg)
	bindRefSourceFlags(cmd, cfg)
	return cmd
}

func runGfa2VCF(gf *globalFlags, cfg *config.Config) error {
	start := time.Now()
	log := newLogger(gf)
	defer log.Sync()

	if err := cfg.ValidateOutput(); err != nil {
		return err
	}
	g, comps, err := buildComponents(cfg, log)
	if err != nil {
		return err
	}
	refIDs, err := resolveRefIDs(cfg, g)
	if err != nil {
		return err
	}
	sink, err := newOutputSink(cfg, g)
	if err != nil {
		return err
	}
	defer sink.close()

	pcfg := pipeline.Config{ChunkSize: cfg.ChunkSize, QueueLength: cfg.QueueLength, Workers: gf.threads}
	rovCount, err := callAll(comps, refIDs, pcfg, sink, log)
	if err != nil {
		return err
	}
	log.Infof("run %s: %d RoVs, %d records", newRunID(), rovCount, sink.recordCount)
	recordRunStats(cfg, g, rovCount, sink, start, log)
	return nil
}
