package main

import (
	"github.com/spf13/cobra"

	"github.com/povu/povu/internal/config"
)

// bindInputFlag adds -i/--input-gfa, required by every subcommand.
func bindInputFlag(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.InputGFA, "input-gfa", "i", "", "input GFA path (required)")
	cmd.MarkFlagRequired("input-gfa")
}

// bindOutputFlags adds the -o/--output-dir vs --stdout XOR pair.
func bindOutputFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "per-reference VCFs under this directory")
	cmd.Flags().BoolVar(&cfg.Stdout, "stdout", false, "write one combined VCF to stdout")
}

// bindRefSourceFlags adds the prefix-list/path-prefix XOR pair; positional
// ref tags are bound by the caller via cobra.Command.Args since they are
// ordinary positional arguments, not flags.
func bindRefSourceFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.PrefixListPath, "prefix-list", "r", "", "file with reference name prefixes, one per line")
	cmd.Flags().StringArrayVarP(&cfg.PathPrefixes, "path-prefix", "P", nil, "reference name prefix (repeatable)")
}

// bindPipelineFlags adds chunk-size and queue-length, shared by call and
// gfa2vcf.
func bindPipelineFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().IntVarP(&cfg.ChunkSize, "chunk-size", "c", 100, "RoVs per pipeline chunk")
	cmd.Flags().IntVarP(&cfg.QueueLength, "queue-length", "q", 4, "bounded queue capacity")
}

// bindDecompositionFlags adds hairpins/subflubbles, shared by decompose and
// gfa2vcf.
func bindDecompositionFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().BoolVarP(&cfg.Hairpins, "hairpins", "H", false, "include hairpin detection")
	cmd.Flags().BoolVarP(&cfg.Subflubbles, "subflubbles", "s", false, "run subflubble refinement passes")
}

// bindForestDirFlag adds -f/--forest-dir, used by call to read the .pvst
// files decompose wrote.
func bindForestDirFlag(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.ForestDir, "forest-dir", "f", "", "directory of .pvst files (required)")
	cmd.MarkFlagRequired("forest-dir")
}
