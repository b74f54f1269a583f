package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/povu/povu/internal/config"
	"github.com/povu/povu/internal/gfaingest"
)

func newPruneCmd(gf *globalFlags, v *viper.Viper) *cobra.Command {
	cfg := &config.Config{}
	var minLen int
	var outputPath string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop short tip vertices and write the pruned graph back out as GFA",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(gf, cfg, minLen, outputPath)
		},
	}
	bindInputFlag(cmd, cfg)
	cmd.Flags().IntVarP(&minLen, "min-len", "m", 1, "drop tip vertices shorter than this many bases")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write pruned GFA here (default: stdout)")
	return cmd
}

func runPrune(gf *globalFlags, cfg *config.Config, minLen int, outputPath string) error {
	log := newLogger(gf)
	defer log.Sync()

	in, err := readGFA(cfg.InputGFA)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", cfg.InputGFA, err)
	}
	g := gfaingest.Build(in)

	before := g.VtxCount()
	pruned := g.PruneShortTips(minLen)
	log.Infof("pruned %d of %d vertices (min-len=%d)", before-pruned.VtxCount(), before, minLen)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputPath, err)
		}
		defer f.Close()
		out = f
	}
	return pruned.WriteGFA(out)
}
