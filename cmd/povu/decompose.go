package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/povu/povu/internal/config"
	"github.com/povu/povu/internal/pvst/pvstio"
)

func newDecomposeCmd(gf *globalFlags, v *viper.Viper) *cobra.Command {
	cfg := &config.Config{}
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Decompose a GFA graph into a PVST forest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompose(gf, cfg)
		},
	}
	bindInputFlag(cmd, cfg)
	bindDecompositionFlags(cmd, cfg)
	cmd.Flags().StringVarP(&cfg.ForestDir, "forest-dir", "f", "", "directory to write .pvst files into (required)")
	cmd.MarkFlagRequired("forest-dir")
	return cmd
}

func runDecompose(gf *globalFlags, cfg *config.Config) error {
	log := newLogger(gf)
	defer log.Sync()

	_, comps, err := buildComponents(cfg, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.ForestDir, 0o755); err != nil {
		return fmt.Errorf("create forest dir %s: %w", cfg.ForestDir, err)
	}
	for i, c := range comps {
		path := filepath.Join(cfg.ForestDir, fmt.Sprintf("component-%04d.pvst", i))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		err = pvstio.Write(f, c.pt)
		f.Close()
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Infof("wrote %d PVST nodes to %s", len(c.pt.Nodes), path)
	}
	return nil
}
