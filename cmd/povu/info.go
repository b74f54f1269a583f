package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/povu/povu/internal/config"
	"github.com/povu/povu/internal/pvst"
	"github.com/povu/povu/internal/statsdb"
)

func newInfoCmd(gf *globalFlags, v *viper.Viper) *cobra.Command {
	cfg := &config.Config{}
	var printTips, dot, gfa bool
	var history string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print graph statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(gf, cfg, printTips, dot, gfa, history)
		},
	}
	bindInputFlag(cmd, cfg)
	cmd.Flags().BoolVarP(&printTips, "print_tips", "t", false, "print the graph's tip set")
	cmd.Flags().BoolVar(&dot, "dot", false, "dump the graph as Graphviz DOT")
	cmd.Flags().BoolVar(&gfa, "gfa", false, "dump the graph back out as GFA")
	cmd.Flags().StringVar(&history, "history", "", "print recorded run stats for a given input GFA path")
	return cmd
}

func runInfo(gf *globalFlags, cfg *config.Config, printTips, dot, gfa bool, history string) error {
	log := newLogger(gf)
	defer log.Sync()

	if history != "" {
		return printHistory(history)
	}

	g, comps, err := buildComponents(cfg, log)
	if err != nil {
		return err
	}

	fmt.Printf("vertices: %d\n", g.VtxCount())
	fmt.Printf("edges: %d\n", g.EdgeCount())
	fmt.Printf("references: %d\n", g.Refs().Len())
	fmt.Printf("components: %d\n", len(comps))

	var flubbleLike int
	for _, c := range comps {
		for _, n := range c.pt.Nodes {
			if n.Family.Clan() == pvst.ClanFlubbleLike {
				flubbleLike++
			}
		}
	}
	fmt.Printf("flubble-like regions: %d\n", flubbleLike)

	if printTips {
		for side := range g.Tips() {
			fmt.Printf("tip: %s\n", side.String())
		}
	}
	if dot {
		if err := g.WriteDOT(os.Stdout); err != nil {
			return err
		}
	}
	if gfa {
		if err := g.WriteGFA(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func printHistory(inputGFA string) error {
	path := filepath.Join(os.Getenv("HOME"), ".povu-stats.duckdb")
	db, err := statsdb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.RecentRuns(inputGFA, 20)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  rov=%d record=%d tangled=%d elapsed=%s\n",
			r.StartedAt.Format("2006-01-02T15:04:05"), r.RoVCount, r.RecordCount, r.TangledCount, r.Duration)
	}
	return nil
}
