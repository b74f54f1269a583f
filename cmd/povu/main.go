// Package main provides the povu command-line tool: GFA in, per-reference
// VCF out, by way of a Pangenome Variation Structure Tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/povu/povu/internal/config"
	"github.com/povu/povu/internal/plog"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags holds the persistent flags every subcommand shares.
type globalFlags struct {
	verbosity int
	threads   int
	progress  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var gf globalFlags
	v := viper.New()

	root := &cobra.Command{
		Use:           "povu",
		Short:         "A pangenome-variation engine: GFA decomposition and variant calling",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
	}
	root.PersistentFlags().IntVarP(&gf.verbosity, "verbosity", "v", 0, "log verbosity (0=warn, 1=info, 2+=debug)")
	root.PersistentFlags().IntVarP(&gf.threads, "threads", "t", 0, "worker pool size (0 = number of CPUs)")
	root.PersistentFlags().BoolVar(&gf.progress, "progress", false, "accepted but has no effect: no progress output is printed")
	bindEnv(v)

	if err := config.Load(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	root.AddCommand(newGfa2VCFCmd(&gf, v))
	root.AddCommand(newDecomposeCmd(&gf, v))
	root.AddCommand(newCallCmd(&gf, v))
	root.AddCommand(newInfoCmd(&gf, v))
	root.AddCommand(newPruneCmd(&gf, v))
	root.AddCommand(newConfigCmd(v))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("POVU")
	v.AutomaticEnv()
}

func newLogger(gf *globalFlags) *plog.Logger {
	return plog.New(gf.verbosity)
}
