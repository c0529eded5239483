// Command discrepancy estimates the star discrepancy of point sets in [0,1]^d and
// generates, compares and benchmarks point sources.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfg        Config
	logger     zerolog.Logger
	configPath string

	rootCmd = &cobra.Command{
		Use:   "discrepancy",
		Short: "Approximate the star discrepancy of point sets in the unit cube",
		Long: `discrepancy measures how uniformly a point set fills [0,1]^d by sampling
test boxes [0,x] and taking the largest gap between the fraction of points
inside a box and the box volume.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	addConfigFlags(pf)

	rootCmd.AddCommand(estimateCmd, generateCmd, compareCmd, benchCmd, statsCmd)
}

// addConfigFlags registers the flags that applyFlags reads.
func addConfigFlags(pf *pflag.FlagSet) {
	pf.Int("num-test", 0, "number of sampled test corners (default 2048)")
	pf.String("method", "", "sampling method for test corners: random or low_discrepancy (default low_discrepancy)")
	pf.Int64("seed", 0, "seed for test corner sampling (default 42)")
	pf.Bool("random-seed", false, "draw a fresh seed from crypto/rand and log it")
	pf.Bool("clip", false, "clip points to [0,1] before estimating")
	pf.String("mode", "", "candidate assembly: star or centered (default star)")
	pf.Int("workers", 0, "estimator goroutines (default GOMAXPROCS)")
	pf.String("log-level", "", "trace, debug, info, warn or error (default info)")
	pf.String("log-format", "", "console or json (default console)")
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig(configPath, nil)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return err
	}
	logger, err = newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger.Debug().Interface("config", cfg).Msg("configuration loaded")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
