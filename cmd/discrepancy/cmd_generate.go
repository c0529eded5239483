package main

import (
	"os"

	"github.com/TomTonic/discrepancy"
	"github.com/spf13/cobra"
)

var (
	genSource     string
	genPoints     int
	genDims       int
	genStream     int
	genResolution uint64
	genOutput     string

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Write a generated point set as CSV",
		Long: `generate writes n points in [0,1)^d from one of the point sources
(xoshiro256, xoroshiro128, xorshift, sobol, sobol-unscrambled). The --seed flag
selects the stream family and --stream a non-overlapping stream within it.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
)

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genSource, "source", "xoshiro256", "point source")
	f.IntVarP(&genPoints, "points", "n", 200, "number of points")
	f.IntVarP(&genDims, "dims", "d", 2, "dimension")
	f.IntVar(&genStream, "stream", 0, "stream number")
	f.Uint64Var(&genResolution, "resolution", 0, "draw PRNG coordinates from the grid {0, 1/r, ..., (r-1)/r} (0 = full precision)")
	f.StringVarP(&genOutput, "output", "o", "", "output file (default stdout)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	src, err := discrepancy.ParsePointSource(genSource)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if cfg.RandomSeed {
		seed = discrepancy.RandomSeed()
	}

	var points *discrepancy.PointSet
	if genResolution > 0 && src != discrepancy.SourceSobol && src != discrepancy.SourceSobolUnscrambled {
		e, err := src.Engine(seed, genStream)
		if err != nil {
			return err
		}
		points, err = discrepancy.GenerateGridPoints(e, genPoints, genDims, genResolution)
		if err != nil {
			return err
		}
	} else {
		points, err = src.Generate(seed, genStream, genPoints, genDims)
		if err != nil {
			return err
		}
	}

	if genOutput == "" {
		if err := writePoints(cmd.OutOrStdout(), points); err != nil {
			return err
		}
	} else if err := writePointsFile(genOutput, points); err != nil {
		return err
	}
	logger.Info().Str("source", src.String()).Int64("seed", seed).Int("stream", genStream).
		Int("points", genPoints).Int("dims", genDims).Msg("points written")
	return nil
}

// writePointsFile writes points to path. Errors from closing the file are returned.
func writePointsFile(path string, points *discrepancy.PointSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writePoints(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
