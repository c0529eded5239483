package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TomTonic/discrepancy"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <csv>",
	Short: "Approximate the discrepancy of the points in a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimate,
}

func runEstimate(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	points, dropped, err := readPoints(f)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to load points")
		return err
	}
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Str("path", path).Msg("dropped rows with non-numeric values")
	}

	report, err := discrepancy.Run(cmd.Context(), points, opts)
	if report.Warning != nil && !report.Clipped {
		logger.Warn().Int("rows", report.Warning.Rows).Int("below", report.Warning.Below).Int("above", report.Warning.Above).
			Int("nan", report.Warning.NaN).
			Msg("some points fall outside [0,1]^d; discrepancy assumes points in the unit cube")
	}
	if report.Clipped {
		logger.Info().Int("rows", report.Warning.Rows).Msg("clipped points to the unit cube")
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn().Err(err).Msg("interrupted; reporting the partial maximum")
	}
	logger.Info().Int64("seed", opts.Seed).Int("candidates", report.Candidates).Msg("estimation finished")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d points in %d dimensions from '%s'.\n", report.Points, report.Dims, path)
	fmt.Fprintf(out, "Approximated %s discrepancy (method=%s, num_test=%d): %.8f\n",
		report.Mode, report.Method, opts.NumTestPoints, report.Discrepancy)
	return nil
}
