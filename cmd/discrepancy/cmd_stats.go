package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <csv>",
	Short: "Print the mean and population standard deviation of every coordinate",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	points, dropped, err := readPoints(f)
	if err != nil {
		return err
	}
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Str("path", path).Msg("dropped rows with non-numeric values")
	}

	out := cmd.OutOrStdout()
	for j, a := range points.AxisStats() {
		fmt.Fprintf(out, "Mean x%d: %.4f\n", j+1, a.Mean)
		fmt.Fprintf(out, "Standard Deviation x%d: %.4f\n", j+1, a.StdDev)
	}
	return nil
}
