package main

import (
	"fmt"
	"runtime"

	"github.com/TomTonic/discrepancy"
	"github.com/spf13/cobra"
)

var (
	benchPoints  int
	benchDims    int
	benchRepeats int

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Compare serial and parallel estimation runtimes",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
)

func init() {
	f := benchCmd.Flags()
	f.IntVarP(&benchPoints, "points", "n", 1024, "points in the benchmark set")
	f.IntVarP(&benchDims, "dims", "d", 3, "dimension")
	f.IntVar(&benchRepeats, "repeats", 21, "timed runs per variant")
}

func runBench(cmd *cobra.Command, _ []string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	points, err := discrepancy.SourceXoshiro256.Generate(opts.Seed, 0, benchPoints, benchDims)
	if err != nil {
		return err
	}
	candidates, err := discrepancy.SampleCandidates(opts.Mode, opts.Method, opts.NumTestPoints, benchDims, opts.Seed, points)
	if err != nil {
		return err
	}

	parallel := discrepancy.NewEstimator(opts.Workers)
	serial := discrepancy.NewEstimator(1)
	timesSerial := make([]float64, 0, benchRepeats)
	timesParallel := make([]float64, 0, benchRepeats)
	var vs, vp float64
	var errS, errP error
	for range benchRepeats {
		runtime.GC()
		timesSerial = append(timesSerial, float64(discrepancy.MeasureNanos(func() {
			vs, errS = serial.EstimateContext(cmd.Context(), points, candidates)
		})))
		runtime.GC()
		timesParallel = append(timesParallel, float64(discrepancy.MeasureNanos(func() {
			vp, errP = parallel.EstimateContext(cmd.Context(), points, candidates)
		})))
		if errS != nil {
			return errS
		}
		if errP != nil {
			return errP
		}
	}
	if vs != vp {
		return fmt.Errorf("serial and parallel estimates differ: %v vs %v", vs, vp)
	}

	m, _ := candidates.Dims()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "timer precision: %d ns\n", discrepancy.GetSampleTimePrecision())
	fmt.Fprintf(out, "discrepancy: %.8f (%d candidates)\n", vs, m)
	fmt.Fprintf(out, "median serial: %.0f ns, median parallel: %.0f ns\n",
		discrepancy.Median(timesSerial), discrepancy.Median(timesParallel))

	results, err := discrepancy.CompareSamples(timesParallel, timesSerial, []float64{0.1, 0.25, 0.5}, 10_000)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(out, "Speedup ≥ %.0f%% → Confidence: %.4f\n", r.RelativeImprovement*100.0, r.Confidence)
	}
	return nil
}
