package discrepancy

import (
	"fmt"
	"math"
	"slices"
)

// ComparisonResult holds the confidence that sample A improves on sample B by at least
// RelativeImprovement, measured on the medians.
type ComparisonResult struct {
	RelativeImprovement float64
	Confidence          float64
}

const MinimumDataPoints uint64 = 11

// CompareSamples compares two samples of discrepancy values (e.g. one value per trial for
// two point sources) and computes the confidence that A has a lower discrepancy than B by at
// least each of the given relative improvements. precisionLevel is the number of bootstrap
// repetitions. Both samples need at least MinimumDataPoints values.
func CompareSamples(sampleA, sampleB []float64, relativeImprovements []float64, precisionLevel uint64) (result []ComparisonResult, err error) {
	if uint64(len(sampleA)) < MinimumDataPoints || uint64(len(sampleB)) < MinimumDataPoints {
		return []ComparisonResult{}, fmt.Errorf("%w: need at least %d values in each sample, got %d and %d",
			ErrInvalidArgument, MinimumDataPoints, len(sampleA), len(sampleB))
	}
	if len(relativeImprovements) == 0 {
		relativeImprovements = []float64{0.0}
	}
	thresholds := slices.Clone(relativeImprovements)
	slices.Sort(thresholds)

	conf := BootstrapConfidence(sampleA, sampleB, thresholds, precisionLevel, 0)

	for _, t := range thresholds {
		result = append(result, ComparisonResult{RelativeImprovement: t, Confidence: conf[t]})
	}
	return result, nil
}

// bootstrapSample returns a sample drawn with replacement from xs, of the same length.
// Indices come from rng via a modulo reduction, so tiny bias applies for lengths that do not
// divide 2^64. xs is not modified.
func bootstrapSample(xs []float64, rng Engine) []float64 {
	n := len(xs)
	sample := make([]float64, n)
	for i := range n {
		idx, _ := rng.Uint64N(uint64(n))
		sample[i] = xs[idx]
	}
	return sample
}

// BootstrapConfidence estimates, for each threshold t, the probability that
//
//	delta = 1 - median(A*)/median(B*) >= t
//
// where A* and B* are bootstrap resamples. A positive delta means A's values are smaller.
// All replicates share one Xoroshiro128 stream seeded with prngSeed, so results are reproducible.
//
// Edge cases:
//   - reps == 0 maps every threshold to NaN.
//   - Empty samples give NaN medians; such replicates never meet a threshold.
//   - Equal medians (including both zero or both infinite with the same sign) give delta 0.
//   - A median of B that is numerically zero is replaced by a small scale-aware epsilon.
func BootstrapConfidence(A, B []float64, thresholds []float64, reps uint64, prngSeed int64) (confidenceForThreshold map[float64]float64) {
	confidenceForThreshold = make(map[float64]float64, len(thresholds))

	if reps == 0 {
		for _, threshold := range thresholds {
			confidenceForThreshold[threshold] = math.NaN()
		}
		return confidenceForThreshold
	}

	rng := NewXoroshiro128(prngSeed)
	counts := make(map[float64]uint64, len(thresholds))

	for range reps {
		medA := QuickMedian(bootstrapSample(A, rng))
		medB := QuickMedian(bootstrapSample(B, rng))

		var delta float64
		if math.IsNaN(medA) || math.IsNaN(medB) {
			delta = math.NaN()
		} else if medA == medB || (math.IsInf(medA, -1) && math.IsInf(medB, -1)) || (math.IsInf(medA, 1) && math.IsInf(medB, 1)) {
			delta = 0.0
		} else {
			eps := math.Max(math.Abs(medB)*1e-12, math.SmallestNonzeroFloat64)
			denom := medB
			if math.Abs(medB) < eps {
				denom = eps
			}
			delta = 1.0 - medA/denom
		}

		for _, threshold := range thresholds {
			if delta >= threshold {
				counts[threshold]++
			}
		}
	}

	for _, threshold := range thresholds {
		confidenceForThreshold[threshold] = float64(counts[threshold]) / float64(reps)
	}
	return confidenceForThreshold
}
