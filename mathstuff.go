package discrepancy

import (
	"math"
	"sort"
)

// Median returns the median of data without modifying it. For an even number of
// elements it averages the two middle ones. It returns 0 for empty input.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	dataCopy := make([]float64, len(data))
	copy(dataCopy, data)
	sort.Float64s(dataCopy)

	l := len(dataCopy)
	if l%2 == 0 {
		return (dataCopy[l/2-1] + dataCopy[l/2]) / 2
	}
	return dataCopy[l/2]
}

// Statistics returns the mean and the population variance and standard deviation.
// For empty input it returns (0, -1, -1).
func Statistics(data []float64) (mean, variance, stddev float64) {
	if len(data) == 0 {
		return 0, -1, -1
	}

	var sum float64
	n := float64(len(data))

	for _, value := range data {
		sum += value
	}
	mean = sum / n

	for _, value := range data {
		variance += (value - mean) * (value - mean)
	}
	variance /= n
	stddev = math.Sqrt(variance)
	return
}

// Summary describes a series of discrepancy values, e.g. one per trial.
type Summary struct {
	Trials   int
	Mean     float64
	Variance float64
	StdDev   float64
	Median   float64
	Min      float64
	Max      float64
}

// Summarize computes a Summary of samples. Min and Max are 0 for empty input.
func Summarize(samples []float64) Summary {
	s := Summary{Trials: len(samples)}
	s.Mean, s.Variance, s.StdDev = Statistics(samples)
	s.Median = Median(samples)
	if len(samples) > 0 {
		s.Min, s.Max = samples[0], samples[0]
		for _, v := range samples[1:] {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
		}
	}
	return s
}

// partition rearranges xs around a pivot and returns its final index
func partition(xs []float64, low, high uint64) uint64 {
	pivot := xs[high]
	i := low
	for j := low; j < high; j++ {
		if xs[j] < pivot {
			xs[i], xs[j] = xs[j], xs[i]
			i++
		}
	}
	xs[i], xs[high] = xs[high], xs[i]
	return i
}

// quickselect finds the k-th smallest element (0-based index) in expected O(n) time.
// Pivots come from a fixed-seed DPRNG, so the work done for a given input is reproducible.
// see https://en.wikipedia.org/wiki/Quickselect
func quickselect(xs []float64, k uint64) float64 {
	rng := NewDPRNG(uint64(len(xs)))

	low, high := uint64(0), uint64(len(xs)-1)
	for low <= high {
		pivotIndex := rng.Uint64()%(high-low+1) + low
		xs[pivotIndex], xs[high] = xs[high], xs[pivotIndex] // move pivot to end
		p := partition(xs, low, high)
		if p == k {
			return xs[p]
		} else if p < k {
			low = p + 1
		} else {
			high = p - 1
		}
	}
	return xs[k] // fallback
}

// QuickMedian returns the median in expected O(n) time.
// In case of an even number of elements, it returns the higher of the two middle ones.
// It returns NaN for empty input.
// Note: This function modifies the input slice. To avoid this, pass a copy of the slice.
func QuickMedian(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return quickselect(xs, uint64(len(xs))/2)
}
