package discrepancy

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	testCases := []struct {
		data     []float64
		expected float64
	}{
		{[]float64{}, 0},
		{[]float64{1}, 1},
		{[]float64{1, 2, 3}, 2},
		{[]float64{1, 2, 3, 4}, 2.5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{1, 2, 2, 3, 4}, 2},
		{[]float64{1.5, 3.5, 2.5}, 2.5},
	}

	for _, tc := range testCases {
		result := Median(tc.data)
		assert.True(t, result == tc.expected, "FAIL: data=%v, expected=%v, got=%v\n", tc.data, tc.expected, result)
	}
}

func TestStatistics(t *testing.T) {
	testCases := []struct {
		data                   []float64
		mean, variance, stddev float64
	}{
		{[]float64{}, 0, -1, -1},
		{[]float64{1}, 1, 0, 0},
		{[]float64{1, 2, 3}, 2, 2 / 3.0, math.Sqrt(2 / 3.0)},
		{[]float64{1, 2, 3, 4}, 2.5, 1.25, math.Sqrt(1.25)},
		{[]float64{1, 1, 1, 1}, 1, 0, 0},
		{[]float64{3, 53, 512, 11, 75, 201, 335}, 170, 31576.285714285714, math.Sqrt(31576.285714285714)},
	}

	for _, tc := range testCases {
		mean, variance, stddev := Statistics(tc.data)
		assert.True(t, mean == tc.mean && variance == tc.variance && stddev == tc.stddev,
			"FAIL: data=%v, expected=(%v, %v, %v), got=(%v, %v, %v)\n", tc.data, tc.mean, tc.variance, tc.stddev, mean, variance, stddev)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0.04, 0.01, 0.03, 0.02})
	assert.Equal(t, 4, s.Trials)
	assert.InDelta(t, 0.025, s.Mean, 1e-15)
	assert.InDelta(t, 0.025, s.Median, 1e-15)
	assert.Equal(t, 0.01, s.Min)
	assert.Equal(t, 0.04, s.Max)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Trials)
	assert.Equal(t, -1.0, empty.StdDev)
}

func TestQuickMedianDeterministic(t *testing.T) {
	cases := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"odd sorted", []float64{1, 2, 3}, 2},
		{"odd unsorted", []float64{5, 1, 4, 2, 3}, 3},
		{"even sorted", []float64{1, 2, 3, 4}, 3},    // higher middle
		{"even unsorted", []float64{10, 1, 8, 3}, 8}, // sorted: [1,3,8,10] -> higher middle = 8
		{"duplicates even", []float64{2, 2, 2, 2}, 2},
		{"duplicates odd", []float64{7, 7, 7}, 7},
	}

	for _, cc := range cases {
		t.Run(cc.name, func(t *testing.T) {
			input := make([]float64, len(cc.input))
			copy(input, cc.input)
			got := QuickMedian(input)
			if got != cc.expect {
				t.Fatalf("QuickMedian(%v) = %v, want %v", cc.input, got, cc.expect)
			}
		})
	}
	assert.True(t, math.IsNaN(QuickMedian(nil)))
}

func TestQuickMedianRandomCompareToSorted(t *testing.T) {
	rng := NewXoroshiro128(77)
	for i := range 2_000 {
		n, _ := rng.Uint64N(2000)
		xs := make([]float64, n+1)
		for j := range xs {
			v, _ := rng.Uint64N(2001)
			xs[j] = float64(v) - 1000 + rng.Float64()
		}

		qs := make([]float64, len(xs))
		copy(qs, xs)
		got := QuickMedian(qs)

		sorted := make([]float64, len(xs))
		copy(sorted, xs)
		sort.Float64s(sorted)
		expected := sorted[len(xs)/2]

		if got != expected {
			t.Fatalf("run %d: got %v, expected %v", i, got, expected)
		}
	}
}
