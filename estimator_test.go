package discrepancy

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func mustPoints(t *testing.T, rows [][]float64) *PointSet {
	t.Helper()
	p, err := NewPointSet(rows)
	require.NoError(t, err)
	return p
}

func mustCandidates(t *testing.T, rows [][]float64) *CandidateSet {
	t.Helper()
	c, err := NewCandidateSet(rows)
	require.NoError(t, err)
	return c
}

func TestVolume(t *testing.T) {
	for d := 1; d <= 64; d++ {
		ones := make([]float64, d)
		for i := range ones {
			ones[i] = 1
		}
		assert.Equal(t, 1.0, Volume(ones), "d=%d", d)
	}
	assert.Equal(t, 0.25, Volume([]float64{0.5, 0.5}))
	assert.Equal(t, 0.0, Volume([]float64{0.5, 0}))
}

func TestEstimateSinglePoint(t *testing.T) {
	points := mustPoints(t, [][]float64{{0.5, 0.5}})
	candidates := mustCandidates(t, [][]float64{{0.5, 0.5}})
	got, err := NewEstimator(1).Estimate(points, candidates)
	require.NoError(t, err)
	assert.Equal(t, 0.75, got)
}

func TestAllOnesCornerContributesNothing(t *testing.T) {
	points, err := GeneratePoints(NewXoshiro256(1), 100, 3)
	require.NoError(t, err)
	ld, err := LocalDiscrepancy(points, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ld)

	base := mustCandidates(t, [][]float64{{0.2, 0.7, 0.4}, {0.9, 0.1, 0.5}})
	withOnes := mustCandidates(t, [][]float64{{0.2, 0.7, 0.4}, {0.9, 0.1, 0.5}, {1, 1, 1}})
	e := NewEstimator(0)
	a, err := e.Estimate(points, base)
	require.NoError(t, err)
	b, err := e.Estimate(points, withOnes)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBoundaryIsInclusive(t *testing.T) {
	points := mustPoints(t, [][]float64{{0.25}, {0.5}, {0.75}})
	ld, err := LocalDiscrepancy(points, []float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0-0.5, ld, 1e-15)
}

func TestStarDiscrepancyOfCenteredGrid(t *testing.T) {
	// The star discrepancy of {(i+0.5)/n} in one dimension is 1/(2n).
	const n = 10
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{(float64(i) + 0.5) / n}
	}
	got, err := StarDiscrepancy(mustPoints(t, rows), 1024, LowDiscrepancy, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, got, 1e-12)

	single, err := StarDiscrepancy(mustPoints(t, [][]float64{{0.5}}), 16, Random, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, single)
}

func TestParallelMatchesSerial(t *testing.T) {
	points, err := GeneratePoints(NewXoroshiro128(5), 300, 3)
	require.NoError(t, err)
	candidates, err := SampleCandidates(Star, Random, 700, 3, 9, points)
	require.NoError(t, err)

	serial, err := NewEstimator(1).Estimate(points, candidates)
	require.NoError(t, err)
	for k := 2; k <= 17; k++ {
		got, err := NewEstimator(k).Estimate(points, candidates)
		require.NoError(t, err)
		assert.Equal(t, serial, got, "workers=%d", k)
	}

	// More workers than candidates.
	few := mustCandidates(t, [][]float64{{0.5, 0.5, 0.5}, {0.9, 0.9, 0.9}})
	a, err := NewEstimator(1).Estimate(points, few)
	require.NoError(t, err)
	b, err := NewEstimator(64).Estimate(points, few)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestChunkedMaxEqualsSinglePass(t *testing.T) {
	points, err := GeneratePoints(NewXoshiro256(8), 64, 2)
	require.NoError(t, err)
	candidates, err := SampleCandidates(Centered, LowDiscrepancy, 257, 2, 8, nil)
	require.NoError(t, err)
	m, _ := candidates.Dims()

	single := 0.0
	for i := range m {
		ld, err := LocalDiscrepancy(points, candidates.Row(i))
		require.NoError(t, err)
		single = max(single, ld)
	}
	for k := 1; k <= 9; k++ {
		best := 0.0
		for w := range k {
			chunk := 0.0
			for i := m * w / k; i < m*(w+1)/k; i++ {
				ld, _ := LocalDiscrepancy(points, candidates.Row(i))
				chunk = max(chunk, ld)
			}
			best = max(best, chunk)
		}
		assert.Equal(t, single, best, "k=%d", k)
	}
	got, err := NewEstimator(4).Estimate(points, candidates)
	require.NoError(t, err)
	assert.Equal(t, single, got)
}

func TestStarRefinementIsMonotone(t *testing.T) {
	points, err := GeneratePoints(NewXoshiro256(21), 128, 2)
	require.NoError(t, err)
	for _, method := range []SamplingMethod{Random, LowDiscrepancy} {
		prev := 0.0
		for _, count := range []int{16, 64, 256, 1024, 4096} {
			got, err := StarDiscrepancy(points, count, method, 4)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev, "method=%s count=%d", method, count)
			prev = got
		}
	}
}

func TestStarDominatesCentered(t *testing.T) {
	points, err := GeneratePoints(NewXoroshiro128(2), 100, 2)
	require.NoError(t, err)
	star, err := StarDiscrepancy(points, 512, LowDiscrepancy, 3)
	require.NoError(t, err)
	centered, err := CenteredDiscrepancy(points, 512, LowDiscrepancy, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, star, centered)
	assert.Greater(t, centered, 0.0)
}

func TestEstimateRejectsInvalidInput(t *testing.T) {
	points := mustPoints(t, [][]float64{{0.5, 0.5}})
	e := NewEstimator(2)

	_, err := e.Estimate(&PointSet{}, mustCandidates(t, [][]float64{{0.5, 0.5}}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.Estimate(nil, mustCandidates(t, [][]float64{{0.5, 0.5}}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.Estimate(points, &CandidateSet{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.Estimate(points, mustCandidates(t, [][]float64{{0.5, 0.5, 0.5}}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = LocalDiscrepancy(points, []float64{0.5})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOutOfRangeValuesPropagate(t *testing.T) {
	points := mustPoints(t, [][]float64{{1.5, 0.5}})
	got, err := NewEstimator(1).Estimate(points, mustCandidates(t, [][]float64{{2, 2}}))
	require.NoError(t, err)
	assert.Equal(t, 3.0, got) // |1 - 4|
}

func TestEstimateCancelled(t *testing.T) {
	points, err := GeneratePoints(NewXoshiro256(1), 10, 2)
	require.NoError(t, err)
	candidates, err := SampleCandidates(Star, Random, 1000, 2, 1, points)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := NewEstimator(4).EstimateContext(ctx, points, candidates)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0.0, got)
}

func TestRun(t *testing.T) {
	points, err := GenerateSobolPoints(256, 2, true, 1)
	require.NoError(t, err)
	r, err := Run(context.Background(), points, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 256, r.Points)
	assert.Equal(t, 2, r.Dims)
	assert.Equal(t, 2048+256+1, r.Candidates)
	assert.Equal(t, Star, r.Mode)
	assert.Equal(t, LowDiscrepancy, r.Method)
	assert.Nil(t, r.Warning)
	assert.Greater(t, r.Discrepancy, 0.0)
	assert.Less(t, r.Discrepancy, 0.05)
}

func TestRunDomainWarning(t *testing.T) {
	points := mustPoints(t, [][]float64{{-0.1, 0.5}, {0.3, 1.2}, {0.4, 0.4}})
	opts := DefaultOptions()
	opts.NumTestPoints = 64

	r, err := Run(context.Background(), points, opts)
	require.NoError(t, err)
	require.NotNil(t, r.Warning)
	assert.Equal(t, 2, r.Warning.Rows)
	assert.False(t, r.Clipped)

	opts.Clip = true
	clipped, err := Run(context.Background(), points, opts)
	require.NoError(t, err)
	require.NotNil(t, clipped.Warning)
	assert.True(t, clipped.Clipped)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.ErrorIs(t, Options{}.Validate(), ErrInvalidArgument)

	o := DefaultOptions()
	o.Workers = -1
	assert.ErrorIs(t, o.Validate(), ErrInvalidArgument)
	o = DefaultOptions()
	o.Mode = Mode(7)
	assert.ErrorIs(t, o.Validate(), ErrInvalidArgument)

	_, err := Run(context.Background(), mustPoints(t, [][]float64{{0.5}}), Options{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Run(context.Background(), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNaNCornerDoesNotPoisonMaximum(t *testing.T) {
	points := mustPoints(t, [][]float64{{0.5, 0.5}})
	candidates := mustCandidates(t, [][]float64{{math.NaN(), 0.5}, {0.5, 0.5}, {0.5, math.NaN()}})
	for _, w := range []int{1, 2, 3} {
		got, err := NewEstimator(w).Estimate(points, candidates)
		require.NoError(t, err)
		assert.Equal(t, 0.75, got, "workers=%d", w)
	}
}

func TestEstimateCancelledMidRun(t *testing.T) {
	// every point sits at (0.1, 0.1); the first corner scores 1 - 0.01, all others 0
	rows := make([][]float64, 64)
	for i := range rows {
		rows[i] = []float64{0.1, 0.1}
	}
	points := mustPoints(t, rows)
	const m = 1 << 22
	data := make([]float64, 2*m)
	for i := range data {
		data[i] = 1
	}
	data[0], data[1] = 0.1, 0.1
	candidates := &CandidateSet{m: mat.NewDense(m, 2, data)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(5*time.Millisecond, cancel)
	got, err := NewEstimator(1).EstimateContext(ctx, points, candidates)
	assert.ErrorIs(t, err, context.Canceled)
	assert.InDelta(t, 0.99, got, 1e-12)
}
