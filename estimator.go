package discrepancy

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// cancelCheckInterval is the number of candidates a worker evaluates between context checks.
const cancelCheckInterval = 64

// Volume returns the Lebesgue measure of the box [0, x], the product of the coordinates of x.
// It is exactly 1.0 for the all-ones corner. Coordinates outside [0,1] are not clamped.
func Volume(x []float64) float64 {
	v := 1.0
	for _, xi := range x {
		v *= xi
	}
	return v
}

// LocalDiscrepancy returns |empirical(x) - Volume(x)| where empirical(x) is the fraction of
// points p with p_i <= x_i for every i.
func LocalDiscrepancy(points *PointSet, x []float64) (float64, error) {
	n, d := points.Dims()
	if n == 0 {
		return 0, invalidArgument("empty point set")
	}
	if len(x) != d {
		return 0, dimensionMismatch(d, len(x))
	}
	return localDiscrepancy(points.m, n, x), nil
}

func localDiscrepancy(points *mat.Dense, n int, x []float64) float64 {
	inside := 0
	for i := range n {
		if dominated(points.RawRowView(i), x) {
			inside++
		}
	}
	empirical := float64(inside) / float64(n)
	diff := empirical - Volume(x)
	if diff < 0 {
		return -diff
	}
	return diff
}

// dominated reports whether p lies in the closed box [0, x]. NaN coordinates never do.
func dominated(p, x []float64) bool {
	for j, pj := range p {
		if !(pj <= x[j]) {
			return false
		}
	}
	return true
}

// Estimator evaluates the local discrepancy of every candidate corner and returns the maximum.
// The result approximates the star discrepancy from below; it can only grow as candidates are added.
type Estimator struct {
	// Workers is the number of goroutines sharing the candidate rows. Zero means GOMAXPROCS.
	Workers int
}

// NewEstimator returns an Estimator with the given number of workers (0 for GOMAXPROCS).
func NewEstimator(workers int) *Estimator {
	return &Estimator{Workers: workers}
}

// Estimate is EstimateContext without cancellation.
func (e *Estimator) Estimate(points *PointSet, candidates *CandidateSet) (float64, error) {
	return e.EstimateContext(context.Background(), points, candidates)
}

// EstimateContext returns max over all candidates x of LocalDiscrepancy(points, x).
//
// The candidate rows are split into contiguous chunks, one per worker, and the per-chunk
// maxima are reduced after all workers finish, so the result does not depend on the number
// of workers. Invalid input (empty point set, empty candidate set, dimension mismatch) is
// rejected before any evaluation. If ctx is cancelled, evaluation stops and the maximum over
// the candidates evaluated so far is returned together with ctx.Err().
func (e *Estimator) EstimateContext(ctx context.Context, points *PointSet, candidates *CandidateSet) (float64, error) {
	n, d := points.Dims()
	if n == 0 {
		return 0, invalidArgument("empty point set")
	}
	m, cd := candidates.Dims()
	if m == 0 {
		return 0, invalidArgument("empty candidate set")
	}
	if cd != d {
		return 0, dimensionMismatch(d, cd)
	}

	workers := e.workers(m)
	maxima := make([]float64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo, hi := m*w/workers, m*(w+1)/workers
		g.Go(func() error {
			best := 0.0
			defer func() { maxima[w] = best }()
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				// NaN from a NaN corner coordinate never wins
				if v := localDiscrepancy(points.m, n, candidates.m.RawRowView(i)); v > best {
					best = v
				}
			}
			return nil
		})
	}
	err := g.Wait()

	result := 0.0
	for _, v := range maxima {
		result = max(result, v)
	}
	return result, err
}

func (e *Estimator) workers(m int) int {
	w := e.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, m))
}

// Options configures Run.
type Options struct {
	NumTestPoints int            // sampled candidate corners
	Method        SamplingMethod // how the corners are sampled
	Seed          int64          // seeds the candidate sampler
	Mode          Mode           // candidate assembly policy
	Clip          bool           // clamp points to [0,1] before estimating
	Workers       int            // estimator goroutines, 0 means GOMAXPROCS
}

// DefaultOptions returns 2048 scrambled-Sobol corners, seed 42, star mode, no clipping.
func DefaultOptions() Options {
	return Options{
		NumTestPoints: 2048,
		Method:        LowDiscrepancy,
		Seed:          42,
		Mode:          Star,
	}
}

// Validate reports options that Run would reject, wrapping ErrInvalidArgument.
func (o Options) Validate() error {
	if o.NumTestPoints < 1 {
		return invalidArgument("number of test points must be at least 1, got %d", o.NumTestPoints)
	}
	if o.Method != Random && o.Method != LowDiscrepancy {
		return invalidArgument("unknown sampling method %d", int(o.Method))
	}
	if o.Mode != Star && o.Mode != Centered {
		return invalidArgument("unknown discrepancy mode %d", int(o.Mode))
	}
	if o.Workers < 0 {
		return invalidArgument("negative worker count %d", o.Workers)
	}
	return nil
}

// Report is the outcome of Run.
type Report struct {
	Discrepancy float64
	Points      int
	Dims        int
	Candidates  int
	Mode        Mode
	Method      SamplingMethod
	// Warning is set when the input had coordinates outside [0,1], whether or not they were clipped.
	Warning *DomainWarning
	Clipped bool
}

// Run checks the point set against the unit cube, optionally clips it, assembles the
// candidate set for opts.Mode and estimates the discrepancy.
func Run(ctx context.Context, points *PointSet, opts Options) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	n, d := points.Dims()
	if n == 0 {
		return Report{}, invalidArgument("empty point set")
	}
	r := Report{Points: n, Dims: d, Mode: opts.Mode, Method: opts.Method}
	r.Warning = points.CheckDomain()
	if opts.Clip && r.Warning != nil {
		points = points.Clip()
		r.Clipped = true
	}

	candidates, err := SampleCandidates(opts.Mode, opts.Method, opts.NumTestPoints, d, opts.Seed, points)
	if err != nil {
		return Report{}, err
	}
	r.Candidates, _ = candidates.Dims()
	r.Discrepancy, err = NewEstimator(opts.Workers).EstimateContext(ctx, points, candidates)
	return r, err
}

// StarDiscrepancy approximates the star discrepancy of points with the default options
// and the given number of sampled corners, method and seed.
func StarDiscrepancy(points *PointSet, numTest int, method SamplingMethod, seed int64) (float64, error) {
	return runWithMode(points, Star, numTest, method, seed)
}

// CenteredDiscrepancy is StarDiscrepancy restricted to sampled corners only.
func CenteredDiscrepancy(points *PointSet, numTest int, method SamplingMethod, seed int64) (float64, error) {
	return runWithMode(points, Centered, numTest, method, seed)
}

func runWithMode(points *PointSet, mode Mode, numTest int, method SamplingMethod, seed int64) (float64, error) {
	opts := DefaultOptions()
	opts.Mode = mode
	opts.NumTestPoints = numTest
	opts.Method = method
	opts.Seed = seed
	r, err := Run(context.Background(), points, opts)
	return r.Discrepancy, err
}
