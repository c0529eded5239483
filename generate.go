package discrepancy

import (
	"gonum.org/v1/gonum/mat"
)

// GeneratePoints draws n points uniformly from [0,1)^d. The engine is consumed row-major:
// all d coordinates of point 0, then point 1, and so on, one Float64 per coordinate.
// No coordinate equals 1.0; clamp explicitly if closed intervals are needed.
func GeneratePoints(e Engine, n, d int) (*PointSet, error) {
	if e == nil {
		return nil, invalidArgument("nil engine")
	}
	if err := checkShape(n, d); err != nil {
		return nil, err
	}
	data := make([]float64, n*d)
	for i := range data {
		data[i] = e.Float64()
	}
	return &PointSet{m: mat.NewDense(n, d, data)}, nil
}

// GenerateGridPoints draws every coordinate as Uint64N(resolution)/resolution, i.e. from the
// grid {0, 1/r, ..., (r-1)/r}. With resolution 1000 and NewXoshiro256 this reproduces the
// point files written by the reference xoshiro256** program.
func GenerateGridPoints(e Engine, n, d int, resolution uint64) (*PointSet, error) {
	if e == nil {
		return nil, invalidArgument("nil engine")
	}
	if err := checkShape(n, d); err != nil {
		return nil, err
	}
	if resolution == 0 {
		return nil, invalidArgument("grid resolution must be positive")
	}
	scale := float64(resolution)
	data := make([]float64, n*d)
	for i := range data {
		v, err := e.Uint64N(resolution)
		if err != nil {
			return nil, err
		}
		data[i] = float64(v) / scale
	}
	return &PointSet{m: mat.NewDense(n, d, data)}, nil
}

// GenerateSobolPoints returns the first n points of a d-dimensional Sobol sequence. With
// scramble set, the scrambling is drawn from NewXoshiro256(seed); otherwise seed is ignored.
func GenerateSobolPoints(n, d int, scramble bool, seed int64) (*PointSet, error) {
	if err := checkShape(n, d); err != nil {
		return nil, err
	}
	var e Engine
	if scramble {
		e = NewXoshiro256(seed)
	}
	s, err := NewSobol(d, scramble, e)
	if err != nil {
		return nil, err
	}
	return s.Draw(n)
}

func checkShape(n, d int) error {
	if n < 1 {
		return invalidArgument("number of points must be at least 1, got %d", n)
	}
	if d < 1 {
		return invalidArgument("dimension must be at least 1, got %d", d)
	}
	return nil
}
