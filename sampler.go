package discrepancy

import (
	"math/bits"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// SamplingMethod selects how the sampled part of a candidate set is produced.
type SamplingMethod int

const (
	// Random draws candidate corners uniformly with a Xoshiro256 engine.
	Random SamplingMethod = iota + 1
	// LowDiscrepancy draws candidate corners from a scrambled Sobol sequence.
	LowDiscrepancy
)

func (m SamplingMethod) String() string {
	switch m {
	case Random:
		return "random"
	case LowDiscrepancy:
		return "low_discrepancy"
	}
	return "unknown"
}

// ParseSamplingMethod accepts "random", "low_discrepancy" (also "low-discrepancy") and "sobol".
func ParseSamplingMethod(s string) (SamplingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return Random, nil
	case "low_discrepancy", "low-discrepancy", "sobol":
		return LowDiscrepancy, nil
	}
	return 0, invalidArgument("unknown sampling method %q", s)
}

// Mode is the candidate assembly policy.
type Mode int

const (
	// Star uses the sampled corners, every point of the set and the all-ones corner.
	Star Mode = iota + 1
	// Centered uses the sampled corners only. It is a cruder estimate kept for comparison.
	Centered
)

func (m Mode) String() string {
	switch m {
	case Star:
		return "star"
	case Centered:
		return "centered"
	case 0:
		return "custom"
	}
	return "unknown"
}

// ParseMode accepts "star" and "centered" (also "centred").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "star":
		return Star, nil
	case "centered", "centred":
		return Centered, nil
	}
	return 0, invalidArgument("unknown discrepancy mode %q", s)
}

// SampleCorners returns count test corners in [0,1)^d.
//
// Random uses GeneratePoints with NewXoshiro256(seed). LowDiscrepancy draws the first
// 2^ceil(log2 count) points of a Sobol sequence scrambled from NewXoshiro256(seed) and
// keeps the first count of them; dimensions above SobolMaxDim are rejected.
func SampleCorners(method SamplingMethod, count, d int, seed int64) (*PointSet, error) {
	if err := checkShape(count, d); err != nil {
		return nil, err
	}
	switch method {
	case Random:
		return GeneratePoints(NewXoshiro256(seed), count, d)
	case LowDiscrepancy:
		s, err := NewSobol(d, true, NewXoshiro256(seed))
		if err != nil {
			return nil, err
		}
		full, err := s.DrawBase2(bits.Len(uint(count - 1)))
		if err != nil {
			return nil, err
		}
		data := full.m.RawMatrix().Data[:count*d]
		return &PointSet{m: mat.NewDense(count, d, data)}, nil
	}
	return nil, invalidArgument("unknown sampling method %d", int(method))
}

// SampleCandidates assembles a candidate set of dimension d.
//
// In Star mode the result holds count sampled corners, then every row of points, then the
// all-ones corner (m = count + n + 1); points are required and must have dimension d.
// In Centered mode the result holds the sampled corners only and points is ignored.
func SampleCandidates(mode Mode, method SamplingMethod, count, d int, seed int64, points *PointSet) (*CandidateSet, error) {
	var n int
	switch mode {
	case Star:
		var pd int
		n, pd = points.Dims()
		if n == 0 {
			return nil, invalidArgument("star candidates need a non-empty point set")
		}
		if pd != d {
			return nil, dimensionMismatch(d, pd)
		}
	case Centered:
	default:
		return nil, invalidArgument("unknown discrepancy mode %d", int(mode))
	}

	sampled, err := SampleCorners(method, count, d, seed)
	if err != nil {
		return nil, err
	}
	if mode == Centered {
		return &CandidateSet{m: sampled.m, Mode: Centered, Sampled: count}, nil
	}

	rows := count + n + 1
	data := make([]float64, 0, rows*d)
	data = append(data, sampled.m.RawMatrix().Data...)
	for i := range n {
		data = append(data, points.m.RawRowView(i)...)
	}
	for range d {
		data = append(data, 1)
	}
	return &CandidateSet{m: mat.NewDense(rows, d, data), Mode: Star, Sampled: count}, nil
}
